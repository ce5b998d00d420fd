// Package models holds the gorm row types of the relational trend graph.
package models

import "github.com/lisanmuaddib/trendgraph/pkg/graph"

// Trend is a row of the trends table.
type Trend struct {
	ID       string `gorm:"primaryKey;column:id"`
	URL      string `gorm:"column:url;not null;uniqueIndex"`
	Name     string `gorm:"column:name"`
	Location string `gorm:"column:location"`
	Date     string `gorm:"column:date"`
	Seq      int64  `gorm:"column:seq;->"`
}

// TableName specifies the table name for the Trend model
func (Trend) TableName() string {
	return "trends"
}

func (t Trend) ToGraph() graph.Trend {
	return graph.Trend{ID: t.ID, URL: t.URL, Name: t.Name, Location: t.Location, Date: t.Date}
}

// User is a row of the users table.
type User struct {
	ID        string `gorm:"primaryKey;column:id"`
	Username  string `gorm:"column:username;not null;uniqueIndex"`
	Followers int64  `gorm:"column:followers;not null"`
	Following int64  `gorm:"column:following;not null"`
	Verified  bool   `gorm:"column:verified;not null"`
	Seq       int64  `gorm:"column:seq;->"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

func (u User) ToGraph() graph.User {
	return graph.User{ID: u.ID, Username: u.Username, Followers: u.Followers, Following: u.Following, Verified: u.Verified}
}

// Tweet is a row of the tweets table. UserID and TrendID carry the
// POSTED_BY and RELATED_TO edges.
type Tweet struct {
	ID        string  `gorm:"primaryKey;column:id"`
	URL       string  `gorm:"column:url;not null;uniqueIndex"`
	Username  string  `gorm:"column:username;not null"`
	Text      string  `gorm:"column:text;not null"`
	Sentiment float64 `gorm:"column:sentiment;not null"`
	Retweets  int64   `gorm:"column:retweets;not null"`
	Likes     int64   `gorm:"column:likes;not null"`
	Shares    int64   `gorm:"column:shares;not null"`
	UserID    string  `gorm:"column:user_id;not null;index"`
	TrendID   string  `gorm:"column:trend_id;not null;index"`
	Seq       int64   `gorm:"column:seq;->"`
}

// TableName specifies the table name for the Tweet model
func (Tweet) TableName() string {
	return "tweets"
}

func (t Tweet) ToGraph() graph.Tweet {
	return graph.Tweet{
		ID:        t.ID,
		URL:       t.URL,
		Username:  t.Username,
		Text:      t.Text,
		Sentiment: t.Sentiment,
		Retweets:  t.Retweets,
		Likes:     t.Likes,
		Shares:    t.Shares,
	}
}

// TweetComment is a COMMENTED_ON edge from CommentID to ParentID.
type TweetComment struct {
	CommentID string `gorm:"primaryKey;column:comment_id"`
	ParentID  string `gorm:"primaryKey;column:parent_id"`
}

// TableName specifies the table name for the TweetComment model
func (TweetComment) TableName() string {
	return "tweet_comments"
}
