package graph

import "context"

// Store is the read-only query surface the analytics run against.
//
// Relationship accessors are direction specific: TweetComments follows
// COMMENTED_ON edges into the tweet (the replies it received), CommentedOn
// follows them out of the tweet (the tweets it replies to). Implementations
// make no ordering promise beyond what their backend yields.
type Store interface {
	// Trends returns every trend node.
	Trends(ctx context.Context) ([]Trend, error)
	// Users returns every user node.
	Users(ctx context.Context) ([]User, error)

	// TrendByKey looks a trend up by name, location and date.
	TrendByKey(ctx context.Context, key TrendKey) (*Trend, error)
	// UserByUsername looks a user up by its unique username.
	UserByUsername(ctx context.Context, username string) (*User, error)

	// TrendTweets returns the tweets RELATED_TO the trend.
	TrendTweets(ctx context.Context, trendID string) ([]Tweet, error)
	// TweetAuthor returns the POSTED_BY target of the tweet.
	TweetAuthor(ctx context.Context, tweetID string) (*User, error)
	// TweetTrend returns the RELATED_TO target of the tweet.
	TweetTrend(ctx context.Context, tweetID string) (*Trend, error)
	// TweetComments returns the tweets that COMMENTED_ON the tweet.
	TweetComments(ctx context.Context, tweetID string) ([]Tweet, error)
	// CommentedOn returns the tweets the given tweet COMMENTED_ON.
	CommentedOn(ctx context.Context, tweetID string) ([]Tweet, error)
	// UserTweets returns the tweets POSTED_BY the user.
	UserTweets(ctx context.Context, userID string) ([]Tweet, error)

	Close(ctx context.Context) error
}
