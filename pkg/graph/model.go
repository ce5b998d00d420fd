// Package graph defines the Trend / Tweet / User data model and the read-only
// query contract every graph-store backend implements.
package graph

// Relationship labels between nodes.
const (
	// RelRelatedTo links a Tweet to the Trend it was posted about.
	RelRelatedTo = "RELATED_TO"
	// RelPostedBy links a Tweet to its author.
	RelPostedBy = "POSTED_BY"
	// RelCommentedOn links a comment Tweet to the Tweet it replies to.
	RelCommentedOn = "COMMENTED_ON"
)

// Trend is a topic/hashtag instance scoped by location and date.
type Trend struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

// TrendKey is the composite unique key used to look a trend up.
type TrendKey struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

// Key returns the composite lookup key of the trend.
func (t Trend) Key() TrendKey {
	return TrendKey{Name: t.Name, Location: t.Location, Date: t.Date}
}

func (k TrendKey) String() string {
	return k.Name + "@" + k.Location + "/" + k.Date
}

// Tweet is a post about exactly one trend, written by exactly one user.
type Tweet struct {
	ID        string  `json:"id"`
	URL       string  `json:"url"`
	Username  string  `json:"username"` // denormalized author handle
	Text      string  `json:"text"`
	Sentiment float64 `json:"sentiment"`
	Retweets  int64   `json:"retweets"`
	Likes     int64   `json:"likes"`
	Shares    int64   `json:"shares"`
}

// User is a tweet author.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
	Verified  bool   `json:"verified"`
}
