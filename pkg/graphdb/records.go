package graphdb

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
)

func trendFromRecord(r *neo4j.Record) graph.Trend {
	return graph.Trend{
		ID:       getString(r, "id"),
		URL:      getString(r, "url"),
		Name:     getString(r, "name"),
		Location: getString(r, "location"),
		Date:     getString(r, "date"),
	}
}

func userFromRecord(r *neo4j.Record) graph.User {
	return graph.User{
		ID:        getString(r, "id"),
		Username:  getString(r, "username"),
		Followers: getInt(r, "followers"),
		Following: getInt(r, "following"),
		Verified:  getBool(r, "verified"),
	}
}

func tweetFromRecord(r *neo4j.Record) graph.Tweet {
	return graph.Tweet{
		ID:        getString(r, "id"),
		URL:       getString(r, "url"),
		Username:  getString(r, "username"),
		Text:      getString(r, "text"),
		Sentiment: getFloat(r, "sentiment"),
		Retweets:  getInt(r, "retweets"),
		Likes:     getInt(r, "likes"),
		Shares:    getInt(r, "shares"),
	}
}

func getString(r *neo4j.Record, key string) string {
	if v, ok := r.Get(key); ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(r *neo4j.Record, key string) int64 {
	v, ok := r.Get(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

// getFloat accepts integers too: a sentiment of exactly 0 or 1 may have been
// stored as an integer property.
func getFloat(r *neo4j.Record, key string) float64 {
	v, ok := r.Get(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func getBool(r *neo4j.Record, key string) bool {
	if v, ok := r.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
