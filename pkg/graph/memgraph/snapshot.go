package memgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
)

// Snapshot is the on-disk form of a graph. Tweets carry their edges inline.
//
// The file should be JSON with the following structure:
//
//	{
//	    "trends": [{"id": "t1", "url": "...", "name": "#Halloween", "location": "Italy", "date": "..."}],
//	    "users":  [{"id": "u1", "username": "@a", "followers": 100, "following": 10, "verified": false}],
//	    "tweets": [{"id": "w1", "url": "...", "username": "@a", "text": "...", "sentiment": 0.4,
//	                "retweets": 1, "likes": 2, "shares": 0,
//	                "user_id": "u1", "trend_id": "t1", "comment_of": ["w0"]}]
//	}
type Snapshot struct {
	Trends []graph.Trend   `json:"trends"`
	Users  []graph.User    `json:"users"`
	Tweets []SnapshotTweet `json:"tweets"`
}

// SnapshotTweet is a tweet plus its outgoing relationships.
type SnapshotTweet struct {
	graph.Tweet
	UserID    string   `json:"user_id"`
	TrendID   string   `json:"trend_id"`
	CommentOf []string `json:"comment_of,omitempty"`
}

// LoadSnapshot reads a snapshot file and builds a Store from it.
func LoadSnapshot(path string, logger *logrus.Logger) (*Store, error) {
	snap, err := ReadSnapshotFile(path)
	if err != nil {
		return nil, err
	}

	store, err := FromSnapshot(snap, logger)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", path, err)
	}
	return store, nil
}

// ReadSnapshotFile decodes a snapshot file without building a Store.
func ReadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, graph.StoreUnavailable("opening snapshot", err)
	}
	defer f.Close()

	snap, err := DecodeSnapshot(f)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// DecodeSnapshot parses the JSON form of a snapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap, nil
}

// ReadSnapshot decodes a snapshot from r and builds a Store from it.
func ReadSnapshot(r io.Reader, logger *logrus.Logger) (*Store, error) {
	snap, err := DecodeSnapshot(r)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap, logger)
}

// FromSnapshot builds a Store. Every reference must resolve; nothing is skipped.
func FromSnapshot(snap Snapshot, logger *logrus.Logger) (*Store, error) {
	s := New(logger)

	for _, t := range snap.Trends {
		if err := s.AddTrend(t); err != nil {
			return nil, err
		}
	}
	for _, u := range snap.Users {
		if err := s.AddUser(u); err != nil {
			return nil, err
		}
	}
	// comments may reference tweets listed after them
	for _, t := range snap.Tweets {
		if err := s.AddTweet(t.Tweet, t.UserID, t.TrendID); err != nil {
			return nil, err
		}
	}
	for _, t := range snap.Tweets {
		for _, parentID := range t.CommentOf {
			if err := s.AddComment(t.ID, parentID); err != nil {
				return nil, err
			}
		}
	}

	trends, users, tweets := s.Stats()
	s.logger.WithFields(logrus.Fields{
		"trends": trends,
		"users":  users,
		"tweets": tweets,
	}).Debug("Graph snapshot loaded")

	return s, nil
}
