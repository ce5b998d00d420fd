package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/trendgraph/pkg/graph/memgraph"
)

// ImportSnapshot merges a snapshot into the graph in one write transaction.
// Nodes are merged on id_mongo, so importing twice changes nothing.
func (s *Store) ImportSnapshot(ctx context.Context, snap memgraph.Snapshot) error {
	log := s.logger.WithField("method", "ImportSnapshot")

	trends := make([]map[string]any, len(snap.Trends))
	for i, t := range snap.Trends {
		trends[i] = map[string]any{"id": t.ID, "url": t.URL, "name": t.Name, "location": t.Location, "date": t.Date}
	}
	users := make([]map[string]any, len(snap.Users))
	for i, u := range snap.Users {
		users[i] = map[string]any{
			"id":        u.ID,
			"username":  u.Username,
			"followers": u.Followers,
			"following": u.Following,
			"verified":  u.Verified,
		}
	}
	tweets := make([]map[string]any, len(snap.Tweets))
	var comments []map[string]any
	for i, t := range snap.Tweets {
		tweets[i] = map[string]any{
			"id":        t.ID,
			"url":       t.URL,
			"username":  t.Username,
			"text":      t.Text,
			"sentiment": t.Sentiment,
			"retweets":  t.Retweets,
			"likes":     t.Likes,
			"shares":    t.Shares,
			"user_id":   t.UserID,
			"trend_id":  t.TrendID,
		}
		for _, parentID := range t.CommentOf {
			if parentID == t.ID {
				return fmt.Errorf("tweet %s cannot comment on itself", t.ID)
			}
			comments = append(comments, map[string]any{"comment_id": t.ID, "parent_id": parentID})
		}
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := runWrite(ctx, tx, "merge_trends", trends); err != nil {
			return nil, fmt.Errorf("failed to merge trends: %w", err)
		}
		if _, err := runWrite(ctx, tx, "merge_users", users); err != nil {
			return nil, fmt.Errorf("failed to merge users: %w", err)
		}

		merged, err := runWrite(ctx, tx, "merge_tweets", tweets)
		if err != nil {
			return nil, fmt.Errorf("failed to merge tweets: %w", err)
		}
		if merged != int64(len(tweets)) {
			return nil, fmt.Errorf("merged %d of %d tweets: unknown user or trend reference", merged, len(tweets))
		}

		merged, err = runWrite(ctx, tx, "merge_comments", comments)
		if err != nil {
			return nil, fmt.Errorf("failed to merge comments: %w", err)
		}
		if merged != int64(len(comments)) {
			return nil, fmt.Errorf("merged %d of %d comments: unknown parent tweet", merged, len(comments))
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"trends":   len(trends),
		"users":    len(users),
		"tweets":   len(tweets),
		"comments": len(comments),
	}).Info("Snapshot imported")
	return nil
}

// runWrite executes a merge query and returns its merged count, or 0 for
// queries that return nothing.
func runWrite(ctx context.Context, tx neo4j.ManagedTransaction, name string, rows []map[string]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	result, err := tx.Run(ctx, cypherQueries[name], map[string]any{"rows": rows})
	if err != nil {
		return 0, err
	}

	var merged int64
	for result.Next(ctx) {
		merged += getInt(result.Record(), "merged")
	}
	return merged, result.Err()
}
