// Package graphdb is the Neo4j graph.Store. Every call opens its own read
// session, so one Store can serve concurrent operations.
package graphdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
)

type Store struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *logrus.Logger
}

var _ graph.Store = (*Store)(nil)

// NewStore opens a driver and verifies the server is reachable.
func NewStore(ctx context.Context, cfg Config, logger *logrus.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, graph.StoreUnavailable("failed to create neo4j driver", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, graph.StoreUnavailable("neo4j unreachable", err)
	}

	logger.WithFields(logrus.Fields{
		"uri":      cfg.URI,
		"database": cfg.Database,
	}).Info("Connected to Neo4j")

	return &Store{
		driver:   driver,
		database: cfg.Database,
		logger:   logger,
	}, nil
}

func (s *Store) Trends(ctx context.Context) ([]graph.Trend, error) {
	var trends []graph.Trend
	err := s.read(ctx, "trends", nil, func(r *neo4j.Record) {
		trends = append(trends, trendFromRecord(r))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list trends: %w", err)
	}
	return trends, nil
}

func (s *Store) Users(ctx context.Context) ([]graph.User, error) {
	var users []graph.User
	err := s.read(ctx, "users", nil, func(r *neo4j.Record) {
		users = append(users, userFromRecord(r))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Store) TrendByKey(ctx context.Context, key graph.TrendKey) (*graph.Trend, error) {
	trends, err := s.trends(ctx, "trend_by_key", map[string]any{
		"name":     key.Name,
		"location": key.Location,
		"date":     key.Date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find trend %s: %w", key, err)
	}
	if len(trends) == 0 {
		return nil, graph.MissingEntity("trend", key.String())
	}
	return &trends[0], nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*graph.User, error) {
	users, err := s.users(ctx, "user_by_username", map[string]any{"username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}
	if len(users) == 0 {
		return nil, graph.MissingEntity("user", username)
	}
	return &users[0], nil
}

func (s *Store) TrendTweets(ctx context.Context, trendID string) ([]graph.Tweet, error) {
	return s.tweets(ctx, "trend_tweets", trendID)
}

func (s *Store) UserTweets(ctx context.Context, userID string) ([]graph.Tweet, error) {
	return s.tweets(ctx, "user_tweets", userID)
}

func (s *Store) TweetComments(ctx context.Context, tweetID string) ([]graph.Tweet, error) {
	return s.tweets(ctx, "tweet_comments", tweetID)
}

func (s *Store) CommentedOn(ctx context.Context, tweetID string) ([]graph.Tweet, error) {
	return s.tweets(ctx, "commented_on", tweetID)
}

func (s *Store) TweetAuthor(ctx context.Context, tweetID string) (*graph.User, error) {
	users, err := s.users(ctx, "tweet_author", map[string]any{"id": tweetID})
	if err != nil {
		return nil, fmt.Errorf("failed to get author of tweet %s: %w", tweetID, err)
	}
	if len(users) == 0 {
		return nil, graph.MissingEntity("author of tweet", tweetID)
	}
	return &users[0], nil
}

func (s *Store) TweetTrend(ctx context.Context, tweetID string) (*graph.Trend, error) {
	trends, err := s.trends(ctx, "tweet_trend", map[string]any{"id": tweetID})
	if err != nil {
		return nil, fmt.Errorf("failed to get trend of tweet %s: %w", tweetID, err)
	}
	if len(trends) == 0 {
		return nil, graph.MissingEntity("trend of tweet", tweetID)
	}
	return &trends[0], nil
}

func (s *Store) Close(ctx context.Context) error {
	s.logger.Debug("Closing Neo4j driver")
	return s.driver.Close(ctx)
}

func (s *Store) trends(ctx context.Context, query string, params map[string]any) ([]graph.Trend, error) {
	var trends []graph.Trend
	err := s.read(ctx, query, params, func(r *neo4j.Record) {
		trends = append(trends, trendFromRecord(r))
	})
	return trends, err
}

func (s *Store) users(ctx context.Context, query string, params map[string]any) ([]graph.User, error) {
	var users []graph.User
	err := s.read(ctx, query, params, func(r *neo4j.Record) {
		users = append(users, userFromRecord(r))
	})
	return users, err
}

func (s *Store) tweets(ctx context.Context, query, id string) ([]graph.Tweet, error) {
	tweets := []graph.Tweet{}
	err := s.read(ctx, query, map[string]any{"id": id}, func(r *neo4j.Record) {
		tweets = append(tweets, tweetFromRecord(r))
	})
	if err != nil {
		return nil, fmt.Errorf("%s of %s: %w", query, id, err)
	}
	return tweets, nil
}

// read runs a named query in a fresh read session and hands every record to scan.
func (s *Store) read(ctx context.Context, name string, params map[string]any, scan func(*neo4j.Record)) error {
	query, ok := cypherQueries[name]
	if !ok {
		return fmt.Errorf("unknown query %q", name)
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return err
	}

	count := 0
	for result.Next(ctx) {
		scan(result.Record())
		count++
	}
	if err := result.Err(); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"query":   name,
		"records": count,
	}).Trace("Cypher query completed")
	return nil
}
