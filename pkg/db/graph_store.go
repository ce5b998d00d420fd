package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lisanmuaddib/trendgraph/pkg/db/models"
	"github.com/lisanmuaddib/trendgraph/pkg/graph"
)

// GraphStore answers graph queries from the relational schema.
type GraphStore struct {
	logger *logrus.Logger
	db     *gorm.DB
}

var _ graph.Store = (*GraphStore)(nil)

func NewGraphStore(logger *logrus.Logger, db *gorm.DB) *GraphStore {
	return &GraphStore{
		logger: logger,
		db:     db,
	}
}

func (s *GraphStore) Trends(ctx context.Context) ([]graph.Trend, error) {
	var rows []models.Trend
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list trends: %w", err)
	}

	trends := make([]graph.Trend, len(rows))
	for i, r := range rows {
		trends[i] = r.ToGraph()
	}
	return trends, nil
}

func (s *GraphStore) Users(ctx context.Context) ([]graph.User, error) {
	var rows []models.User
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return toUsers(rows), nil
}

func (s *GraphStore) TrendByKey(ctx context.Context, key graph.TrendKey) (*graph.Trend, error) {
	var row models.Trend
	err := s.db.WithContext(ctx).
		Where("name = ? AND location = ? AND date = ?", key.Name, key.Location, key.Date).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, graph.MissingEntity("trend", key.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find trend %s: %w", key, err)
	}

	t := row.ToGraph()
	return &t, nil
}

func (s *GraphStore) UserByUsername(ctx context.Context, username string) (*graph.User, error) {
	var row models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, graph.MissingEntity("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}

	u := row.ToGraph()
	return &u, nil
}

func (s *GraphStore) TrendTweets(ctx context.Context, trendID string) ([]graph.Tweet, error) {
	var rows []models.Tweet
	err := s.db.WithContext(ctx).Where("trend_id = ?", trendID).Order("seq").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tweets of trend %s: %w", trendID, err)
	}
	return toTweets(rows), nil
}

func (s *GraphStore) UserTweets(ctx context.Context, userID string) ([]graph.Tweet, error) {
	var rows []models.Tweet
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("seq").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tweets of user %s: %w", userID, err)
	}
	return toTweets(rows), nil
}

func (s *GraphStore) TweetComments(ctx context.Context, tweetID string) ([]graph.Tweet, error) {
	var rows []models.Tweet
	err := s.db.WithContext(ctx).
		Select("tweets.*").
		Joins("JOIN tweet_comments ON tweet_comments.comment_id = tweets.id").
		Where("tweet_comments.parent_id = ?", tweetID).
		Order("tweets.seq").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments of tweet %s: %w", tweetID, err)
	}
	return toTweets(rows), nil
}

func (s *GraphStore) CommentedOn(ctx context.Context, tweetID string) ([]graph.Tweet, error) {
	var rows []models.Tweet
	err := s.db.WithContext(ctx).
		Select("tweets.*").
		Joins("JOIN tweet_comments ON tweet_comments.parent_id = tweets.id").
		Where("tweet_comments.comment_id = ?", tweetID).
		Order("tweets.seq").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get parents of tweet %s: %w", tweetID, err)
	}
	return toTweets(rows), nil
}

func (s *GraphStore) TweetAuthor(ctx context.Context, tweetID string) (*graph.User, error) {
	var row models.User
	err := s.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN tweets ON tweets.user_id = users.id").
		Where("tweets.id = ?", tweetID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, graph.MissingEntity("author of tweet", tweetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author of tweet %s: %w", tweetID, err)
	}

	u := row.ToGraph()
	return &u, nil
}

func (s *GraphStore) TweetTrend(ctx context.Context, tweetID string) (*graph.Trend, error) {
	var row models.Trend
	err := s.db.WithContext(ctx).
		Select("trends.*").
		Joins("JOIN tweets ON tweets.trend_id = trends.id").
		Where("tweets.id = ?", tweetID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, graph.MissingEntity("trend of tweet", tweetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trend of tweet %s: %w", tweetID, err)
	}

	t := row.ToGraph()
	return &t, nil
}

func (s *GraphStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.logger.Debug("Closing database connection")
	return sqlDB.Close()
}

func toTweets(rows []models.Tweet) []graph.Tweet {
	tweets := make([]graph.Tweet, len(rows))
	for i, r := range rows {
		tweets[i] = r.ToGraph()
	}
	return tweets
}

func toUsers(rows []models.User) []graph.User {
	users := make([]graph.User, len(rows))
	for i, r := range rows {
		users[i] = r.ToGraph()
	}
	return users
}
