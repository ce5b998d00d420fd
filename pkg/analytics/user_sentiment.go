package analytics

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
)

// UserSentimentPercentages is the share of a user's tweets in each sentiment
// bucket. Unlike the per-trend breakdown the values are not truncated. They
// are nil when the user has no tweets.
type UserSentimentPercentages struct {
	Username string   `json:"username" yaml:"username"`
	Positive *float64 `json:"positive" yaml:"positive"`
	Negative *float64 `json:"negative" yaml:"negative"`
	Neutral  *float64 `json:"neutral" yaml:"neutral"`
}

func (r UserSentimentPercentages) Fields() []Field {
	return []Field{
		{Name: "username", Value: r.Username},
		{Name: "positive", Value: optional(r.Positive)},
		{Name: "negative", Value: optional(r.Negative)},
		{Name: "neutral", Value: optional(r.Neutral)},
	}
}

// UserSentimentPercentages buckets the tweets the user authored.
func (a *Analyzer) UserSentimentPercentages(ctx context.Context, user *graph.User) ([]UserSentimentPercentages, error) {
	if user == nil {
		return nil, graph.MissingEntity("user", "")
	}

	log := a.logger.WithFields(logrus.Fields{
		"method":   "UserSentimentPercentages",
		"username": user.Username,
	})

	tweets, err := a.store.UserTweets(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweets of user %s: %w", user.Username, err)
	}

	row := UserSentimentPercentages{Username: user.Username}
	if pos, neg, neu, ok := countBuckets(tweets).percentages(); ok {
		row.Positive, row.Negative, row.Neutral = ptr(pos), ptr(neg), ptr(neu)
	} else {
		log.WithField("code", graph.ErrCodeEmptyCollection).Debug("User has no tweets, emitting empty values")
	}

	log.WithField("tweets", len(tweets)).Debug("Computed user sentiment percentages")
	return []UserSentimentPercentages{row}, nil
}
