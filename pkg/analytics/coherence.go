package analytics

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
)

// DegenerateScore is assigned to every user when all raw coherence values are
// equal and min-max scaling has no range to work with.
const DegenerateScore = 50.0

// UserCoherence is a user's coherence rescaled to [0,100] across all users.
type UserCoherence struct {
	Username string  `json:"username" yaml:"username"`
	Score    float64 `json:"score" yaml:"score"`
}

func (r UserCoherence) Fields() []Field {
	return []Field{
		{Name: "username", Value: r.Username},
		{Name: "score", Value: r.Score},
	}
}

// UserCoherenceScores groups each user's tweets by trend name, averages the
// sentiment inside each group, averages those group means into a raw score,
// and min-max rescales raw scores across users to [0,100]. Users without
// tweets take no part in the result or the scaling.
func (a *Analyzer) UserCoherenceScores(ctx context.Context) ([]UserCoherence, error) {
	log := a.logger.WithField("method", "UserCoherenceScores")

	users, err := a.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]UserCoherence, 0, len(users))
	for _, user := range users {
		tweets, err := a.store.UserTweets(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tweets of user %s: %w", user.Username, err)
		}
		if len(tweets) == 0 {
			continue
		}

		raw, err := a.rawCoherence(ctx, tweets)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", user.Username, err)
		}
		result = append(result, UserCoherence{Username: user.Username, Score: raw})
	}

	if err := normalizeScores(result); err != nil {
		log.WithFields(logrus.Fields{
			"users": len(result),
			"score": DegenerateScore,
		}).WithError(err).Debug("All users share one raw score")
	}

	log.WithField("users", len(result)).Debug("Computed user coherence scores")
	return result, nil
}

// rawCoherence is the mean, over the trend names the tweets belong to, of
// the mean sentiment within each name.
func (a *Analyzer) rawCoherence(ctx context.Context, tweets []graph.Tweet) (float64, error) {
	byTrend := make(map[string][]graph.Tweet)
	var names []string
	for _, tweet := range tweets {
		trend, err := a.store.TweetTrend(ctx, tweet.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to get trend of tweet %s: %w", tweet.ID, err)
		}
		if _, seen := byTrend[trend.Name]; !seen {
			names = append(names, trend.Name)
		}
		byTrend[trend.Name] = append(byTrend[trend.Name], tweet)
	}

	// first-seen order keeps the float sum reproducible
	var sum float64
	for _, name := range names {
		avg, _ := meanSentiment(byTrend[name])
		sum += avg
	}
	return sum / float64(len(names)), nil
}

// normalizeScores rescales Score in place to [0,100]. When min == max every
// score becomes DegenerateScore and a DEGENERATE_NORMALIZATION error is
// returned for the caller to log.
func normalizeScores(scores []UserCoherence) error {
	if len(scores) == 0 {
		return nil
	}

	lo, hi := scores[0].Score, scores[0].Score
	for _, s := range scores[1:] {
		lo = min(lo, s.Score)
		hi = max(hi, s.Score)
	}

	if hi == lo {
		for i := range scores {
			scores[i].Score = DegenerateScore
		}
		return graph.NewGraphError(graph.ErrCodeDegenerateNormalization,
			fmt.Sprintf("min and max coherence are both %g", lo), nil, "")
	}

	for i := range scores {
		scores[i].Score = (scores[i].Score - lo) / (hi - lo) * 100
	}
	return nil
}
