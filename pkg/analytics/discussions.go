package analytics

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
)

// Discussion flags whether a tweet's replies disagree with it.
type Discussion struct {
	Tweet      string `json:"tweet" yaml:"tweet"`
	Discussion bool   `json:"discussion" yaml:"discussion"`
}

func (r Discussion) Fields() []Field {
	return []Field{
		{Name: "tweet", Value: r.Tweet},
		{Name: "discussion", Value: r.Discussion},
	}
}

// DetectDiscussions reports, for every tweet of the trend, whether at least
// one direct comment falls in a different sentiment bucket than the tweet.
// Scanning a tweet's comments stops at the first disagreement.
func (a *Analyzer) DetectDiscussions(ctx context.Context, trend *graph.Trend) ([]Discussion, error) {
	if trend == nil {
		return nil, graph.MissingEntity("trend", "")
	}

	log := a.logger.WithFields(logrus.Fields{
		"method": "DetectDiscussions",
		"trend":  trend.Key().String(),
	})

	tweets, err := a.store.TrendTweets(ctx, trend.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweets of trend %s: %w", trend.ID, err)
	}

	result := make([]Discussion, 0, len(tweets))
	discussions := 0
	for _, tweet := range tweets {
		comments, err := a.store.TweetComments(ctx, tweet.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comments of tweet %s: %w", tweet.ID, err)
		}

		found := hasDisagreement(Classify(tweet.Sentiment), comments)
		if found {
			discussions++
		}
		result = append(result, Discussion{Tweet: tweet.Text, Discussion: found})
	}

	log.WithFields(logrus.Fields{
		"tweets":      len(result),
		"discussions": discussions,
	}).Debug("Detected discussions")
	return result, nil
}

func hasDisagreement(bucket Bucket, comments []graph.Tweet) bool {
	for _, c := range comments {
		if Classify(c.Sentiment) != bucket {
			return true
		}
	}
	return false
}
