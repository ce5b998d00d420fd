package analytics

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
)

// TrendSentiment is the mean sentiment of a trend's tweets. Sentiment is nil
// when the trend has no tweets.
type TrendSentiment struct {
	Name      string   `json:"name" yaml:"name"`
	Location  string   `json:"location" yaml:"location"`
	Date      string   `json:"date" yaml:"date"`
	Sentiment *float64 `json:"sentiment" yaml:"sentiment"`
}

func (r TrendSentiment) Fields() []Field {
	return append(trendFields(r.Name, r.Location, r.Date),
		Field{Name: "sentiment", Value: optional(r.Sentiment)},
	)
}

// TrendSentimentPercentages is the share of positive, negative and neutral
// tweets of a trend, each truncated to a whole percent. The three values are
// nil when the trend has no tweets.
type TrendSentimentPercentages struct {
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location" yaml:"location"`
	Date     string `json:"date" yaml:"date"`
	Positive *int64 `json:"positive" yaml:"positive"`
	Negative *int64 `json:"negative" yaml:"negative"`
	Neutral  *int64 `json:"neutral" yaml:"neutral"`
}

func (r TrendSentimentPercentages) Fields() []Field {
	return append(trendFields(r.Name, r.Location, r.Date),
		Field{Name: "positive", Value: optional(r.Positive)},
		Field{Name: "negative", Value: optional(r.Negative)},
		Field{Name: "neutral", Value: optional(r.Neutral)},
	)
}

// AverageSentimentPerTrend computes, for each trend, the mean sentiment of
// the tweets directly related to it.
func (a *Analyzer) AverageSentimentPerTrend(ctx context.Context) ([]TrendSentiment, error) {
	log := a.logger.WithField("method", "AverageSentimentPerTrend")

	trends, err := a.store.Trends(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trends: %w", err)
	}

	result := make([]TrendSentiment, 0, len(trends))
	for _, trend := range trends {
		tweets, err := a.store.TrendTweets(ctx, trend.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tweets of trend %s: %w", trend.ID, err)
		}

		row := TrendSentiment{Name: trend.Name, Location: trend.Location, Date: trend.Date}
		if avg, ok := meanSentiment(tweets); ok {
			row.Sentiment = ptr(avg)
		} else {
			logEmptyTrend(log, trend)
		}
		result = append(result, row)
	}

	log.WithField("trends", len(result)).Debug("Computed average sentiment per trend")
	return result, nil
}

// SentimentPercentages computes, for each trend, the truncated percentage of
// its tweets falling in each sentiment bucket. Because of truncation the
// three values may sum to less than 100.
func (a *Analyzer) SentimentPercentages(ctx context.Context) ([]TrendSentimentPercentages, error) {
	log := a.logger.WithField("method", "SentimentPercentages")

	trends, err := a.store.Trends(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trends: %w", err)
	}

	result := make([]TrendSentimentPercentages, 0, len(trends))
	for _, trend := range trends {
		tweets, err := a.store.TrendTweets(ctx, trend.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tweets of trend %s: %w", trend.ID, err)
		}

		row := TrendSentimentPercentages{Name: trend.Name, Location: trend.Location, Date: trend.Date}
		if pos, neg, neu, ok := countBuckets(tweets).truncatedPercentages(); ok {
			row.Positive, row.Negative, row.Neutral = ptr(pos), ptr(neg), ptr(neu)
		} else {
			logEmptyTrend(log, trend)
		}
		result = append(result, row)
	}

	log.WithField("trends", len(result)).Debug("Computed sentiment percentages per trend")
	return result, nil
}

func logEmptyTrend(log *logrus.Entry, trend graph.Trend) {
	log.WithFields(logrus.Fields{
		"trend": trend.Key().String(),
		"code":  graph.ErrCodeEmptyCollection,
	}).Debug("Trend has no tweets, emitting empty values")
}
