package analytics

import (
	"context"
	"fmt"
)

// TrendEngagement holds the mean likes, shares and retweets of a trend's
// tweets, nil when the trend has none.
type TrendEngagement struct {
	Name     string   `json:"name" yaml:"name"`
	Location string   `json:"location" yaml:"location"`
	Date     string   `json:"date" yaml:"date"`
	Likes    *float64 `json:"likes" yaml:"likes"`
	Shares   *float64 `json:"shares" yaml:"shares"`
	Retweets *float64 `json:"retweets" yaml:"retweets"`
}

func (r TrendEngagement) Fields() []Field {
	return append(trendFields(r.Name, r.Location, r.Date),
		Field{Name: "likes", Value: optional(r.Likes)},
		Field{Name: "shares", Value: optional(r.Shares)},
		Field{Name: "retweets", Value: optional(r.Retweets)},
	)
}

// EngagementMetrics averages likes, shares and retweets over each trend's
// direct tweets.
func (a *Analyzer) EngagementMetrics(ctx context.Context) ([]TrendEngagement, error) {
	log := a.logger.WithField("method", "EngagementMetrics")

	trends, err := a.store.Trends(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trends: %w", err)
	}

	result := make([]TrendEngagement, 0, len(trends))
	for _, trend := range trends {
		tweets, err := a.store.TrendTweets(ctx, trend.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tweets of trend %s: %w", trend.ID, err)
		}

		row := TrendEngagement{Name: trend.Name, Location: trend.Location, Date: trend.Date}
		if len(tweets) == 0 {
			logEmptyTrend(log, trend)
			result = append(result, row)
			continue
		}

		var likes, shares, retweets int64
		for _, t := range tweets {
			likes += t.Likes
			shares += t.Shares
			retweets += t.Retweets
		}
		n := float64(len(tweets))
		row.Likes = ptr(float64(likes) / n)
		row.Shares = ptr(float64(shares) / n)
		row.Retweets = ptr(float64(retweets) / n)
		result = append(result, row)
	}

	log.WithField("trends", len(result)).Debug("Computed engagement metrics")
	return result, nil
}
