package analytics

import (
	"context"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/sirupsen/logrus"
)

// TrendDiffusion approximates how many people a trend reached.
type TrendDiffusion struct {
	Name      string `json:"name" yaml:"name"`
	Location  string `json:"location" yaml:"location"`
	Date      string `json:"date" yaml:"date"`
	Followers int64  `json:"followers" yaml:"followers"`
}

func (r TrendDiffusion) Fields() []Field {
	return append(trendFields(r.Name, r.Location, r.Date),
		Field{Name: "followers", Value: r.Followers},
	)
}

// TrendDiffusionDegree sums the followers of every distinct author among the
// trend's tweets and the direct comments on those tweets. Comments of
// comments are not followed. Each author counts once.
func (a *Analyzer) TrendDiffusionDegree(ctx context.Context, trend *graph.Trend) ([]TrendDiffusion, error) {
	if trend == nil {
		return nil, graph.MissingEntity("trend", "")
	}

	log := a.logger.WithFields(logrus.Fields{
		"method": "TrendDiffusionDegree",
		"trend":  trend.Key().String(),
	})

	tweets, err := a.store.TrendTweets(ctx, trend.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweets of trend %s: %w", trend.ID, err)
	}

	all := make([]graph.Tweet, 0, len(tweets))
	for _, tweet := range tweets {
		all = append(all, tweet)

		comments, err := a.store.TweetComments(ctx, tweet.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comments of tweet %s: %w", tweet.ID, err)
		}
		all = append(all, comments...)
	}

	followers := make(map[string]int64)
	for _, tweet := range all {
		author, err := a.store.TweetAuthor(ctx, tweet.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get author of tweet %s: %w", tweet.ID, err)
		}
		followers[author.ID] = author.Followers
	}

	var reach int64
	for _, n := range followers {
		reach += n
	}

	log.WithFields(logrus.Fields{
		"tweets":    len(all),
		"authors":   len(followers),
		"followers": reach,
	}).Debug("Computed trend diffusion degree")

	return []TrendDiffusion{{
		Name:      trend.Name,
		Location:  trend.Location,
		Date:      trend.Date,
		Followers: reach,
	}}, nil
}
