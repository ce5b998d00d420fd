package analytics

import "github.com/lisanmuaddib/trendgraph/pkg/graph"

// Sentiment bucket thresholds. Both bounds are exclusive: a score of exactly
// +0.2 or -0.2 is neutral.
const (
	PositiveThreshold = 0.2
	NegativeThreshold = -0.2
)

// Bucket is the three-way classification of a sentiment score.
type Bucket string

const (
	Positive Bucket = "positive"
	Negative Bucket = "negative"
	Neutral  Bucket = "neutral"
)

// Classify buckets a sentiment score.
func Classify(sentiment float64) Bucket {
	switch {
	case sentiment > PositiveThreshold:
		return Positive
	case sentiment < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// bucketCounts tallies tweets per bucket.
type bucketCounts struct {
	positive int
	negative int
	neutral  int
}

func countBuckets(tweets []graph.Tweet) bucketCounts {
	var c bucketCounts
	for _, t := range tweets {
		switch Classify(t.Sentiment) {
		case Positive:
			c.positive++
		case Negative:
			c.negative++
		default:
			c.neutral++
		}
	}
	return c
}

func (c bucketCounts) total() int {
	return c.positive + c.negative + c.neutral
}

// percentages returns real-valued shares in [0,100], or ok=false when there
// is nothing to divide by.
func (c bucketCounts) percentages() (positive, negative, neutral float64, ok bool) {
	n := c.total()
	if n == 0 {
		return 0, 0, 0, false
	}
	total := float64(n)
	return float64(c.positive) / total * 100,
		float64(c.negative) / total * 100,
		float64(c.neutral) / total * 100,
		true
}

// truncatedPercentages is percentages with each share truncated toward zero.
func (c bucketCounts) truncatedPercentages() (positive, negative, neutral int64, ok bool) {
	p, n, u, ok := c.percentages()
	if !ok {
		return 0, 0, 0, false
	}
	return int64(p), int64(n), int64(u), true
}

func meanSentiment(tweets []graph.Tweet) (float64, bool) {
	if len(tweets) == 0 {
		return 0, false
	}
	var sum float64
	for _, t := range tweets {
		sum += t.Sentiment
	}
	return sum / float64(len(tweets)), true
}
