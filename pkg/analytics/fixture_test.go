package analytics_test

import (
	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/lisanmuaddib/trendgraph/pkg/graph/memgraph"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

const fixtureDate = "2023-11-01T16:29:31.292726"

// graphFixture builds small graphs for the operation tests.
type graphFixture struct {
	store *memgraph.Store
}

func newFixture() *graphFixture {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return &graphFixture{store: memgraph.New(logger)}
}

func (f *graphFixture) analyzer() *analytics.Analyzer {
	a, err := analytics.New(analytics.Config{Store: f.store})
	Expect(err).NotTo(HaveOccurred())
	return a
}

func (f *graphFixture) trend(id, name, location string) *graph.Trend {
	t := graph.Trend{ID: id, URL: "https://x.com/trend/" + id, Name: name, Location: location, Date: fixtureDate}
	Expect(f.store.AddTrend(t)).To(Succeed())
	return &t
}

func (f *graphFixture) user(id string, followers int64) *graph.User {
	u := graph.User{ID: id, Username: "@" + id, Followers: followers}
	Expect(f.store.AddUser(u)).To(Succeed())
	return &u
}

func (f *graphFixture) tweet(id string, sentiment float64, userID, trendID string) graph.Tweet {
	t := graph.Tweet{
		ID:        id,
		URL:       "https://x.com/status/" + id,
		Username:  "@" + userID,
		Text:      "text of " + id,
		Sentiment: sentiment,
	}
	return f.add(t, userID, trendID)
}

func (f *graphFixture) add(t graph.Tweet, userID, trendID string) graph.Tweet {
	Expect(f.store.AddTweet(t, userID, trendID)).To(Succeed())
	return t
}

func (f *graphFixture) comment(commentID, parentID string) {
	Expect(f.store.AddComment(commentID, parentID)).To(Succeed())
}
