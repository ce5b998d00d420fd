package db_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/lisanmuaddib/trendgraph/pkg/db"
	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/lisanmuaddib/trendgraph/pkg/graph/memgraph"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

func integrationSnapshot() memgraph.Snapshot {
	return memgraph.Snapshot{
		Trends: []graph.Trend{
			{ID: "it-t1", URL: "https://x.com/it-t1", Name: "#ItTrend", Location: "Italy", Date: "2023-11-01"},
		},
		Users: []graph.User{
			{ID: "it-u1", Username: "@it_alice", Followers: 100, Following: 1},
			{ID: "it-u2", Username: "@it_bob", Followers: 50, Following: 2},
		},
		Tweets: []memgraph.SnapshotTweet{
			{
				Tweet:   graph.Tweet{ID: "it-w1", URL: "https://x.com/it-w1", Username: "@it_alice", Text: "root", Sentiment: 0.5, Likes: 10},
				UserID:  "it-u1",
				TrendID: "it-t1",
			},
			{
				Tweet:     graph.Tweet{ID: "it-w2", URL: "https://x.com/it-w2", Username: "@it_bob", Text: "reply", Sentiment: -0.5},
				UserID:    "it-u2",
				TrendID:   "it-t1",
				CommentOf: []string{"it-w1"},
			},
		},
	}
}

var _ = Describe("GraphStore", func() {
	var (
		store  *db.GraphStore
		logger *logrus.Logger
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		// Skip if not running integration tests
		if os.Getenv("INTEGRATION_TESTS") != "true" {
			Skip("Skipping integration test")
		}

		logger = logrus.New()
		logger.SetLevel(logrus.DebugLevel)
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)

		cfg := db.NewConfigFromEnv()
		if cfg.MigrationsDir == "" {
			cfg.MigrationsDir = filepath.Join("..", "..", "migrations")
		}

		gormDB, err := db.SetupDatabase(ctx, logger, cfg, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.ImportSnapshot(ctx, logger, gormDB, integrationSnapshot())).To(Succeed())

		store = db.NewGraphStore(logger, gormDB)
	})

	AfterEach(func() {
		if store != nil {
			Expect(store.Close(ctx)).To(Succeed())
		}
		if cancel != nil {
			cancel()
		}
	})

	It("looks up nodes by their unique fields", func() {
		trend, err := store.TrendByKey(ctx, graph.TrendKey{Name: "#ItTrend", Location: "Italy", Date: "2023-11-01"})
		Expect(err).NotTo(HaveOccurred())
		Expect(trend.ID).To(Equal("it-t1"))

		user, err := store.UserByUsername(ctx, "@it_bob")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.Followers).To(Equal(int64(50)))
	})

	It("reports missing entities", func() {
		_, err := store.UserByUsername(ctx, "@it_nobody")
		Expect(graph.IsGraphError(err, graph.ErrCodeMissingEntity)).To(BeTrue())
	})

	It("follows relationships in both directions", func() {
		tweets, err := store.TrendTweets(ctx, "it-t1")
		Expect(err).NotTo(HaveOccurred())
		Expect(tweets).To(HaveLen(2))

		comments, err := store.TweetComments(ctx, "it-w1")
		Expect(err).NotTo(HaveOccurred())
		Expect(comments).To(HaveLen(1))
		Expect(comments[0].ID).To(Equal("it-w2"))

		parents, err := store.CommentedOn(ctx, "it-w2")
		Expect(err).NotTo(HaveOccurred())
		Expect(parents).To(HaveLen(1))
		Expect(parents[0].ID).To(Equal("it-w1"))

		author, err := store.TweetAuthor(ctx, "it-w2")
		Expect(err).NotTo(HaveOccurred())
		Expect(author.Username).To(Equal("@it_bob"))

		trend, err := store.TweetTrend(ctx, "it-w2")
		Expect(err).NotTo(HaveOccurred())
		Expect(trend.Name).To(Equal("#ItTrend"))
	})

	It("imports the same snapshot twice without duplicating rows", func() {
		gormDB, err := db.SetupDatabase(ctx, logger, db.NewConfigFromEnv(), false)
		Expect(err).NotTo(HaveOccurred())
		defer db.NewGraphStore(logger, gormDB).Close(ctx)
		Expect(db.ImportSnapshot(ctx, logger, gormDB, integrationSnapshot())).To(Succeed())

		tweets, err := store.UserTweets(ctx, "it-u1")
		Expect(err).NotTo(HaveOccurred())
		Expect(tweets).To(HaveLen(1))
	})
})
