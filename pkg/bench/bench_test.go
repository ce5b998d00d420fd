package bench_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
	"github.com/lisanmuaddib/trendgraph/pkg/bench"
	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	"github.com/lisanmuaddib/trendgraph/pkg/graph/memgraph"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("Means", func() {
	It("averages per operation in first-seen order", func() {
		means := bench.Means([]bench.Sample{
			{Operation: "B", ExecutionTime: 1},
			{Operation: "A", ExecutionTime: 2},
			{Operation: "B", ExecutionTime: 3},
			{Operation: "A", ExecutionTime: 4},
		})
		Expect(means).To(Equal([]bench.Sample{
			{Operation: "B", ExecutionTime: 2},
			{Operation: "A", ExecutionTime: 3},
		}))
	})

	It("returns an empty table for no samples", func() {
		Expect(bench.Means(nil)).To(BeEmpty())
	})
})

var _ = Describe("Runner", func() {
	var (
		analyzer *analytics.Analyzer
		args     analytics.Args
		logger   *logrus.Logger
		ctx      context.Context
	)

	BeforeEach(func() {
		logger = logrus.New()
		logger.SetOutput(GinkgoWriter)
		ctx = context.Background()

		store := memgraph.New(logger)
		trend := graph.Trend{ID: "t1", URL: "https://x.com/t1", Name: "#Halloween", Location: "Italy", Date: "2023-11-01"}
		user := graph.User{ID: "u1", Username: "@alice", Followers: 10}
		Expect(store.AddTrend(trend)).To(Succeed())
		Expect(store.AddUser(user)).To(Succeed())
		Expect(store.AddTweet(graph.Tweet{ID: "w1", URL: "https://x.com/w1", Username: "@alice", Text: "boo", Sentiment: 0.4}, "u1", "t1")).To(Succeed())

		var err error
		analyzer, err = analytics.New(analytics.Config{Store: store, Logger: logger})
		Expect(err).NotTo(HaveOccurred())
		args = analytics.Args{Trend: &trend, User: &user}
	})

	It("requires an analyzer", func() {
		_, err := bench.NewRunner(bench.Config{})
		Expect(err).To(MatchError("bench: analyzer is required"))
	})

	It("times every operation on every iteration", func() {
		var lines []string
		runner, err := bench.NewRunner(bench.Config{
			Analyzer:   analyzer,
			Args:       args,
			Iterations: 3,
			Logger:     logger,
			Progress: func(format string, a ...any) {
				lines = append(lines, format)
			},
		})
		Expect(err).NotTo(HaveOccurred())

		report, err := runner.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		catalog := analytics.Catalog()
		Expect(report.Samples).To(HaveLen(3 * len(catalog)))
		Expect(report.Means).To(HaveLen(len(catalog)))
		for i, op := range catalog {
			Expect(report.Means[i].Operation).To(Equal(op.Name))
			Expect(report.Means[i].ExecutionTime).To(BeNumerically(">=", 0))
		}
		Expect(report.RunID.String()).NotTo(BeEmpty())
		Expect(lines).To(HaveLen(3 + 3*len(catalog)))
	})

	It("aborts when an operation fails", func() {
		runner, err := bench.NewRunner(bench.Config{
			Analyzer:   analyzer,
			Args:       analytics.Args{},
			Iterations: 1,
			Logger:     logger,
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = runner.Run(ctx)
		Expect(err).To(HaveOccurred())
		Expect(graph.IsGraphError(err, graph.ErrCodeMissingEntity)).To(BeTrue())
	})

	It("stops when the context is cancelled", func() {
		runner, err := bench.NewRunner(bench.Config{
			Analyzer:   analyzer,
			Args:       args,
			Iterations: 1,
			Rate:       1,
			Logger:     logger,
		})
		Expect(err).NotTo(HaveOccurred())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = runner.Run(cancelled)
		Expect(err).To(HaveOccurred())
	})

	Context("when writing results", func() {
		var (
			report *bench.Report
			dir    string
		)

		BeforeEach(func() {
			runner, err := bench.NewRunner(bench.Config{
				Analyzer:   analyzer,
				Args:       args,
				Iterations: 2,
				Logger:     logger,
			})
			Expect(err).NotTo(HaveOccurred())
			report, err = runner.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			dir = GinkgoT().TempDir()
		})

		It("writes the mean table as CSV, creating directories", func() {
			path := filepath.Join(dir, "performances", "out.csv")
			Expect(report.WriteCSV(path)).To(Succeed())

			f, err := os.Open(path)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			rows, err := csv.NewReader(f).ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0]).To(Equal([]string{"operation", "executionTime"}))
			Expect(rows).To(HaveLen(1 + len(analytics.Catalog())))
			Expect(rows[1][0]).To(Equal("AVERAGE SENTIMENT PER TREND"))
		})

		It("writes the timing histograms as a textfile", func() {
			path := bench.MetricsPath(filepath.Join(dir, "out.csv"))
			Expect(path).To(HaveSuffix("out.csv.prom"))
			Expect(report.WriteMetrics(path)).To(Succeed())

			content, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			text := string(content)
			Expect(text).To(ContainSubstring("trendgraph_bench_operation_duration_seconds_bucket"))
			Expect(text).To(ContainSubstring(`run_id="` + report.RunID.String() + `"`))
			Expect(strings.Count(text, "trendgraph_bench_operation_calls_total{")).To(Equal(len(analytics.Catalog())))
		})
	})
})
