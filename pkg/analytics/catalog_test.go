package analytics_test

import (
	"context"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	var (
		f        *graphFixture
		ctx      context.Context
		analyzer *analytics.Analyzer
		args     analytics.Args
	)

	BeforeEach(func() {
		f = newFixture()
		ctx = context.Background()

		t := f.trend("t1", "#Halloween", "Italy")
		f.trend("t2", "#Empty", "Spain")
		other := f.trend("t3", "#Other", "Italy")
		u := f.user("Ex_puppypaws", 100)
		f.user("b", 50)
		f.tweet("w1", 0.5, "Ex_puppypaws", t.ID)
		f.tweet("w2", -0.4, "b", t.ID)
		f.tweet("w3", 0.1, "b", other.ID)
		f.comment("w3", "w1")

		analyzer = f.analyzer()
		args = analytics.Args{Trend: t, User: u}
	})

	It("lists the seven operations in canonical order", func() {
		var names []string
		for _, op := range analytics.Catalog() {
			names = append(names, op.Name)
		}
		Expect(names).To(Equal([]string{
			"AVERAGE SENTIMENT PER TREND",
			"SENTIMENT PERCENTAGES",
			"TREND DIFFUSION DEGREE",
			"USER COHERENCE SCORE",
			"USER'S SENTIMENT PERCENTAGES",
			"ENGAGEMENT METRICS COMPUTATION",
			"DISCUSSIONS' DETECTION",
		}))
	})

	Context("when selecting operations", func() {
		It("keeps catalogue order regardless of request order", func() {
			ops, err := analytics.Select("discussions", "AVG-SENTIMENT")
			Expect(err).NotTo(HaveOccurred())
			Expect(ops).To(HaveLen(2))
			Expect(ops[0].Slug).To(Equal("avg-sentiment"))
			Expect(ops[1].Slug).To(Equal("discussions"))
		})

		It("rejects unknown slugs", func() {
			_, err := analytics.Select("coherence", "nope", "also-nope")
			Expect(err).To(MatchError("unknown operation(s): also-nope, nope"))
		})

		It("reports the entity arguments needed", func() {
			ops, err := analytics.Select("diffusion", "engagement")
			Expect(err).NotTo(HaveOccurred())
			trend, user := analytics.Needs(ops)
			Expect(trend).To(BeTrue())
			Expect(user).To(BeFalse())
		})
	})

	Context("when executing", func() {
		It("rejects operations missing their entity argument", func() {
			for _, op := range analytics.Catalog() {
				_, err := op.Execute(ctx, analyzer, analytics.Args{})
				if op.Requires == analytics.RequiresNone {
					Expect(err).NotTo(HaveOccurred(), op.Name)
				} else {
					Expect(graph.IsGraphError(err, graph.ErrCodeMissingEntity)).To(BeTrue(), op.Name)
				}
			}
		})

		It("yields identical results when invoked twice", func() {
			for _, op := range analytics.Catalog() {
				first, err := op.Execute(ctx, analyzer, args)
				Expect(err).NotTo(HaveOccurred())
				second, err := op.Execute(ctx, analyzer, args)
				Expect(err).NotTo(HaveOccurred())
				Expect(second).To(Equal(first), op.Name)
			}
		})

		It("runs a batch concurrently with the same results as sequential runs", func() {
			ops := analytics.Catalog()
			results, err := analyzer.RunAll(ctx, ops, args, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(len(ops)))

			for i, res := range results {
				Expect(res.Operation.Slug).To(Equal(ops[i].Slug))
				sequential, err := ops[i].Execute(ctx, analyzer, args)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Records).To(Equal(sequential))
			}
		})

		It("fails the batch when one operation fails", func() {
			_, err := analyzer.RunAll(ctx, analytics.Catalog(), analytics.Args{}, 0)
			Expect(graph.IsGraphError(err, graph.ErrCodeMissingEntity)).To(BeTrue())
		})
	})

	Context("when flattening records", func() {
		It("exposes fields in declared order", func() {
			ops, err := analytics.Select("engagement")
			Expect(err).NotTo(HaveOccurred())
			records, err := ops[0].Execute(ctx, analyzer, args)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))

			var names []string
			for _, field := range records[0].Fields() {
				names = append(names, field.Name)
			}
			Expect(names).To(Equal([]string{"name", "location", "date", "likes", "shares", "retweets"}))

			empty := analytics.FieldMap(records[1])
			Expect(empty).To(HaveKeyWithValue("name", "#Empty"))
			Expect(empty).To(HaveKeyWithValue("likes", BeNil()))
		})

		It("flattens a diffusion row", func() {
			records, err := analytics.Catalog()[2].Execute(ctx, analyzer, args)
			Expect(err).NotTo(HaveOccurred())
			Expect(analytics.FieldMap(records[0])).To(Equal(map[string]any{
				"name":      "#Halloween",
				"location":  "Italy",
				"date":      fixtureDate,
				"followers": int64(150),
			}))
		})
	})
})
