package report_test

import (
	"bytes"
	"strings"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
	"github.com/lisanmuaddib/trendgraph/pkg/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

func f64(v float64) *float64 { return &v }

func sentimentSection() report.Section {
	return report.Section{
		Operation: "AVERAGE SENTIMENT PER TREND",
		Slug:      "avg-sentiment",
		Records: []analytics.Record{
			analytics.TrendSentiment{Name: "#Halloween", Location: "Italy", Date: "2023-11-01", Sentiment: f64(0.25)},
			analytics.TrendSentiment{Name: "#Empty", Location: "Spain", Date: "2023-11-02"},
		},
	}
}

var _ = Describe("ParseFormat", func() {
	DescribeTable("accepted formats",
		func(in string, want report.Format) {
			got, err := report.ParseFormat(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("json", "json", report.FormatJSON),
		Entry("upper-case yaml", "YAML", report.FormatYAML),
		Entry("table", "table", report.FormatTable),
	)

	It("rejects anything else", func() {
		_, err := report.ParseFormat("xml")
		Expect(err).To(MatchError(ContainSubstring(`unknown output format "xml"`)))
	})
})

var _ = Describe("Render", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	Context("as JSON", func() {
		It("prints the operation name and an indented array in field order", func() {
			Expect(report.Render(buf, report.FormatJSON, []report.Section{sentimentSection()})).To(Succeed())
			Expect(buf.String()).To(Equal(`AVERAGE SENTIMENT PER TREND
[
    {
        "name": "#Halloween",
        "location": "Italy",
        "date": "2023-11-01",
        "sentiment": 0.25
    },
    {
        "name": "#Empty",
        "location": "Spain",
        "date": "2023-11-02",
        "sentiment": null
    }
]
`))
		})

		It("prints an empty array for an operation without results", func() {
			section := report.Section{Operation: "DISCUSSIONS' DETECTION", Records: []analytics.Record{}}
			Expect(report.Render(buf, report.FormatJSON, []report.Section{section})).To(Succeed())
			Expect(buf.String()).To(Equal("DISCUSSIONS' DETECTION\n[]\n"))
		})
	})

	Context("as YAML", func() {
		It("emits mappings in field order with null for missing values", func() {
			Expect(report.Render(buf, report.FormatYAML, []report.Section{sentimentSection()})).To(Succeed())

			var doc yaml.Node
			Expect(yaml.Unmarshal(buf.Bytes(), &doc)).To(Succeed())

			sections := doc.Content[0]
			Expect(sections.Kind).To(Equal(yaml.SequenceNode))
			Expect(sections.Content).To(HaveLen(1))

			section := sections.Content[0]
			Expect(section.Content[0].Value).To(Equal("operation"))
			Expect(section.Content[1].Value).To(Equal("AVERAGE SENTIMENT PER TREND"))

			records := section.Content[3]
			Expect(records.Content).To(HaveLen(2))

			var keys []string
			first := records.Content[0]
			for i := 0; i < len(first.Content); i += 2 {
				keys = append(keys, first.Content[i].Value)
			}
			Expect(keys).To(Equal([]string{"name", "location", "date", "sentiment"}))
			Expect(first.Content[1].Value).To(Equal("#Halloween"))
			Expect(first.Content[7].Value).To(Equal("0.25"))

			second := records.Content[1]
			Expect(second.Content[7].Tag).To(Equal("!!null"))
		})
	})

	Context("as a table", func() {
		It("renders one table per operation with a dash for missing values", func() {
			Expect(report.Render(buf, report.FormatTable, []report.Section{sentimentSection()})).To(Succeed())

			out := buf.String()
			Expect(out).To(HavePrefix("AVERAGE SENTIMENT PER TREND\n"))
			Expect(strings.ToUpper(out)).To(ContainSubstring("SENTIMENT"))
			Expect(out).To(ContainSubstring("#Halloween"))
			Expect(out).To(ContainSubstring("0.25"))

			emptyRow := ""
			for _, line := range strings.Split(out, "\n") {
				if strings.Contains(line, "#Empty") {
					emptyRow = line
				}
			}
			Expect(emptyRow).To(MatchRegexp(`\s-\s`))
		})

		It("notes operations without results", func() {
			section := report.Section{Operation: "USER COHERENCE SCORE"}
			Expect(report.Render(buf, report.FormatTable, []report.Section{section})).To(Succeed())
			Expect(buf.String()).To(Equal("USER COHERENCE SCORE\n(no results)\n"))
		})
	})
})

var _ = Describe("FromResults", func() {
	It("keeps operation order and identity", func() {
		ops := analytics.Catalog()[:2]
		results := []analytics.Result{
			{Operation: ops[0], Records: []analytics.Record{}},
			{Operation: ops[1], Records: []analytics.Record{}},
		}

		sections := report.FromResults(results)
		Expect(sections).To(HaveLen(2))
		Expect(sections[0].Operation).To(Equal("AVERAGE SENTIMENT PER TREND"))
		Expect(sections[0].Slug).To(Equal("avg-sentiment"))
		Expect(sections[1].Slug).To(Equal("sentiment-pct"))
	})
})
