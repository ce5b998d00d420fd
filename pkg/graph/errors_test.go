package graph_test

import (
	"errors"
	"fmt"

	"github.com/lisanmuaddib/trendgraph/pkg/graph"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GraphError", func() {
	It("matches its code through wrapping", func() {
		err := fmt.Errorf("looking up trend: %w", graph.MissingEntity("trend", "#Halloween@Italy/2023"))

		Expect(graph.IsGraphError(err, graph.ErrCodeMissingEntity)).To(BeTrue())
		Expect(graph.IsGraphError(err, graph.ErrCodeStoreUnavailable)).To(BeFalse())
		Expect(graph.IsGraphError(nil, graph.ErrCodeMissingEntity)).To(BeFalse())
	})

	It("formats code, entity and cause", func() {
		cause := errors.New("connection refused")
		err := graph.StoreUnavailable("neo4j unreachable", cause)

		Expect(err.Error()).To(Equal("[STORE_UNAVAILABLE] neo4j unreachable: connection refused"))
		Expect(errors.Is(err, cause)).To(BeTrue())

		missing := graph.MissingEntity("user", "@nobody")
		Expect(missing.Error()).To(Equal("[MISSING_ENTITY] user not found (@nobody)"))
	})

	It("builds the composite trend key", func() {
		t := graph.Trend{ID: "t1", Name: "#Halloween", Location: "Italy", Date: "2023-11-01"}
		Expect(t.Key()).To(Equal(graph.TrendKey{Name: "#Halloween", Location: "Italy", Date: "2023-11-01"}))
		Expect(t.Key().String()).To(Equal("#Halloween@Italy/2023-11-01"))
	})
})
