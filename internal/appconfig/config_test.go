package appconfig_test

import (
	"os"
	"path/filepath"

	"github.com/lisanmuaddib/trendgraph/internal/appconfig"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var envKeys = []string{
	"GRAPH_BACKEND", "GRAPH_SNAPSHOT", "NEO4J_URI", "NEO4J_USERNAME",
	"BENCH_ITERATIONS", "BENCH_OUTPUT", "BENCH_RATE",
	"NATS_URL", "NATS_SUBJECT", "QUERY_CONCURRENCY", "LOG_LEVEL", "LOG_FORMAT",
}

var _ = Describe("Config", func() {
	var saved map[string]string

	BeforeEach(func() {
		saved = make(map[string]string)
		for _, key := range envKeys {
			saved[key] = os.Getenv(key)
			os.Unsetenv(key)
		}
	})

	AfterEach(func() {
		for key, value := range saved {
			if value == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, value)
			}
		}
	})

	It("uses defaults when nothing is set", func() {
		cfg, err := appconfig.FromEnv()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Backend).To(Equal(appconfig.BackendNeo4j))
		Expect(cfg.Neo4j.URI).To(Equal("bolt://localhost:7687"))
		Expect(cfg.SnapshotPath).To(Equal("data/graph.json"))
		Expect(cfg.Bench.Iterations).To(Equal(10))
		Expect(cfg.Bench.Output).To(Equal("performances/complex_queries_performances_GDB.csv"))
		Expect(cfg.Bench.Rate).To(BeZero())
		Expect(cfg.NATS.Subject).To(Equal("trendgraph.reports"))
		Expect(cfg.QueryConcurrency).To(Equal(4))
	})

	It("reads overrides from the environment", func() {
		os.Setenv("GRAPH_BACKEND", "memory")
		os.Setenv("GRAPH_SNAPSHOT", "/tmp/g.json")
		os.Setenv("BENCH_ITERATIONS", "3")
		os.Setenv("BENCH_RATE", "2.5")

		cfg, err := appconfig.FromEnv()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Backend).To(Equal(appconfig.BackendMemory))
		Expect(cfg.SnapshotPath).To(Equal("/tmp/g.json"))
		Expect(cfg.Bench.Iterations).To(Equal(3))
		Expect(cfg.Bench.Rate).To(Equal(2.5))
	})

	DescribeTable("invalid settings",
		func(key, value, message string) {
			os.Setenv(key, value)
			_, err := appconfig.FromEnv()
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		Entry("unknown backend", "GRAPH_BACKEND", "mongo", `unknown graph backend "mongo"`),
		Entry("non-numeric iterations", "BENCH_ITERATIONS", "ten", "invalid BENCH_ITERATIONS"),
		Entry("zero iterations", "BENCH_ITERATIONS", "0", "bench iterations must be positive"),
		Entry("negative rate", "BENCH_RATE", "-1", "bench rate cannot be negative"),
		Entry("zero concurrency", "QUERY_CONCURRENCY", "0", "query concurrency must be positive"),
	)

	It("applies overrides before validating", func() {
		os.Setenv("GRAPH_BACKEND", "mongo")

		cfg, err := appconfig.FromEnv(appconfig.WithBackend("memory"), appconfig.WithLogging("debug", ""))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Backend).To(Equal(appconfig.BackendMemory))
		Expect(cfg.LogLevel).To(Equal("debug"))
		Expect(cfg.LogFormat).To(Equal("color"))
	})

	It("loads a .env file before reading the environment", func() {
		path := filepath.Join(GinkgoT().TempDir(), "test.env")
		Expect(os.WriteFile(path, []byte("GRAPH_BACKEND=memory\nBENCH_ITERATIONS=7\n"), 0o600)).To(Succeed())

		cfg, err := appconfig.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Backend).To(Equal(appconfig.BackendMemory))
		Expect(cfg.Bench.Iterations).To(Equal(7))
	})

	It("tolerates a missing .env file", func() {
		_, err := appconfig.Load(filepath.Join(GinkgoT().TempDir(), "absent.env"))
		Expect(err).NotTo(HaveOccurred())
	})
})
