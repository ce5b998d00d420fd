package db_test

import (
	"net/url"
	"os"

	"github.com/lisanmuaddib/trendgraph/pkg/db"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var saved map[string]string

	BeforeEach(func() {
		saved = make(map[string]string)
		for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE"} {
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

	It("falls back to local defaults", func() {
		cfg := db.NewConfigFromEnv()
		Expect(cfg.Host).To(Equal("localhost"))
		Expect(cfg.Port).To(Equal("5432"))
		Expect(cfg.User).To(Equal("postgres"))
		Expect(cfg.Name).To(Equal("trendgraph"))
		Expect(cfg.SSLMode).To(Equal("disable"))
	})

	It("builds the gorm DSN", func() {
		cfg := db.Config{Host: "pg", Port: "6543", User: "u", Password: "p", Name: "graph", SSLMode: "require"}
		Expect(cfg.DSN()).To(Equal("host=pg user=u password=p dbname=graph port=6543 sslmode=require"))
	})

	It("escapes credentials in the migration URL", func() {
		cfg := db.Config{Host: "pg", Port: "5432", User: "u", Password: "p@ss/word", Name: "graph", SSLMode: "disable"}

		parsed, err := url.Parse(cfg.URL())
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Scheme).To(Equal("postgres"))
		Expect(parsed.Host).To(Equal("pg:5432"))
		Expect(parsed.Path).To(Equal("/graph"))
		Expect(parsed.Query().Get("sslmode")).To(Equal("disable"))

		password, ok := parsed.User.Password()
		Expect(ok).To(BeTrue())
		Expect(password).To(Equal("p@ss/word"))
	})
})
