package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/lisanmuaddib/trendgraph/pkg/logging"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("NewLogger", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = &bytes.Buffer{}
	})

	It("writes JSON entries", func() {
		log := logging.NewLogger("debug", logging.FormatJSON, out)
		log.WithField("operation", "coherence").Debug("done")

		var entry map[string]interface{}
		Expect(json.Unmarshal(out.Bytes(), &entry)).To(Succeed())
		Expect(entry).To(HaveKeyWithValue("operation", "coherence"))
		Expect(entry).To(HaveKeyWithValue("msg", "done"))
		Expect(entry).To(HaveKeyWithValue("level", "debug"))
	})

	It("falls back to info on an invalid level", func() {
		log := logging.NewLogger("loud", logging.FormatJSON, out)
		Expect(log.GetLevel()).To(Equal(logrus.InfoLevel))
		Expect(out.String()).To(ContainSubstring("Invalid log level specified"))
	})

	It("orders priority fields first in colored output", func() {
		log := logging.NewLogger("info", logging.FormatColor, out)
		log.WithFields(logrus.Fields{
			"zeta":      1,
			"username":  "@a",
			"operation": "user-sentiment",
		}).WithError(errors.New("boom")).Info("ran")

		line := out.String()
		Expect(line).To(HaveSuffix("\n"))
		Expect(line).To(ContainSubstring("INFO"))
		Expect(line).NotTo(ContainSubstring("\x1b["))

		op := strings.Index(line, "operation=")
		user := strings.Index(line, "username=")
		errIdx := strings.Index(line, "error=")
		zeta := strings.Index(line, "zeta=")
		Expect(op).To(BeNumerically("<", user))
		Expect(user).To(BeNumerically("<", errIdx))
		Expect(errIdx).To(BeNumerically("<", zeta))
		Expect(line).To(ContainSubstring(`error="boom"`))
	})
})
