package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// DefaultSubject prefixes every published report.
const DefaultSubject = "trendgraph.reports"

// Envelope is the message body published for one operation.
type Envelope struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Section     Section   `json:"section"`
}

// MessagePublisher is the subset of *nats.Conn the Publisher needs.
type MessagePublisher interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
}

// Publisher sends rendered results to <subject>.<operation slug>.
type Publisher struct {
	conn    MessagePublisher
	subject string
	logger  *logrus.Logger
	now     func() time.Time
}

func NewPublisher(conn MessagePublisher, subject string, logger *logrus.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
		now:     time.Now,
	}
}

// Subject is the subject a section is published on.
func (p *Publisher) Subject(s Section) string {
	return p.subject + "." + s.Slug
}

// Publish sends one envelope per section and flushes the connection. All
// envelopes of a call share a run id.
func (p *Publisher) Publish(ctx context.Context, sections []Section) (string, error) {
	runID := uuid.NewString()
	log := p.logger.WithFields(logrus.Fields{
		"method": "Publish",
		"run_id": runID,
	})

	for _, s := range sections {
		env := Envelope{
			ID:          uuid.NewString(),
			RunID:       runID,
			GeneratedAt: p.now().UTC(),
			Section:     s,
		}
		data, err := json.Marshal(env)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", s.Operation, err)
		}

		subject := p.Subject(s)
		if err := p.conn.Publish(subject, data); err != nil {
			return "", fmt.Errorf("failed to publish to %s: %w", subject, err)
		}
		log.WithFields(logrus.Fields{
			"operation": s.Operation,
			"subject":   subject,
			"records":   len(s.Records),
		}).Debug("Published report section")
	}

	if err := p.conn.FlushWithContext(ctx); err != nil {
		return "", fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	log.WithField("sections", len(sections)).Info("Report published")
	return runID, nil
}

// Connect opens a NATS connection that reports its lifecycle through logger.
func Connect(url string, logger *logrus.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("trendgraph"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2 * time.Second),
		nats.Timeout(5 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Debug("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}
	return nc, nil
}
