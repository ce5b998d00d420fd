package db

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogrusLogger implements GORM's logger.Interface using logrus
type GormLogrusLogger struct {
	logger        *logrus.Logger
	slowThreshold time.Duration
}

// NewGormLogrusLogger creates a GORM logger that writes through baseLogger
func NewGormLogrusLogger(baseLogger *logrus.Logger) *GormLogrusLogger {
	return &GormLogrusLogger{
		logger:        baseLogger,
		slowThreshold: 200 * time.Millisecond,
	}
}

// LogMode implements logger.Interface; the level is owned by logrus.
func (l *GormLogrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}

func (l *GormLogrusLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx, "query_info").Debugf(msg, args...)
}

func (l *GormLogrusLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx, "query_warn").Warnf(msg, args...)
}

func (l *GormLogrusLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.entry(ctx, "query_error").Errorf(msg, args...)
}

// Trace implements logger.Interface. A record-not-found is a lookup miss,
// reported by the store itself, and is logged at debug level only.
func (l *GormLogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	log := l.entry(ctx, "query_trace").WithFields(logrus.Fields{
		"elapsed":  elapsed,
		"rows":     rows,
		"sql":      sql,
		"duration": elapsed.String(),
	})

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.WithError(err).Error("database query failed")
	case elapsed > l.slowThreshold:
		log.Warn("slow query detected")
	default:
		log.Debug("database query executed")
	}
}

func (l *GormLogrusLogger) entry(ctx context.Context, kind string) *logrus.Entry {
	return l.logger.WithContext(ctx).WithFields(logrus.Fields{
		"source": "gorm",
		"type":   kind,
	})
}
