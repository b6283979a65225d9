package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	applogger "venuelayout/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// QueryLogger routes GORM's query log through the application logger.
type QueryLogger struct {
	log           *applogger.Logger
	slowThreshold time.Duration
	level         logger.LogLevel
}

func NewQueryLogger(log *applogger.Logger, slowThreshold time.Duration, level logger.LogLevel) *QueryLogger {
	return &QueryLogger{log: log, slowThreshold: slowThreshold, level: level}
}

func (q *QueryLogger) LogMode(level logger.LogLevel) logger.Interface {
	next := *q
	next.level = level
	return &next
}

func (q *QueryLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if q.level >= logger.Info {
		q.log.InfoWithContext(ctx, fmt.Sprintf(msg, args...), nil)
	}
}

func (q *QueryLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if q.level >= logger.Warn {
		q.log.Logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (q *QueryLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if q.level >= logger.Error {
		q.log.Logger.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Trace reports failed queries, slow queries at Warn and every query at Info.
// Record-not-found is an expected lookup outcome and is not an error here.
func (q *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && q.level >= logger.Error:
		sql, _ := fc()
		q.log.LogDBQuery(ctx, sql, elapsed, err)
	case q.slowThreshold > 0 && elapsed > q.slowThreshold && q.level >= logger.Warn:
		sql, _ := fc()
		q.log.LogSlowQuery(ctx, sql, elapsed)
	case q.level >= logger.Info:
		sql, _ := fc()
		q.log.LogDBQuery(ctx, sql, elapsed, nil)
	}
}
