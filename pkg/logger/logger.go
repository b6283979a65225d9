package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with the layout service's logging helpers
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stdout at LOG_LEVEL
func New() *Logger {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), gin.Mode() != gin.DebugMode)
}

// NewWithWriter creates a logger writing to w. Text output is used unless
// asJSON is set.
func NewWithWriter(w io.Writer, level string, asJSON bool) *Logger {
	lvl := getLogLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLayout scopes the logger to one layout
func (l *Logger) WithLayout(layoutID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("layout_id", layoutID))}
}

// WithEvent scopes the logger to one event's tier boundaries
func (l *Logger) WithEvent(eventID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("event_id", eventID))}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// fieldArgs flattens fields into slog attributes in key order
func fieldArgs(fields map[string]interface{}, extra int) []interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(keys)+extra)
	for _, k := range keys {
		args = append(args, slog.Any(k, fields[k]))
	}
	return args
}

// HTTP

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Database

// LogDBQuery logs a database query. Successful queries are debug output.
func (l *Logger) LogDBQuery(ctx context.Context, query string, duration time.Duration, err error) {
	if err != nil {
		l.Logger.ErrorContext(ctx,
			"Database Query Error",
			slog.String("query", query),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Logger.DebugContext(ctx,
		"Database Query",
		slog.String("query", query),
		slog.Duration("duration", duration),
	)
}

// LogSlowQuery logs slow database queries
func (l *Logger) LogSlowQuery(ctx context.Context, query string, duration time.Duration) {
	l.Logger.WarnContext(ctx,
		"Slow Database Query",
		slog.String("query", query),
		slog.Duration("duration", duration),
	)
}

// Layouts

// LogLayoutSaved logs when a layout is persisted
func (l *Logger) LogLayoutSaved(ctx context.Context, layoutID string, elements, capacity int) {
	l.Logger.InfoContext(ctx,
		"Layout Saved",
		slog.String("layout_id", layoutID),
		slog.Int("elements", elements),
		slog.Int("total_capacity", capacity),
	)
}

// LogLayoutPublished logs when a layout becomes active
func (l *Logger) LogLayoutPublished(ctx context.Context, layoutID string, capacity int) {
	l.Logger.InfoContext(ctx,
		"Layout Published",
		slog.String("layout_id", layoutID),
		slog.Int("total_capacity", capacity),
	)
}

// LogLayoutDeleted logs a layout removal
func (l *Logger) LogLayoutDeleted(ctx context.Context, layoutID string) {
	l.Logger.InfoContext(ctx, "Layout Deleted", slog.String("layout_id", layoutID))
}

// LogAutosaveFailed logs a failed autosave; the edits stay in memory
func (l *Logger) LogAutosaveFailed(ctx context.Context, layoutID string, err error) {
	l.Logger.WarnContext(ctx,
		"Autosave Failed",
		slog.String("layout_id", layoutID),
		slog.String("error", err.Error()),
	)
}

// LogTemplatesLoaded logs a (re)load of the template catalog
func (l *Logger) LogTemplatesLoaded(ctx context.Context, source string, count int) {
	l.Logger.InfoContext(ctx,
		"Templates Loaded",
		slog.String("source", source),
		slog.Int("count", count),
	)
}

// Tiers

// LogBoundariesUpdated logs a change of an event's tier boundaries
func (l *Logger) LogBoundariesUpdated(ctx context.Context, eventID string, premium, gold, silver, bronze float64, curved bool) {
	l.Logger.InfoContext(ctx,
		"Tier Boundaries Updated",
		slog.String("event_id", eventID),
		slog.Float64("premium_y", premium),
		slog.Float64("gold_y", gold),
		slog.Float64("silver_y", silver),
		slog.Float64("bronze_y", bronze),
		slog.Bool("curved", curved),
	)
}

// Security

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, userID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("user_id", userID),
		slog.String("method", method),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Logger.InfoContext(ctx, msg, fieldArgs(fields, 0)...)
}

// ErrorWithContext logs an error message with context. A nil err is omitted.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := fieldArgs(fields, 1)
	if err != nil {
		args = append([]interface{}{slog.String("error", err.Error())}, args...)
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// DebugWithContext logs a debug message with context
func (l *Logger) DebugWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	l.Logger.DebugContext(ctx, msg, fieldArgs(fields, 0)...)
}

var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
