package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with domain-specific helpers
type Logger struct {
	*slog.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// GetDefault returns the process-wide logger
func GetDefault() *Logger {
	once.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithError adds an error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{Logger: l.Logger.With(args...)}
}

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
	)
}

// LogBidSubmitted logs a new bid against a tour request
func (l *Logger) LogBidSubmitted(ctx context.Context, bidID, tourRequestID, venueID string) {
	l.Logger.InfoContext(ctx,
		"Bid Submitted",
		slog.String("bid_id", bidID),
		slog.String("tour_request_id", tourRequestID),
		slog.String("venue_id", venueID),
	)
}

// LogBidAccepted logs a bid acceptance and its cascade size
func (l *Logger) LogBidAccepted(ctx context.Context, bidID, tourRequestID string, cancelledSiblings int) {
	l.Logger.InfoContext(ctx,
		"Bid Accepted",
		slog.String("bid_id", bidID),
		slog.String("tour_request_id", tourRequestID),
		slog.Int("cancelled_siblings", cancelledSiblings),
	)
}

// LogShowConfirmed logs a confirmed show
func (l *Logger) LogShowConfirmed(ctx context.Context, showID, artistID, venueID string) {
	l.Logger.InfoContext(ctx,
		"Show Confirmed",
		slog.String("show_id", showID),
		slog.String("artist_id", artistID),
		slog.String("venue_id", venueID),
	)
}

// LogHoldsExpired logs a sweep of expired holds
func (l *Logger) LogHoldsExpired(ctx context.Context, count int) {
	if count == 0 {
		return
	}
	l.Logger.InfoContext(ctx, "Expired Holds Swept", slog.Int("count", count))
}
