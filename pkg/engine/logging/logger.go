// Package logging provides the operational logger used outside the game log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger tags every record with the component that produced it
type Logger struct {
	logger *slog.Logger
}

var (
	output io.Writer = os.Stderr
	format           = "text"
	level            = slog.LevelInfo
)

// Setup configures where and how loggers created afterwards write.
// A nil writer means stderr. format is "json" or "text"; level is one of
// debug, info, warn, error.
func Setup(w io.Writer, logFormat, logLevel string) {
	if w == nil {
		w = os.Stderr
	}
	output = w
	if logFormat != "" {
		format = strings.ToLower(logFormat)
	}
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
}

// NewLogger returns a logger for the named component
func NewLogger(component string) Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(output, opts)
	} else {
		h = slog.NewTextHandler(output, opts)
	}
	return Logger{logger: slog.New(h).With("component", component)}
}

// Discard returns a logger that drops everything; handy in tests
func Discard() Logger {
	return Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a logger carrying extra key/value attributes
func (l Logger) With(args ...any) Logger {
	if l.logger == nil {
		return l
	}
	return Logger{logger: l.logger.With(args...)}
}

func (l Logger) Debugf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(fmt.Sprintf(format, args...))
	}
}

func (l Logger) Infof(format string, args ...any) {
	if l.logger != nil {
		l.logger.Info(fmt.Sprintf(format, args...))
	}
}

func (l Logger) Warnf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(fmt.Sprintf(format, args...))
	}
}

func (l Logger) Errorf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Error(fmt.Sprintf(format, args...))
	}
}
