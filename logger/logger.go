package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// knownFrames skips runtime.Callers, SwitchbackLogger.log, and the exported method calling it.
const knownFrames = 3

const logContextKey = "log_context"

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

var (
	_ SkipLogger = new(SwitchbackLogger)
	_ SkipLogger = new(SentryLogger)
)

// SwitchbackLogger implements Logger using [*log/slog.Logger].
type SwitchbackLogger struct {
	skip int
	l    *slog.Logger
}

// New constructs a SwitchbackLogger writing through l.
// If l is nil, [log/slog.Default] is used.
func New(l *slog.Logger) SkipLogger {
	if l == nil {
		l = slog.Default()
	}

	return &SwitchbackLogger{l: l}
}

// AddSkip replaces the current number of frames to scroll back
// when logging a message.
//
// Use Skip to get the current skip amount
// when needing to add to it with AddSkip.
func (l *SwitchbackLogger) AddSkip(i int) SkipLogger {
	newl := *l
	newl.skip = i
	return &newl
}

// Debug writes a debug log.
func (l *SwitchbackLogger) Debug(msg string, ctx *LogContext) {
	l.log(slog.LevelDebug, msg, ctx)
}

// Error writes an error log.
func (l *SwitchbackLogger) Error(msg string, ctx *LogContext) {
	l.log(slog.LevelError, msg, ctx)
}

// Info writes an info log.
func (l *SwitchbackLogger) Info(msg string, ctx *LogContext) {
	l.log(slog.LevelInfo, msg, ctx)
}

// Warn writes a warning log.
func (l *SwitchbackLogger) Warn(msg string, ctx *LogContext) {
	l.log(slog.LevelWarn, msg, ctx)
}

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *SwitchbackLogger) Skip() int { return l.skip }

// Slogger exposes the underlying [*log/slog.Logger].
func (l *SwitchbackLogger) Slogger() *slog.Logger { return l.l }

// log builds the record by hand so the source reported
// is the caller of the exported method and not this file.
func (l *SwitchbackLogger) log(level slog.Level, msg string, ctx *LogContext) {
	bg := context.Background()
	if ctx != nil && ctx.Request != nil {
		bg = ctx.Request.Context()
	}

	if !l.l.Enabled(bg, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(knownFrames+l.skip, pcs[:])

	rec := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if ctx != nil {
		rec.AddAttrs(slog.Any(logContextKey, ctx))
	}

	_ = l.l.Handler().Handle(bg, rec)
}
