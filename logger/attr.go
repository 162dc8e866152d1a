package logger

import (
	"log/slog"

	"github.com/fatih/color"
)

// ColorizeLevel is a ReplaceAttr function for [log/slog.HandlerOptions]
// coloring the level of a log by its severity.
func ColorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}

	lvl, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	var colorizer func(string, ...any) string
	switch {
	case lvl < slog.LevelInfo:
		colorizer = color.WhiteString
	case lvl < slog.LevelWarn:
		colorizer = color.BlueString
	case lvl < slog.LevelError:
		colorizer = color.YellowString
	default:
		colorizer = color.RedString
	}

	return slog.String(a.Key, colorizer("%s", lvl.String()))
}

// DeleteLevelAttr is a ReplaceAttr function for [log/slog.HandlerOptions]
// dropping the level from a log.
func DeleteLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		return slog.Attr{}
	}

	return a
}

// DeleteMessageAttr is a ReplaceAttr function for [log/slog.HandlerOptions]
// dropping the message from a log.
func DeleteMessageAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.MessageKey {
		return slog.Attr{}
	}

	return a
}

// TruncSourceAttr is a ReplaceAttr function for [log/slog.HandlerOptions]
// trimming the source file of a log to its immediate directory and file name.
func TruncSourceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.SourceKey {
		return a
	}

	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}

	trunc := *src
	trunc.File = immediateFilepath(src.File)
	trunc.Function = ""

	return slog.Any(a.Key, &trunc)
}
