/*
Package logger provides logging functionality to a switchback app by defining the required behavior in [Logger]
and providing an implementation of it with [SwitchbackLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
[SwitchbackLogger] sits on top of a [*log/slog.Logger],
so the level it emits at, its output format, and its destination
are all configured through the [log/slog.Handler] it is constructed with.

Each method accepts an optional [*LogContext].
The log context carries data inessential to the message proper,
but which provides a fuller picture of the application state at the time of logging,
such as the error that instigated the log or the request being handled.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.

# SentryLogger

[SentryLogger] wraps another [Logger] and ships warnings and errors carrying a [LogContext.Error] to Sentry.
*/
package logger
