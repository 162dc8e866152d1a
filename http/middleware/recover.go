package middleware

import (
	"errors"
	"fmt"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/switchback/logger"
)

// Recover responds with 500 when a downstream http.Handler panics,
// logging the recovered value with l.
//
// If l is nil, logger.New(nil) is used.
func Recover(l logger.Logger) Adapter {
	if l == nil {
		l = logger.New(nil)
	}

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{l}),
		handlers.PrintRecoveryStack(false),
	)
}

// recoveryLogger satisfies handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	l logger.Logger
}

func (rl recoveryLogger) Println(vals ...any) {
	rl.l.Error("recovered from panic", &logger.LogContext{Error: errors.New(fmt.Sprint(vals...))})
}
