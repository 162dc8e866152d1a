package resp

import "github.com/xy-planning-network/switchback/logger"

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New(nil) is used.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithErrorDetail toggles whether Err writes the error message to the client.
// When off, the status text for the response code is written instead.
func WithErrorDetail(on bool) ResponderOptFn {
	return func(d *Responder) {
		d.errorDetail = on
	}
}
