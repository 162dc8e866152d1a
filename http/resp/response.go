package resp

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/version"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w       http.ResponseWriter
	r       *http.Request
	code    int
	data    any
	version *version.Version
}

// Code sets the response status code.
//
// Code returns ErrInvalid for codes outside the 1xx-5xx range.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		if c < 100 || c > 599 {
			return fmt.Errorf("%w: status code %d", ErrInvalid, c)
		}

		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client under "data".
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err sets a status code fitting e, unless Code already set one,
// and logs e: at error level for 5xx codes, at debug level otherwise.
//
// The codes are 400 for switchback.ErrNotValid and switchback.ErrBadFormat,
// 404 for switchback.ErrNotExist and switchback.ErrNoMatch,
// and 500 for everything else.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if r.code == 0 {
			r.code = codeFor(e)
		}

		if e == nil {
			return nil
		}

		lc := &logger.LogContext{Error: e, Request: r.r}
		if mapped, ok := r.data.(map[string]any); ok {
			lc.Data = mapped
		}

		if r.code >= http.StatusInternalServerError {
			d.logger.Error(e.Error(), lc)
		} else {
			d.logger.Debug(e.Error(), lc)
		}

		return nil
	}
}

// Header sets the response header key to val.
func Header(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		r.w.Header().Set(key, val)
		return nil
	}
}

// Version overrides the API version reported under "apiVersion".
func Version(v version.Version) Fn {
	return func(_ Responder, r *Response) error {
		r.version = &v
		return nil
	}
}

// apiVersion formats the version the way it appears in request paths.
func (r *Response) apiVersion() string {
	if r.version == nil {
		return ""
	}

	return fmt.Sprintf("%d.%d", r.version.Major(), r.version.Minor())
}
