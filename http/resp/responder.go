package resp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/version"
)

const responderFrames = 1

// Responder maintains reusable pieces for responding to HTTP requests.
// It writes structured JSON data as an HTTP response through Json and Err.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
//
// When handling a specific HTTP request, calling code supplies additional data, structure,
// and so forth through Fn functions.
type Responder struct {
	logger logger.Logger

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Whether Err exposes error messages to clients
	errorDetail bool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New(nil)
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(l.Skip() + responderFrames)
	}

	return d
}

type jsonSchema struct {
	V string `json:"apiVersion,omitempty"`
	D any    `json:"data,omitempty"`
	E string `json:"error,omitempty"`
}

// Err logs err and responds with it in JSON format.
// The status code is chosen as the Err Fn does.
//
// Unless WithErrorDetail is on, clients see only the status text.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if errors.Is(nested, ErrDone) {
		return
	}

	if nested != nil {
		err = fmt.Errorf("%w: %s", err, nested)
	}

	if rr.code == 0 {
		rr.code = http.StatusInternalServerError
	}

	payload := jsonSchema{V: rr.apiVersion(), D: rr.data, E: http.StatusText(rr.code)}
	if doer.errorDetail && err != nil {
		payload.E = err.Error()
	}

	var verrs interface{ MarshalJSON() ([]byte, error) }
	if payload.D == nil && errors.As(err, &verrs) {
		payload.D = verrs
	}

	if err := doer.write(w, rr.code, payload); err != nil {
		doer.logger.Error(err.Error(), &logger.LogContext{Request: r})
	}
}

// Json responds with data in JSON format, collating it from Data() and the matched API version.
//
// The default status code is 200.
func (doer *Responder) Json(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.code == 0 {
		rr.code = http.StatusOK
	}

	return doer.write(w, rr.code, jsonSchema{V: rr.apiVersion(), D: rr.data})
}

// do applies all options to the passed in http.ResponseWriter and *http.Request.
//
// Should all options apply successfully, do returns a validly formed *Response.
// The first failing option halts application, returning its error
// alongside the partially formed *Response.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{w: w, r: r}
	if v, ok := r.Context().Value(switchback.APIVersionKey).(version.Version); ok {
		resp.version = &v
	}

	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return resp, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(*doer, resp); err != nil {
				return resp, err
			}
		}
	}

	return resp, nil
}

// write encodes payload into a pooled buffer before writing any headers,
// so encoding failures still produce a 500.
func (doer *Responder) write(w http.ResponseWriter, code int, payload jsonSchema) error {
	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := json.NewEncoder(b).Encode(payload); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}

func codeFor(err error) int {
	switch {
	case errors.Is(err, switchback.ErrNotValid), errors.Is(err, switchback.ErrBadFormat):
		return http.StatusBadRequest
	case errors.Is(err, switchback.ErrNotExist), errors.Is(err, switchback.ErrNoMatch):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
