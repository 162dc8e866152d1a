package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/version"
)

// A LogRequestRecord is the access log LogRequest writes for each request.
type LogRequestRecord struct {
	APIVersion     string `json:"apiVersion,omitempty"`
	BodySize       int    `json:"bodySize"`
	Host           string `json:"host"`
	ID             string `json:"id"`
	IPAddr         string `json:"ipAddr,omitempty"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer"`
	ReqContentType string `json:"reqContentType"`
	Scheme         string `json:"scheme,omitempty"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent"`
}

func (rec LogRequestRecord) attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.Int("bodySize", rec.BodySize),
		slog.String("host", rec.Host),
		slog.String("id", rec.ID),
		slog.String("method", rec.Method),
		slog.String("path", rec.Path),
		slog.String("protocol", rec.Protocol),
		slog.String("referrer", rec.Referrer),
		slog.String("reqContentType", rec.ReqContentType),
		slog.Int("status", rec.Status),
		slog.String("uri", rec.URI),
		slog.String("userAgent", rec.UserAgent),
	}

	if rec.APIVersion != "" {
		attrs = append(attrs, slog.String("apiVersion", rec.APIVersion))
	}

	if rec.IPAddr != "" {
		attrs = append(attrs, slog.String("ipAddr", rec.IPAddr))
	}

	if rec.Scheme != "" {
		attrs = append(attrs, slog.String("scheme", rec.Scheme))
	}

	return attrs
}

// LogRequest logs a [LogRequestRecord] for every request once its handler returns,
// using [handlers.CustomLoggingHandler] to capture the status and size of the response.
//
// LogRequest scrubs the values for the following query params:
//   - password
//
// if l is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l *slog.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, h, func(_ io.Writer, p handlers.LogFormatterParams) {
			r := p.Request

			q := p.URL.Query()
			switchback.Mask(q, "password")

			uri := p.URL.Path
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			rec := LogRequestRecord{
				BodySize:       p.Size,
				Host:           r.Host,
				Method:         r.Method,
				Path:           p.URL.Path,
				Protocol:       r.Proto,
				Referrer:       r.Referer(),
				ReqContentType: r.Header.Get("Content-Type"),
				Scheme:         p.URL.Scheme,
				Status:         p.StatusCode,
				URI:            uri,
				UserAgent:      r.UserAgent(),
			}

			if id, ok := r.Context().Value(switchback.RequestIDKey).(string); ok {
				rec.ID = id
			}

			if ip, ok := r.Context().Value(switchback.IpAddrKey).(string); ok {
				rec.IPAddr = ip
			}

			if v, ok := r.Context().Value(switchback.APIVersionKey).(version.Version); ok {
				rec.APIVersion = v.String()
			}

			l.LogAttrs(r.Context(), slog.LevelInfo, "", rec.attrs()...)
		})
	}
}
