// Package responder renders JSON payloads and RFC 9457 problem documents for
// routed handlers, and supplies the fallback handlers used by the serving
// layer: unknown routes, wrong methods and recovered panics.
package responder

import (
	"log/slog"
	"net/http"
)

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
	statusDocBaseURL   = "https://httpstatuses.io"
)

// ErrorClassifierFunc inspects an error and returns the HTTP status that should
// be used for the response. The boolean reports whether the error was
// classified; unclassified errors become 500 responses.
type ErrorClassifierFunc func(err error) (status int, handled bool)

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

type statusMeta struct {
	typeURI  string
	title    string
	logLevel slog.Level
	logMsg   string
}

// StatusMetadata customises how a status code is logged and titled in
// problem documents.
type StatusMetadata struct {
	TypeURI  string
	Title    string
	LogLevel slog.Level
	LogMsg   string
}

// Responder centralises error rendering, JSON output and error logging.
type Responder struct {
	log             *slog.Logger
	statusMetadata  map[int]statusMeta
	errorClassifier ErrorClassifierFunc
	exposePanics    bool
}

// NewResponder constructs a Responder with default status metadata and the
// global slog logger.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log:            slog.Default(),
		statusMetadata: defaultStatusMetadata(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger injects the logger used for problem reports. Nil is ignored.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithErrorClassifier installs the classifier used by HandleErrors.
func WithErrorClassifier(classifier ErrorClassifierFunc) ResponderOption {
	return func(r *Responder) {
		r.errorClassifier = classifier
	}
}

// WithPanicDetails controls whether recovered panic values are echoed in the
// problem detail. Meant for development environments only.
func WithPanicDetails(enabled bool) ResponderOption {
	return func(r *Responder) {
		r.exposePanics = enabled
	}
}

// WithStatusMetadata overrides the metadata used for a specific status code.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.statusMetadata == nil {
			r.statusMetadata = make(map[int]statusMeta)
		}
		r.statusMetadata[status] = normalizeStatusMeta(status, statusMeta{
			typeURI:  meta.TypeURI,
			title:    meta.Title,
			logLevel: meta.LogLevel,
			logMsg:   meta.LogMsg,
		})
	}
}

// Logger returns the logger used internally by the responder.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func (r *Responder) classifyError(err error) (int, bool) {
	if r.errorClassifier == nil {
		return 0, false
	}
	return r.errorClassifier(err)
}

func defaultStatusMetadata() map[int]statusMeta {
	meta := map[int]statusMeta{
		http.StatusInternalServerError: {logLevel: slog.LevelError},
		http.StatusServiceUnavailable:  {logLevel: slog.LevelError},
		http.StatusBadRequest:          {logLevel: slog.LevelWarn},
		http.StatusUnauthorized:        {logLevel: slog.LevelWarn},
		http.StatusNotFound:            {logLevel: slog.LevelInfo, logMsg: "Route not found"},
		http.StatusMethodNotAllowed:    {logLevel: slog.LevelInfo},
	}
	for status, m := range meta {
		meta[status] = normalizeStatusMeta(status, m)
	}
	return meta
}
