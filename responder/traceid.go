package responder

import (
	"crypto/rand"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Trace headers. A valid ULID in RequestIDHeader is reused as the trace ID
// of a problem document; the ID is always echoed in TraceIDHeader.
const (
	RequestIDHeader = "X-Request-Id"
	TraceIDHeader   = "X-Trace-Id"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// newTraceID returns a ULID, so trace identifiers sort by creation time.
func newTraceID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func traceIDFor(req *http.Request) string {
	if req != nil {
		if id, err := ulid.ParseStrict(req.Header.Get(RequestIDHeader)); err == nil {
			return id.String()
		}
	}
	return newTraceID()
}
