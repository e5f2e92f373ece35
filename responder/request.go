package responder

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/drblury/routeweaver/jsonutil"
)

var errBodyRequired = errors.New("request body is required")

// ReadRequestBody decodes the JSON request body into v. On failure it writes
// a 400 problem document and returns false.
func (r *Responder) ReadRequestBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := decodeRequestBody(req, v); err != nil {
		r.HandleBadRequestError(w, req, err, "failed to parse request body")
		return false
	}
	return true
}

func decodeRequestBody(req *http.Request, v any) error {
	if req == nil || req.Body == nil {
		return errBodyRequired
	}
	if err := jsonutil.Decode(req.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

func requestInstance(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.RequestURI()
}

func requestContext(req *http.Request) context.Context {
	if req == nil {
		return context.Background()
	}
	return req.Context()
}
