package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// HTTPDoer is the subset of *http.Client the HTTP probe needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPResponseValidator can veto a response whose status was accepted.
type HTTPResponseValidator func(resp *http.Response) error

// HTTPCheck describes an upstream endpoint that has to answer before the
// service counts as ready. It is loaded from configuration, so every field
// has a zero value that works.
type HTTPCheck struct {
	Name string `yaml:"name" env:"NAME"`
	URL  string `yaml:"url" env:"URL"`
	// Method defaults to GET.
	Method string `yaml:"method" env:"METHOD"`
	// Statuses lists the accepted status codes. Empty accepts any 2xx.
	Statuses []int             `yaml:"statuses" env:"STATUSES"`
	Header   map[string]string `yaml:"header" env:"HEADER"`
}

func (c HTTPCheck) name() string {
	if c.Name != "" {
		return c.Name
	}
	return "http"
}

func (c HTTPCheck) accepts(status int) bool {
	if len(c.Statuses) == 0 {
		return status >= 200 && status < 300
	}
	return slices.Contains(c.Statuses, status)
}

// Probe returns the check as a Func. A nil client uses http.DefaultClient.
// Validators run in order after the status was accepted.
func (c HTTPCheck) Probe(client HTTPDoer, validators ...HTTPResponseValidator) Func {
	if client == nil {
		client = http.DefaultClient
	}
	name := c.name()
	target := strings.TrimSpace(c.URL)
	method := strings.ToUpper(strings.TrimSpace(c.Method))
	if method == "" {
		method = http.MethodGet
	}

	return func(ctx context.Context) error {
		if target == "" {
			return fmt.Errorf("%s probe: target URL is required", name)
		}
		if ctx == nil {
			ctx = context.Background()
		}

		req, err := http.NewRequestWithContext(ctx, method, target, nil)
		if err != nil {
			return fmt.Errorf("%s probe: failed to build request: %w", name, err)
		}
		for key, value := range c.Header {
			req.Header.Set(key, value)
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("%s probe request failed: %w", name, err)
		}
		defer resp.Body.Close()

		if !c.accepts(resp.StatusCode) {
			return fmt.Errorf("%s probe: unexpected status %d %s", name, resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		for _, validate := range validators {
			if validate == nil {
				continue
			}
			if err := validate(resp); err != nil {
				return fmt.Errorf("%s probe: %w", name, err)
			}
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
}

// NewHTTPProbe checks that method target answers with a 2xx status.
func NewHTTPProbe(name, method, target string, client HTTPDoer) Func {
	return HTTPCheck{Name: name, URL: target, Method: method}.Probe(client)
}
