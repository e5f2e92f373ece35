package probe_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/drblury/routeweaver/probe"
)

type stubMongoPinger struct {
	err        error
	lastCtx    context.Context
	lastReadPF *readpref.ReadPref
}

func (s *stubMongoPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	s.lastCtx = ctx
	s.lastReadPF = rp
	return s.err
}

type stubRedis struct {
	err   error
	calls int
}

func (s *stubRedis) Ping(ctx context.Context) *redis.StatusCmd {
	s.calls++
	return redis.NewStatusResult("PONG", s.err)
}

type stubDB struct {
	err     error
	lastCtx context.Context
}

func (s *stubDB) PingContext(ctx context.Context) error {
	s.lastCtx = ctx
	return s.err
}

type stubHTTPClient struct {
	resp    *http.Response
	err     error
	lastReq *http.Request
}

func (s *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestNewPingProbe(t *testing.T) {
	t.Run("nil function", func(t *testing.T) {
		if err := probe.NewPingProbe("models", nil)(context.Background()); err == nil {
			t.Fatal("expected error when ping function is nil")
		}
	})

	t.Run("failure wraps cause", func(t *testing.T) {
		sentinel := errors.New("schema not loaded")
		err := probe.NewPingProbe("models", func(context.Context) error { return sentinel })(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected error to wrap sentinel, got %v", err)
		}
		if !strings.Contains(err.Error(), "models probe failed") {
			t.Fatalf("expected probe name in error, got %v", err)
		}
	})
}

func TestNewMongoPingProbe(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		if err := probe.NewMongoPingProbe(nil, nil)(context.Background()); err == nil {
			t.Fatal("expected error when client is nil")
		}
	})

	t.Run("defaults to primary", func(t *testing.T) {
		stub := &stubMongoPinger{}
		if err := probe.NewMongoPingProbe(stub, nil)(context.Background()); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if stub.lastCtx == nil {
			t.Fatal("expected context to be forwarded")
		}
		if stub.lastReadPF == nil || stub.lastReadPF.Mode() != readpref.PrimaryMode {
			t.Fatalf("expected primary read preference, got %v", stub.lastReadPF)
		}
	})

	t.Run("failure keeps read preference", func(t *testing.T) {
		sentinel := errors.New("unreachable")
		stub := &stubMongoPinger{err: sentinel}
		err := probe.NewMongoPingProbe(stub, readpref.Secondary())(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
		if stub.lastReadPF.Mode() != readpref.SecondaryMode {
			t.Fatalf("expected secondary read preference, got %v", stub.lastReadPF.Mode())
		}
	})
}

func TestNewRedisPingProbe(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		if err := probe.NewRedisPingProbe(nil)(context.Background()); err == nil {
			t.Fatal("expected error when client is nil")
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubRedis{}
		if err := probe.NewRedisPingProbe(stub)(context.Background()); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if stub.calls != 1 {
			t.Fatalf("expected one PING, got %d", stub.calls)
		}
	})

	t.Run("failure", func(t *testing.T) {
		sentinel := errors.New("connection refused")
		err := probe.NewRedisPingProbe(&stubRedis{err: sentinel})(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
	})
}

func TestNewDBPingProbe(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		if err := probe.NewDBPingProbe("postgres", nil)(context.Background()); err == nil {
			t.Fatal("expected error when db client is nil")
		}
	})

	t.Run("nil context is replaced", func(t *testing.T) {
		stub := &stubDB{}
		if err := probe.NewDBPingProbe("postgres", stub)(nil); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if stub.lastCtx == nil {
			t.Fatal("expected context to be supplied")
		}
	})
}

func TestNewHTTPProbe(t *testing.T) {
	t.Run("requires target", func(t *testing.T) {
		if err := probe.NewHTTPProbe("upstream", http.MethodGet, "  ", nil)(context.Background()); err == nil {
			t.Fatal("expected error when target missing")
		}
	})

	t.Run("non success status fails", func(t *testing.T) {
		client := &stubHTTPClient{resp: &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(strings.NewReader("oops")),
		}}
		err := probe.NewHTTPProbe("upstream", "head", "https://example.invalid", client)(context.Background())
		if err == nil {
			t.Fatal("expected error when status not 2xx")
		}
		if client.lastReq == nil || client.lastReq.Method != http.MethodHead {
			t.Fatalf("expected HEAD request, got %+v", client.lastReq)
		}
	})

	t.Run("request failure is propagated", func(t *testing.T) {
		sentinel := errors.New("network down")
		err := probe.NewHTTPProbe("upstream", http.MethodGet, "https://example.invalid", &stubHTTPClient{err: sentinel})(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
	})

	t.Run("header and statuses", func(t *testing.T) {
		client := &stubHTTPClient{resp: &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(strings.NewReader("")),
		}}
		check := probe.HTTPCheck{
			Name:     "billing",
			URL:      "https://example.invalid/health",
			Statuses: []int{http.StatusOK},
			Header:   map[string]string{"Authorization": "Bearer demo"},
		}
		err := check.Probe(client)(context.Background())
		if err == nil || !strings.Contains(err.Error(), "billing probe: unexpected status 204") {
			t.Fatalf("expected status failure, got %v", err)
		}
		if got := client.lastReq.Header.Get("Authorization"); got != "Bearer demo" {
			t.Fatalf("expected header to be sent, got %q", got)
		}
	})

	t.Run("validator vetoes", func(t *testing.T) {
		client := &stubHTTPClient{resp: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{}")),
		}}
		veto := errors.New("stale build")
		err := probe.HTTPCheck{URL: "https://example.invalid"}.Probe(client, nil, func(*http.Response) error { return veto })(context.Background())
		if !errors.Is(err, veto) {
			t.Fatalf("expected validator error, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "http probe:") {
			t.Fatalf("expected default name, got %v", err)
		}
	})
}

func TestRun(t *testing.T) {
	t.Run("no checks", func(t *testing.T) {
		if err := probe.Run(context.Background(), 0, nil, nil); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		var ran []int
		check := func(idx int, err error) probe.Func {
			return func(context.Context) error {
				ran = append(ran, idx)
				return err
			}
		}
		sentinel := errors.New("redis down")

		err := probe.Run(context.Background(), time.Second, check(1, nil), nil, check(2, sentinel), check(3, nil))
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
		if !strings.Contains(err.Error(), "probe 2 failed") {
			t.Fatalf("expected probe index in error, got %v", err)
		}
		if len(ran) != 2 {
			t.Fatalf("expected two checks to run, got %v", ran)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		slow := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}
		err := probe.Run(context.Background(), 10*time.Millisecond, slow)
		if err == nil || !strings.Contains(err.Error(), "timed out after 10ms") {
			t.Fatalf("expected timeout error, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := probe.Run(ctx, time.Second, func(ctx context.Context) error { return ctx.Err() })
		if err == nil || !strings.Contains(err.Error(), "was cancelled") {
			t.Fatalf("expected cancellation error, got %v", err)
		}
	})
}

func TestFilter(t *testing.T) {
	if got := probe.Filter([]probe.Func{nil, nil}); got != nil {
		t.Fatalf("expected nil, got %d checks", len(got))
	}
	ok := func(context.Context) error { return nil }
	if got := probe.Filter([]probe.Func{nil, ok}); len(got) != 1 {
		t.Fatalf("expected one check, got %d", len(got))
	}
}

func ExampleRun() {
	cache := probe.NewRedisPingProbe(&stubRedis{})
	models := probe.NewPingProbe("models", func(context.Context) error { return nil })

	fmt.Println(probe.Run(context.Background(), time.Second, cache, models))
	// Output: <nil>
}

func ExampleHTTPCheck_Probe() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer demo" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("X-Version", "123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	check := probe.HTTPCheck{
		Name:     "upstream",
		URL:      server.URL,
		Statuses: []int{http.StatusAccepted},
		Header:   map[string]string{"Authorization": "Bearer demo"},
	}
	probeFunc := check.Probe(server.Client(), func(resp *http.Response) error {
		if resp.Header.Get("X-Version") == "" {
			return errors.New("missing version header")
		}
		return nil
	})

	fmt.Println(probeFunc(context.Background()))
	// Output: <nil>
}
