package info

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestInfoHandler_respondProbe(t *testing.T) {
	handler := NewInfoHandler()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rr := httptest.NewRecorder()

	handler.respondProbe(rr, req, http.StatusAccepted, "WARN", "mongo", "redis")

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, rr.Code)
	}

	payload := decodeProbePayload(t, rr.Body.Bytes())
	if payload.Status != "WARN" {
		t.Fatalf("expected status WARN, got %s", payload.Status)
	}
	expectedDetails := []string{"mongo", "redis"}
	if !reflect.DeepEqual(payload.Details, expectedDetails) {
		t.Fatalf("expected details %v, got %v", expectedDetails, payload.Details)
	}
}

func TestInfoHandler_runChecks(t *testing.T) {
	t.Run("no checks", func(t *testing.T) {
		if err := NewInfoHandler().runChecks(context.Background(), nil); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("returns wrapped errors", func(t *testing.T) {
		sentinel := errors.New("pool exhausted")
		err := NewInfoHandler().runChecks(context.Background(), []ProbeFunc{func(context.Context) error { return sentinel }})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
		if !strings.Contains(err.Error(), "probe 1 failed") {
			t.Fatalf("expected error message to describe probe failure, got %v", err)
		}
	})

	t.Run("honours probe timeout", func(t *testing.T) {
		handler := NewInfoHandler(WithProbeTimeout(5 * time.Millisecond))
		err := handler.runChecks(context.Background(), []ProbeFunc{func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}})
		if err == nil || !strings.Contains(err.Error(), "timed out after 5ms") {
			t.Fatalf("expected timeout error, got %v", err)
		}
	})

	t.Run("all probes must succeed", func(t *testing.T) {
		called := 0
		ok := func(context.Context) error {
			called++
			return nil
		}
		if err := NewInfoHandler().runChecks(context.Background(), []ProbeFunc{ok, ok}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if called != 2 {
			t.Fatalf("expected both probes to run, ran %d", called)
		}
	})
}

func TestWithChecksDropsNil(t *testing.T) {
	fn := func(context.Context) error { return nil }
	handler := NewInfoHandler(WithLivenessChecks(nil, fn), WithReadinessChecks(nil, nil))

	if len(handler.livenessChecks) != 1 {
		t.Fatalf("expected one liveness check, got %d", len(handler.livenessChecks))
	}
	if handler.readinessChecks != nil {
		t.Fatalf("expected no readiness checks, got %d", len(handler.readinessChecks))
	}
}
