package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type pinger struct{ err error }

func (p *pinger) Ping(context.Context) error { return p.err }

func TestProbePublishesStatus(t *testing.T) {
	p := &pinger{}
	c := NewChecker(p, zap.NewNop().Sugar())
	ctx := context.Background()

	if err := c.Probe(ctx); err != nil {
		t.Fatalf("Probe: %v", err)
	}
	resp, err := c.server.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status: got %v, want SERVING", resp.GetStatus())
	}

	p.err = errors.New("connection refused")
	if err := c.Probe(ctx); err == nil {
		t.Fatal("Probe ignored the store failure")
	}
	resp, err = c.server.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("status: got %v, want NOT_SERVING", resp.GetStatus())
	}
}

func TestServeHTTP(t *testing.T) {
	c := NewChecker(&pinger{err: errors.New("down")}, zap.NewNop().Sugar())

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("got %d, want 503", rec.Code)
	}
}
