// Package health reports whether the key-value store answers, over the
// standard gRPC health service and a plain HTTP endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"trophyseeker/internal/httpresponse"
)

const (
	ServiceName  = "trophyseeker"
	probeTimeout = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	store  Pinger
	server *grpchealth.Server
	log    *zap.SugaredLogger
}

type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func NewChecker(store Pinger, log *zap.SugaredLogger) *Checker {
	return &Checker{store: store, server: grpchealth.NewServer(), log: log}
}

func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.server)
}

// Probe pings the store once and publishes the result to the gRPC service.
func (c *Checker) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := c.store.Ping(ctx)
	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return err
}

// Run probes every interval until ctx is done.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := c.Probe(ctx); err != nil && ctx.Err() == nil {
			c.log.Warnw("health probe failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown marks every service NOT_SERVING so clients drain.
func (c *Checker) Shutdown() {
	c.server.Shutdown()
}

func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := c.Probe(r.Context()); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusServiceUnavailable,
			StatusResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING.String(), Error: err.Error()})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK,
		StatusResponse{Status: healthpb.HealthCheckResponse_SERVING.String()})
}
