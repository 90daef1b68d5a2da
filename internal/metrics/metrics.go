package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of a rehearsal session
type Collector struct {
	gatherer prometheus.Gatherer

	SourceRequests *prometheus.CounterVec
	FlightPlans    *prometheus.CounterVec
	Resolutions    *prometheus.CounterVec
	CacheInserts   prometheus.Counter
}

// New registers the session metrics against reg, defaulting to the global
// registry when nil
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atcdel_source_requests_total",
			Help: "Requests to the flight record source, labeled by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		FlightPlans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atcdel_flight_plans_synthesized_total",
			Help: "Synthesized flight plans, labeled by flight rules.",
		}, []string{"rules"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atcdel_resolutions_total",
			Help: "Departure rule resolutions, labeled by flight rules and whether a procedure matched.",
		}, []string{"rules", "matched"}),
		CacheInserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "atcdel_cache_inserts_total",
			Help: "Departure records newly written to the record cache.",
		}),
	}

	for _, col := range []prometheus.Collector{c.SourceRequests, c.FlightPlans, c.Resolutions, c.CacheInserts} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return c, nil
}

// ObserveSourceRequest counts one call to the record source
func (c *Collector) ObserveSourceRequest(endpoint string, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.SourceRequests.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveFlightPlan counts one synthesized plan
func (c *Collector) ObserveFlightPlan(rules string) {
	if c == nil {
		return
	}
	c.FlightPlans.WithLabelValues(rules).Inc()
}

// ObserveResolution counts one rule resolution
func (c *Collector) ObserveResolution(rules string, matched bool) {
	if c == nil {
		return
	}
	c.Resolutions.WithLabelValues(rules, fmt.Sprint(matched)).Inc()
}

// ObserveCacheInserts adds n newly cached records
func (c *Collector) ObserveCacheInserts(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.CacheInserts.Add(float64(n))
}

// Handler exposes the collector's registry over HTTP
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error shutting down metrics server", "error", err)
		}
	}()

	slog.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}
