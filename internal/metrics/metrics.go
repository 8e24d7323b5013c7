// Package metrics exposes solve counters and latencies in the Prometheus format.
//
// Registers:
//
//	lineup_solves_total{outcome}
//	lineup_solve_duration_seconds{outcome}
//	lineup_matrix_cells
//	go_* and process_* system metrics
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects solve metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cells    prometheus.Histogram
}

var _ contract.SolveObserver = &Recorder{} // Compile-time check

// NewRecorder creates a Recorder with process and Go runtime collectors attached.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lineup_solves_total",
				Help: "Number of assignment solves by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lineup_solve_duration_seconds",
				Help:    "Wall time of a solve including cache lookups",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"outcome"},
		),
		cells: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lineup_matrix_cells",
			Help:    "Size of solved fitness matrices in cells",
			Buckets: prometheus.ExponentialBuckets(4, 4, 6),
		}),
	}
	r.registry.MustRegister(
		r.solves,
		r.duration,
		r.cells,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveSolve records one solve.
func (r *Recorder) ObserveSolve(outcome string, cells int, elapsed time.Duration) {
	r.solves.WithLabelValues(outcome).Inc()
	r.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if cells > 0 {
		r.cells.Observe(float64(cells))
	}
}

// Handler returns the HTTP handler serving this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
