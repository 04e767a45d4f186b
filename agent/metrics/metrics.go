// Package metrics exports the agent's view of the display link to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"oledcpu/agent/sampler"
	"oledcpu/monitor"
)

const namespace = "oledcpu"

// Metrics holds the agent collectors.
type Metrics struct {
	StatusBytes prometheus.Counter
	Frames      prometheus.Counter
	Errors      *prometheus.CounterVec
	MonitorOn   prometheus.Gauge
	CoreLoad    *prometheus.GaugeVec
	MemoryLoad  prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StatusBytes: f.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName(namespace, "link", "status_bytes_total"),
			Help: "Status bytes received from the display.",
		}),
		Frames: f.NewCounter(prometheus.CounterOpts{
			Name: prometheus.BuildFQName(namespace, "link", "frames_total"),
			Help: "Frames sent to the display.",
		}),
		Errors: f.NewCounterVec(prometheus.CounterOpts{
			Name: prometheus.BuildFQName(namespace, "link", "errors_total"),
			Help: "Link errors by stage.",
		}, []string{"stage"}),
		MonitorOn: f.NewGauge(prometheus.GaugeOpts{
			Name: prometheus.BuildFQName(namespace, "display", "monitor_on"),
			Help: "1 while the display reports the monitor as switched on.",
		}),
		CoreLoad: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: prometheus.BuildFQName(namespace, "host", "core_load_ratio"),
			Help: "Last sampled per-core CPU usage.",
		}, []string{"core"}),
		MemoryLoad: f.NewGauge(prometheus.GaugeOpts{
			Name: prometheus.BuildFQName(namespace, "host", "memory_load_ratio"),
			Help: "Last sampled memory usage.",
		}),
	}
}

// ObserveStatus records a status byte from the display.
func (m *Metrics) ObserveStatus(status monitor.StatusBits) {
	if m == nil {
		return
	}
	m.StatusBytes.Inc()
	if status.MonitorOn() {
		m.MonitorOn.Set(1)
	} else {
		m.MonitorOn.Set(0)
	}
}

// ObserveFrame records a frame sent for s.
func (m *Metrics) ObserveFrame(s sampler.Sample) {
	if m == nil {
		return
	}
	m.Frames.Inc()
	for i, u := range s.Cores {
		m.CoreLoad.WithLabelValues(strconv.Itoa(i)).Set(u)
	}
	m.MemoryLoad.Set(s.Memory)
}

// ObserveError counts a failure in stage ("read", "sample", "write").
func (m *Metrics) ObserveError(stage string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(stage).Inc()
}

// Serve exposes g on addr at /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
