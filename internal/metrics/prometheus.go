// Package metrics exposes Prometheus metrics for the scroll and navigation
// pipeline.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/olivier-w/folio/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 2 * time.Second
)

// Manager owns folio's metrics. A nil *Manager records nothing.
type Manager struct {
	namespace string
	subsystem string
	registry  *prometheus.Registry
	log       logger.Logger

	frames           prometheus.Counter
	navigations      *prometheus.CounterVec
	navigationErrors prometheus.Counter
	activeChanges    *prometheus.CounterVec
	springSettles    prometheus.Counter
	progress         prometheus.Gauge
	relayouts        prometheus.Counter
}

// NewManager creates a Manager with its own registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "folio",
		subsystem: "scroll",
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	if m.log == nil {
		m.log = logger.Named("metrics")
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.frames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_total",
		Help:      "Animation frames processed",
	})
	m.navigations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "navigations_total",
		Help:      "Smooth navigations started, by target section",
	}, []string{"section"})
	m.navigationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "navigation_errors_total",
		Help:      "Navigations rejected for an unknown section",
	})
	m.activeChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_section_changes_total",
		Help:      "Times a section became the active one",
	}, []string{"section"})
	m.springSettles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "spring_settles_total",
		Help:      "Times the progress spring came to rest",
	})
	m.progress = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "progress_ratio",
		Help:      "Smoothed scroll progress in [0,1]",
	})
	m.relayouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "relayouts_total",
		Help:      "Document relayouts after a resize",
	})
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

func (m *Manager) RecordFrame() {
	if m == nil {
		return
	}
	m.frames.Inc()
}

func (m *Manager) RecordNavigation(section string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(section).Inc()
}

func (m *Manager) RecordNavigationError() {
	if m == nil {
		return
	}
	m.navigationErrors.Inc()
}

func (m *Manager) RecordActiveSection(section string) {
	if m == nil {
		return
	}
	m.activeChanges.WithLabelValues(section).Inc()
}

func (m *Manager) RecordSpringSettled() {
	if m == nil {
		return
	}
	m.springSettles.Inc()
}

func (m *Manager) RecordRelayout() {
	if m == nil {
		return
	}
	m.relayouts.Inc()
}

func (m *Manager) UpdateProgress(ratio float64) {
	if m == nil {
		return
	}
	m.progress.Set(ratio)
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled. The listener is
// bound before Serve returns so address errors surface immediately; later
// failures are logged.
func (m *Manager) Serve(ctx context.Context, addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics: %w", err)
	}
	m.serve(ctx, ln)
	return ln.Addr(), nil
}

func (m *Manager) serve(ctx context.Context, ln net.Listener) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Error(ctx, "metrics server stopped",
				logger.String("addr", ln.Addr().String()),
				logger.Error(err))
			_ = ln.Close()
		}
	}()
}
