// Package metrics exports Prometheus metrics for frames, interactions,
// the frame cache and the HTTP server.
//
// A Registry implements the hook interfaces of package observability.
// Install registers it so that every visualization and cache in the
// process reports into it:
//
//	reg := metrics.NewRegistry()
//	reg.Install()
//	http.Handle("/metrics", reg.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/netcanvas/pkg/observability"
)

const namespace = "netcanvas"

// Registry holds all metrics of the application.
type Registry struct {
	// Render metrics
	FramesTotal   prometheus.Counter
	FrameDuration prometheus.Histogram
	FrameNodes    prometheus.Gauge
	FrameLinks    prometheus.Gauge
	TooltipsTotal prometheus.Counter

	// Interaction metrics
	EventsTotal   *prometheus.CounterVec
	HoversTotal   prometheus.Counter
	SelectionSize prometheus.Gauge
	ZoomFactor    prometheus.Gauge

	// Cache metrics
	CacheRequestsTotal *prometheus.CounterVec
	CacheWrittenBytes  *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	SessionsActive      prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initRenderMetrics()
	r.initInteractionMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

func (r *Registry) initRenderMetrics() {
	f := promauto.With(r.registry)
	r.FramesTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_total",
		Help:      "Total number of redrawn frames",
	})
	r.FrameDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "frame_duration_seconds",
		Help:      "Time spent drawing one frame",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	r.FrameNodes = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "frame_nodes",
		Help:      "Number of nodes in the last drawn frame",
	})
	r.FrameLinks = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "frame_links",
		Help:      "Number of links in the last drawn frame",
	})
	r.TooltipsTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tooltips_total",
		Help:      "Total number of tooltips shown",
	})
}

func (r *Registry) initInteractionMetrics() {
	f := promauto.With(r.registry)
	r.EventsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "Total number of handled input events",
	}, []string{"kind"})
	r.HoversTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hovers_total",
		Help:      "Total number of hover notifications",
	})
	r.SelectionSize = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "selection_size",
		Help:      "Number of selected nodes after the last change",
	})
	r.ZoomFactor = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "zoom_factor",
		Help:      "Zoom factor after the last pan or zoom",
	})
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)
	r.CacheRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Frame cache lookups by key type and result",
	}, []string{"type", "result"})
	r.CacheWrittenBytes = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_written_bytes_total",
		Help:      "Bytes written to the frame cache by key type",
	}, []string{"type"})
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)
	r.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	r.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	r.SessionsActive = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of live visualization sessions",
	})
}

// Install registers r as the render, interaction and cache hooks.
func (r *Registry) Install() {
	observability.SetRenderHooks(r)
	observability.SetInteractionHooks(r)
	observability.SetCacheHooks(r)
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer returns the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// RecordHTTPRequest records one served request. route is the route
// pattern, not the raw path, to keep session IDs out of the labels.
func (r *Registry) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// OnFrame implements observability.RenderHooks.
func (r *Registry) OnFrame(nodeCount, linkCount int, d time.Duration) {
	r.FramesTotal.Inc()
	r.FrameDuration.Observe(d.Seconds())
	r.FrameNodes.Set(float64(nodeCount))
	r.FrameLinks.Set(float64(linkCount))
}

// OnTooltip implements observability.RenderHooks.
func (r *Registry) OnTooltip(int) { r.TooltipsTotal.Inc() }

// OnEvent implements observability.InteractionHooks.
func (r *Registry) OnEvent(kind string) { r.EventsTotal.WithLabelValues(kind).Inc() }

// OnHover implements observability.InteractionHooks.
func (r *Registry) OnHover(int) { r.HoversTotal.Inc() }

// OnSelection implements observability.InteractionHooks.
func (r *Registry) OnSelection(size int) { r.SelectionSize.Set(float64(size)) }

// OnZoom implements observability.InteractionHooks.
func (r *Registry) OnZoom(k float64) { r.ZoomFactor.Set(k) }

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheRequestsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheRequestsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWrittenBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ observability.RenderHooks      = (*Registry)(nil)
	_ observability.InteractionHooks = (*Registry)(nil)
	_ observability.CacheHooks       = (*Registry)(nil)
)
