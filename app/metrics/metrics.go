package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the blog's collectors. A nil *Metrics records nothing.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	PostsPublished prometheus.Counter
	Comments       *prometheus.CounterVec
}

// Setup registers the collectors on a fresh registry and returns the
// exposition handler for it.
func Setup() (*Metrics, http.Handler) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quillblog_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quillblog_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PostsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quillblog_posts_published_total",
			Help: "Total number of posts published",
		}),
		Comments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quillblog_comments_total",
			Help: "Comment moderation events by action",
		}, []string{"action"}),
	}
	registry.MustRegister(m.HTTPRequests, m.HTTPDuration, m.PostsPublished, m.Comments)

	return m, promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RecordPublish() {
	if m == nil {
		return
	}
	m.PostsPublished.Inc()
}

// RecordComment counts a comment event: "submitted", "rejected", "approved" or "removed".
func (m *Metrics) RecordComment(action string) {
	if m == nil {
		return
	}
	m.Comments.WithLabelValues(action).Inc()
}
