// Package metrics: prometheus collectors for HTTP traffic and the answer workflow.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assessku",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "assessku",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	AnswerWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assessku",
		Name:      "answer_stage_writes_total",
		Help:      "Answer stage writes by stage and outcome.",
	}, []string{"stage", "outcome"})

	ChangelogEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assessku",
		Name:      "changelog_entries_total",
		Help:      "Changelog entries appended by entity type.",
	}, []string{"entity"})

	StatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assessku",
		Name:      "assessment_status_transitions_total",
		Help:      "Assessment submits by from/to status.",
	}, []string{"from", "to"})

	AccessDenied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assessku",
		Name:      "access_denied_total",
		Help:      "Page guard denials by page.",
	}, []string{"page"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		AnswerWrites,
		ChangelogEntries,
		StatusTransitions,
		AccessDenied,
	)
}

// Middleware mencatat jumlah & latency request per route template (bukan path mentah).
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		HTTPRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler: GET /metrics
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
