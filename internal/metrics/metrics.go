// Package metrics exposes Prometheus counters for HTTP traffic and the
// database pool.
package metrics

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "grimoire"

type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(
		requests,
		duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Recorder{registry: registry, requests: requests, duration: duration}
}

// WatchDB adds connection pool gauges for database.
func (recorder *Recorder) WatchDB(database *sql.DB) error {
	return recorder.registry.Register(collectors.NewDBStatsCollector(database, namespace))
}

// Middleware labels requests by route pattern so ids in paths do not
// create new series.
func (recorder *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		if status == fiber.StatusNotFound && route == "/api" {
			route = "unmatched"
		}
		recorder.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		recorder.duration.WithLabelValues(c.Method(), route).Observe(time.Since(started).Seconds())
		return err
	}
}

func (recorder *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{}))
}
