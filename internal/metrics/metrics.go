// Package metrics содержит prometheus метрики сервиса.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Реестр не допускает повторной регистрации одноименных метрик.
	once sync.Once

	// HTTPRequestsTotal число обработанных запросов по шаблону маршрута (не по пути,
	// чтобы короткие коды не раздували кардинальность).
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	ShortLinksCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortlink_created_total",
			Help: "Total number of created short links.",
		},
	)

	// AllocationCollisions сгенерированный код уже занят.
	AllocationCollisions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortlink_allocation_collisions_total",
			Help: "Generated short codes that were already taken.",
		},
	)

	// Redirects результат перехода: ok, not_found, expired, error.
	Redirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortlink_redirects_total",
			Help: "Total number of redirect attempts by result.",
		},
		[]string{"result"},
	)
)

// Init регистрирует метрики в prometheus.DefaultRegisterer. Повторные вызовы ничего не делают.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			ShortLinksCreated,
			AllocationCollisions,
			Redirects,
		)
	})
}
