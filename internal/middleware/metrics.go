package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RedisErrors counts Redis command failures by operation so session and
	// rate-limit outages show up on dashboards before users notice.
	RedisErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_redis_errors_total",
			Help: "Total number of Redis command errors by operation",
		},
		[]string{"operation"},
	)

	// SessionOps counts session store operations by kind and result.
	SessionOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_session_operations_total",
			Help: "Total number of session store operations by kind and result",
		},
		[]string{"operation", "result"},
	)

	// RateLimitRejections counts requests rejected by the rate limiter.
	RateLimitRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "atelier_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(RedisErrors, SessionOps, RateLimitRejections)
}

// InitMetrics creates the Prometheus HTTP middleware. The caller registers
// the scrape endpoint and installs MetricsMiddleware on the app.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
