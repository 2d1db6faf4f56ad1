package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

var (
	// RequestsTotal counts handled requests by status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemgate_requests_total",
			Help: "Total requests",
		},
		[]string{"status"},
	)

	// RequestDuration records handler latency in seconds.
	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gemgate_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration)
}

// Metrics records a request counter labelled by status code and a latency
// histogram for every handled request.
func Metrics(next app.Handler) app.Handler {
	return app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		start := time.Now()
		resp, err := next.Handle(ctx, r)
		RequestDuration.Observe(time.Since(start).Seconds())

		status := "error"
		if resp != nil {
			status = strconv.Itoa(int(resp.Status))
		}
		RequestsTotal.WithLabelValues(status).Inc()

		return resp, err
	})
}
