package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_http_requests_total",
			Help: "Number of processed HTTP requests.",
		},
		[]string{"method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gazette_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	Transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gazette_article_transitions_total",
			Help: "Number of article status transitions.",
		},
		[]string{"to"},
	)

	MailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_mails_sent_total",
			Help: "Number of notification mails handed to the mailer.",
		},
	)

	MailFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_mail_failures_total",
			Help: "Number of failed mail deliveries.",
		},
	)

	SocialPosts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_social_posts_total",
			Help: "Number of posts handed to the social client.",
		},
	)

	SocialFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_social_failures_total",
			Help: "Number of failed social posts.",
		},
	)

	DigestRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gazette_digest_runs_total",
			Help: "Number of completed digest job runs.",
		},
	)
)

// Middleware counts requests and observes their latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(rw.statusCode)).Inc()
		HTTPDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
