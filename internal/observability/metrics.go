package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "automate"

// Metrics owns a private registry so several instances can coexist in tests.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests     *prometheus.CounterVec
	apiLatency      *prometheus.HistogramVec
	apiInflight     prometheus.Gauge
	recommendations *prometheus.CounterVec
	chatAnswers     *prometheus.CounterVec
	bookings        *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	mailSends       *prometheus.CounterVec
	smsSends        *prometheus.CounterVec
	breakerState    *prometheus.GaugeVec
	reminderRuns    *prometheus.CounterVec
	modelTrainSecs  prometheus.Gauge
	modelTrainRows  prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_inflight_requests",
			Help:      "HTTP requests currently being served.",
		}),
		recommendations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Maintenance recommendations by outcome.",
		}, []string{"outcome"}),
		chatAnswers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faq_answers_total",
			Help:      "FAQ chatbot answers by outcome (matched, fallback, empty_corpus).",
		}, []string{"outcome"}),
		bookings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking lifecycle events.",
		}, []string{"event"}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications created by source.",
		}, []string{"source"}),
		mailSends: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mail_sends_total",
			Help:      "Outbound email attempts by outcome.",
		}, []string{"outcome"}),
		smsSends: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sms_sends_total",
			Help:      "Outbound SMS attempts by outcome.",
		}, []string{"outcome"}),
		breakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		}, []string{"name"}),
		reminderRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_runs_total",
			Help:      "Reminder sweeps by status.",
		}, []string{"status"}),
		modelTrainSecs: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_train_seconds",
			Help:      "Wall time of the last decision tree fit.",
		}),
		modelTrainRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_train_rows",
			Help:      "Rows used by the last decision tree fit.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncRecommendation(outcome string) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncChatAnswer(outcome string) {
	if m == nil {
		return
	}
	m.chatAnswers.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncBooking(event string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(event).Inc()
}

func (m *Metrics) IncNotification(source string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(source).Inc()
}

func (m *Metrics) IncMailSend(outcome string) {
	if m == nil {
		return
	}
	m.mailSends.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncSMSSend(outcome string) {
	if m == nil {
		return
	}
	m.smsSends.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(state)
}

func (m *Metrics) IncReminderRun(status string) {
	if m == nil {
		return
	}
	m.reminderRuns.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveModelTraining(rows int, dur time.Duration) {
	if m == nil {
		return
	}
	m.modelTrainRows.Set(float64(rows))
	m.modelTrainSecs.Set(dur.Seconds())
}
