package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "stayledger"

type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec

	bookingsCreated      *prometheus.CounterVec
	commissionCredited   prometheus.Counter
	withdrawalsRequested prometheus.Counter
	withdrawalsDecided   *prometheus.CounterVec
	referralClicks       prometheus.Counter
	ledgerViolations     prometheus.Gauge
}

// New builds a private registry, so several instances can coexist in tests.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings committed, split by affiliate attribution.",
		}, []string{"attributed"}),
		commissionCredited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commission_credited_total",
			Help:      "Sum of commission credited to affiliates.",
		}),
		withdrawalsRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_requested_total",
			Help:      "Withdrawal requests that reserved balance.",
		}),
		withdrawalsDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_decided_total",
			Help:      "Withdrawal decisions applied, by resulting status.",
		}, []string{"status"}),
		referralClicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "referral_clicks_total",
			Help:      "Referral codes captured.",
		}),
		ledgerViolations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_invariant_violations",
			Help:      "Affiliates whose balances failed the last reconciliation.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.durations,
		m.bookingsCreated,
		m.commissionCredited,
		m.withdrawalsRequested,
		m.withdrawalsDecided,
		m.referralClicks,
		m.ledgerViolations,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.durations.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) BookingCreated(attributed bool, commission decimal.Decimal) {
	m.bookingsCreated.WithLabelValues(strconv.FormatBool(attributed)).Inc()

	if attributed {
		m.commissionCredited.Add(commission.InexactFloat64())
	}
}

func (m *Metrics) WithdrawalRequested() {
	m.withdrawalsRequested.Inc()
}

func (m *Metrics) WithdrawalDecided(status string) {
	m.withdrawalsDecided.WithLabelValues(status).Inc()
}

func (m *Metrics) ReferralCaptured() {
	m.referralClicks.Inc()
}

func (m *Metrics) LedgerViolations(count int) {
	m.ledgerViolations.Set(float64(count))
}
