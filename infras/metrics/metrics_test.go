package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"stayledger/infras/metrics"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDomainCounters(t *testing.T) {
	m := metrics.New()

	m.BookingCreated(true, decimal.NewFromInt(298))
	m.BookingCreated(false, decimal.Zero)
	m.WithdrawalRequested()
	m.WithdrawalDecided("COMPLETED")
	m.LedgerViolations(2)

	count, err := testutil.GatherAndCount(m.Registry(),
		"stayledger_bookings_created_total",
		"stayledger_commission_credited_total",
		"stayledger_withdrawals_requested_total",
		"stayledger_withdrawals_decided_total",
		"stayledger_ledger_invariant_violations",
	)
	assert.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestHandlerExposesRequests(t *testing.T) {
	m := metrics.New()
	m.ObserveRequest("/v1/bookings", http.MethodPost, http.StatusCreated, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `stayledger_http_requests_total{method="POST",route="/v1/bookings",status="201"} 1`))
}
