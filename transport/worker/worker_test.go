package worker

import (
	"errors"
	"stayledger/config"
	"stayledger/infras/metrics"
	otelMocks "stayledger/infras/otel/mocks"
	"stayledger/internal/domains/ledger/model/dto"
	ledgerMocks "stayledger/internal/domains/ledger/service/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWorker_Register(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "descriptor", schedule: "@every 15m"},
		{name: "five field spec", schedule: "*/5 * * * *"},
		{name: "invalid spec", schedule: "every now and then", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			cfg := &config.Config{}
			cfg.Ledger.ReconcileSchedule = tt.schedule

			w := New(cfg, otelMocks.NewOtel(), ledgerMocks.NewMockLedger(ctrl), metrics.New())

			err := w.Register()
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, w.cron.Entries(), 1)
		})
	}
}

func TestWorker_ReconcileLedger(t *testing.T) {
	tests := []struct {
		name               string
		setupMock          func(ledger *ledgerMocks.MockLedger)
		expectedErrors     int
		expectedViolations any
	}{
		{
			name: "balanced",
			setupMock: func(ledger *ledgerMocks.MockLedger) {
				ledger.EXPECT().Reconcile(gomock.Any()).Return(dto.ReconcileResponse{Balanced: true}, nil)
			},
			expectedViolations: 0,
		},
		{
			name: "drift reported",
			setupMock: func(ledger *ledgerMocks.MockLedger) {
				ledger.EXPECT().Reconcile(gomock.Any()).Return(dto.ReconcileResponse{
					Violations: []dto.ViolationResponse{{AffiliateID: "a-1"}},
				}, nil)
			},
			expectedViolations: 1,
		},
		{
			name: "store unavailable",
			setupMock: func(ledger *ledgerMocks.MockLedger) {
				ledger.EXPECT().Reconcile(gomock.Any()).Return(dto.ReconcileResponse{}, errors.New("connection refused"))
			},
			expectedErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledger := ledgerMocks.NewMockLedger(ctrl)
			tt.setupMock(ledger)

			recorder := otelMocks.NewRecorder()
			w := New(&config.Config{}, recorder, ledger, metrics.New())

			assert.NotPanics(t, w.ReconcileLedger)
			assert.Len(t, recorder.Errors(), tt.expectedErrors)

			violations, ok := recorder.Attribute("ledger.violations")
			if tt.expectedErrors > 0 {
				assert.False(t, ok)

				return
			}

			assert.Equal(t, tt.expectedViolations, violations)
		})
	}
}
