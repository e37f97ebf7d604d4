package model_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayledger/internal/domains/affiliate/model"
)

func TestNewReferralCode(t *testing.T) {
	pattern := regexp.MustCompile(`^REF[A-Z2-9]{6}$`)
	seen := make(map[string]struct{})

	for range 50 {
		code, err := model.NewReferralCode()

		assert.NoError(t, err)
		assert.Regexp(t, pattern, code)

		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 1)
}

func TestNormalizeReferralCode(t *testing.T) {
	assert.Equal(t, "REFABC123", model.NormalizeReferralCode("  refabc123 "))
}

func TestAffiliate_CanEarn(t *testing.T) {
	tests := []struct {
		name      string
		affiliate model.Affiliate
		want      bool
	}{
		{name: "zero value", affiliate: model.Affiliate{}, want: false},
		{name: "inactive", affiliate: model.Affiliate{ID: "a", Active: false}, want: false},
		{name: "active", affiliate: model.Affiliate{ID: "a", Active: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.affiliate.CanEarn())
		})
	}
}

func TestAffiliate_HasBankDetails(t *testing.T) {
	assert.False(t, model.Affiliate{BankName: "KBank"}.HasBankDetails())
	assert.True(t, model.Affiliate{BankName: "KBank", BankAccount: "123", BankAccountName: "A"}.HasBankDetails())
}
