package promptpay

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCRC16(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), crc16("123456789"))
}

func TestGeneratePayable(t *testing.T) {
	gen := New()

	tests := []struct {
		name    string
		amount  decimal.Decimal
		target  string
		want    string
		wantErr error
	}{
		{
			name:   "static payload for phone",
			amount: decimal.Zero,
			target: "000-000-0000",
			want:   "00020101021129370016A000000677010111011300660000000005802TH530376463048956",
		},
		{
			name:   "dynamic payload for phone",
			amount: decimal.NewFromInt(2980),
			target: "081-234-5678",
			want:   "00020101021229370016A000000677010111011300668123456785802TH530376454072980.006304DF1B",
		},
		{
			name:   "tax id target",
			amount: decimal.NewFromInt(298),
			target: "1234567890123",
			want:   "00020101021229370016A000000677010111021312345678901235802TH53037645406298.006304D6A5",
		},
		{
			name:    "empty target",
			amount:  decimal.NewFromInt(10),
			target:  "  ",
			wantErr: ErrEmptyTarget,
		},
		{
			name:    "unsupported target length",
			amount:  decimal.NewFromInt(10),
			target:  "12345",
			wantErr: ErrInvalidTarget,
		},
		{
			name:    "negative amount",
			amount:  decimal.NewFromInt(-1),
			target:  "0812345678",
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gen.GeneratePayable(tt.amount, tt.target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
