package otel_test

import (
	"stayledger/infras/otel"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestAttribute(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected attribute.Value
	}{
		{name: "bool", value: true, expected: attribute.BoolValue(true)},
		{name: "string", value: "PENDING", expected: attribute.StringValue("PENDING")},
		{name: "int", value: 3, expected: attribute.IntValue(3)},
		{name: "int64", value: int64(7), expected: attribute.Int64Value(7)},
		{name: "decimal keeps exact digits", value: decimal.RequireFromString("1500000.10"), expected: attribute.StringValue("1500000.1")},
		{name: "duration in milliseconds", value: 1500 * time.Millisecond, expected: attribute.Int64Value(1500)},
		{name: "time", value: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), expected: attribute.StringValue("2024-05-01T10:00:00Z")},
		{name: "fallback", value: struct{ A int }{A: 1}, expected: attribute.StringValue("{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := otel.Attribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.expected, kv.Value)
		})
	}
}
