package model_test

import (
	"stayledger/internal/domains/user/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailFilter(t *testing.T) {
	filter := model.EmailFilter("  Guest@Example.COM ")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(users.email = :email)", where)
	assert.Equal(t, map[string]any{"email": "guest@example.com"}, args)
}
