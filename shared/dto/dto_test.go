package dto_test

import (
	"net/http/httptest"
	"net/url"
	"stayledger/shared/constant"
	"stayledger/shared/dto"
	"stayledger/shared/model"
	"stayledger/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.NewMetadata(createdAt, "user-1"))

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.Equal(t, "user-1", metadata.CreatedBy)
	assert.Equal(t, "user-1", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    url.Values{"page": {"2"}, "limit": {"20"}, "sort_by": {"total"}, "sort_dir": {"desc"}},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "total", SortDir: dto.SortDirDesc},
		},
		{
			name:         "defaults",
			query:        url.Values{},
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			query:    url.Values{},
			expected: dto.QueryParams{},
		},
		{
			name:         "invalid and negative numbers fall back",
			query:        url.Values{"page": {"-1"}, "limit": {"abc"}},
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    url.Values{"limit": {"5000"}},
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown sort direction is dropped",
			query:    url.Values{"sort_by": {"created_at"}, "sort_dir": {"sideways"}},
			expected: dto.QueryParams{SortBy: "created_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/bookings?"+tt.query.Encode(), nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "eq",
			filter:       dto.Eq("bookings", "status", "PENDING"),
			expectedSQL:  "bookings.status = :status",
			expectedArgs: map[string]any{"status": "PENDING"},
		},
		{
			name:         "greater or equal with arg name",
			filter:       dto.Filter{Table: "bookings", Field: "created_at", ArgName: "from", Operator: dto.FilterOperatorGreaterEq, Value: "2024-01-01"},
			expectedSQL:  "bookings.created_at >= :from",
			expectedArgs: map[string]any{"from": "2024-01-01"},
		},
		{
			name:         "like",
			filter:       dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "villa"},
			expectedSQL:  "LOWER(name) LIKE LOWER(:name)",
			expectedArgs: map[string]any{"name": "%villa%"},
		},
		{
			name:         "in binds every element",
			filter:       dto.Filter{Table: "products", Field: "id", Operator: dto.FilterOperatorIn, Value: []string{"a", "b"}},
			expectedSQL:  "products.id IN (:id_0, :id_1)",
			expectedArgs: map[string]any{"id_0": "a", "id_1": "b"},
		},
		{
			name:         "in with empty set matches nothing",
			filter:       dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}},
			expectedSQL:  "FALSE",
			expectedArgs: map[string]any{},
		},
		{
			name:         "in with scalar is bound as equality",
			filter:       dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: "1; DROP TABLE users"},
			expectedSQL:  "id = :id",
			expectedArgs: map[string]any{"id": "1; DROP TABLE users"},
		},
		{
			name:         "unknown operator",
			filter:       dto.Filter{Field: "id", Operator: "raw", Value: "1=1"},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

		sql, args := group.GetWhereClause()

		assert.Empty(t, sql)
		assert.Empty(t, args)
	})

	t.Run("nested groups and append", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
		group.Append(dto.Eq("withdrawals", "affiliate_id", "aff-1"))
		group.Filters = append(group.Filters, dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{Field: "status", ArgName: "s1", Operator: dto.FilterOperatorEq, Value: "PENDING"},
				dto.Filter{Field: "status", ArgName: "s2", Operator: dto.FilterOperatorEq, Value: "APPROVED"},
			},
		})

		sql, args := group.GetWhereClause()

		assert.Equal(t, "(withdrawals.affiliate_id = :affiliate_id AND (status = :s1 OR status = :s2))", sql)
		assert.Equal(t, map[string]any{"affiliate_id": "aff-1", "s1": "PENDING", "s2": "APPROVED"}, args)
	})

	t.Run("operator defaults to and", func(t *testing.T) {
		group := dto.FilterGroup{}
		group.Append(dto.Eq("", "a", 1), dto.Eq("", "b", 2))

		sql, _ := group.GetWhereClause()

		assert.Equal(t, "(a = :a AND b = :b)", sql)
	})
}
