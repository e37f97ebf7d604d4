package repository

import (
	"context"
	otelMocks "stayledger/infras/otel/mocks"
	"stayledger/infras/postgres"
	"stayledger/shared/dto"
	gModel "stayledger/shared/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stay struct {
	ID          string `db:"id"`
	ProductID   string `db:"product_id"`
	ProductName string `db:"product_name" table:"products" column:"name"`
	Ignored     string `db:"-"`
	Note        string
	gModel.Metadata
}

func (stay) GetJoinQuery() string {
	return "LEFT JOIN products ON products.id = stays.product_id"
}

func newStayRepository() Repository[stay] {
	return NewRepository[stay]("stay", "stays", "id", &postgres.Connection{}, otelMocks.NewOtel())
}

func TestNewRepository(t *testing.T) {
	repo := newStayRepository()

	assert.Equal(t, []string{"id", "product_id", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
	assert.Equal(t, "LEFT JOIN products ON products.id = stays.product_id", repo.join)
	assert.Equal(t,
		"stays.id, stays.product_id, products.name AS product_name, stays.created_at, stays.modified_at, stays.created_by, stays.modified_by",
		repo.selectList())
	assert.Equal(t, "stays.id, products.name AS product_name", repo.selectList("id", "name"))
}

func TestInsertQuery(t *testing.T) {
	repo := newStayRepository()

	assert.Equal(t,
		"INSERT INTO stays (id, product_id, created_at, modified_at, created_by, modified_by) VALUES (:id, :product_id, :created_at, :modified_at, :created_by, :modified_by)",
		repo.insertQuery())
}

func TestOrderAndPage(t *testing.T) {
	tests := []struct {
		name         string
		params       dto.QueryParams
		expected     string
		expectedArgs map[string]any
	}{
		{
			name:         "nothing requested",
			params:       dto.QueryParams{},
			expected:     "",
			expectedArgs: map[string]any{},
		},
		{
			name:         "sort and page",
			params:       dto.QueryParams{Page: 3, Limit: 10, SortBy: "created_at", SortDir: dto.SortDirDesc},
			expected:     "ORDER BY stays.created_at DESC LIMIT :limit OFFSET :offset",
			expectedArgs: map[string]any{"limit": 10, "offset": 20},
		},
		{
			name:         "joined column is not sortable",
			params:       dto.QueryParams{Limit: 5, SortBy: "name", SortDir: dto.SortDirAsc},
			expected:     "LIMIT :limit OFFSET :offset",
			expectedArgs: map[string]any{"limit": 5, "offset": 0},
		},
		{
			name:         "unknown column is not sortable",
			params:       dto.QueryParams{SortBy: "id; DROP TABLE stays", SortDir: dto.SortDirAsc},
			expected:     "",
			expectedArgs: map[string]any{},
		},
	}

	repo := newStayRepository()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}

			assert.Equal(t, tt.expected, repo.orderAndPage(tt.params, args))
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestSetClause(t *testing.T) {
	got := setClause(map[string]any{"status": "PAID", "modified_by": "u-1", "amount": 10})

	assert.Equal(t, "amount = :amount, modified_by = :modified_by, status = :status", got)
}

func TestBuildWhereClause(t *testing.T) {
	repo := newStayRepository()

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	group := dto.FilterGroup{}
	group.Append(dto.Eq("stays", "id", "s-1"))

	where, args = repo.BuildWhereClause(context.Background(), group)
	assert.Equal(t, " WHERE (stays.id = :id) ", where)
	assert.Equal(t, map[string]any{"id": "s-1"}, args)
}

func TestFilteredWritesRequireFilter(t *testing.T) {
	repo := newStayRepository()
	ctx := context.Background()

	assert.ErrorIs(t, repo.Delete(ctx, dto.FilterGroup{}), errRequiredFilter)
	assert.ErrorIs(t, repo.Update(ctx, map[string]any{"id": "x"}, dto.FilterGroup{}), errRequiredFilter)

	_, err := repo.Exist(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}
