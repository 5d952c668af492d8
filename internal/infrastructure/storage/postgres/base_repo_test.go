package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbank/internal/core/apperror"
	"quizbank/internal/domain/filter"
)

func newMockRepo() *BaseRepo[*mockRow] {
	return NewBaseRepo[*mockRow](nil, "test_table", []string{"slug"}, func() *mockRow { return &mockRow{} })
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := newMockRepo()

	const selectPrefix = "SELECT id, version, created_at, updated_at, deleted_at, deleted_by, slug, score FROM test_table WHERE "

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Equal",
			item:     filter.Item{Field: "slug", Operator: filter.Equal, Value: "go"},
			wantSQL:  selectPrefix + "slug = $1",
			wantArgs: []any{"go"},
		},
		{
			name:     "NotEqual",
			item:     filter.Item{Field: "slug", Operator: filter.NotEqual, Value: "go"},
			wantSQL:  selectPrefix + "slug <> $1",
			wantArgs: []any{"go"},
		},
		{
			name:     "Greater",
			item:     filter.Item{Field: "score", Operator: filter.Greater, Value: 10},
			wantSQL:  selectPrefix + "score > $1",
			wantArgs: []any{10},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "score", Operator: filter.Less, Value: 5},
			wantSQL:  selectPrefix + "score < $1",
			wantArgs: []any{5},
		},
		{
			name:     "GreaterOrEqual",
			item:     filter.Item{Field: "score", Operator: filter.GreaterOrEqual, Value: 3},
			wantSQL:  selectPrefix + "score >= $1",
			wantArgs: []any{3},
		},
		{
			name:     "LessOrEqual",
			item:     filter.Item{Field: "score", Operator: filter.LessOrEqual, Value: 3},
			wantSQL:  selectPrefix + "score <= $1",
			wantArgs: []any{3},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "slug", Operator: filter.Contains, Value: "go"},
			wantSQL:  selectPrefix + "slug ILIKE $1",
			wantArgs: []any{"%go%"},
		},
		{
			name:     "IsNull",
			item:     filter.Item{Field: "deleted_at", Operator: filter.IsNull},
			wantSQL:  selectPrefix + "deleted_at IS NULL",
			wantArgs: nil,
		},
		{
			name:     "IsNotNull",
			item:     filter.Item{Field: "deleted_at", Operator: filter.IsNotNull},
			wantSQL:  selectPrefix + "deleted_at IS NOT NULL",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{tt.item})
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)

			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyAdvancedFilters_Rejections(t *testing.T) {
	repo := newMockRepo()

	t.Run("unknown column", func(t *testing.T) {
		_, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{
			{Field: "password_hash; DROP TABLE users", Operator: filter.Equal, Value: "x"},
		})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("unknown operator", func(t *testing.T) {
		_, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{
			{Field: "slug", Operator: filter.ComparisonType("regex"), Value: "x"},
		})
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestLiveSelect(t *testing.T) {
	repo := newMockRepo()

	sql, _, err := repo.LiveSelect().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "deleted_at IS NULL")
}

func TestParseOrderBy(t *testing.T) {
	repo := newMockRepo()

	tests := []struct {
		in   string
		want string
	}{
		{"", "created_at DESC"},
		{"slug", "slug ASC"},
		{"+slug", "slug ASC"},
		{"-slug", "slug DESC"},
		{"-created_at", "created_at DESC"},
	}
	for _, tt := range tests {
		got, err := repo.parseOrderBy(tt.in)
		require.NoError(t, err, "orderBy %q", tt.in)
		assert.Equal(t, tt.want, got, "orderBy %q", tt.in)
	}

	t.Run("unknown column is rejected", func(t *testing.T) {
		_, err := repo.parseOrderBy("password_hash")
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("bare direction is rejected", func(t *testing.T) {
		_, err := repo.parseOrderBy("-")
		assert.True(t, apperror.IsValidation(err))
	})
}
