package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quizbank/internal/core/entity"
	"quizbank/internal/core/id"
)

type mockRow struct {
	entity.Base
	Slug   string `db:"slug" json:"slug"`
	Score  int    `db:"score" json:"score"`
	Hidden string `db:"-"`
	NoTag  string
}

func (m *mockRow) Validate(_ context.Context) error { return nil }

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[*mockRow]()

	expected := []string{
		"id", "version", "created_at", "updated_at", "deleted_at", "deleted_by",
		"slug", "score",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expected))
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	actor := id.New()
	row := &mockRow{
		Base: entity.Base{
			ID:        id.New(),
			Version:   5,
			CreatedAt: now,
			UpdatedAt: now,
			DeletedAt: &now,
			DeletedBy: &actor,
		},
		Slug:   "go-basics",
		Score:  42,
		Hidden: "never stored",
		NoTag:  "never stored",
	}

	m := StructToMap(row)

	assert.Equal(t, row.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, &now, m["deleted_at"])
	assert.Equal(t, &actor, m["deleted_by"])
	assert.Equal(t, "go-basics", m["slug"])
	assert.Equal(t, 42, m["score"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 8)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("x"))
}
