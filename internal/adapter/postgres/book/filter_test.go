package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var f Filter
		f.normalize()

		assert.Equal(t, "createdAt", f.SortBy)
		assert.Equal(t, "desc", f.SortOrder)
		assert.Equal(t, defaultLimit, f.Limit)
		assert.Equal(t, 1, f.Page)
	})

	t.Run("clamps limit", func(t *testing.T) {
		f := Filter{Limit: 5000}
		f.normalize()
		assert.Equal(t, maxLimit, f.Limit)
	})

	t.Run("unknown sort column falls back", func(t *testing.T) {
		f := Filter{SortBy: "evil; DROP TABLE books"}
		f.normalize()
		assert.Equal(t, "createdAt", f.SortBy)
		assert.Equal(t, "created_at", f.sortColumn())
	})

	t.Run("keeps valid values", func(t *testing.T) {
		f := Filter{SortBy: "gradeLevel", SortOrder: "asc", Page: 3, Limit: 50}
		f.normalize()

		assert.Equal(t, "grade_level", f.sortColumn())
		assert.Equal(t, "ASC", f.orderDir())
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 50, f.Limit)
	})
}

func TestIsCursor(t *testing.T) {
	var f Filter
	assert.False(t, f.isCursor())

	cursor := int64(42)
	f.Cursor = &cursor
	assert.True(t, f.isCursor())
}
