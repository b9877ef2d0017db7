package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

func TestScopeFor(t *testing.T) {
	e := NewEvaluator(facts())

	t.Run("nil user is unrestricted", func(t *testing.T) {
		assert.True(t, e.ScopeFor(nil, false).Unrestricted)
	})

	t.Run("full administrator is unrestricted", func(t *testing.T) {
		admin := &domain.User{Username: "mdr", Role: domain.UserRoleAdministrator}
		assert.True(t, e.ScopeFor(admin, false).Unrestricted)
	})

	t.Run("admin view hatch works for denylisted admins", func(t *testing.T) {
		drew := &domain.User{Username: "drew", Role: domain.UserRoleAdministrator}
		assert.False(t, e.ScopeFor(drew, false).Unrestricted)
		assert.True(t, e.ScopeFor(drew, true).Unrestricted)
	})

	t.Run("admin view hatch is inert for plain evaluators", func(t *testing.T) {
		scope := e.ScopeFor(user("leo", wildcardRule()), true)
		assert.False(t, scope.Unrestricted)
	})

	t.Run("wildcard clause excludes the restricted area", func(t *testing.T) {
		scope := e.ScopeFor(user("leo", wildcardRule()), false)
		require.Len(t, scope.Clauses, 1)
		c := scope.Clauses[0]
		assert.True(t, c.AllAreas)
		assert.Equal(t, []string{"science"}, c.ExcludedAreas)
		assert.Empty(t, c.Grades)
	})

	t.Run("allowlisted wildcard has no exclusions", func(t *testing.T) {
		scope := e.ScopeFor(user("pat", wildcardRule()), false)
		require.Len(t, scope.Clauses, 1)
		assert.Empty(t, scope.Clauses[0].ExcludedAreas)
	})

	t.Run("explicit areas are folded and gated", func(t *testing.T) {
		scope := e.ScopeFor(user("leo", areaRule("Math", 1, 2), areaRule("Science", 3)), false)
		require.Len(t, scope.Clauses, 2)

		assert.Equal(t, []string{"math"}, scope.Clauses[0].Areas)
		assert.Equal(t, []int{1, 2}, scope.Clauses[0].Grades)

		assert.True(t, scope.Clauses[1].Impossible, "a rule reduced to no areas matches nothing")
	})

	t.Run("grade limit replaces clause grades", func(t *testing.T) {
		scope := e.ScopeFor(user("jc", areaRule("Math", 1, 2)), false)
		require.Len(t, scope.Clauses, 1)
		assert.Equal(t, []int{4, 5, 6}, scope.Clauses[0].Grades)
		assert.Equal(t, []int{4, 5, 6}, scope.CreatorGrades)
	})

	t.Run("creator fallback carries the folded username", func(t *testing.T) {
		scope := e.ScopeFor(user("Leo", areaRule("Math")), false)
		assert.Equal(t, "leo", scope.CreatorUsername)
		assert.Empty(t, scope.CreatorGrades)
	})

	t.Run("zero rules still yields the creator fallback", func(t *testing.T) {
		scope := e.ScopeFor(user("zed"), false)
		assert.False(t, scope.Unrestricted)
		assert.Empty(t, scope.Clauses)
		assert.Equal(t, "zed", scope.CreatorUsername)
	})
}
