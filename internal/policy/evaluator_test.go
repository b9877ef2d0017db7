package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

func facts() Facts {
	return Facts{
		AdminDenylist:           []string{"Drew"},
		RestrictedArea:          "Science",
		RestrictedAreaAllowlist: []string{"Pat"},
		GradeLimits:             map[string][]int{"JC": {4, 5, 6}},
	}
}

func user(username string, rules ...domain.AccessRule) *domain.User {
	return &domain.User{
		Username:    username,
		Role:        domain.UserRoleEvaluator,
		AccessRules: rules,
	}
}

func wildcardRule(grades ...int) domain.AccessRule {
	return domain.AccessRule{LearningAreas: []string{domain.AreaWildcard}, GradeLevels: grades}
}

func areaRule(area string, grades ...int) domain.AccessRule {
	return domain.AccessRule{LearningAreas: []string{area}, GradeLevels: grades}
}

func TestIsFullAdministrator(t *testing.T) {
	e := NewEvaluator(facts())

	t.Run("administrator role", func(t *testing.T) {
		u := &domain.User{Username: "mdr", Role: domain.UserRoleAdministrator}
		assert.True(t, e.IsFullAdministrator(u))
	})

	t.Run("admin access flag", func(t *testing.T) {
		u := &domain.User{Username: "flagged", Role: domain.UserRoleEvaluator, IsAdminAccess: true}
		assert.True(t, e.IsFullAdministrator(u))
	})

	t.Run("denylist beats role", func(t *testing.T) {
		u := &domain.User{Username: "drew", Role: domain.UserRoleAdministrator}
		assert.False(t, e.IsFullAdministrator(u))
		assert.True(t, e.HasElevatedView(u), "denylist does not strip the elevated-view check")
	})

	t.Run("denylist is case-insensitive", func(t *testing.T) {
		u := &domain.User{Username: "DREW", Role: domain.UserRoleAdministrator, IsAdminAccess: true}
		assert.False(t, e.IsFullAdministrator(u))
	})

	t.Run("plain evaluator", func(t *testing.T) {
		assert.False(t, e.IsFullAdministrator(user("leo", wildcardRule())))
	})

	t.Run("nil user", func(t *testing.T) {
		assert.False(t, e.IsFullAdministrator(nil))
	})
}

func TestMayAccess(t *testing.T) {
	e := NewEvaluator(facts())

	t.Run("nil user is a system caller", func(t *testing.T) {
		assert.True(t, e.MayAccess(nil, "Science", 3))
	})

	t.Run("zero rules denies everything", func(t *testing.T) {
		assert.False(t, e.MayAccess(user("zed"), "Math", 3))
	})

	t.Run("explicit area and grade", func(t *testing.T) {
		u := user("leo", areaRule("Math", 1, 2, 3))
		assert.True(t, e.MayAccess(u, "Math", 2))
		assert.True(t, e.MayAccess(u, "math", 2), "area match is case-insensitive")
		assert.False(t, e.MayAccess(u, "Math", 7))
		assert.False(t, e.MayAccess(u, "Filipino", 2))
	})

	t.Run("empty grade set means every grade", func(t *testing.T) {
		u := user("leo", areaRule("Math"))
		assert.True(t, e.MayAccess(u, "Math", 1))
		assert.True(t, e.MayAccess(u, "Math", 12))
	})

	t.Run("wildcard does not pierce the restricted area", func(t *testing.T) {
		u := user("leo", wildcardRule())
		assert.True(t, e.MayAccess(u, "Math", 5))
		assert.False(t, e.MayAccess(u, "Science", 5))
	})

	t.Run("allowlisted user reaches the restricted area", func(t *testing.T) {
		u := user("pat", wildcardRule())
		assert.True(t, e.MayAccess(u, "Science", 5))
		assert.True(t, e.MayAccess(u, "SCIENCE", 5))
	})

	t.Run("explicit restricted-area rule still gated", func(t *testing.T) {
		u := user("leo", areaRule("Science", 5))
		assert.False(t, e.MayAccess(u, "Science", 5))
	})

	t.Run("grade limit replaces rule grades", func(t *testing.T) {
		u := user("jc", areaRule("Math", 1, 2, 3))
		assert.False(t, e.MayAccess(u, "Math", 2), "rule grade outside the override")
		assert.True(t, e.MayAccess(u, "Math", 5), "override grade wins over the rule")
	})

	t.Run("grade limit applies through an all-grades rule", func(t *testing.T) {
		u := user("jc", wildcardRule())
		assert.False(t, e.MayAccess(u, "Math", 2), "override denies grades a blanket rule would allow")
		assert.True(t, e.MayAccess(u, "Math", 5))
	})

	t.Run("any rule may grant", func(t *testing.T) {
		u := user("leo", areaRule("Math", 1), areaRule("Filipino", 9))
		assert.True(t, e.MayAccess(u, "Filipino", 9))
		assert.False(t, e.MayAccess(u, "Filipino", 1))
	})
}

func TestNarrowAreas(t *testing.T) {
	e := NewEvaluator(facts())

	t.Run("strips restricted area", func(t *testing.T) {
		narrowed, emptied := e.NarrowAreas(user("leo", wildcardRule()), []string{"Math", "Science"})
		assert.Equal(t, []string{"Math"}, narrowed)
		assert.False(t, emptied)
	})

	t.Run("stripped to nothing", func(t *testing.T) {
		narrowed, emptied := e.NarrowAreas(user("leo", wildcardRule()), []string{"Science"})
		assert.Empty(t, narrowed)
		assert.True(t, emptied)
	})

	t.Run("allowlisted keeps the area", func(t *testing.T) {
		narrowed, emptied := e.NarrowAreas(user("pat", wildcardRule()), []string{"Science"})
		assert.Equal(t, []string{"Science"}, narrowed)
		assert.False(t, emptied)
	})

	t.Run("full administrator untouched", func(t *testing.T) {
		admin := &domain.User{Username: "mdr", Role: domain.UserRoleAdministrator}
		narrowed, emptied := e.NarrowAreas(admin, []string{"Science"})
		assert.Equal(t, []string{"Science"}, narrowed)
		assert.False(t, emptied)
	})

	t.Run("absent filter stays absent", func(t *testing.T) {
		narrowed, emptied := e.NarrowAreas(user("leo", wildcardRule()), nil)
		assert.Nil(t, narrowed)
		assert.False(t, emptied)
	})
}

func TestNarrowGrades(t *testing.T) {
	e := NewEvaluator(facts())

	t.Run("intersects with the override", func(t *testing.T) {
		assert.Equal(t, []int{4, 5}, e.NarrowGrades(user("jc", wildcardRule()), []int{3, 4, 5}))
	})

	t.Run("no override passes through", func(t *testing.T) {
		assert.Equal(t, []int{3, 4}, e.NarrowGrades(user("leo", wildcardRule()), []int{3, 4}))
	})

	t.Run("absent filter stays absent", func(t *testing.T) {
		assert.Empty(t, e.NarrowGrades(user("jc", wildcardRule()), nil))
	})
}

func TestGradeLimit(t *testing.T) {
	e := NewEvaluator(facts())

	limit, ok := e.GradeLimit("Jc")
	assert.True(t, ok)
	assert.Equal(t, []int{4, 5, 6}, limit)

	_, ok = e.GradeLimit("leo")
	assert.False(t, ok)
}
