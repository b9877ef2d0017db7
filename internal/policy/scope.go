package policy

import (
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

// Scope is the declarative, query-time projection of a user's access
// rules with every override already applied. The query filter builder
// turns a Scope into predicates instead of re-evaluating policy per
// record, so read and write paths share one source of truth.
type Scope struct {
	// Unrestricted lifts the access condition entirely: full
	// administrators, the admin-view escape hatch, and system callers.
	Unrestricted bool

	// Clauses holds one override-adjusted clause per access rule; a
	// record is visible when any clause matches.
	Clauses []Clause

	// CreatorUsername backs the ownership fallback: a user always sees
	// records they created, even when no clause would grant them.
	// Folded for case-insensitive comparison.
	CreatorUsername string

	// CreatorGrades narrows the ownership fallback for grade-limited
	// accounts. nil means no narrowing.
	CreatorGrades []int
}

// Clause is one rule translated to predicate form.
type Clause struct {
	// AllAreas marks a wildcard rule. ExcludedAreas then lists areas the
	// overrides still withhold (the restricted area for accounts not on
	// its allowlist).
	AllAreas      bool
	Areas         []string
	ExcludedAreas []string

	// Grades is the effective grade set after the grade-limit override;
	// nil means every grade.
	Grades []int

	// Impossible marks a rule whose area set stripped down to nothing.
	// It must translate to a predicate matching zero records.
	Impossible bool
}

// ScopeFor projects the user's rules into a Scope. adminView is the
// caller-supplied escape hatch; it only takes effect when the user
// independently qualifies for elevated view through role or flag (the
// denylist does not block the explicit hatch).
func (e *Evaluator) ScopeFor(u *domain.User, adminView bool) Scope {
	if u == nil {
		return Scope{Unrestricted: true}
	}
	if e.IsFullAdministrator(u) || (adminView && e.HasElevatedView(u)) {
		return Scope{Unrestricted: true}
	}

	username := u.UsernameLower()
	scope := Scope{CreatorUsername: username}

	if limit, ok := e.gradeLimits[username]; ok {
		scope.CreatorGrades = append([]int(nil), limit...)
	}

	for _, rule := range u.AccessRules {
		scope.Clauses = append(scope.Clauses, e.clauseFor(username, rule))
	}

	return scope
}

func (e *Evaluator) clauseFor(username string, rule domain.AccessRule) Clause {
	var c Clause

	allowlisted := e.isAllowlisted(username)

	if rule.AllowsAllAreas() {
		c.AllAreas = true
		if e.restrictedArea != "" && !allowlisted {
			c.ExcludedAreas = []string{e.restrictedArea}
		}
	} else {
		areas := make([]string, 0, len(rule.LearningAreas))
		for _, a := range rule.LearningAreas {
			if e.isRestricted(a) && !allowlisted {
				continue
			}
			areas = append(areas, fold(a))
		}
		c.Areas = areas
		c.Impossible = len(areas) == 0
	}

	if limit, ok := e.gradeLimits[username]; ok {
		c.Grades = append([]int(nil), limit...)
	} else if len(rule.GradeLevels) > 0 {
		c.Grades = append([]int(nil), rule.GradeLevels...)
	}

	return c
}
