package policy

import (
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

// Evaluator decides allow/deny for (user, area, grade) candidates and
// projects the same rules into a declarative query-time Scope. It never
// returns errors; callers convert denials into domain.ErrForbidden.
type Evaluator struct {
	denylist       map[string]struct{}
	restrictedArea string
	allowlist      map[string]struct{}
	gradeLimits    map[string][]int
}

// NewEvaluator builds an Evaluator from injected Facts, folding every
// username and area for case-insensitive matching.
func NewEvaluator(f Facts) *Evaluator {
	limits := make(map[string][]int, len(f.GradeLimits))
	for name, grades := range f.GradeLimits {
		limits[fold(name)] = append([]int(nil), grades...)
	}

	return &Evaluator{
		denylist:       foldSet(f.AdminDenylist),
		restrictedArea: fold(f.RestrictedArea),
		allowlist:      foldSet(f.RestrictedAreaAllowlist),
		gradeLimits:    limits,
	}
}

// IsFullAdministrator reports whether the user is treated as a full
// administrator. Denylisted accounts are never full administrators no
// matter what role or flag they hold; everyone else qualifies through
// the administrator role or the admin-access flag.
func (e *Evaluator) IsFullAdministrator(u *domain.User) bool {
	if u == nil {
		return false
	}
	if _, denied := e.denylist[u.UsernameLower()]; denied {
		return false
	}
	return e.HasElevatedView(u)
}

// HasElevatedView checks role/flag only, without the denylist. The
// admin-view escape hatch qualifies through this weaker check.
func (e *Evaluator) HasElevatedView(u *domain.User) bool {
	if u == nil {
		return false
	}
	return u.Role == domain.UserRoleAdministrator || u.IsAdminAccess
}

// MayAccess decides whether the user may touch a (learning area, grade
// level) pair. A nil user is a system/internal caller and is always
// allowed. A user with zero rules is denied here; the creator-ownership
// fallback is the caller's concern.
func (e *Evaluator) MayAccess(u *domain.User, area string, grade int) bool {
	if u == nil {
		return true
	}
	if !u.HasRules() {
		return false
	}

	username := u.UsernameLower()
	for _, rule := range u.AccessRules {
		if e.ruleMatches(username, rule, area, grade) {
			return true
		}
	}
	return false
}

// ruleMatches applies one rule with both overrides layered on top:
// the restricted-area allowlist gates the area dimension even through a
// wildcard, and a grade-limit entry replaces the rule's own grade set.
func (e *Evaluator) ruleMatches(username string, rule domain.AccessRule, area string, grade int) bool {
	if !rule.AllowsAllAreas() && !rule.HasArea(area) {
		return false
	}
	if e.isRestricted(area) && !e.isAllowlisted(username) {
		return false
	}
	if limit, ok := e.gradeLimits[username]; ok {
		return containsGrade(limit, grade)
	}
	return rule.HasGrade(grade)
}

// GradeLimit returns the grade-limit override for a username, if any.
func (e *Evaluator) GradeLimit(username string) ([]int, bool) {
	limit, ok := e.gradeLimits[fold(username)]
	return limit, ok
}

func (e *Evaluator) isRestricted(area string) bool {
	return e.restrictedArea != "" && fold(area) == e.restrictedArea
}

func (e *Evaluator) isAllowlisted(usernameLower string) bool {
	_, ok := e.allowlist[usernameLower]
	return ok
}

// RestrictedArea returns the gated area name as loaded (folded), empty
// when the gate is disabled.
func (e *Evaluator) RestrictedArea() string { return e.restrictedArea }

// NarrowAreas strips the restricted area from an explicit area filter for
// users who are neither full administrators nor allowlisted. emptied
// reports that the filter was stripped down to nothing, in which case the
// caller must still produce a filter matching zero records rather than
// dropping the condition.
func (e *Evaluator) NarrowAreas(u *domain.User, areas []string) (narrowed []string, emptied bool) {
	if len(areas) == 0 {
		return nil, false
	}
	if u == nil || e.IsFullAdministrator(u) || e.isAllowlisted(u.UsernameLower()) {
		return areas, false
	}

	narrowed = make([]string, 0, len(areas))
	for _, a := range areas {
		if e.isRestricted(a) {
			continue
		}
		narrowed = append(narrowed, a)
	}
	return narrowed, len(narrowed) == 0
}

// NarrowGrades intersects an explicit grade filter with the user's
// grade-limit override when one exists. An absent filter stays absent;
// the override is already encoded in the access condition.
func (e *Evaluator) NarrowGrades(u *domain.User, grades []int) []int {
	if u == nil || len(grades) == 0 {
		return grades
	}
	limit, ok := e.gradeLimits[u.UsernameLower()]
	if !ok {
		return grades
	}

	out := make([]int, 0, len(grades))
	for _, g := range grades {
		if containsGrade(limit, g) {
			out = append(out, g)
		}
	}
	return out
}

func containsGrade(grades []int, grade int) bool {
	for _, g := range grades {
		if g == grade {
			return true
		}
	}
	return false
}
