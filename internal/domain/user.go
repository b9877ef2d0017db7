package domain

import "strings"

// AreaWildcard in an access rule's learning-area set grants every area.
const AreaWildcard = "*"

// User represents an authenticated application user.
// Identities are created by an external identity-management flow and are
// immutable for the duration of a request.
type User struct {
	Username      string
	DisplayName   string
	Role          UserRole
	IsAdminAccess bool
	AccessRules   []AccessRule
}

// UsernameLower returns the username folded for the case-insensitive
// comparisons used everywhere in the policy layer.
func (u *User) UsernameLower() string {
	return strings.ToLower(strings.TrimSpace(u.Username))
}

// HasRules reports whether the user holds at least one access rule.
// Zero rules is a distinct policy state from a rule with empty sets.
func (u *User) HasRules() bool {
	return len(u.AccessRules) > 0
}

// AccessRule grants visibility and mutation rights over a set of learning
// areas crossed with a set of grade levels. An area set containing
// AreaWildcard means every area; an empty grade set means every grade.
type AccessRule struct {
	LearningAreas []string
	GradeLevels   []int
}

// AllowsAllAreas reports whether the rule's area set contains the wildcard.
func (r AccessRule) AllowsAllAreas() bool {
	for _, a := range r.LearningAreas {
		if a == AreaWildcard {
			return true
		}
	}
	return false
}

// HasArea reports whether the rule's area set contains the given area
// literally (case-insensitive). The wildcard is not considered here.
func (r AccessRule) HasArea(area string) bool {
	for _, a := range r.LearningAreas {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
}

// HasGrade reports whether the rule's own grade set permits the grade.
// An empty set permits every grade.
func (r AccessRule) HasGrade(grade int) bool {
	if len(r.GradeLevels) == 0 {
		return true
	}
	for _, g := range r.GradeLevels {
		if g == grade {
			return true
		}
	}
	return false
}
