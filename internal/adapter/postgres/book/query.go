package book

import (
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/mdelrosario/textbook-catalog-backend/internal/policy"
)

// matchNothing is the predicate for filters that policy stripped down to
// nothing. A stripped filter must still match zero records; silently
// dropping it would widen results beyond policy.
var matchNothing = squirrel.Expr("FALSE")

const (
	remarksExistSQL    = "EXISTS (SELECT 1 FROM remarks r WHERE r.book_code = books.code)"
	remarksNotExistSQL = "NOT EXISTS (SELECT 1 FROM remarks r WHERE r.book_code = books.code)"
)

// buildWhere translates the policy scope and the caller's filters into one
// predicate tree. Building twice from identical inputs yields structurally
// equal trees.
func buildWhere(scope policy.Scope, f *Filter) squirrel.And {
	var where squirrel.And

	if f.Search != nil {
		if term := strings.TrimSpace(*f.Search); term != "" {
			pattern := "%" + term + "%"
			where = append(where, squirrel.Or{
				squirrel.ILike{"learning_area": pattern},
				squirrel.ILike{"publisher": pattern},
				squirrel.ILike{"title": pattern},
			})
		}
	}

	if access := accessCondition(scope); access != nil {
		where = append(where, access)
	}

	if len(f.Statuses) > 0 {
		where = append(where, squirrel.Eq{"status": f.Statuses})
	}

	switch {
	case f.AreasEmptied:
		where = append(where, matchNothing)
	case len(f.Areas) > 0:
		where = append(where, squirrel.Eq{"lower(learning_area)": foldAll(f.Areas)})
	}

	switch {
	case f.GradesEmptied:
		where = append(where, matchNothing)
	case len(f.Grades) > 0:
		where = append(where, squirrel.Eq{"grade_level": f.Grades})
	}

	if len(f.Publishers) > 0 {
		where = append(where, squirrel.Eq{"publisher": f.Publishers})
	}

	if f.HasRemarks != nil {
		if *f.HasRemarks {
			where = append(where, squirrel.Expr(remarksExistSQL))
		} else {
			where = append(where, squirrel.Expr(remarksNotExistSQL))
		}
	}

	return where
}

// accessCondition converts the scope into the visibility predicate:
// any rule clause matches, OR the record's creator is the acting user.
// Returns nil for an unrestricted scope.
func accessCondition(scope policy.Scope) squirrel.Sqlizer {
	if scope.Unrestricted {
		return nil
	}

	var alternatives squirrel.Or
	for _, clause := range scope.Clauses {
		alternatives = append(alternatives, clauseCondition(clause))
	}

	creator := squirrel.And{
		squirrel.Eq{"lower(created_by)": scope.CreatorUsername},
	}
	if len(scope.CreatorGrades) > 0 {
		creator = append(creator, squirrel.Eq{"grade_level": scope.CreatorGrades})
	}
	alternatives = append(alternatives, creator)

	return alternatives
}

// clauseCondition translates one override-adjusted rule clause.
func clauseCondition(c policy.Clause) squirrel.Sqlizer {
	if c.Impossible {
		return matchNothing
	}

	var cond squirrel.And

	if c.AllAreas {
		if len(c.ExcludedAreas) > 0 {
			cond = append(cond, squirrel.NotEq{"lower(learning_area)": c.ExcludedAreas})
		}
	} else {
		cond = append(cond, squirrel.Eq{"lower(learning_area)": c.Areas})
	}

	if len(c.Grades) > 0 {
		cond = append(cond, squirrel.Eq{"grade_level": c.Grades})
	}

	if len(cond) == 0 {
		// Wildcard rule with no exclusions and no grade restriction.
		return squirrel.Expr("TRUE")
	}
	return cond
}

func foldAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
