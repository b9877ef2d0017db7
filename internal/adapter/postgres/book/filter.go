package book

import (
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

// Filter defines parameters for searching and paginating catalog records.
// Explicit caller filters arrive here already narrowed by the policy layer;
// the Emptied flags mark a filter that was stripped down to nothing and
// must therefore match zero records instead of being dropped.
type Filter struct {
	// Search performs ILIKE '%...%' over learning_area, publisher and title.
	Search *string

	Statuses []string

	// Areas is the explicit learning-area filter after the restricted-area
	// strip. AreasEmptied reports a non-empty request stripped to nothing.
	Areas        []string
	AreasEmptied bool

	// Grades is the explicit grade filter after intersection with the
	// grade-limit override. GradesEmptied mirrors AreasEmptied.
	Grades        []int
	GradesEmptied bool

	Publishers []string

	// HasRemarks filters records that have (true) or don't have (false)
	// attached remarks. Derived at query time via EXISTS, never stored.
	HasRemarks *bool

	// SortBy determines the sort column for offset pagination.
	// Default: "created_at".
	SortBy string

	// SortOrder: "asc" or "desc". Default: "desc".
	SortOrder string

	// Page/Limit drive offset pagination. Page starts at 1.
	Page  int
	Limit int

	// Cursor switches to keyset pagination over the strictly-increasing
	// record identifier. When set, Page is ignored.
	Cursor *int64
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// fromQuery maps the store-ready query shape onto the adapter filter.
func fromQuery(q domain.BookQuery) Filter {
	return Filter{
		Search:        q.Search,
		Statuses:      q.Statuses,
		Areas:         q.Areas,
		AreasEmptied:  q.AreasEmptied,
		Grades:        q.Grades,
		GradesEmptied: q.GradesEmptied,
		Publishers:    q.Publishers,
		HasRemarks:    q.HasRemarks,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		Page:          q.Page,
		Limit:         q.Limit,
		Cursor:        q.Cursor,
	}
}

var sortColumns = map[string]string{
	"code":         "code",
	"title":        "title",
	"learningArea": "learning_area",
	"gradeLevel":   "grade_level",
	"publisher":    "publisher",
	"status":       "status",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "createdAt"
	}

	switch f.SortOrder {
	case "asc", "desc":
		// valid
	default:
		f.SortOrder = "desc"
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Page <= 0 {
		f.Page = 1
	}
}

// isCursor returns true if keyset pagination is requested.
func (f *Filter) isCursor() bool {
	return f.Cursor != nil
}

// sortColumn returns the SQL column for the current SortBy value.
func (f *Filter) sortColumn() string {
	return sortColumns[f.SortBy]
}

// orderDir returns the SQL direction keyword.
func (f *Filter) orderDir() string {
	if f.SortOrder == "asc" {
		return "ASC"
	}
	return "DESC"
}
