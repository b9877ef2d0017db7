package domain

// BookFilter contains the caller-supplied listing parameters.
// It is ephemeral: built per request, never persisted.
type BookFilter struct {
	Search        *string
	Statuses      []BookStatus
	LearningAreas []string
	GradeLevels   []int
	Publishers    []string

	// HasRemarks is a tri-state post-join filter:
	// nil = no filter, true = remarks_count > 0, false = remarks_count == 0.
	HasRemarks *bool

	// AdminView is the escape hatch that lifts the access condition for
	// users who independently qualify for elevated view.
	AdminView bool

	SortBy    string
	SortOrder string

	// Page/Limit drive offset pagination; a non-nil Cursor switches to
	// cursor pagination and Page is ignored.
	Page   int
	Limit  int
	Cursor *string
}

// BookQuery is the store-ready form of a BookFilter: explicit filters have
// been narrowed by policy, the cursor has been parsed, and the Emptied
// flags mark filters stripped down to nothing (which must match zero
// records rather than being dropped).
type BookQuery struct {
	Search *string

	Statuses []string

	Areas        []string
	AreasEmptied bool

	Grades        []int
	GradesEmptied bool

	Publishers []string

	HasRemarks *bool

	SortBy    string
	SortOrder string

	Page   int
	Limit  int
	Cursor *int64
}

// Pagination is the page metadata computed for a listing result.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`

	// NextCursor is set in cursor mode when more records may follow.
	NextCursor *string `json:"nextCursor,omitempty"`
}

// FilterOptions enumerates the distinct values available for each
// filterable field, computed over the full unfiltered catalog (the UI
// uses them to populate filter dropdowns).
type FilterOptions struct {
	Statuses      []string `json:"statuses"`
	LearningAreas []string `json:"learningAreas"`
	GradeLevels   []int    `json:"gradeLevels"`
	Publishers    []string `json:"publishers"`
}
