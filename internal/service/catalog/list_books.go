package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 1. ListBooks
// ---------------------------------------------------------------------------

// ListBooks returns the policy-scoped, filtered page of catalog records
// with remarks attached, plus pagination metadata and filter option sets.
// Results are served from the cache when an identical request by the same
// user is still fresh. An unauthenticated context lists unrestricted;
// transport decides whether anonymous calls reach this far.
func (s *Service) ListBooks(ctx context.Context, filter domain.BookFilter) (*ListResult, error) {
	user, _ := ctxutil.UserFromCtx(ctx)

	cursor, err := parseCursor(filter.Cursor)
	if err != nil {
		return nil, err
	}

	username := ""
	if user != nil {
		username = user.UsernameLower()
	}

	key, err := s.cache.Key(nsList, username, filter)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	var cached ListResult
	if s.cache.Get(key, &cached) {
		return &cached, nil
	}

	scope := s.access.ScopeFor(user, filter.AdminView)

	q := domain.BookQuery{
		Search:     filter.Search,
		Statuses:   statusStrings(filter.Statuses),
		Publishers: filter.Publishers,
		HasRemarks: filter.HasRemarks,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
		Page:       filter.Page,
		Limit:      clampLimit(filter.Limit, 1, 100, 20),
		Cursor:     cursor,
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	// Explicit filters are narrowed by policy unless the scope is already
	// unrestricted; a stripped-to-nothing filter must match zero records.
	if scope.Unrestricted {
		q.Areas = filter.LearningAreas
		q.Grades = filter.GradeLevels
	} else {
		q.Areas, q.AreasEmptied = s.access.NarrowAreas(user, filter.LearningAreas)
		q.Grades = s.access.NarrowGrades(user, filter.GradeLevels)
		q.GradesEmptied = len(filter.GradeLevels) > 0 && len(q.Grades) == 0
	}

	result := &ListResult{}

	if q.Cursor != nil {
		books, total, err := s.books.FindCursor(ctx, scope, q)
		if err != nil {
			return nil, fmt.Errorf("list books (cursor): %w", err)
		}
		result.Books = books
		result.Pagination = cursorPagination(books, total, q)
	} else {
		books, total, err := s.books.Find(ctx, scope, q)
		if err != nil {
			return nil, fmt.Errorf("list books (offset): %w", err)
		}
		result.Books = books
		result.Pagination = offsetPagination(total, q)
	}

	if err := s.attachRemarks(ctx, result.Books); err != nil {
		return nil, err
	}

	opts, err := s.filterOptions(ctx)
	if err != nil {
		return nil, err
	}
	result.Filters = opts

	s.cache.Set(key, result)

	return result, nil
}

// filterOptions enumerates distinct filter values over the full catalog,
// cached under its own namespace since it is independent of the request.
func (s *Service) filterOptions(ctx context.Context) (domain.FilterOptions, error) {
	key, err := s.cache.Key(nsOptions)
	if err != nil {
		return domain.FilterOptions{}, fmt.Errorf("filter options: %w", err)
	}

	var cached domain.FilterOptions
	if s.cache.Get(key, &cached) {
		return cached, nil
	}

	opts, err := s.books.DistinctFilterValues(ctx)
	if err != nil {
		return domain.FilterOptions{}, fmt.Errorf("filter options: %w", err)
	}

	s.cache.Set(key, opts)
	return opts, nil
}

// attachRemarks loads the remarks for every book on the page in one round
// trip and re-derives transfer state so overdue counters reflect now.
func (s *Service) attachRemarks(ctx context.Context, books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	codes := make([]string, 0, len(books))
	for _, b := range books {
		codes = append(codes, b.Code)
	}

	remarks, err := s.remarks.ListByBookCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("attach remarks: %w", err)
	}

	byCode := make(map[string][]domain.Remark, len(books))
	for _, rem := range remarks {
		if rem.Transfer != nil {
			rem.Transfer.Derive(s.now(), s.cfg.TransferWindowDays)
		}
		byCode[rem.BookCode] = append(byCode[rem.BookCode], rem)
	}

	for i := range books {
		books[i].Remarks = byCode[books[i].Code]
		books[i].RemarksCount = len(books[i].Remarks)
	}

	return nil
}

func parseCursor(raw *string) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil || id < 0 {
		return nil, domain.NewValidationError("cursor", "must be a numeric record cursor")
	}
	return &id, nil
}

func statusStrings(statuses []domain.BookStatus) []string {
	if len(statuses) == 0 {
		return nil
	}
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.String())
	}
	return out
}

func offsetPagination(total int, q domain.BookQuery) domain.Pagination {
	return domain.Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, q.Limit),
		HasNext:    q.Page*q.Limit < total,
		HasPrev:    q.Page > 1,
	}
}

func cursorPagination(books []domain.Book, total int, q domain.BookQuery) domain.Pagination {
	p := domain.Pagination{
		Page:       1,
		Limit:      q.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, q.Limit),
		HasNext:    len(books) == q.Limit,
		HasPrev:    q.Cursor != nil,
	}
	if p.HasNext && len(books) > 0 {
		next := strconv.FormatInt(books[len(books)-1].ID, 10)
		p.NextCursor = &next
	}
	return p
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
