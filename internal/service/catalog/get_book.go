package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 2. GetBook
// ---------------------------------------------------------------------------

// GetBook returns a single catalog record with its remarks. Records outside
// the caller's scope yield domain.ErrForbidden; the ownership fallback
// keeps a creator's own records visible regardless of their rules.
func (s *Service) GetBook(ctx context.Context, code string) (*domain.Book, error) {
	user, _ := ctxutil.UserFromCtx(ctx)

	book, err := s.books.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	if !s.mayView(user, book) {
		return nil, fmt.Errorf("book %s: %w", code, domain.ErrForbidden)
	}

	books := []domain.Book{*book}
	if err := s.attachRemarks(ctx, books); err != nil {
		return nil, err
	}

	return &books[0], nil
}

// mayView mirrors the listing access condition for a single record.
func (s *Service) mayView(u *domain.User, b *domain.Book) bool {
	if u == nil {
		return true
	}
	if s.access.IsFullAdministrator(u) {
		return true
	}
	if strings.EqualFold(b.CreatedBy, u.Username) {
		if grades, ok := s.creatorGrades(u); ok && !containsInt(grades, b.GradeLevel) {
			return false
		}
		return true
	}
	return s.access.MayAccess(u, b.LearningArea, b.GradeLevel)
}

func (s *Service) creatorGrades(u *domain.User) ([]int, bool) {
	scope := s.access.ScopeFor(u, false)
	return scope.CreatorGrades, len(scope.CreatorGrades) > 0
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
