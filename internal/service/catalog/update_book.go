package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 4. UpdateBook
// ---------------------------------------------------------------------------

// UpdateBook replaces the record identified by code. Moving a record to a
// different (area, grade) pair requires access to BOTH the current and the
// target pair, except for the record's creator and full administrators.
// A code change cascades atomically to the record's remarks.
func (s *Service) UpdateBook(ctx context.Context, code string, input UpdateBookInput) (*domain.Book, error) {
	user, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.books.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	if !s.mayMutate(user, existing) {
		return nil, fmt.Errorf("update book %s: %w", code, domain.ErrForbidden)
	}

	relocated := !strings.EqualFold(existing.LearningArea, input.LearningArea) ||
		existing.GradeLevel != input.GradeLevel
	if relocated &&
		!strings.EqualFold(existing.CreatedBy, user.Username) &&
		!s.access.IsFullAdministrator(user) &&
		!s.access.MayAccess(user, input.LearningArea, input.GradeLevel) {
		return nil, fmt.Errorf("move book %s to %s grade %d: %w",
			code, input.LearningArea, input.GradeLevel, domain.ErrForbidden)
	}

	book := &domain.Book{
		Code:         strings.ToUpper(strings.TrimSpace(input.Code)),
		Title:        strings.TrimSpace(input.Title),
		LearningArea: strings.TrimSpace(input.LearningArea),
		GradeLevel:   input.GradeLevel,
		Publisher:    strings.TrimSpace(input.Publisher),
		Status:       domain.BookStatus(input.Status),
		IsNew:        input.IsNew,
		TargetDate:   input.TargetDate,
	}

	var updated *domain.Book
	if book.Code != existing.Code {
		// Renaming the code repoints every owned remark in the same
		// transaction; a half-applied rename would orphan them.
		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			updated, err = s.books.Update(txCtx, code, book)
			if err != nil {
				return err
			}
			return s.remarks.ReassignCode(txCtx, existing.Code, book.Code)
		})
	} else {
		updated, err = s.books.Update(ctx, code, book)
	}
	if err != nil {
		return nil, fmt.Errorf("update book %s: %w", code, err)
	}

	s.invalidateBooks()
	s.log.InfoContext(ctx, "book updated",
		"code", updated.Code, "updated_by", user.Username)

	return updated, nil
}
