package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 6. AddRemark
// ---------------------------------------------------------------------------

// AddRemark attaches a new remark to the record identified by bookCode.
// Remark mutations use the same gate as record mutations on the owning
// book. Transfer state is derived server-side on every write.
func (s *Service) AddRemark(ctx context.Context, bookCode string, input RemarkInput) (*domain.Remark, error) {
	user, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.books.GetByCode(ctx, bookCode)
	if err != nil {
		return nil, fmt.Errorf("add remark: %w", err)
	}

	if !s.mayMutate(user, book) {
		return nil, fmt.Errorf("add remark to %s: %w", bookCode, domain.ErrForbidden)
	}

	rem := &domain.Remark{
		BookCode:  book.Code,
		Text:      strings.TrimSpace(input.Text),
		CreatedBy: user.Username,
		Transfer:  input.Transfer.toDomain(),
	}
	if rem.Transfer != nil {
		rem.Transfer.Derive(s.now(), s.cfg.TransferWindowDays)
	}

	created, err := s.remarks.Create(ctx, rem)
	if err != nil {
		return nil, fmt.Errorf("add remark to %s: %w", bookCode, err)
	}

	s.cache.Invalidate(nsList)
	s.log.InfoContext(ctx, "remark added",
		"book_code", book.Code, "remark_id", created.ID, "created_by", user.Username)

	return created, nil
}

// ---------------------------------------------------------------------------
// 7. UpdateRemark
// ---------------------------------------------------------------------------

// UpdateRemark rewrites an existing remark. A remark reached through a book
// it does not belong to is a forbidden access, not a missing record.
func (s *Service) UpdateRemark(ctx context.Context, bookCode, remarkID string, input RemarkInput) (*domain.Remark, error) {
	user, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	id, err := parseRemarkID(remarkID)
	if err != nil {
		return nil, err
	}

	rem, book, err := s.remarkForMutation(ctx, bookCode, id, user)
	if err != nil {
		return nil, err
	}

	rem.Text = strings.TrimSpace(input.Text)
	rem.Transfer = input.Transfer.toDomain()
	if rem.Transfer != nil {
		rem.Transfer.Derive(s.now(), s.cfg.TransferWindowDays)
	}

	updated, err := s.remarks.Update(ctx, id, rem)
	if err != nil {
		return nil, fmt.Errorf("update remark %s: %w", remarkID, err)
	}

	s.cache.Invalidate(nsList)
	s.log.InfoContext(ctx, "remark updated",
		"book_code", book.Code, "remark_id", id, "updated_by", user.Username)

	return updated, nil
}

// ---------------------------------------------------------------------------
// 8. DeleteRemark
// ---------------------------------------------------------------------------

// DeleteRemark removes a single remark from the record's history.
func (s *Service) DeleteRemark(ctx context.Context, bookCode, remarkID string) error {
	user, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	id, err := parseRemarkID(remarkID)
	if err != nil {
		return err
	}

	_, book, err := s.remarkForMutation(ctx, bookCode, id, user)
	if err != nil {
		return err
	}

	if err := s.remarks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete remark %s: %w", remarkID, err)
	}

	s.cache.Invalidate(nsList)
	s.log.InfoContext(ctx, "remark deleted",
		"book_code", book.Code, "remark_id", id, "deleted_by", user.Username)

	return nil
}

// remarkForMutation loads the remark and its owning book and runs the
// shared checks: the remark must belong to the addressed book and the user
// must pass the book's mutation gate.
func (s *Service) remarkForMutation(ctx context.Context, bookCode string, id uuid.UUID, user *domain.User) (*domain.Remark, *domain.Book, error) {
	rem, err := s.remarks.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("remark %s: %w", id, err)
	}

	if !strings.EqualFold(rem.BookCode, bookCode) {
		return nil, nil, fmt.Errorf("remark %s does not belong to book %s: %w",
			id, bookCode, domain.ErrForbidden)
	}

	book, err := s.books.GetByCode(ctx, rem.BookCode)
	if err != nil {
		return nil, nil, fmt.Errorf("book %s: %w", rem.BookCode, err)
	}

	if !s.mayMutate(user, book) {
		return nil, nil, fmt.Errorf("mutate remarks of %s: %w", book.Code, domain.ErrForbidden)
	}

	return rem, book, nil
}

func parseRemarkID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("remark_id", "must be a valid UUID")
	}
	return id, nil
}
