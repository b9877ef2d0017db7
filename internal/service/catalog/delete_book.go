package catalog

import (
	"context"
	"fmt"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 5. DeleteBook
// ---------------------------------------------------------------------------

// DeleteBook removes the record identified by code together with its
// remarks. The mutation gate matches UpdateBook.
func (s *Service) DeleteBook(ctx context.Context, code string) error {
	user, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	existing, err := s.books.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if !s.mayMutate(user, existing) {
		return fmt.Errorf("delete book %s: %w", code, domain.ErrForbidden)
	}

	if err := s.books.Delete(ctx, code); err != nil {
		return fmt.Errorf("delete book %s: %w", code, err)
	}

	s.invalidateBooks()
	s.log.InfoContext(ctx, "book deleted",
		"code", code, "deleted_by", user.Username)

	return nil
}
