package catalog

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 3. CreateBook
// ---------------------------------------------------------------------------

// CreateBook inserts a new catalog record owned by the acting user.
// The user's rules must permit the record's (area, grade) pair; the
// creator-ownership fallback never applies to creation.
func (s *Service) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	user, ok := ctxutil.UserFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !s.access.IsFullAdministrator(user) &&
		!s.access.MayAccess(user, input.LearningArea, input.GradeLevel) {
		return nil, fmt.Errorf("create in %s grade %d: %w",
			input.LearningArea, input.GradeLevel, domain.ErrForbidden)
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		code = generateCode()
	}

	status := domain.BookStatus(input.Status)
	if input.Status == "" {
		status = domain.BookStatusForEvaluation
	}

	book := &domain.Book{
		Code:         code,
		Title:        strings.TrimSpace(input.Title),
		LearningArea: strings.TrimSpace(input.LearningArea),
		GradeLevel:   input.GradeLevel,
		Publisher:    strings.TrimSpace(input.Publisher),
		Status:       status,
		IsNew:        input.IsNew,
		TargetDate:   input.TargetDate,
		CreatedBy:    user.Username,
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.invalidateBooks()
	s.log.InfoContext(ctx, "book created",
		"code", created.Code, "created_by", user.Username)

	return created, nil
}

// generateCode mints a catalog code from fresh UUID entropy.
func generateCode() string {
	id := uuid.New()
	return "BK-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}
