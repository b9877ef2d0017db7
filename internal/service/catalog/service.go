package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mdelrosario/textbook-catalog-backend/internal/config"
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/internal/policy"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type bookRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Book, error)
	Find(ctx context.Context, scope policy.Scope, q domain.BookQuery) ([]domain.Book, int, error)
	FindCursor(ctx context.Context, scope policy.Scope, q domain.BookQuery) ([]domain.Book, int, error)
	DistinctFilterValues(ctx context.Context) (domain.FilterOptions, error)
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, code string, b *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, code string) error
}

type remarkRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Remark, error)
	ListByBookCodes(ctx context.Context, codes []string) ([]domain.Remark, error)
	Create(ctx context.Context, rem *domain.Remark) (*domain.Remark, error)
	Update(ctx context.Context, id uuid.UUID, rem *domain.Remark) (*domain.Remark, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReassignCode(ctx context.Context, oldCode, newCode string) error
}

type accessEvaluator interface {
	IsFullAdministrator(u *domain.User) bool
	MayAccess(u *domain.User, area string, grade int) bool
	ScopeFor(u *domain.User, adminView bool) policy.Scope
	NarrowAreas(u *domain.User, areas []string) (narrowed []string, emptied bool)
	NarrowGrades(u *domain.User, grades []int) []int
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type resultCache interface {
	Key(namespace string, parts ...any) (string, error)
	Get(key string, dest any) bool
	Set(key string, value any)
	Invalidate(namespace string)
}

// Cache namespaces. Listing pages and filter options are invalidated
// together on every catalog mutation; remark mutations only touch the
// listing namespace because they never change the option sets.
const (
	nsList    = "books:list"
	nsOptions = "books:options"
)

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the catalog business logic: policy-scoped listing,
// record and remark mutations, and result caching.
type Service struct {
	log     *slog.Logger
	books   bookRepo
	remarks remarkRepo
	access  accessEvaluator
	tx      txManager
	cache   resultCache
	cfg     config.CatalogConfig

	now func() time.Time
}

// NewService creates a new Catalog service.
func NewService(
	logger *slog.Logger,
	books bookRepo,
	remarks remarkRepo,
	access accessEvaluator,
	tx txManager,
	cache resultCache,
	cfg config.CatalogConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "catalog"),
		books:   books,
		remarks: remarks,
		access:  access,
		tx:      tx,
		cache:   cache,
		cfg:     cfg,
		now:     time.Now,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// mayMutate is the shared mutation gate: the record's creator, a full
// administrator, or anyone whose rules permit the record's current
// (area, grade) pair.
func (s *Service) mayMutate(u *domain.User, b *domain.Book) bool {
	if strings.EqualFold(b.CreatedBy, u.Username) {
		return true
	}
	if s.access.IsFullAdministrator(u) {
		return true
	}
	return s.access.MayAccess(u, b.LearningArea, b.GradeLevel)
}

func (s *Service) invalidateBooks() {
	s.cache.Invalidate(nsList)
	s.cache.Invalidate(nsOptions)
}

func clampLimit(limit, min, max, def int) int {
	if limit <= 0 {
		return def
	}
	if limit < min {
		return min
	}
	if limit > max {
		return max
	}
	return limit
}
