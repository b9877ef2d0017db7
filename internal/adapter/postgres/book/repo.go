// Package book implements the catalog-record repository using PostgreSQL.
// Queries are built with squirrel; the access policy arrives as a
// pre-computed scope and is translated into predicates here rather than
// checked record by record.
package book

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mdelrosario/textbook-catalog-backend/internal/adapter/postgres"
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/internal/policy"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "code", "title", "learning_area", "grade_level", "publisher",
	"status", "is_new", "target_date", "created_by", "created_at", "updated_at",
}

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new book repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type bookRow struct {
	ID           int64      `db:"id"`
	Code         string     `db:"code"`
	Title        string     `db:"title"`
	LearningArea string     `db:"learning_area"`
	GradeLevel   int        `db:"grade_level"`
	Publisher    string     `db:"publisher"`
	Status       string     `db:"status"`
	IsNew        bool       `db:"is_new"`
	TargetDate   *time.Time `db:"target_date"`
	CreatedBy    string     `db:"created_by"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByCode returns a book by its unique code.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select(columns...).
		From("books").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get book query: %w", err)
	}

	var row bookRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "book", code)
	}

	b := toDomainBook(row)
	return &b, nil
}

// Find returns the filtered page in offset mode plus the unpaginated total
// over the same predicate tree.
func (r *Repo) Find(ctx context.Context, scope policy.Scope, q domain.BookQuery) ([]domain.Book, int, error) {
	f := fromQuery(q)
	f.normalize()
	where := buildWhere(scope, &f)

	total, err := r.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	qb := builder.Select(columns...).
		From("books").
		OrderBy(f.sortColumn() + " " + f.orderDir()).
		Offset(uint64((f.Page - 1) * f.Limit)).
		Limit(uint64(f.Limit))
	if len(where) > 0 {
		qb = qb.Where(where)
	}

	books, err := r.list(ctx, qb)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// FindCursor returns the filtered page in keyset mode, ordered by the
// strictly-increasing record identifier. The total is computed over the
// same predicate tree excluding the cursor predicate.
func (r *Repo) FindCursor(ctx context.Context, scope policy.Scope, q domain.BookQuery) ([]domain.Book, int, error) {
	f := fromQuery(q)
	f.normalize()
	where := buildWhere(scope, &f)

	total, err := r.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	qb := builder.Select(columns...).
		From("books").
		OrderBy("id " + f.orderDir()).
		Limit(uint64(f.Limit))
	if len(where) > 0 {
		qb = qb.Where(where)
	}
	if f.Cursor != nil {
		if f.SortOrder == "asc" {
			qb = qb.Where(squirrel.Gt{"id": *f.Cursor})
		} else {
			qb = qb.Where(squirrel.Lt{"id": *f.Cursor})
		}
	}

	books, err := r.list(ctx, qb)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// count runs the unpaginated COUNT for the predicate tree.
func (r *Repo) count(ctx context.Context, where squirrel.And) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	qb := builder.Select("count(*)").From("books")
	if len(where) > 0 {
		qb = qb.Where(where)
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}

	return total, nil
}

func (r *Repo) list(ctx context.Context, qb squirrel.SelectBuilder) ([]domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []bookRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]domain.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, toDomainBook(row))
	}

	return books, nil
}

// DistinctFilterValues enumerates the distinct values of every filterable
// field over the full unfiltered catalog (the UI populates its filter
// dropdowns from this, independent of the current filter).
func (r *Repo) DistinctFilterValues(ctx context.Context) (domain.FilterOptions, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var opts domain.FilterOptions

	queries := []struct {
		sql  string
		dest any
	}{
		{"SELECT DISTINCT status FROM books ORDER BY status", &opts.Statuses},
		{"SELECT DISTINCT learning_area FROM books ORDER BY learning_area", &opts.LearningAreas},
		{"SELECT DISTINCT grade_level FROM books ORDER BY grade_level", &opts.GradeLevels},
		{"SELECT DISTINCT publisher FROM books ORDER BY publisher", &opts.Publishers},
	}
	for _, query := range queries {
		if err := pgxscan.Select(ctx, q, query.dest, query.sql); err != nil {
			return domain.FilterOptions{}, fmt.Errorf("distinct filter values: %w", err)
		}
	}

	return opts, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new book and returns the persisted record.
// A duplicate code results in domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	sql, args, err := builder.Insert("books").
		Columns("code", "title", "learning_area", "grade_level", "publisher",
			"status", "is_new", "target_date", "created_by", "created_at", "updated_at").
		Values(b.Code, b.Title, b.LearningArea, b.GradeLevel, b.Publisher,
			b.Status.String(), b.IsNew, b.TargetDate, b.CreatedBy, now, now).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create book query: %w", err)
	}

	var row bookRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "book", b.Code)
	}

	created := toDomainBook(row)
	return &created, nil
}

// Update rewrites all mutable fields of the book identified by code,
// including a possible code change. The remark cascade for a code change
// is the caller's concern and must share the same transaction.
func (r *Repo) Update(ctx context.Context, code string, b *domain.Book) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Update("books").
		Set("code", b.Code).
		Set("title", b.Title).
		Set("learning_area", b.LearningArea).
		Set("grade_level", b.GradeLevel).
		Set("publisher", b.Publisher).
		Set("status", b.Status.String()).
		Set("is_new", b.IsNew).
		Set("target_date", b.TargetDate).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(squirrel.Eq{"code": code}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update book query: %w", err)
	}

	var row bookRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "book", code)
	}

	updated := toDomainBook(row)
	return &updated, nil
}

// Delete removes a book by code. Its remarks are removed by the
// ON DELETE CASCADE foreign key.
// Returns domain.ErrNotFound if the code does not exist.
func (r *Repo) Delete(ctx context.Context, code string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Delete("books").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete book query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "book", code)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", code, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomainBook(row bookRow) domain.Book {
	return domain.Book{
		ID:           row.ID,
		Code:         row.Code,
		Title:        row.Title,
		LearningArea: row.LearningArea,
		GradeLevel:   row.GradeLevel,
		Publisher:    row.Publisher,
		Status:       domain.BookStatus(row.Status),
		IsNew:        row.IsNew,
		TargetDate:   row.TargetDate,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func joinColumns() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}
