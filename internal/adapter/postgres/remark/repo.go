// Package remark implements the remark (history entry) repository using
// PostgreSQL.
package remark

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mdelrosario/textbook-catalog-backend/internal/adapter/postgres"
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"id", "book_code", "text", "created_by", "created_at", "updated_at",
	"transfer_from", "transfer_to", "transfer_start", "transfer_end",
	"transfer_status", "transfer_days", "overdue_days",
}

// Repo provides remark persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new remark repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type remarkRow struct {
	ID             uuid.UUID  `db:"id"`
	BookCode       string     `db:"book_code"`
	Text           string     `db:"text"`
	CreatedBy      string     `db:"created_by"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	TransferFrom   *string    `db:"transfer_from"`
	TransferTo     *string    `db:"transfer_to"`
	TransferStart  *time.Time `db:"transfer_start"`
	TransferEnd    *time.Time `db:"transfer_end"`
	TransferStatus *string    `db:"transfer_status"`
	TransferDays   *int       `db:"transfer_days"`
	OverdueDays    *int       `db:"overdue_days"`
}

// GetByID returns a remark by its identifier.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Remark, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select(columns...).
		From("remarks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get remark query: %w", err)
	}

	var row remarkRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "remark", id.String())
	}

	rem := toDomainRemark(row)
	return &rem, nil
}

// ListByBookCodes returns every remark owned by the given books, newest
// first. Used by the aggregation stage to attach remarks and counts to a
// listing page in one round trip.
func (r *Repo) ListByBookCodes(ctx context.Context, codes []string) ([]domain.Remark, error) {
	if len(codes) == 0 {
		return []domain.Remark{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Select(columns...).
		From("remarks").
		Where(squirrel.Eq{"book_code": codes}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list remarks query: %w", err)
	}

	var rows []remarkRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list remarks: %w", err)
	}

	remarks := make([]domain.Remark, 0, len(rows))
	for _, row := range rows {
		remarks = append(remarks, toDomainRemark(row))
	}

	return remarks, nil
}

// Create inserts a new remark and returns the persisted record.
func (r *Repo) Create(ctx context.Context, rem *domain.Remark) (*domain.Remark, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	id := uuid.New()

	values := []any{id, rem.BookCode, rem.Text, rem.CreatedBy, now, now}
	values = append(values, transferValues(rem.Transfer)...)

	sql, args, err := builder.Insert("remarks").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create remark query: %w", err)
	}

	var row remarkRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "remark", id.String())
	}

	created := toDomainRemark(row)
	return &created, nil
}

// Update rewrites the remark's text and transfer metadata.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, rem *domain.Remark) (*domain.Remark, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	qb := builder.Update("remarks").
		Set("text", rem.Text).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond))
	qb = setTransfer(qb, rem.Transfer)

	sql, args, err := qb.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update remark query: %w", err)
	}

	var row remarkRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "remark", id.String())
	}

	updated := toDomainRemark(row)
	return &updated, nil
}

// Delete removes a remark by ID.
// Returns domain.ErrNotFound if the remark does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Delete("remarks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete remark query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "remark", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("remark %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ReassignCode repoints every remark from oldCode to newCode. Runs inside
// the same transaction as the owning book's code change.
func (r *Repo) ReassignCode(ctx context.Context, oldCode, newCode string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.Update("remarks").
		Set("book_code", newCode).
		Where(squirrel.Eq{"book_code": oldCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reassign remarks query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "remarks of book", oldCode)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomainRemark(row remarkRow) domain.Remark {
	rem := domain.Remark{
		ID:        row.ID,
		BookCode:  row.BookCode,
		Text:      row.Text,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.TransferFrom != nil && row.TransferTo != nil {
		t := &domain.Transfer{
			FromParty: *row.TransferFrom,
			ToParty:   *row.TransferTo,
			StartDate: row.TransferStart,
			EndDate:   row.TransferEnd,
		}
		if row.TransferStatus != nil {
			t.Status = domain.TransferStatus(*row.TransferStatus)
		}
		if row.TransferDays != nil {
			t.TransferDays = *row.TransferDays
		}
		if row.OverdueDays != nil {
			t.OverdueDays = *row.OverdueDays
		}
		rem.Transfer = t
	}

	return rem
}

// transferValues flattens optional transfer metadata into insert values,
// NULLs when absent.
func transferValues(t *domain.Transfer) []any {
	if t == nil {
		return []any{nil, nil, nil, nil, nil, nil, nil}
	}
	return []any{
		t.FromParty, t.ToParty, t.StartDate, t.EndDate,
		t.Status.String(), t.TransferDays, t.OverdueDays,
	}
}

func setTransfer(qb squirrel.UpdateBuilder, t *domain.Transfer) squirrel.UpdateBuilder {
	if t == nil {
		return qb.Set("transfer_from", nil).
			Set("transfer_to", nil).
			Set("transfer_start", nil).
			Set("transfer_end", nil).
			Set("transfer_status", nil).
			Set("transfer_days", nil).
			Set("overdue_days", nil)
	}
	return qb.Set("transfer_from", t.FromParty).
		Set("transfer_to", t.ToParty).
		Set("transfer_start", t.StartDate).
		Set("transfer_end", t.EndDate).
		Set("transfer_status", t.Status.String()).
		Set("transfer_days", t.TransferDays).
		Set("overdue_days", t.OverdueDays)
}

func joinColumns() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}
