// Package user implements the user-identity repository using PostgreSQL.
// Identities are written by an external identity-management flow; this
// repository only reads them, together with their ordered access rules.
package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mdelrosario/textbook-catalog-backend/internal/adapter/postgres"
	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides read access to users backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type userRow struct {
	Username      string `db:"username"`
	DisplayName   string `db:"display_name"`
	Role          string `db:"role"`
	IsAdminAccess bool   `db:"is_admin_access"`
}

type ruleRow struct {
	LearningAreas []string `db:"learning_areas"`
	GradeLevels   []int32  `db:"grade_levels"`
}

// GetByUsername returns the user and their ordered access rules.
// Username matching is case-insensitive.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Select("username", "display_name", "role", "is_admin_access").
		From("users").
		Where("lower(username) = lower(?)", username).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", username)
	}

	rulesSQL, rulesArgs, err := builder.
		Select("learning_areas", "grade_levels").
		From("access_rules").
		Where("lower(username) = lower(?)", username).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get access rules query: %w", err)
	}

	var ruleRows []ruleRow
	if err := pgxscan.Select(ctx, q, &ruleRows, rulesSQL, rulesArgs...); err != nil {
		return nil, fmt.Errorf("access rules for %s: %w", username, err)
	}

	u := &domain.User{
		Username:      row.Username,
		DisplayName:   row.DisplayName,
		Role:          domain.UserRole(row.Role),
		IsAdminAccess: row.IsAdminAccess,
	}
	for _, rr := range ruleRows {
		u.AccessRules = append(u.AccessRules, domain.AccessRule{
			LearningAreas: rr.LearningAreas,
			GradeLevels:   toInts(rr.GradeLevels),
		})
	}

	return u, nil
}

func toInts(in []int32) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
