package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	"github.com/SscSPs/team_cfo_backend/internal/utils/pagination"
)

const defaultPageSize = 20

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn in a transaction that is committed only if fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// mapError translates driver errors into application errors. what describes
// the failed operation, e.g. "find spend intent si-1".
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, what, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, "failed to "+what, err)
}

// keyset holds the WHERE fragment and arguments of a keyset-paginated listing.
type keyset struct {
	args []any
}

// arg appends v and returns its placeholder.
func (k *keyset) arg(v any) string {
	k.args = append(k.args, v)
	return "$" + strconv.Itoa(len(k.args))
}

// after returns the cursor condition for the page after nextToken, or "" for the first page.
func (k *keyset) after(nextToken *string, sortColumn, idColumn string) (string, error) {
	if nextToken == nil || *nextToken == "" {
		return "", nil
	}
	sortKey, id, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return "", apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %w", apperrors.ErrValidation, err))
	}
	return fmt.Sprintf(" AND (%s, %s) < (%s, %s)", sortColumn, idColumn, k.arg(sortKey), k.arg(id)), nil
}

// limit appends the fetch size (one more than the page) and returns the LIMIT clause.
func (k *keyset) limit(limit int) (string, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	return " LIMIT " + k.arg(limit+1), limit
}

// pageOf trims the extra row fetched by keyset.limit and builds the next token.
func pageOf[T any](items []T, limit int, key func(T) (time.Time, string)) ([]T, *string) {
	if len(items) <= limit {
		return items, nil
	}
	items = items[:limit]
	return items, pagination.NextToken(items, limit, key)
}
