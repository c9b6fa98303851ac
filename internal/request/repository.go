package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing item requests.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByRequester(ctx context.Context, requesterID string, page, size int) ([]*Request, error)
	ListOthers(ctx context.Context, userID string, page, size int) ([]*Request, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	const query = `
		INSERT INTO public.requests (description, requester_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, req.Description, req.RequesterID).Scan(&req.ID, &req.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrUserNotFound
		}
		return fmt.Errorf("create request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	const query = `
		SELECT id, description, requester_id, created_at
		FROM public.requests
		WHERE id = $1
	`

	var req Request
	err := r.pool.QueryRow(ctx, query, id).Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM public.requests WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check request failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID string, page, size int) ([]*Request, error) {
	return r.list(ctx, squirrel.Eq{"requester_id": requesterID}, page, size)
}

func (r *pgxRepository) ListOthers(ctx context.Context, userID string, page, size int) ([]*Request, error) {
	return r.list(ctx, squirrel.NotEq{"requester_id": userID}, page, size)
}

func (r *pgxRepository) list(ctx context.Context, where squirrel.Sqlizer, page, size int) ([]*Request, error) {
	query, args, err := psql.Select("id", "description", "requester_id", "created_at").
		From("public.requests").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(size)).
		Offset(uint64(page * size)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list requests query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}

	reqs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Request, error) {
		var req Request
		err := row.Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt)
		return &req, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan requests failed: %w", err)
	}
	return reqs, nil
}
