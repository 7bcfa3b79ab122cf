package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
)

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, page, pageSize int) ([]*Vehicle, int, error)
	UpdateState(ctx context.Context, id string, state lifecycle.State) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, v *Vehicle) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.vehicles").
		Columns("name", "brand", "model", "sub_model", "year", "mileage", "condition", "state").
		Values(v.Name, v.Brand, v.Model, v.SubModel, v.Year, v.Mileage, v.Condition, v.State).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create vehicle query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "brand", "model", "sub_model", "year", "mileage", "condition", "state",
		"created_at", "updated_at",
	).
		From("public.vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get vehicle query failed: %w", err)
	}

	var v Vehicle
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.Name, &v.Brand, &v.Model, &v.SubModel, &v.Year, &v.Mileage, &v.Condition,
		&v.State, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle failed: %w", err)
	}
	return &v, nil
}

func (r *pgxRepository) List(ctx context.Context, page, pageSize int) ([]*Vehicle, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "brand", "model", "sub_model", "year", "mileage", "condition", "state",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.vehicles").
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list vehicles query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles failed: %w", err)
	}
	defer rows.Close()

	var vehicles []*Vehicle
	var total int

	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Brand, &v.Model, &v.SubModel, &v.Year, &v.Mileage, &v.Condition,
			&v.State, &v.CreatedAt, &v.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan vehicle failed: %w", err)
		}
		vehicles = append(vehicles, &v)
	}

	return vehicles, total, nil
}

func (r *pgxRepository) UpdateState(ctx context.Context, id string, state lifecycle.State) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.vehicles").
		Set("state", state).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update vehicle state query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update vehicle state failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
