package interval

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

type Repository interface {
	ListByVehicle(ctx context.Context, vehicleID string) ([]*Interval, error)

	// ApplyDiff applies every change in the diff as one unit: either all of
	// them are persisted or none are.
	ApplyDiff(ctx context.Context, vehicleID string, diff Diff) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*Interval, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "vehicle_id", "start_date", "end_date", "price_per_day", "status",
		"coalesce(booking_id::text, '')", "description", "created_at", "updated_at",
	).
		From("public.rent_periods").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		OrderBy("start_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rent periods query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rent periods failed: %w", err)
	}
	defer rows.Close()

	var intervals []*Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(
			&iv.ID, &iv.VehicleID, &iv.Start, &iv.End, &iv.PricePerDay, &iv.Status,
			&iv.BookingID, &iv.Description, &iv.CreatedAt, &iv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rent period failed: %w", err)
		}
		intervals = append(intervals, &iv)
	}

	return intervals, nil
}

func (r *pgxRepository) ApplyDiff(ctx context.Context, vehicleID string, diff Diff) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rent period diff failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := ApplyDiffTx(ctx, tx, diff); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ApplyDiffTx applies a diff inside an existing transaction. The booking
// repository uses it to commit a claim and its booking row atomically.
func ApplyDiffTx(ctx context.Context, tx pgx.Tx, diff Diff) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	for _, id := range diff.Delete {
		query, args, err := psql.Delete("public.rent_periods").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build delete rent period query failed: %w", err)
		}
		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete rent period failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
	}

	for _, iv := range diff.Update {
		query, args, err := psql.Update("public.rent_periods").
			Set("start_date", iv.Start).
			Set("end_date", iv.End).
			Set("price_per_day", iv.PricePerDay).
			Set("status", iv.Status).
			Set("booking_id", nullable(iv.BookingID)).
			Set("description", iv.Description).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": iv.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update rent period query failed: %w", err)
		}
		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return translateConstraint(err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
	}

	for _, iv := range diff.Create {
		query, args, err := psql.Insert("public.rent_periods").
			Columns("id", "vehicle_id", "start_date", "end_date", "price_per_day", "status", "booking_id", "description").
			Values(iv.ID, iv.VehicleID, iv.Start, iv.End, iv.PricePerDay, iv.Status, nullable(iv.BookingID), iv.Description).
			ToSql()
		if err != nil {
			return fmt.Errorf("build create rent period query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return translateConstraint(err)
		}
	}

	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// translateConstraint maps the rent_periods no-overlap exclusion constraint
// to the domain error; anything else is an infrastructure failure.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation, pgerrcode.UniqueViolation:
			return ErrOverlap
		}
	}
	return fmt.Errorf("write rent period failed: %w", err)
}
