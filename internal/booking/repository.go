package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateWithClaim persists the booking together with the rent period
	// diff its claim produced, as one atomic write.
	CreateWithClaim(ctx context.Context, b *Booking, diff interval.Diff) error

	// UpdateWithRelease persists the booking's new status together with the
	// rent period diff its release produced, as one atomic write.
	UpdateWithRelease(ctx context.Context, b *Booking, diff interval.Diff) error

	GetByID(ctx context.Context, id string) (*Booking, error)

	// HasActive reports whether the customer already holds an active booking
	// on the vehicle. One active booking per customer per vehicle.
	HasActive(ctx context.Context, vehicleID, customerID string) (bool, error)

	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) CreateWithClaim(ctx context.Context, b *Booking, diff interval.Diff) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking failed: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql.Insert("public.bookings").
		Columns("id", "vehicle_id", "customer_id", "start_date", "end_date", "total_price", "status").
		Values(b.ID, b.VehicleID, b.CustomerID, b.Start, b.End, b.TotalPrice, b.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := interval.ApplyDiffTx(ctx, tx, diff); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) UpdateWithRelease(ctx context.Context, b *Booking, diff interval.Diff) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update booking failed: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}
	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := interval.ApplyDiffTx(ctx, tx, diff); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := psql.Select(
		"id", "vehicle_id", "customer_id", "start_date", "end_date", "total_price", "status", "created_at", "updated_at",
	).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.VehicleID, &b.CustomerID, &b.Start, &b.End, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	return &b, nil
}

func (r *pgxRepository) HasActive(ctx context.Context, vehicleID, customerID string) (bool, error) {
	query, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"vehicle_id": vehicleID, "customer_id": customerID, "status": StatusActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build duplicate booking query failed: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check duplicate booking failed: %w", err)
	}
	return true, nil
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	query, args, err := psql.Select(
		"id", "vehicle_id", "customer_id", "start_date", "end_date", "total_price", "status", "created_at", "updated_at",
		"count(*) OVER() AS total",
	).
		From("public.bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.VehicleID, &b.CustomerID, &b.Start, &b.End, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}
