package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateListing(ctx context.Context, l *Listing) error
	GetListingByID(ctx context.Context, id string) (*Listing, error)

	// GetActiveListingByVehicle returns the vehicle's active listing, if any.
	GetActiveListingByVehicle(ctx context.Context, vehicleID string) (*Listing, error)

	UpdateListing(ctx context.Context, id string, price float64, description string) error
	UpdateListingStatus(ctx context.Context, id string, status ListingStatus) error

	CreateReservation(ctx context.Context, res *Reservation) error
	GetReservation(ctx context.Context, listingID, customerID string) (*Reservation, error)
	ListReservations(ctx context.Context, listingID string) ([]*Reservation, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) CreateListing(ctx context.Context, l *Listing) error {
	query, args, err := psql.Insert("public.sale_listings").
		Columns("vehicle_id", "employee_id", "price", "description", "status").
		Values(l.VehicleID, l.EmployeeID, l.Price, l.Description, l.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create sale listing query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return fmt.Errorf("create sale listing failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetListingByID(ctx context.Context, id string) (*Listing, error) {
	return r.getListing(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetActiveListingByVehicle(ctx context.Context, vehicleID string) (*Listing, error) {
	return r.getListing(ctx, squirrel.Eq{"vehicle_id": vehicleID, "status": ListingActive})
}

func (r *pgxRepository) getListing(ctx context.Context, where squirrel.Eq) (*Listing, error) {
	query, args, err := psql.Select(
		"id", "vehicle_id", "employee_id", "price", "description", "status", "created_at", "updated_at",
	).
		From("public.sale_listings").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get sale listing query failed: %w", err)
	}

	var l Listing
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.VehicleID, &l.EmployeeID, &l.Price, &l.Description, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get sale listing failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) UpdateListing(ctx context.Context, id string, price float64, description string) error {
	query, args, err := psql.Update("public.sale_listings").
		Set("price", price).
		Set("description", description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update sale listing query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update sale listing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateListingStatus(ctx context.Context, id string, status ListingStatus) error {
	query, args, err := psql.Update("public.sale_listings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update sale listing query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update sale listing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateReservation(ctx context.Context, res *Reservation) error {
	query, args, err := psql.Insert("public.sale_reservations").
		Columns("listing_id", "customer_id", "status").
		Values(res.ListingID, res.CustomerID, res.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetReservation(ctx context.Context, listingID, customerID string) (*Reservation, error) {
	query, args, err := psql.Select("id", "listing_id", "customer_id", "status", "created_at").
		From("public.sale_reservations").
		Where(squirrel.Eq{"listing_id": listingID, "customer_id": customerID, "status": ReservationActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	var res Reservation
	err = r.pool.QueryRow(ctx, query, args...).Scan(&res.ID, &res.ListingID, &res.CustomerID, &res.Status, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) ListReservations(ctx context.Context, listingID string) ([]*Reservation, error) {
	query, args, err := psql.Select("id", "listing_id", "customer_id", "status", "created_at").
		From("public.sale_reservations").
		Where(squirrel.Eq{"listing_id": listingID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ID, &res.ListingID, &res.CustomerID, &res.Status, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, nil
}
