package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	GetByID(ctx context.Context, id string) (*Contract, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Contract, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	CreatePayment(ctx context.Context, p *Payment) error

	// GetPendingPayment returns the contract's payment awaiting a decision.
	GetPendingPayment(ctx context.Context, contractID string) (*Payment, error)

	DecidePayment(ctx context.Context, paymentID string, status PaymentStatus) error
	ListPayments(ctx context.Context, contractID string) ([]*Payment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, c *Contract) error {
	query, args, err := psql.Insert("public.contracts").
		Columns("vehicle_id", "customer_id", "employee_id", "kind", "booking_id", "sale_listing_id", "amount", "status").
		Values(c.VehicleID, c.CustomerID, c.EmployeeID, c.Kind, nullable(c.BookingID), nullable(c.SaleListingID), c.Amount, c.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create contract query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create contract failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Contract, error) {
	query, args, err := psql.Select(
		"id", "vehicle_id", "customer_id", "employee_id", "kind",
		"coalesce(booking_id::text, '')", "coalesce(sale_listing_id::text, '')",
		"amount", "status", "created_at", "updated_at",
	).
		From("public.contracts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get contract query failed: %w", err)
	}

	var c Contract
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.VehicleID, &c.CustomerID, &c.EmployeeID, &c.Kind,
		&c.BookingID, &c.SaleListingID, &c.Amount, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contract failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Contract, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	query, args, err := psql.Select(
		"id", "vehicle_id", "customer_id", "employee_id", "kind",
		"coalesce(booking_id::text, '')", "coalesce(sale_listing_id::text, '')",
		"amount", "status", "created_at", "updated_at",
		"count(*) OVER() AS total",
	).
		From("public.contracts").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list contracts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contracts failed: %w", err)
	}
	defer rows.Close()

	var contracts []*Contract
	var total int
	for rows.Next() {
		var c Contract
		if err := rows.Scan(
			&c.ID, &c.VehicleID, &c.CustomerID, &c.EmployeeID, &c.Kind,
			&c.BookingID, &c.SaleListingID, &c.Amount, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan contract failed: %w", err)
		}
		contracts = append(contracts, &c)
	}

	return contracts, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	query, args, err := psql.Update("public.contracts").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update contract query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update contract failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreatePayment(ctx context.Context, p *Payment) error {
	query, args, err := psql.Insert("public.contract_payments").
		Columns("contract_id", "amount", "method", "proof_path", "status").
		Values(p.ContractID, p.Amount, p.Method, p.ProofPath, p.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create payment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create payment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetPendingPayment(ctx context.Context, contractID string) (*Payment, error) {
	query, args, err := psql.Select("id", "contract_id", "amount", "method", "proof_path", "status", "created_at", "decided_at").
		From("public.contract_payments").
		Where(squirrel.Eq{"contract_id": contractID, "status": PaymentChecking}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get pending payment query failed: %w", err)
	}

	var p Payment
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.ContractID, &p.Amount, &p.Method, &p.ProofPath, &p.Status, &p.CreatedAt, &p.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPendingPayment
		}
		return nil, fmt.Errorf("get pending payment failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) DecidePayment(ctx context.Context, paymentID string, status PaymentStatus) error {
	query, args, err := psql.Update("public.contract_payments").
		Set("status", status).
		Set("decided_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": paymentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build decide payment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("decide payment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNoPendingPayment
	}
	return nil
}

func (r *pgxRepository) ListPayments(ctx context.Context, contractID string) ([]*Payment, error) {
	query, args, err := psql.Select("id", "contract_id", "amount", "method", "proof_path", "status", "created_at", "decided_at").
		From("public.contract_payments").
		Where(squirrel.Eq{"contract_id": contractID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments failed: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.ContractID, &p.Amount, &p.Method, &p.ProofPath, &p.Status, &p.CreatedAt, &p.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan payment failed: %w", err)
		}
		payments = append(payments, &p)
	}

	return payments, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
