package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tiffin-service/internal/domain"
)

// OrderRepository defines persistence access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Assign(ctx context.Context, id, deliveryID string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error)
	ListByDelivery(ctx context.Context, deliveryID string) ([]*domain.Order, error)
	ListAll(ctx context.Context, limit int) ([]*domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, subscription_id, account_id, vendor_id, package_id, delivery_id, deliver_on, amount, status, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (subscription_id, account_id, vendor_id, package_id, deliver_on, amount, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		order.SubscriptionID,
		order.AccountID,
		order.VendorID,
		order.PackageID,
		order.DeliverOn,
		order.Amount,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, status, id)
}

func (r *orderRepository) Assign(ctx context.Context, id, deliveryID string) error {
	const query = `UPDATE orders SET delivery_id=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, deliveryID, id)
}

func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE account_id=$1 ORDER BY deliver_on DESC`
	return r.list(ctx, query, accountID)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE vendor_id=$1 ORDER BY deliver_on DESC`
	return r.list(ctx, query, vendorID)
}

func (r *orderRepository) ListByDelivery(ctx context.Context, deliveryID string) ([]*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE delivery_id=$1 ORDER BY deliver_on DESC`
	return r.list(ctx, query, deliveryID)
}

func (r *orderRepository) ListAll(ctx context.Context, limit int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 500
	}
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY deliver_on DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.SubscriptionID,
		&order.AccountID,
		&order.VendorID,
		&order.PackageID,
		&order.DeliveryID,
		&order.DeliverOn,
		&order.Amount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}
