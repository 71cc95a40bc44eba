package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tiffin-service/internal/domain"
)

// VendorRepository defines persistence access for vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	Update(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Vendor, error)
	ListApproved(ctx context.Context, city string) ([]*domain.Vendor, error)
}

type vendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository returns a Postgres-backed implementation.
func NewVendorRepository(pool *pgxpool.Pool) VendorRepository {
	return &vendorRepository{pool: pool}
}

const vendorColumns = `id, owner_id, name, description, cuisine, city, status, created_at, updated_at`

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
        INSERT INTO vendors (owner_id, name, description, cuisine, city, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		vendor.OwnerID,
		vendor.Name,
		vendor.Description,
		vendor.Cuisine,
		vendor.City,
		vendor.Status,
	).Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)
}

func (r *vendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
        UPDATE vendors SET name=$1, description=$2, cuisine=$3, city=$4, status=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		vendor.Name,
		vendor.Description,
		vendor.Cuisine,
		vendor.City,
		vendor.Status,
		vendor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	const query = `SELECT ` + vendorColumns + ` FROM vendors WHERE id=$1`
	return scanVendor(r.pool.QueryRow(ctx, query, id))
}

func (r *vendorRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Vendor, error) {
	const query = `SELECT ` + vendorColumns + ` FROM vendors WHERE owner_id=$1`
	return scanVendor(r.pool.QueryRow(ctx, query, ownerID))
}

func (r *vendorRepository) ListApproved(ctx context.Context, city string) ([]*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE status='APPROVED'`
	args := []any{}
	if city != "" {
		query += ` AND city=$1`
		args = append(args, city)
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := row.Scan(
		&vendor.ID,
		&vendor.OwnerID,
		&vendor.Name,
		&vendor.Description,
		&vendor.Cuisine,
		&vendor.City,
		&vendor.Status,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &vendor, nil
}
