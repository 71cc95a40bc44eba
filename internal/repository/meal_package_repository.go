package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tiffin-service/internal/domain"
)

// MealPackageRepository defines persistence access for meal packages.
type MealPackageRepository interface {
	Create(ctx context.Context, pkg *domain.MealPackage) error
	Update(ctx context.Context, pkg *domain.MealPackage) error
	GetByID(ctx context.Context, id string) (*domain.MealPackage, error)
	ListActive(ctx context.Context) ([]*domain.MealPackage, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.MealPackage, error)
}

type mealPackageRepository struct {
	pool *pgxpool.Pool
}

// NewMealPackageRepository returns a Postgres-backed implementation.
func NewMealPackageRepository(pool *pgxpool.Pool) MealPackageRepository {
	return &mealPackageRepository{pool: pool}
}

const packageColumns = `id, vendor_id, title, description, meal_type, price_per_week, meals_per_week, veg, active, created_at, updated_at`

func (r *mealPackageRepository) Create(ctx context.Context, pkg *domain.MealPackage) error {
	const query = `
        INSERT INTO meal_packages (vendor_id, title, description, meal_type, price_per_week, meals_per_week, veg, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		pkg.VendorID,
		pkg.Title,
		pkg.Description,
		pkg.MealType,
		pkg.PricePerWeek,
		pkg.MealsPerWeek,
		pkg.Veg,
		pkg.Active,
	).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
}

func (r *mealPackageRepository) Update(ctx context.Context, pkg *domain.MealPackage) error {
	const query = `
        UPDATE meal_packages
        SET title=$1, description=$2, meal_type=$3, price_per_week=$4, meals_per_week=$5, veg=$6, active=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		pkg.Title,
		pkg.Description,
		pkg.MealType,
		pkg.PricePerWeek,
		pkg.MealsPerWeek,
		pkg.Veg,
		pkg.Active,
		pkg.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mealPackageRepository) GetByID(ctx context.Context, id string) (*domain.MealPackage, error) {
	const query = `SELECT ` + packageColumns + ` FROM meal_packages WHERE id=$1`
	return scanPackage(r.pool.QueryRow(ctx, query, id))
}

func (r *mealPackageRepository) ListActive(ctx context.Context) ([]*domain.MealPackage, error) {
	const query = `SELECT ` + packageColumns + ` FROM meal_packages WHERE active ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *mealPackageRepository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.MealPackage, error) {
	const query = `SELECT ` + packageColumns + ` FROM meal_packages WHERE vendor_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, vendorID)
}

func (r *mealPackageRepository) list(ctx context.Context, query string, args ...any) ([]*domain.MealPackage, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pkgs []*domain.MealPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, rows.Err()
}

func scanPackage(row pgx.Row) (*domain.MealPackage, error) {
	var pkg domain.MealPackage
	if err := row.Scan(
		&pkg.ID,
		&pkg.VendorID,
		&pkg.Title,
		&pkg.Description,
		&pkg.MealType,
		&pkg.PricePerWeek,
		&pkg.MealsPerWeek,
		&pkg.Veg,
		&pkg.Active,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}
