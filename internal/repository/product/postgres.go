package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"product-catalog/internal/domain"
	"product-catalog/internal/factory"
)

// uniqueViolation is the Postgres error code for a unique-constraint
// breach; the sku index makes it the authoritative duplicate signal.
const uniqueViolation = "23505"

const rowColumns = "id, sku, name, price, type, size, weight, height, width, length"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Exists(ctx context.Context, sku string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, sku).Scan(&exists); err != nil {
		r.logger.Printf("product repo: exists sku=%s error=%v", sku, err)
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT ` + rowColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	const q = `SELECT ` + rowColumns + ` FROM products WHERE sku = $1`
	return r.getOne(ctx, q, sku)
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg any) (*domain.Product, error) {
	var row factory.Row
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&row.ID, &row.SKU, &row.Name, &row.Price, &row.Type,
		&row.Size, &row.Weight, &row.Height, &row.Width, &row.Length,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get error=%v", err)
		return nil, err
	}
	return factory.FromRow(row)
}

// Insert maps the variant onto the flat schema. specificColumns is the
// single source of truth for which nullable columns a tag populates;
// every other specific column stays NULL.
func (r *postgresRepo) Insert(ctx context.Context, p *domain.Product) (int64, error) {
	size, weight, height, width, length, err := specificColumns(p)
	if err != nil {
		return 0, err
	}

	const q = `
INSERT INTO products (sku, name, price, type, size, weight, height, width, length)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`
	var id int64
	err = r.pool.QueryRow(ctx, q, p.SKU, p.Name, p.Price, string(p.Type), size, weight, height, width, length).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Printf("product repo: insert sku=%s duplicate", p.SKU)
			return 0, domain.ErrDuplicateSKU
		}
		r.logger.Printf("product repo: insert sku=%s error=%v", p.SKU, err)
		return 0, err
	}
	r.logger.Printf("product repo: inserted sku=%s id=%d type=%s", p.SKU, id, p.Type)
	return id, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + rowColumns + ` FROM products ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var row factory.Row
		if err := rows.Scan(
			&row.ID, &row.SKU, &row.Name, &row.Price, &row.Type,
			&row.Size, &row.Weight, &row.Height, &row.Width, &row.Length,
		); err != nil {
			return nil, err
		}
		p, err := factory.FromRow(row)
		if err != nil {
			r.logger.Printf("product repo: list row id=%d error=%v", row.ID, err)
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) MassDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	const q = `DELETE FROM products WHERE id = ANY($1)`
	tag, err := r.pool.Exec(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: mass delete error=%v", err)
		return 0, err
	}
	r.logger.Printf("product repo: mass delete requested=%d removed=%d", len(ids), tag.RowsAffected())
	return tag.RowsAffected(), nil
}

func specificColumns(p *domain.Product) (size, weight, height, width, length *float64, err error) {
	switch p.Type {
	case domain.TypeDVD:
		size = p.Size
	case domain.TypeBook:
		weight = p.Weight
	case domain.TypeFurniture:
		if p.Dimensions != nil {
			height, width, length = &p.Dimensions.Height, &p.Dimensions.Width, &p.Dimensions.Length
		}
	default:
		err = domain.ErrInvalidArgument
	}
	return
}
