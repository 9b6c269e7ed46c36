package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	SKU    string
	Name   string
	Price  float64
	Type   string
	Size   *float64
	Weight *float64
	Height *float64
	Width  *float64
	Length *float64
}

func num(v float64) *float64 { return &v }

// Apply inserts one demo product per variant for manual testing. It is
// idempotent via ON CONFLICT on the sku index.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			SKU:   "SKU-DEMO-DVD",
			Name:  "Demo DVD",
			Price: 15.99,
			Type:  "DVD",
			Size:  num(700),
		},
		{
			SKU:    "SKU-DEMO-BOOK",
			Name:   "Demo Book",
			Price:  24.50,
			Type:   "Book",
			Weight: num(1.2),
		},
		{
			SKU:    "SKU-DEMO-DESK",
			Name:   "Demo Desk",
			Price:  199.99,
			Type:   "Furniture",
			Height: num(100),
			Width:  num(50),
			Length: num(75),
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (sku, name, price, type, size, weight, height, width, length)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (sku) DO UPDATE
SET name = EXCLUDED.name,
    price = EXCLUDED.price,
    type = EXCLUDED.type,
    size = EXCLUDED.size,
    weight = EXCLUDED.weight,
    height = EXCLUDED.height,
    width = EXCLUDED.width,
    length = EXCLUDED.length
`
	_, err := pool.Exec(ctx, q, p.SKU, p.Name, p.Price, p.Type, p.Size, p.Weight, p.Height, p.Width, p.Length)
	return err
}
