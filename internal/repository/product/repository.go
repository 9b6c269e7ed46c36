package product

import (
	"context"

	"product-catalog/internal/domain"
)

type Repository interface {
	Exists(ctx context.Context, sku string) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) (int64, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	MassDelete(ctx context.Context, ids []int64) (int64, error)
}
