package product

import (
	"context"

	"product-catalog/internal/domain"
	"product-catalog/internal/factory"
	productrepo "product-catalog/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Create runs the full intake pipeline: validate the record, build the
// variant, reject a taken SKU, insert. The Exists pre-check is a fast
// path only; the unique index is the authority, so a racing insert that
// slips past it still comes back as ErrDuplicateSKU from the store.
func (s *Service) Create(ctx context.Context, record map[string]any) (*domain.Product, error) {
	p, err := factory.FromInput(record)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.Exists(ctx, p.SKU)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateSKU
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) MassDelete(ctx context.Context, ids []int64) (int64, error) {
	return s.repo.MassDelete(ctx, ids)
}
