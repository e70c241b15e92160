package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByNameOrSKU(ctx context.Context, name, sku string) (*domain.Product, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
}
