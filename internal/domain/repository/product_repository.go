package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Save(ctx context.Context, product *entity.Product) error
}
