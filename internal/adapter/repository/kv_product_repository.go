package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/kvstore"
	"marketplace/pkg/errors"
)

type kvProductRepository struct {
	storage repository.Storage
}

func NewKVProductRepository(storage repository.Storage) repository.ProductRepository {
	return &kvProductRepository{storage: storage}
}

func (r *kvProductRepository) load(ctx context.Context) []*entity.Product {
	var products []*entity.Product
	kvstore.LoadJSON(ctx, r.storage, repository.KeyProducts, &products)
	return products
}

func (r *kvProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	for _, p := range r.load(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

// List returns products in catalog insertion order.
func (r *kvProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	return r.load(ctx), nil
}

func (r *kvProductRepository) Save(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		return errors.BadRequest("Product ID is required", nil)
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	products := r.load(ctx)
	replaced := false
	for i, p := range products {
		if p.ID == product.ID {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}

	if err := kvstore.SaveJSON(ctx, r.storage, repository.KeyProducts, products); err != nil {
		return errors.Internal("Failed to save product", err)
	}
	return nil
}
