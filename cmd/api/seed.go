package main

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/logger"
)

var devUsers = []*entity.User{
	{ID: "admin", Name: "Admin", Email: "admin@marketplace.local", Role: entity.RoleAdmin},
	{ID: "alice", Name: "Alice", Email: "alice@marketplace.local", Role: entity.RoleUser},
	{ID: "bob", Name: "Bob", Email: "bob@marketplace.local", Role: entity.RoleUser},
}

var devProducts = []*entity.Product{
	{ID: "1", SellerID: "bob", SellerName: "Bob", Name: "Road Bike", Price: 350, Category: "sports", ImageURL: "https://picsum.photos/seed/1/600/300"},
	{ID: "2", SellerID: "bob", SellerName: "Bob", Name: "Desk Lamp", Price: 25, Category: "home", ImageURL: "https://picsum.photos/seed/2/600/300"},
	{ID: "3", SellerID: "alice", SellerName: "Alice", Name: "Film Camera", Price: 120, Category: "electronics", ImageURL: "https://picsum.photos/seed/3/600/300"},
	{ID: "4", SellerID: "alice", SellerName: "Alice", Name: "Wool Scarf", Price: 18, Category: "fashion", ImageURL: "https://picsum.photos/seed/4/600/300"},
}

// seedDevelopmentData adds the demo users and products that are missing.
func seedDevelopmentData(ctx context.Context, users repository.UserRepository, products repository.ProductRepository) {
	for _, u := range devUsers {
		if _, err := users.GetByID(ctx, u.ID); err == nil {
			continue
		}
		if err := users.Save(ctx, u); err != nil {
			logger.Warn("Seed: failed to save user %s: %v", u.ID, err)
		}
	}

	for _, p := range devProducts {
		if _, err := products.GetByID(ctx, p.ID); err == nil {
			continue
		}
		if err := products.Save(ctx, p); err != nil {
			logger.Warn("Seed: failed to save product %s: %v", p.ID, err)
		}
	}
	logger.Info("Seeded %d development users and %d products", len(devUsers), len(devProducts))
}
