package repository

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infrastructure/kvstore"
	"marketplace/pkg/errors"
)

type kvUserRepository struct {
	storage repository.Storage
}

func NewKVUserRepository(storage repository.Storage) repository.UserRepository {
	return &kvUserRepository{storage: storage}
}

func (r *kvUserRepository) load(ctx context.Context) map[string]*entity.User {
	users := map[string]*entity.User{}
	kvstore.LoadJSON(ctx, r.storage, repository.KeyUsers, &users)
	if users == nil {
		users = map[string]*entity.User{}
	}
	return users
}

func (r *kvUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.load(ctx)[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *kvUserRepository) Save(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		return errors.BadRequest("User ID is required", nil)
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}

	users := r.load(ctx)
	users[user.ID] = user
	if err := kvstore.SaveJSON(ctx, r.storage, repository.KeyUsers, users); err != nil {
		return errors.Internal("Failed to save user", err)
	}
	return nil
}
