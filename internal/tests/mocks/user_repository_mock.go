package mocks

import (
	"context"

	"brandsmith/internal/models"
	"brandsmith/internal/repositories"
)

type UserRepositoryMock struct {
	CreateFunc          func(ctx context.Context, u *models.User) error
	FindByIDFunc        func(ctx context.Context, id uint) (*models.User, error)
	FindByTokenHashFunc func(ctx context.Context, hash string) (*models.User, error)
	FindByNameFunc      func(ctx context.Context, name string) (*models.User, error)
	ListFunc            func(ctx context.Context, limit, offset int) ([]models.User, error)
	DeleteFunc          func(ctx context.Context, id uint) error
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *UserRepositoryMock) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepositoryMock) FindByTokenHash(ctx context.Context, hash string) (*models.User, error) {
	if m.FindByTokenHashFunc != nil {
		return m.FindByTokenHashFunc(ctx, hash)
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepositoryMock) FindByName(ctx context.Context, name string) (*models.User, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepositoryMock) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []models.User{}, nil
}

func (m *UserRepositoryMock) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
