package repository

import (
	"app/internal/domain/model"
	"context"
)

type BranchRepository interface {
	List(ctx context.Context) ([]model.Branch, error)
	FindByID(ctx context.Context, id int64) (model.Branch, error)
	Create(ctx context.Context, b model.Branch) (model.Branch, error)
	Update(ctx context.Context, b model.Branch) error
	SoftDelete(ctx context.Context, id int64) error
}
