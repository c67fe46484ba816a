package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// カテゴリのCRUD。削除はis_activeを落とすだけ。
type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo}
}

type CategoryInput struct {
	Name        string
	Description string
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	c, err := u.categoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if len(in.Description) > 100 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid description")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{
		Name:        name,
		Description: in.Description,
		IsActive:    true,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	err := u.categoryRepo.Update(ctx, model.Category{
		ID:          id,
		Name:        name,
		Description: in.Description,
	})
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, id)
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.categoryRepo.SoftDelete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 支店のCRUD。
type BranchUsecase struct {
	branchRepo repo.BranchRepository
}

func NewBranchUsecase(branchRepo repo.BranchRepository) *BranchUsecase {
	return &BranchUsecase{branchRepo: branchRepo}
}

type BranchInput struct {
	Name    string
	Address string
}

func (u *BranchUsecase) List(ctx context.Context) ([]model.Branch, error) {
	items, err := u.branchRepo.List(ctx)
	if err != nil {
		return []model.Branch{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *BranchUsecase) Get(ctx context.Context, id int64) (model.Branch, error) {
	if id <= 0 {
		return model.Branch{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := u.branchRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Branch{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Branch{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *BranchUsecase) Create(ctx context.Context, in BranchInput) (model.Branch, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return model.Branch{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if len(in.Address) > 100 {
		return model.Branch{}, NewHTTPError(http.StatusBadRequest, "invalid address")
	}

	b, err := u.branchRepo.Create(ctx, model.Branch{
		Name:     name,
		Address:  in.Address,
		IsActive: true,
	})
	if err != nil {
		return model.Branch{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *BranchUsecase) Update(ctx context.Context, id int64, in BranchInput) (model.Branch, error) {
	if id <= 0 {
		return model.Branch{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return model.Branch{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	err := u.branchRepo.Update(ctx, model.Branch{
		ID:      id,
		Name:    name,
		Address: in.Address,
	})
	if err == repo.ErrNotFound {
		return model.Branch{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Branch{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, id)
}

func (u *BranchUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.branchRepo.SoftDelete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
