package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type BranchGormRepository struct {
	db *gorm.DB
}

func NewBranchGormRepository(db *gorm.DB) *BranchGormRepository {
	return &BranchGormRepository{db: db}
}

func (r *BranchGormRepository) List(ctx context.Context) ([]model.Branch, error) {
	var items []model.Branch
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Branch{}, err
	}
	return items, nil
}

func (r *BranchGormRepository) FindByID(ctx context.Context, id int64) (model.Branch, error) {
	var b model.Branch
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Branch{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Branch{}, err
	}
	return b, nil
}

func (r *BranchGormRepository) Create(ctx context.Context, b model.Branch) (model.Branch, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Branch{}, err
	}
	return b, nil
}

func (r *BranchGormRepository) Update(ctx context.Context, b model.Branch) error {
	res := r.db.WithContext(ctx).Model(&model.Branch{}).
		Where("id = ? AND is_active = ?", b.ID, true).
		Updates(map[string]interface{}{
			"name":    b.Name,
			"address": b.Address,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BranchGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Branch{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
