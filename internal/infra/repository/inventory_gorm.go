package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) List(ctx context.Context) ([]model.Inventory, error) {
	var items []model.Inventory
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Inventory{}, err
	}
	return items, nil
}

func (r *InventoryGormRepository) FindByID(ctx context.Context, id int64) (model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Inventory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// (product, branch)のアクティブ行は高々1つ。重複はErrInventoryExists。
func (r *InventoryGormRepository) Create(ctx context.Context, inv model.Inventory) (model.Inventory, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Inventory{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ? AND branch_id = ? AND is_active = ?", inv.ProductID, inv.BranchID, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return repo.ErrInventoryExists
		}
		return tx.Create(&inv).Error
	})
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// 数量の現在値を設定
func (r *InventoryGormRepository) UpdateQuantity(ctx context.Context, inventoryID int64, quantity int64) error {
	res := r.db.WithContext(ctx).Model(&model.Inventory{}).
		Where("id = ? AND is_active = ?", inventoryID, true).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Inventory{}).
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
