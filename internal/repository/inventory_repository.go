package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// (product, branch)のアクティブ行が既にあるときの重複エラー
var ErrInventoryExists = errors.New("inventory already exists")

type InventoryRepository interface {
	List(ctx context.Context) ([]model.Inventory, error)
	FindByID(ctx context.Context, id int64) (model.Inventory, error)

	//(product, branch)のアクティブ行が既にあればErrInventoryExists
	Create(ctx context.Context, inv model.Inventory) (model.Inventory, error)

	//数量の現在値を設定
	UpdateQuantity(ctx context.Context, inventoryID int64, quantity int64) error

	SoftDelete(ctx context.Context, id int64) error
}
