package usecase

import (
	"context"
	"encoding/json"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 在庫のCRUD。(product, branch)のアクティブ行は高々1つ。
type InventoryUsecase struct {
	inventoryRepo repo.InventoryRepository
	productRepo   repo.ProductRepository
	branchRepo    repo.BranchRepository
	auditRepo     repo.AuditLogRepository
}

func NewInventoryUsecase(
	inventoryRepo repo.InventoryRepository,
	productRepo repo.ProductRepository,
	branchRepo repo.BranchRepository,
	auditRepo repo.AuditLogRepository,
) *InventoryUsecase {
	return &InventoryUsecase{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		branchRepo:    branchRepo,
		auditRepo:     auditRepo,
	}
}

type InventoryCreateInput struct {
	ProductID int64
	BranchID  int64
	Quantity  int64
}

type InventoryUpdateInput struct {
	Quantity int64
}

func (u *InventoryUsecase) List(ctx context.Context) ([]model.Inventory, error) {
	items, err := u.inventoryRepo.List(ctx)
	if err != nil {
		return []model.Inventory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *InventoryUsecase) Get(ctx context.Context, id int64) (model.Inventory, error) {
	if id <= 0 {
		return model.Inventory{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := u.inventoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Inventory{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Inventory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return inv, nil
}

func (u *InventoryUsecase) Create(ctx context.Context, in InventoryCreateInput) (model.Inventory, error) {
	if in.Quantity < 0 {
		return model.Inventory{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品と支店の存在＋アクティブチェック
	if _, err := u.productRepo.FindActiveByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return model.Inventory{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		return model.Inventory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if _, err := u.branchRepo.FindByID(ctx, in.BranchID); err != nil {
		if err == repo.ErrNotFound {
			return model.Inventory{}, NewHTTPError(http.StatusBadRequest, "invalid branch_id")
		}
		return model.Inventory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	inv, err := u.inventoryRepo.Create(ctx, model.Inventory{
		ProductID: in.ProductID,
		BranchID:  in.BranchID,
		Quantity:  in.Quantity,
		IsActive:  true,
	})
	if err == repo.ErrInventoryExists {
		return model.Inventory{}, NewHTTPError(http.StatusBadRequest, "inventory already exists")
	}
	if err != nil {
		return model.Inventory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return inv, nil
}

// 数量更新（管理者操作なので監査ログを残す）
func (u *InventoryUsecase) UpdateQuantity(ctx context.Context, actorUserID int64, id int64, in InventoryUpdateInput) (model.Inventory, error) {
	if id <= 0 {
		return model.Inventory{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 0 {
		return model.Inventory{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	before, err := u.inventoryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Inventory{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Inventory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.UpdateQuantity(ctx, id, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return model.Inventory{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Inventory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログはベストエフォート（失敗しても更新は成立）
	beforeJSON, _ := json.Marshal(map[string]int64{"quantity": before.Quantity})
	afterJSON, _ := json.Marshal(map[string]int64{"quantity": in.Quantity})
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionUpdateInventory,
		ResourceType: model.AuditResourceInventory,
		ResourceID:   id,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
	})

	before.Quantity = in.Quantity
	return before, nil
}

func (u *InventoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.inventoryRepo.SoftDelete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
