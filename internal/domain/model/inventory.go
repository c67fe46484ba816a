package model

import "time"

// 在庫。(product_id, branch_id)の組はアクティブ行が高々1つ。
type Inventory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_inventories_product_branch" json:"product_id"`
	BranchID  int64     `gorm:"not null;uniqueIndex:idx_inventories_product_branch" json:"branch_id"`
	Quantity  int64     `gorm:"not null;default:0" json:"quantity"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
