package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細
// unit_priceとline_totalは注文作成時点のスナップショット。商品価格が後で変わっても不変。
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
