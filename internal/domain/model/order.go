package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// 注文。作成後はstatusとupdated_at以外は変更しない。
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//元になったカート（カートは行削除せずis_activeを落とすだけ）
	CartID *int64 `gorm:"index" json:"cart_id"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//合計は明細の qty × unit_price の総和（2桁丸め）
	Total decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`

	DeliveryAddress string    `gorm:"type:varchar(255);not null" json:"delivery_address"`
	Latitude        *float64  `gorm:"type:double precision" json:"latitude"`
	Longitude       *float64  `gorm:"type:double precision" json:"longitude"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// statusが列挙のいずれかか
func IsValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled:
		return true
	default:
		return false
	}
}
