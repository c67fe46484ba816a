package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。カテゴリに属し、支店とは在庫(Inventory)を介した多対多。
type Product struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID int64  `gorm:"not null;index" json:"category_id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`

	//商品種別
	Type string `gorm:"type:varchar(50)" json:"type"`

	//寸法（例: "30x40x10cm"）
	Dimensions string `gorm:"type:varchar(100)" json:"dimensions"`

	//価格は小数2桁の固定小数点
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	ImageURL  string    `gorm:"type:varchar(255)" json:"image_url"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
