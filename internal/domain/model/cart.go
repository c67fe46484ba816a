package model

import "time"

// カート
// 1ユーザーにつきアクティブなカートは1つ。
// 部分ユニークインデックスで同時作成してもDB側で1行に絞られる。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_carts_user_active,unique,where:is_active" json:"user_id"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
