package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	//最新のアクティブカートを取得し、無ければ作成（単一の原子的操作）
	GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)

	FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)

	//id＋所有者＋アクティブで1件取得
	FindActiveByIDAndUser(ctx context.Context, cartID int64, userID int64) (model.Cart, error)

	//同上、FOR UPDATE付き。チェックアウト中のカートを固定する
	FindActiveByIDAndUserForUpdate(ctx context.Context, cartID int64, userID int64) (model.Cart, error)

	ListByUserID(ctx context.Context, userID int64) ([]model.Cart, error)

	//ソフトデリート（is_active=false）
	SoftDelete(ctx context.Context, cartID int64) error

	Create(ctx context.Context, userID int64) (model.Cart, error)
}
