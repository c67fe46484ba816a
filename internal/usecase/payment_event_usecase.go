package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"
)

// PaymentEventUsecase はプロセッサからの非同期通知で注文状態を進める。
// 配送はat-least-onceで順序保証もないため、全遷移は冪等。
type PaymentEventUsecase struct {
	tx repo.TransactionManager
}

func NewPaymentEventUsecase(tx repo.TransactionManager) *PaymentEventUsecase {
	return &PaymentEventUsecase{tx: tx}
}

// HandleEvent は検証済みイベントを処理する。
// 対象外のイベント種別はそのまま受領（200）。プロセッサは未受領イベントを再送してくる。
func (u *PaymentEventUsecase) HandleEvent(ctx context.Context, evt payment.Event) error {
	switch evt.Type {
	case payment.EventSessionCompleted, payment.EventSessionExpired:
		// 処理対象
	default:
		return nil
	}

	orderID, ok := evt.OrderID()
	if !ok {
		return NewHTTPError(http.StatusNotFound, "unknown order")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロックで読む。completedとexpiredの再送が同時に来ても
		//後続はコミット済みステータスを見てno-opになる
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "unknown order")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch evt.Type {
		case payment.EventSessionCompleted:
			return u.applyCompleted(ctx, r, o)
		case payment.EventSessionExpired:
			return u.applyExpired(ctx, r, o)
		}
		return nil
	})
}

// PENDING→CONFIRMED。カートを閉じて、新しい空のアクティブカートを同一Txで作る。
func (u *PaymentEventUsecase) applyCompleted(ctx context.Context, r repo.TxRepos, o model.Order) error {
	//再送はno-op（カートの二重差し替えもしない）
	if o.Status == model.OrderStatusConfirmed {
		return nil
	}
	//PENDING以外からは動かさない（受領だけする）
	if o.Status != model.OrderStatusPending {
		return nil
	}

	if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusConfirmed); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.CartID == nil {
		return nil
	}

	//カートが既に非アクティブならそのまま（差し替え済み）
	err := r.Carts().SoftDelete(ctx, *o.CartID)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//「アクティブカートは常に1つ」を保つため、空のカートを作り直す
	if _, err := r.Carts().Create(ctx, o.UserID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// PENDING→CANCELED。カートには触らない。
func (u *PaymentEventUsecase) applyExpired(ctx context.Context, r repo.TxRepos, o model.Order) error {
	if o.Status == model.OrderStatusCanceled {
		return nil
	}
	if o.Status != model.OrderStatusPending {
		return nil
	}

	if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCanceled); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
