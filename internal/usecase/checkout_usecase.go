package usecase

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 決済セッション作成の約束（実体はpayment.Client）
type SessionCreator interface {
	CreateSession(ctx context.Context, in payment.SessionInput) (payment.Session, error)
}

// CheckoutUsecase はカートを不変の注文スナップショットへ変換し、
// 外部プロセッサのホスト型決済セッションを開始する。
type CheckoutUsecase struct {
	tx       repo.TransactionManager
	payments SessionCreator
}

func NewCheckoutUsecase(tx repo.TransactionManager, payments SessionCreator) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, payments: payments}
}

type CheckoutInput struct {
	CartID          int64
	DeliveryAddress string
	Latitude        *float64
	Longitude       *float64
	FrontendBaseURL string
}

type CheckoutOutput struct {
	OrderID          int64  `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

func (u *CheckoutUsecase) InitiateCheckout(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.CartID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart_id")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delivery_address")
	}

	base, err := url.Parse(strings.TrimSpace(in.FrontendBaseURL))
	if err != nil || !base.IsAbs() || base.Host == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid frontend_base_url")
	}
	baseURL := strings.TrimRight(base.String(), "/")

	var orderID int64
	var total decimal.Decimal

	//スナップショット作成はトランザクション。全OrderItemが入るか、注文ごと無かったことになるか。
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カートをid＋所有者＋アクティブで解決（スナップショット中は行ロックで固定）
		cart, err := r.Carts().FindActiveByIDAndUserForUpdate(ctx, in.CartID, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "invalid cart")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//アクティブ明細＋現在価格
		cartItems, err := r.CartItems().ListActiveByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		orderItems := make([]model.OrderItem, 0, len(cartItems))
		sum := decimal.Zero
		now := time.Now()

		for _, ci := range cartItems {
			p, err := r.Products().FindActiveByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid product in cart")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(ci.Quantity))

			//単価と明細合計は注文時点の凍結コピー
			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				UnitPrice: p.Price,
				LineTotal: lineTotal.Round(2),
				CreatedAt: now,
			})

			sum = sum.Add(lineTotal)
		}

		//合計は2桁への四捨五入（round-half-up）
		total = sum.Round(2)
		if total.IsZero() {
			return NewHTTPError(http.StatusBadRequest, "total is zero")
		}

		cartID := cart.ID
		oid, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			CartID:          &cartID,
			Status:          model.OrderStatusPending,
			Total:           total,
			DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
			Latitude:        in.Latitude,
			Longitude:       in.Longitude,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, oid, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderID = oid
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	//セッション作成はコミット後。失敗しても注文はPENDINGのまま残す
	//（照合はプロセッサのexpiredコールバックか帯域外で行う）。
	session, err := u.payments.CreateSession(ctx, payment.SessionInput{
		AmountMinor: total.Shift(2).IntPart(),
		OrderID:     orderID,
		SuccessURL:  baseURL + "/pago/exito",
		CancelURL:   baseURL + "/pago/cancelado",
	})
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "payment service error")
	}

	return CheckoutOutput{
		OrderID:          orderID,
		PaymentSessionID: session.ID,
	}, nil
}
