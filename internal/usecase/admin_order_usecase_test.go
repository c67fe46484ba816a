package usecase

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminOrderFixture() (*AdminOrderUsecase, *txReposStub) {
	repos := newTxReposStub()
	return NewAdminOrderUsecase(&txManagerStub{repos: repos}), repos
}

func TestAdminUpdateStatus_InvalidStatus(t *testing.T) {
	uc, repos := newAdminOrderFixture()

	err := uc.UpdateStatus(context.Background(), 100, 42, AdminUpdateOrderStatusInput{Status: "REFUNDED"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "invalid status", he.Message)

	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// 小文字で来ても大文字に正規化して受ける
func TestAdminUpdateStatus_NormalizesCase(t *testing.T) {
	uc, repos := newAdminOrderFixture()

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, Status: model.OrderStatusConfirmed}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusShipped).Return(nil)
	repos.auditLogs.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == 100 &&
			l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceID == 42
	})).Return(nil)

	err := uc.UpdateStatus(context.Background(), 100, 42, AdminUpdateOrderStatusInput{Status: "shipped"})
	assert.NoError(t, err)

	repos.orders.AssertExpectations(t)
	repos.auditLogs.AssertExpectations(t)
}

func TestAdminUpdateStatus_SameStatusIsNoop(t *testing.T) {
	uc, repos := newAdminOrderFixture()

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, Status: model.OrderStatusShipped}, nil)

	err := uc.UpdateStatus(context.Background(), 100, 42, AdminUpdateOrderStatusInput{Status: "SHIPPED"})
	assert.NoError(t, err)

	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	repos.auditLogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_OrderNotFound(t *testing.T) {
	uc, repos := newAdminOrderFixture()

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(999)).
		Return(model.Order{}, repo.ErrNotFound)

	err := uc.UpdateStatus(context.Background(), 100, 999, AdminUpdateOrderStatusInput{Status: "SHIPPED"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestGetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	repos := newTxReposStub()
	uc := NewOrderUsecase(&txManagerStub{repos: repos})

	repos.orders.On("FindByID", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, UserID: 7, Status: model.OrderStatusConfirmed}, nil)

	_, err := uc.GetMyOrderDetail(context.Background(), 2, 42)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)

	repos.orderItems.AssertNotCalled(t, "ListByOrderID", mock.Anything, mock.Anything)
}
