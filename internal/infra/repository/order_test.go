//go:build unit

package repository

import (
	"context"
	"testing"

	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderWriteQueries struct {
	mock.Mock
}

func (m *MockOrderWriteQueries) CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockOrderWriteQueries) CreateOrderLine(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderLineParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockOrderWriteQueries) UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderWriteQueries) DeleteOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestOrderCreate(t *testing.T) {
	o, err := builder.NewOrderBuilder().
		WithLine(uuid.New(), 1, 1999).
		WithCoupon("SAVE10", 10).
		BuildDomain()
	require.NoError(t, err)

	tests := []struct {
		name      string
		headerErr error
		lineErr   error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success - header and every line written"},
		{name: "same idempotency key already ordered", headerErr: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "payment reference already backs an order", headerErr: &pgconn.PgError{Code: "23505", ConstraintName: "orders_payment_reference"}, wantKind: infra.KindDuplicateKey},
		{name: "line references missing product", lineErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "database error", headerErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockOrderWriteQueries)
			mockQueries.On("CreateOrder", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateOrderParams) bool {
				return p.ID == o.ID() && p.NetMinor == o.Amounts().NetMinor && p.CouponCode.String == "SAVE10"
			})).Return(tt.headerErr)
			if tt.headerErr == nil {
				mockQueries.On("CreateOrderLine", mock.Anything, mock.Anything, mock.Anything).Return(tt.lineErr)
			}

			repo := NewOrderRepository(mockQueries)
			err := repo.Create(context.Background(), nil, o)

			if tt.wantKind == "" {
				assert.NoError(t, err)
				mockQueries.AssertNumberOfCalls(t, "CreateOrderLine", len(o.Lines()))
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name     string
		rows     int64
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", rows: 1},
		{name: "status changed by someone else", rows: 0, wantKind: infra.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockOrderWriteQueries)
			mockQueries.On("UpdateOrderStatus", mock.Anything, mock.Anything, sqlc.UpdateOrderStatusParams{
				NextStatus:     order.StatusCancelled.String(),
				ID:             orderID,
				ExpectedStatus: order.StatusPaid.String(),
			}).Return(tt.rows, nil)

			repo := NewOrderRepository(mockQueries)
			err := repo.UpdateStatus(context.Background(), nil, orderID, order.StatusPaid, order.StatusCancelled)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestOrderDelete(t *testing.T) {
	orderID := uuid.New()

	mockQueries := new(MockOrderWriteQueries)
	mockQueries.On("DeleteOrder", mock.Anything, mock.Anything, orderID).Return(int64(0), nil)

	err := NewOrderRepository(mockQueries).Delete(context.Background(), nil, orderID)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	mockQueries.AssertExpectations(t)
}
