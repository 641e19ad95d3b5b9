//go:build unit

package repository

import (
	"context"
	"testing"

	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProductWriteQueries struct {
	mock.Mock
}

func (m *MockProductWriteQueries) DecrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.DecrementProductStockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductWriteQueries) IncrementProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.IncrementProductStockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestConditionalDecrement(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name      string
		rows      int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", rows: 1},
		{name: "stock below quantity", rows: 0, wantKind: infra.KindConflict},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockProductWriteQueries)
			mockQueries.On("DecrementProductStock", mock.Anything, mock.Anything, sqlc.DecrementProductStockParams{
				Quantity: 2,
				ID:       productID,
			}).Return(tt.rows, tt.mockError)

			repo := NewProductRepository(mockQueries)
			err := repo.ConditionalDecrement(context.Background(), nil, productID, 2)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestConditionalIncrement(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name      string
		rows      int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", rows: 1},
		{name: "product missing", rows: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockProductWriteQueries)
			mockQueries.On("IncrementProductStock", mock.Anything, mock.Anything, sqlc.IncrementProductStockParams{
				Quantity: 3,
				ID:       productID,
			}).Return(tt.rows, tt.mockError)

			repo := NewProductRepository(mockQueries)
			err := repo.ConditionalIncrement(context.Background(), nil, productID, 3)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}
