package response

import (
	"time"

	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	Sold        int32           `json:"sold"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func FromProductView(v *queries.ProductView) (ProductResponse, error) {
	var resp ProductResponse
	if err := copier.Copy(&resp, v); err != nil {
		return ProductResponse{}, err
	}
	return resp, nil
}

func FromProductViews(views []*queries.ProductView, total int64, page, limit int) (ProductListResponse, error) {
	items := make([]ProductResponse, 0, len(views))
	if err := copier.Copy(&items, views); err != nil {
		return ProductListResponse{}, err
	}
	return ProductListResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}
