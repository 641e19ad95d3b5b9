//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/handler/api"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/usecase/queries"
	"storefront-api/tests/common/httptest"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockProductQueries
}

func (s *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockProductQueries(s.mockCtrl)
	h := api.NewProductHandler(s.mockQueries)

	s.router.GET("/product", h.List)
	s.router.GET("/product/:id", h.Get)
}

func (s *ProductHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestProductHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}

func productView() *queries.ProductView {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return &queries.ProductView{
		ID:          uuid.New(),
		Name:        "Ceramic Mug",
		Description: "350ml",
		Price:       decimal.RequireFromString("249.5"),
		Stock:       12,
		Sold:        3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *ProductHandlerTestSuite) TestList() {
	s.Run("成功: ページ指定で一覧を返す", func() {
		v := productView()
		s.mockQueries.EXPECT().List(gomock.Any(), 2, 5).Return([]*queries.ProductView{v}, int64(6), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product?page=2&limit=5", nil, "")

		var response resdto.ProductListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(6), response.Total)
		s.Equal(2, response.Page)
		s.Equal(5, response.Limit)
		s.Require().Len(response.Items, 1)
		s.Equal(v.ID, response.Items[0].ID)
		s.True(v.Price.Equal(response.Items[0].Price))
		s.Equal(int32(12), response.Items[0].Stock)
	})

	s.Run("成功: 既定値と上限に丸める", func() {
		testCases := []struct {
			name          string
			query         string
			expectedPage  int
			expectedLimit int
		}{
			{name: "パラメータなし", query: "", expectedPage: 1, expectedLimit: queries.DefaultListLimit},
			{name: "ページ0", query: "?page=0", expectedPage: 1, expectedLimit: queries.DefaultListLimit},
			{name: "上限を超えるlimit", query: "?limit=1000", expectedPage: 1, expectedLimit: queries.MaxListLimit},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().List(gomock.Any(), tc.expectedPage, tc.expectedLimit).
					Return([]*queries.ProductView{}, int64(0), nil)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product"+tc.query, nil, "")
				httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
			})
		}
	})

	s.Run("失敗: 数値でないページ", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product?page=x", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("失敗: 内部エラー", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), 1, queries.DefaultListLimit).
			Return(nil, int64(0), errors.New("database error"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *ProductHandlerTestSuite) TestGet() {
	s.Run("成功: 商品を返す", func() {
		v := productView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), v.ID).Return(v, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/"+v.ID.String(), nil, "")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Ceramic Mug", response["name"])
		s.Equal("249.5", response["price"])
		s.Contains(response, "createdAt")
	})

	s.Run("失敗: 存在しない商品", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrProductNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/"+id.String(), nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "PRODUCT_NOT_FOUND")
	})

	s.Run("失敗: 不正なID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/123", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}
