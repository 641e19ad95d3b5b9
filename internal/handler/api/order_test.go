//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/pricing"
	"storefront-api/internal/domain/user"
	"storefront-api/internal/handler/api"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"
	"storefront-api/internal/usecase/shared"
	"storefront-api/tests/common/builder"
	"storefront-api/tests/common/httptest"
	commandsmock "storefront-api/tests/mock/commands"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCheckout *commandsmock.MockCheckoutCommands
	mockPayments *commandsmock.MockPaymentCommands
	mockOrders   *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	userID       uuid.UUID
	isAdmin      bool
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCheckout = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockOrders = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.userID = uuid.New()
	s.isAdmin = false

	h := api.NewOrderHandler(s.mockCheckout, s.mockPayments, s.mockOrders, s.mockQueries)

	// stands in for RequireAuth
	authed := s.router.Group("/order", func(c *gin.Context) {
		c.Set("user_id", s.userID)
		if s.isAdmin {
			c.Set("user_role", user.RoleAdmin)
		}
		c.Next()
	})
	authed.POST("/razorpay", h.CreatePaymentIntent)
	authed.POST("", h.PlaceOrder)
	authed.GET("", h.ListMine)
	authed.GET("/all", h.ListAll)
	authed.GET("/:id", h.Get)
	authed.PUT("/status/:id", h.UpdateStatus)
	authed.DELETE("/:id", h.Delete)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func placeOrderBody(productID uuid.UUID) map[string]any {
	return map[string]any{
		"paymentReference": "order_TEST0001",
		"lines": []map[string]any{
			{"productId": productID.String(), "quantity": 2},
		},
		"couponCode": "save10",
		"address":    "221B Baker Street, Mumbai",
		"phone":      "+91 98765-43210",
	}
}

func (s *OrderHandlerTestSuite) TestPlaceOrder() {
	url := "/order"
	productID := uuid.New()
	key := uuid.New()
	headers := map[string]string{"Idempotency-Key": key.String()}

	placed, err := builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) {
		b.UserID = s.userID
		b.IdempotencyKey = key
		b.Lines = []builder.OrderLineSpec{{ProductID: productID, Quantity: 2, UnitPriceMinor: 500}}
	}).WithCoupon("SAVE10", 10).BuildDomain()
	s.Require().NoError(err)

	s.Run("成功: 新規注文は201を返す", func() {
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID, key, gomock.Any()).
			DoAndReturn(func(_ any, _, _ uuid.UUID, req checkout.Request) (*commands.PlaceOrderResult, error) {
				s.Equal("SAVE10", req.CouponCode)
				s.Equal("+919876543210", req.Contact.Phone.String())
				s.Equal([]order.CartLine{{ProductID: productID, Quantity: 2}}, req.Lines)
				return &commands.PlaceOrderResult{Order: placed}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, placeOrderBody(productID), headers, "")

		var response resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.False(response.Replayed)
		s.Equal(placed.ID(), response.Order.ID)
		s.Equal("PAID", response.Order.Status)
		s.Equal(int64(1000), response.Order.Gross)
		s.Equal(int64(100), response.Order.Discount)
		s.Equal(int64(900), response.Order.Net)
		s.Require().NotNil(response.Order.CouponCode)
		s.Equal("SAVE10", *response.Order.CouponCode)
		s.Require().Len(response.Order.Lines, 1)
		s.Equal("5.00", response.Order.Lines[0].UnitPrice)
	})

	s.Run("成功: 同じキーの再送は200で同じ注文を返す", func() {
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID, key, gomock.Any()).
			Return(&commands.PlaceOrderResult{Order: placed, Replayed: true}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, placeOrderBody(productID), headers, "")

		var response resdto.PlaceOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
		s.Equal(placed.ID(), response.Order.ID)
	})

	s.Run("失敗: Idempotency-Keyヘッダーが不正", func() {
		testCases := []struct {
			name    string
			headers map[string]string
		}{
			{name: "ヘッダーなし", headers: nil},
			{name: "UUIDでない", headers: map[string]string{"Idempotency-Key": "abc"}},
			{name: "nilのUUID", headers: map[string]string{"Idempotency-Key": uuid.Nil.String()}},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, placeOrderBody(productID), tc.headers, "")
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
			})
		}
	})

	s.Run("失敗: リクエストボディの検証エラー", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "明細が空", mutate: func(m map[string]any) { m["lines"] = []map[string]any{} }},
			{name: "数量0", mutate: func(m map[string]any) {
				m["lines"] = []map[string]any{{"productId": productID.String(), "quantity": 0}}
			}},
			{name: "負の数量", mutate: func(m map[string]any) {
				m["lines"] = []map[string]any{{"productId": productID.String(), "quantity": -1}}
			}},
			{name: "住所なし", mutate: func(m map[string]any) { delete(m, "address") }},
			{name: "空白の住所", mutate: func(m map[string]any) { m["address"] = "   " }},
			{name: "不正な電話番号", mutate: func(m map[string]any) { m["phone"] = "12ab" }},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := placeOrderBody(productID)
				tc.mutate(body)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, headers, "")
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
			})
		}
	})

	s.Run("失敗: ユースケースエラーのマッピング", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedCode   string
		}{
			{"存在しない商品", errs.Mark(&pricing.LineError{ProductID: productID, Err: pricing.ErrProductNotFound}, commands.ErrProductNotFound), http.StatusNotFound, "PRODUCT_NOT_FOUND"},
			{"在庫不足", errs.Mark(&pricing.LineError{ProductID: productID, Err: pricing.ErrInsufficientStock}, commands.ErrInsufficientStock), http.StatusConflict, "INSUFFICIENT_STOCK"},
			{"存在しないクーポン", commands.ErrCouponNotFound, http.StatusNotFound, "COUPON_NOT_FOUND"},
			{"無効なクーポン", commands.ErrCouponInactive, http.StatusBadRequest, "COUPON_INACTIVE"},
			{"決済未確認", commands.ErrPaymentNotConfirmed, http.StatusBadRequest, "PAYMENT_NOT_CONFIRMED"},
			{"ゲートウェイ停止", errs.Mark(errors.New("timeout"), shared.ErrGatewayUnavailable), http.StatusBadGateway, "GATEWAY_UNAVAILABLE"},
			{"キーの再利用", commands.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED"},
			{"処理中", commands.ErrCheckoutInProgress, http.StatusConflict, "CHECKOUT_IN_PROGRESS"},
			{"再送した注文が削除済み", commands.ErrOrderNotFound, http.StatusNotFound, "NOT_FOUND"},
			{"想定外のエラー", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID, key, gomock.Any()).Return(nil, tc.err)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, placeOrderBody(productID), headers, "")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})

	s.Run("失敗: 商品エラーはproductIdを詳細に含む", func() {
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID, key, gomock.Any()).
			Return(nil, errs.Mark(&pricing.LineError{ProductID: productID, Err: pricing.ErrInsufficientStock}, commands.ErrInsufficientStock))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, placeOrderBody(productID), headers, "")
		body := httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "INSUFFICIENT_STOCK")
		s.Equal(productID.String(), body.Detail["productId"])
	})

	s.Run("失敗: 決済済みで在庫競合した場合はpaymentCapturedを返す", func() {
		cause := errs.Mark(errs.Mark(errors.New("decrement failed"), commands.ErrStockConflict), commands.ErrPaymentCapturedButOrderFailed)
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID, key, gomock.Any()).Return(nil, cause)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, placeOrderBody(productID), headers, "")
		body := httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "STOCK_CONFLICT")
		s.Equal(true, body.Detail["paymentCaptured"])
	})

	s.Run("失敗: 補償失敗は500でpaymentCapturedを返す", func() {
		cause := errs.Mark(errs.Mark(errs.Mark(errors.New("insert failed"), commands.ErrPersistence), commands.ErrCompensationFailed), commands.ErrPaymentCapturedButOrderFailed)
		s.mockCheckout.EXPECT().PlaceOrder(gomock.Any(), s.userID, key, gomock.Any()).Return(nil, cause)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, placeOrderBody(productID), headers, "")
		body := httptest.AssertErrorCode(s.T(), rec, http.StatusInternalServerError, "COMPENSATION_FAILED")
		s.Equal(true, body.Detail["paymentCaptured"])
	})
}

func (s *OrderHandlerTestSuite) TestCreatePaymentIntent() {
	url := "/order/razorpay"
	productID := uuid.New()
	key := uuid.New()
	headers := map[string]string{"Idempotency-Key": key.String()}
	body := map[string]any{
		"lines": []map[string]any{
			{"productId": productID.String(), "quantity": 1},
			{"productId": productID.String(), "quantity": 2},
		},
	}

	s.Run("成功: 正味金額のインテントを返す", func() {
		s.mockPayments.EXPECT().CreateIntent(gomock.Any(), s.userID, key, gomock.Any()).
			DoAndReturn(func(_ any, _, _ uuid.UUID, cart checkout.Cart) (*commands.PaymentIntentResult, error) {
				s.Equal([]order.CartLine{{ProductID: productID, Quantity: 3}}, cart.Lines)
				s.False(cart.HasCoupon())
				return &commands.PaymentIntentResult{
					Intent:  &shared.PaymentIntent{Reference: "order_ABC", AmountMinor: 1500, Currency: "INR"},
					Pricing: pricing.Result{GrossMinor: 1500, NetMinor: 1500},
				}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, headers, "")

		var response resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("order_ABC", response.IntentReference)
		s.Equal(int64(1500), response.Amount)
		s.Equal(int64(1500), response.Net)
		s.Equal("INR", response.Currency)
	})

	s.Run("失敗: ゲートウェイ拒否は400", func() {
		s.mockPayments.EXPECT().CreateIntent(gomock.Any(), s.userID, key, gomock.Any()).
			Return(nil, errs.Mark(errors.New("bad request"), shared.ErrGatewayRejected))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, headers, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "GATEWAY_REJECTED")
	})

	s.Run("失敗: 同じキーで別のカートは422", func() {
		s.mockPayments.EXPECT().CreateIntent(gomock.Any(), s.userID, key, gomock.Any()).
			Return(nil, errs.Mark(errors.New("cart changed"), commands.ErrIdempotencyKeyReused))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, headers, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED")
	})

	s.Run("失敗: Idempotency-Keyヘッダーなし", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

func orderView(userID uuid.UUID) *queries.OrderView {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return &queries.OrderView{
		ID:             uuid.New(),
		UserID:         userID,
		IdempotencyKey: uuid.New(),
		Status:         "PAID",
		Lines: []queries.OrderLineView{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("12.5"), LineTotalMinor: 1250},
		},
		GrossMinor: 1250,
		NetMinor:   1250,
		Currency:   "INR",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *OrderHandlerTestSuite) TestListMine() {
	s.Run("成功: 次ページのカーソルを返す", func() {
		v := orderView(s.userID)
		next := &queries.Cursor{CreatedAt: v.CreatedAt, ID: v.ID}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, (*queries.Cursor)(nil), 1).
			Return(&queries.OrderPage{Items: []*queries.OrderView{v}, NextCursor: next}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order?limit=1", nil, "")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Items, 1)
		s.Equal("12.50", response.Items[0].Lines[0].UnitPrice)
		s.Require().NotNil(response.NextCursor)
		s.Equal(next.Encode(), *response.NextCursor)
	})

	s.Run("成功: カーソルを渡すと続きから取得する", func() {
		after := queries.Cursor{CreatedAt: time.UnixMicro(1700000000000000), ID: uuid.New()}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, &after, 0).
			Return(&queries.OrderPage{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order?cursor="+after.Encode(), nil, "")

		var response resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Items)
		s.Nil(response.NextCursor)
	})

	s.Run("失敗: 不正なカーソル", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order?cursor=bm90LWEtY3Vyc29y", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("失敗: 不正なlimit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order?limit=ten", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	s.Run("成功: 自分の注文を取得する", func() {
		v := orderView(s.userID)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, false, v.ID).Return(v, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order/"+v.ID.String(), nil, "")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(v.ID, response.ID)
	})

	s.Run("成功: 管理者フラグを渡す", func() {
		s.isAdmin = true
		defer func() { s.isAdmin = false }()

		v := orderView(uuid.New())
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, true, v.ID).Return(v, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order/"+v.ID.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("失敗: 他人の注文は404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, false, id).Return(nil, queries.ErrOrderNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order/"+id.String(), nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("失敗: 不正なID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/order/not-a-uuid", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

func (s *OrderHandlerTestSuite) TestUpdateStatus() {
	o, err := builder.NewOrderBuilder().BuildDomain()
	s.Require().NoError(err)
	url := "/order/status/" + o.ID().String()

	s.Run("成功: ステータスを更新する", func() {
		cancelled := order.Reconstruct(o.ID(), o.UserID(), o.IdempotencyKey(), o.Lines(), o.Coupon(), o.Amounts(),
			o.Currency(), o.Contact(), order.StatusCancelled, o.PaymentReference(), o.CreatedAt(), o.UpdatedAt())
		s.mockOrders.EXPECT().ChangeStatus(gomock.Any(), o.ID(), order.StatusCancelled).Return(cancelled, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "CANCELLED"}, "")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("CANCELLED", response.Status)
	})

	s.Run("失敗: 未知のステータス", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "SHIPPED"}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("失敗: 許可されない遷移", func() {
		s.mockOrders.EXPECT().ChangeStatus(gomock.Any(), o.ID(), order.StatusPending).
			Return(nil, commands.ErrInvalidStatusTransition)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "PENDING"}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "INVALID_STATUS_TRANSITION")
	})

	s.Run("失敗: 同時更新", func() {
		s.mockOrders.EXPECT().ChangeStatus(gomock.Any(), o.ID(), order.StatusRefunded).
			Return(nil, commands.ErrOrderStatusConflict)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"status": "REFUNDED"}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "ORDER_STATUS_CONFLICT")
	})
}

func (s *OrderHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("成功: 204を返す", func() {
		s.mockOrders.EXPECT().Delete(gomock.Any(), id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/order/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("失敗: 存在しない注文", func() {
		s.mockOrders.EXPECT().Delete(gomock.Any(), id).Return(commands.ErrOrderNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/order/"+id.String(), nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}
