package api

import (
	"net/http"
	"strconv"

	reqdto "storefront-api/internal/handler/dto/request"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/handler/httperr"
	"storefront-api/internal/handler/middleware"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type OrderHandler struct {
	checkout commands.CheckoutCommands
	payments commands.PaymentCommands
	orders   commands.OrderCommands
	q        queries.OrderQueries
}

func NewOrderHandler(
	checkout commands.CheckoutCommands,
	payments commands.PaymentCommands,
	orders commands.OrderCommands,
	q queries.OrderQueries,
) *OrderHandler {
	return &OrderHandler{checkout: checkout, payments: payments, orders: orders, q: q}
}

// @Summary Create payment intent
// @Description Price the cart and open a Razorpay order for the net amount
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Checkout idempotency key (UUID)"
// @Param request body reqdto.PaymentIntentRequest true "Cart"
// @Success 200 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /order/razorpay [post]
func (h *OrderHandler) CreatePaymentIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	var req reqdto.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid request", nil)
		return
	}
	cart, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, err.Error(), nil)
		return
	}

	result, err := h.payments.CreateIntent(c.Request.Context(), userID, key, cart)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentIntentResult(result))
}

// @Summary Place order
// @Description Commit a paid cart as an order. Re-submitting the same Idempotency-Key replays the order.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Checkout idempotency key (UUID)"
// @Param request body reqdto.PlaceOrderRequest true "Order"
// @Success 201 {object} resdto.PlaceOrderResponse
// @Success 200 {object} resdto.PlaceOrderResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /order [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}

	var req reqdto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid request", nil)
		return
	}
	checkoutReq, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, err.Error(), nil)
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), userID, key, checkoutReq)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromPlaceOrderResult(result))
}

// @Summary List my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from the previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Router /order [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	after, limit, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.q.ListByUser(c.Request.Context(), userID, after, limit)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderPage(page))
}

// @Summary List all orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Cursor from the previous page"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 403 {object} httperr.Response
// @Router /order/all [get]
func (h *OrderHandler) ListAll(c *gin.Context) {
	after, limit, ok := pageParams(c)
	if !ok {
		return
	}

	page, err := h.q.ListAll(c.Request.Context(), after, limit)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderPage(page))
}

// @Summary Get order
// @Description Owners see their own orders; admins see any order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /order/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.CodeUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actorID, middleware.IsAdmin(c), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /order/status/{id} [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, bindErr, "Invalid request", nil)
		return
	}
	next, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid status", nil)
		return
	}

	o, err := h.orders.ChangeStatus(c.Request.Context(), id, next)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(o))
}

// @Summary Delete order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /order/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid id", nil)
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idempotencyKey(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, nil, "Idempotency-Key header is required", nil)
		return uuid.Nil, false
	}
	key, err := uuid.Parse(raw)
	if err != nil || key == uuid.Nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Idempotency-Key must be a UUID", nil)
		return uuid.Nil, false
	}
	return key, true
}

func pageParams(c *gin.Context) (*queries.Cursor, int, bool) {
	after, err := queries.DecodeCursor(c.Query("cursor"))
	if err != nil {
		abortWithUsecaseError(c, err)
		return nil, 0, false
	}
	limit, ok := intQuery(c, "limit")
	if !ok {
		return nil, 0, false
	}
	return after, limit, true
}

// intQuery returns 0 when the parameter is absent.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.CodeValidation, err, "Invalid "+name, nil)
		return 0, false
	}
	return v, true
}
