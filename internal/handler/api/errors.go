package api

import (
	"net/http"

	"storefront-api/internal/domain/pricing"
	"storefront-api/internal/handler/httperr"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"
	"storefront-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target error
	status int
	code   string
	msg    string
}

// Checked in order; the first match wins. Marked errors match several sentinels, so the
// more specific outcome has to come first.
var errorMappings = []errorMapping{
	{commands.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, httperr.CodeIdempotencyKeyReused, "Idempotency key was already used with a different request"},
	{commands.ErrCheckoutInProgress, http.StatusConflict, httperr.CodeCheckoutInProgress, "Checkout is already in progress for this idempotency key"},
	{commands.ErrStockConflict, http.StatusConflict, httperr.CodeStockConflict, "Stock ran out while placing the order"},
	{commands.ErrCompensationFailed, http.StatusInternalServerError, httperr.CodeCompensationFailed, "Order could not be placed"},
	{commands.ErrPersistence, http.StatusInternalServerError, httperr.CodePersistence, "Order could not be placed"},
	{commands.ErrValidation, http.StatusBadRequest, httperr.CodeValidation, "Invalid request"},
	{commands.ErrProductNotFound, http.StatusNotFound, httperr.CodeProductNotFound, "Product not found"},
	{commands.ErrInsufficientStock, http.StatusConflict, httperr.CodeInsufficientStock, "Insufficient stock"},
	{commands.ErrCouponNotFound, http.StatusNotFound, httperr.CodeCouponNotFound, "Coupon not found"},
	{commands.ErrCouponInactive, http.StatusBadRequest, httperr.CodeCouponInactive, "Coupon is not active"},
	{commands.ErrPaymentNotConfirmed, http.StatusBadRequest, httperr.CodePaymentNotConfirmed, "Payment has not been confirmed"},
	{shared.ErrGatewayRejected, http.StatusBadRequest, httperr.CodeGatewayRejected, "Payment was rejected"},
	{shared.ErrGatewayUnavailable, http.StatusBadGateway, httperr.CodeGatewayUnavailable, "Payment gateway unavailable"},
	{commands.ErrOrderNotFound, http.StatusNotFound, httperr.CodeNotFound, "Order not found"},
	{queries.ErrOrderNotFound, http.StatusNotFound, httperr.CodeNotFound, "Order not found"},
	{commands.ErrInvalidStatusTransition, http.StatusBadRequest, httperr.CodeInvalidTransition, "Invalid order status transition"},
	{commands.ErrOrderStatusConflict, http.StatusConflict, httperr.CodeStatusConflict, "Order status changed concurrently"},
	{commands.ErrReconciliationJobNotFound, http.StatusNotFound, httperr.CodeNotFound, "Reconciliation job not found"},
	{queries.ErrProductNotFound, http.StatusNotFound, httperr.CodeProductNotFound, "Product not found"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, httperr.CodeValidation, "Invalid cursor"},
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, httperr.CodeUnauthorized, "Invalid email or password"},
	{commands.ErrTokenValidation, http.StatusUnauthorized, httperr.CodeUnauthorized, "Invalid or expired refresh token"},
	{commands.ErrUserNotFound, http.StatusUnauthorized, httperr.CodeUnauthorized, "User not found"},
	{queries.ErrUserNotFound, http.StatusNotFound, httperr.CodeNotFound, "User not found"},
	{commands.ErrUserInactive, http.StatusForbidden, httperr.CodeForbidden, "Account is inactive"},
	{queries.ErrUserInactive, http.StatusForbidden, httperr.CodeForbidden, "Account is inactive"},
}

type errorDetail struct {
	ProductID       string `json:"productId,omitempty"`
	PaymentCaptured bool   `json:"paymentCaptured,omitempty"`
}

// abortWithUsecaseError translates a usecase error into the flat error body.
func abortWithUsecaseError(c *gin.Context, err error) {
	var detail *errorDetail
	var lineErr *pricing.LineError
	if errs.As(err, &lineErr) {
		detail = &errorDetail{ProductID: lineErr.ProductID.String()}
	}
	if errs.Is(err, commands.ErrPaymentCapturedButOrderFailed) {
		if detail == nil {
			detail = &errorDetail{}
		}
		detail.PaymentCaptured = true
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			writeError(c, m.status, m.code, err, m.msg, detail)
			return
		}
	}
	writeError(c, http.StatusInternalServerError, httperr.CodeInternal, err, "Internal server error", detail)
}

func writeError(c *gin.Context, status int, code string, err error, msg string, detail *errorDetail) {
	if detail == nil {
		httperr.AbortWithError(c, status, code, err, msg, nil)
		return
	}
	httperr.AbortWithError(c, status, code, err, msg, detail)
}
