package httperr

import (
	"net/http"

	"storefront-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Machine-readable codes carried next to the human message.
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeProductNotFound        = "PRODUCT_NOT_FOUND"
	CodeCouponNotFound         = "COUPON_NOT_FOUND"
	CodeCouponInactive         = "COUPON_INACTIVE"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeStockConflict          = "STOCK_CONFLICT"
	CodeCheckoutInProgress     = "CHECKOUT_IN_PROGRESS"
	CodeIdempotencyKeyReused   = "IDEMPOTENCY_KEY_REUSED"
	CodePaymentNotConfirmed    = "PAYMENT_NOT_CONFIRMED"
	CodeGatewayRejected        = "GATEWAY_REJECTED"
	CodeGatewayUnavailable     = "GATEWAY_UNAVAILABLE"
	CodeInvalidTransition      = "INVALID_STATUS_TRANSITION"
	CodeStatusConflict         = "ORDER_STATUS_CONFLICT"
	CodePersistence            = "PERSISTENCE_ERROR"
	CodeCompensationFailed     = "COMPENSATION_FAILED"
	CodeInternal               = "INTERNAL_ERROR"
)

// Response is the flat error body: {"error": "...", "code": "..."}.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail any    `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, code string, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status, Error: msg, Code: code, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func Internal() Response {
	return Response{Status: http.StatusInternalServerError, Error: "Internal server error", Code: CodeInternal}
}
