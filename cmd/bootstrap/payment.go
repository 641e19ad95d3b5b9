package bootstrap

import (
	"log/slog"
	"strings"

	"storefront-api/internal/infra/payment"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) shared.PaymentGateway {
	switch strings.ToLower(cfg.Payment.Provider) {
	case "razorpay":
		if cfg.Payment.KeyID == "" || cfg.Payment.KeySecret == "" {
			panic("PAYMENT_KEY_ID and PAYMENT_KEY_SECRET are required for the razorpay provider")
		}
		return payment.NewRazorpayClient(cfg.Payment, logger)
	case "sandbox":
		logger.Warn("using sandbox payment gateway; intents are marked paid immediately")
		return payment.NewSandboxGateway()
	default:
		panic("unknown PAYMENT_PROVIDER: " + cfg.Payment.Provider)
	}
}
