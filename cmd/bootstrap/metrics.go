package bootstrap

import (
	"storefront-api/internal/infra/metrics"
	"storefront-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.New,
		func(m *metrics.Metrics) shared.CheckoutObserver { return m },
	),
)
