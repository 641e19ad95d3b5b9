package components

import (
	"storefront-api/internal/handler"
	"storefront-api/internal/handler/api"
	"storefront-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewProductHandler,
		api.NewOrderHandler,
		api.NewReconciliationHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	product *api.ProductHandler,
	order *api.OrderHandler,
	reconciliation *api.ReconciliationHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:           auth,
		Product:        product,
		Order:          order,
		Reconciliation: reconciliation,
	}
}
