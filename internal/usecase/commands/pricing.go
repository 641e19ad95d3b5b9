package commands

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-api/internal/domain/checkout"
	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/pricing"
	"storefront-api/internal/domain/product"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Quoter prices a cart against current catalog and coupon data without writing anything.
type Quoter interface {
	Quote(ctx context.Context, cart checkout.Cart) (pricing.Result, error)
}

type PricingService struct {
	uow   shared.UnitOfWork
	limit int
}

func NewPricingService(uow shared.UnitOfWork, cfg config.CheckoutConfig) *PricingService {
	limit := cfg.ProductLookupLimit
	if limit <= 0 {
		limit = 8
	}
	return &PricingService{uow: uow, limit: limit}
}

func (s *PricingService) Quote(ctx context.Context, cart checkout.Cart) (pricing.Result, error) {
	if len(cart.Lines) == 0 {
		return pricing.Result{}, errs.Mark(order.ErrEmptyCart, ErrValidation)
	}

	reads := s.uow.CommandReads()
	catalog := make(pricing.Catalog, len(cart.Lines))
	var mu sync.Mutex
	var cpn *coupon.Coupon

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for _, line := range cart.Lines {
		g.Go(func() error {
			p, err := loadProduct(gctx, reads, line.ProductID)
			if err != nil || p == nil {
				return err
			}
			mu.Lock()
			catalog[p.ID()] = p
			mu.Unlock()
			return nil
		})
	}

	if cart.HasCoupon() {
		g.Go(func() error {
			c, err := loadCoupon(gctx, reads, cart.CouponCode)
			cpn = c
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return pricing.Result{}, err
	}

	res, err := pricing.Calculate(cart.Lines, catalog, cpn)
	if err != nil {
		return pricing.Result{}, classifyPricingErr(err)
	}
	return res, nil
}

// loadProduct returns (nil, nil) for unknown ids; Calculate reports them per line.
func loadProduct(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*product.Product, error) {
	snap, err := reads.ProductByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to load product")
	}

	price, err := product.NewPrice(snap.Price)
	if err != nil {
		return nil, errs.Wrapf(err, "product %s has an unusable price", id)
	}
	return product.Reconstruct(snap.ID, snap.Name, price, snap.Stock, snap.Sold, time.Time{}, time.Time{})
}

func loadCoupon(ctx context.Context, reads shared.CommandReads, code string) (*coupon.Coupon, error) {
	snap, err := reads.CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Newf("coupon %q not found", code), ErrCouponNotFound)
		}
		return nil, errs.Wrap(err, "failed to load coupon")
	}

	return coupon.NewCoupon(snap.ID, snap.Code, snap.DiscountPercent, snap.Active, time.Time{}, time.Time{})
}

func classifyPricingErr(err error) error {
	switch {
	case errors.Is(err, pricing.ErrProductNotFound):
		return errs.Mark(err, ErrProductNotFound)
	case errors.Is(err, pricing.ErrInsufficientStock):
		return errs.Mark(err, ErrInsufficientStock)
	case errors.Is(err, coupon.ErrCouponInactive):
		return errs.Mark(err, ErrCouponInactive)
	default:
		return errs.Mark(err, ErrValidation)
	}
}

// isPricingFailure separates business rejections from infrastructure errors.
func isPricingFailure(err error) bool {
	return errs.IsAny(err, ErrValidation, ErrProductNotFound, ErrInsufficientStock, ErrCouponNotFound, ErrCouponInactive)
}
