package converter

import (
	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/domain/product"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	amounts := o.Amounts()
	params := sqlc.CreateOrderParams{
		ID:               o.ID(),
		UserID:           o.UserID(),
		IdempotencyKey:   o.IdempotencyKey(),
		Status:           o.Status().String(),
		GrossMinor:       amounts.GrossMinor,
		DiscountMinor:    amounts.DiscountMinor,
		NetMinor:         amounts.NetMinor,
		Currency:         o.Currency(),
		Address:          o.Contact().Address.String(),
		Phone:            o.Contact().Phone.String(),
		PaymentReference: o.PaymentReference(),
		CreatedAt:        pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:        pgconv.TimeToPgtype(o.UpdatedAt()),
	}

	if c := o.Coupon(); c != nil {
		params.CouponCode = pgconv.StringToPgtype(c.Code.String())
		params.CouponPercent = pgtype.Int4{Int32: c.Percent.Value(), Valid: true}
	}

	return params
}

func OrderLinesToCreateParams(o *order.Order) []sqlc.CreateOrderLineParams {
	lines := o.Lines()
	params := make([]sqlc.CreateOrderLineParams, len(lines))
	for i, l := range lines {
		params[i] = sqlc.CreateOrderLineParams{
			OrderID:        o.ID(),
			LineNo:         int32(i + 1),
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      pgconv.NumericFromDecimal(l.UnitPrice.Decimal()),
			LineTotalMinor: l.LineTotalMinor,
		}
	}
	return params
}

func OrderFromRows(row sqlc.Orders, lineRows []sqlc.OrderLines) (*order.Order, error) {
	lines := make([]order.Line, 0, len(lineRows))
	for _, lr := range lineRows {
		amount, err := pgconv.DecimalFromNumeric(lr.UnitPrice)
		if err != nil {
			return nil, err
		}
		price, err := product.NewPrice(amount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, order.Line{
			ProductID:      lr.ProductID,
			Quantity:       lr.Quantity,
			UnitPrice:      price,
			LineTotalMinor: lr.LineTotalMinor,
		})
	}

	status, err := order.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}

	contact, err := order.NewContact(row.Address, row.Phone)
	if err != nil {
		return nil, err
	}

	var applied *coupon.Applied
	if row.CouponCode.Valid {
		code, err := coupon.NewCouponCode(row.CouponCode.String)
		if err != nil {
			return nil, err
		}
		pct, err := coupon.NewPercent(row.CouponPercent.Int32)
		if err != nil {
			return nil, err
		}
		applied = &coupon.Applied{Code: code, Percent: pct}
	}

	return order.Reconstruct(
		row.ID,
		row.UserID,
		row.IdempotencyKey,
		lines,
		applied,
		order.Amounts{GrossMinor: row.GrossMinor, DiscountMinor: row.DiscountMinor, NetMinor: row.NetMinor},
		row.Currency,
		contact,
		status,
		row.PaymentReference,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func OrderViewFromRows(row sqlc.Orders, lineRows []sqlc.OrderLines) (*queries.OrderView, error) {
	view := &queries.OrderView{
		ID:               row.ID,
		UserID:           row.UserID,
		IdempotencyKey:   row.IdempotencyKey,
		Status:           row.Status,
		Lines:            make([]queries.OrderLineView, 0, len(lineRows)),
		CouponCode:       pgconv.StringPtrFromPgtype(row.CouponCode),
		CouponPercent:    pgconv.Int32PtrFromPgtype(row.CouponPercent),
		GrossMinor:       row.GrossMinor,
		DiscountMinor:    row.DiscountMinor,
		NetMinor:         row.NetMinor,
		Currency:         row.Currency,
		Address:          row.Address,
		Phone:            row.Phone,
		PaymentReference: row.PaymentReference,
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}

	for _, lr := range lineRows {
		unitPrice, err := pgconv.DecimalFromNumeric(lr.UnitPrice)
		if err != nil {
			return nil, err
		}
		view.Lines = append(view.Lines, queries.OrderLineView{
			ProductID:      lr.ProductID,
			Quantity:       lr.Quantity,
			UnitPrice:      unitPrice,
			LineTotalMinor: lr.LineTotalMinor,
		})
	}

	return view, nil
}

// GroupLines buckets order lines by order id, keeping line order.
func GroupLines(rows []sqlc.OrderLines) map[uuid.UUID][]sqlc.OrderLines {
	grouped := make(map[uuid.UUID][]sqlc.OrderLines)
	for _, r := range rows {
		grouped[r.OrderID] = append(grouped[r.OrderID], r)
	}
	return grouped
}
