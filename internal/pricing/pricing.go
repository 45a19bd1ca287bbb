package pricing

import "github.com/fekuna/perfume-order-service/internal/model"

// Table holds the catalog prices and shipping rule, in whole KRW.
type Table struct {
	PriceSmall            int64
	PriceLarge            int64
	FreeShippingThreshold int64
	ShippingFee           int64
}

// DefaultTable mirrors the shop's published price list.
var DefaultTable = Table{
	PriceSmall:            24000,
	PriceLarge:            48000,
	FreeShippingThreshold: 50000,
	ShippingFee:           3500,
}

type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// Calculate prices qtySmall 10ml and qtyLarge 50ml bottles. Negative quantities count as zero.
func (t Table) Calculate(qtySmall, qtyLarge int) Quote {
	if qtySmall < 0 {
		qtySmall = 0
	}
	if qtyLarge < 0 {
		qtyLarge = 0
	}

	subtotal := int64(qtySmall)*t.PriceSmall + int64(qtyLarge)*t.PriceLarge
	shipping := t.ShippingFee
	if subtotal >= t.FreeShippingThreshold {
		shipping = 0
	}
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

func (t Table) QuoteOrder(o model.Order) Quote {
	return t.Calculate(o.Small.Quantity, o.Large.Quantity)
}

func (t Table) UnitPrice(size model.Size) int64 {
	if size == model.SizeLarge {
		return t.PriceLarge
	}
	return t.PriceSmall
}
