package order

import (
	"github.com/shopspring/decimal"

	"github.com/RomanVol/hagada-catering/internal/enum"
	"github.com/RomanVol/hagada-catering/internal/selection"
)

// PricingFields are the order-level scalars the total is computed from. They
// are stored on the order; the total itself never is.
type PricingFields struct {
	TotalPortions   int32
	PricePerPortion decimal.Decimal
	DeliveryFee     decimal.Decimal
}

// Breakdown is the derived price of an order. Recomputed from current state
// on every read, never cached.
type Breakdown struct {
	PortionsTotal decimal.Decimal // portions × per-portion rate
	DeliveryFee   decimal.Decimal
	OverlayTotal  decimal.Decimal // Σ extras-overlay entry prices
	ExtrasTotal   decimal.Decimal // Σ extras-category item prices
	Total         decimal.Decimal
}

// Price derives the payable total:
//
//	portions × rate + delivery fee + Σ overlay prices + Σ extras-category prices
func Price(p PricingFields, s *selection.Session) Breakdown {
	b := Breakdown{
		PortionsTotal: p.PricePerPortion.Mul(decimal.NewFromInt32(p.TotalPortions)),
		DeliveryFee:   p.DeliveryFee,
		OverlayTotal:  s.Overlay.TotalPrice(),
		ExtrasTotal:   decimal.Zero,
	}
	for _, e := range s.Store(enum.CategoryExtras).Entries() {
		if e.Selected && e.Price != nil {
			b.ExtrasTotal = b.ExtrasTotal.Add(*e.Price)
		}
	}
	b.Total = b.PortionsTotal.Add(b.DeliveryFee).Add(b.OverlayTotal).Add(b.ExtrasTotal)
	return b
}
