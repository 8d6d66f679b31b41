package models

import "time"

// EffectivePrice resolves a room's nightly price against its discount
// descriptor. An absent, non-positive or expired discount leaves the base
// price unchanged; results never go below zero.
func EffectivePrice(base float64, d *Discount, now time.Time) float64 {
	if d == nil || d.Amount <= 0 {
		return base
	}
	if d.ValidUntil != nil && d.ValidUntil.Before(now) {
		return base
	}

	switch d.Type {
	case DiscountPercentage:
		p := base * (1 - d.Amount/100)
		if p < 0 {
			return 0
		}
		return p
	case DiscountFixed:
		p := base - d.Amount
		if p < 0 {
			return 0
		}
		return p
	default:
		return base
	}
}
