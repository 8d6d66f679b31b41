package models

import (
	"testing"
	"time"
)

func TestEffectivePriceNoDiscount(t *testing.T) {
	now := time.Now()

	if got := EffectivePrice(100, nil, now); got != 100 {
		t.Errorf("nil discount: got %v, want 100", got)
	}

	zero := &Discount{Amount: 0, Type: DiscountPercentage}
	if got := EffectivePrice(100, zero, now); got != 100 {
		t.Errorf("zero amount: got %v, want 100", got)
	}

	negative := &Discount{Amount: -5, Type: DiscountFixed}
	if got := EffectivePrice(100, negative, now); got != 100 {
		t.Errorf("negative amount: got %v, want 100", got)
	}
}

func TestEffectivePricePercentage(t *testing.T) {
	now := time.Now()

	d := &Discount{Amount: 25, Type: DiscountPercentage}
	if got := EffectivePrice(200, d, now); got != 150 {
		t.Errorf("25%% off 200: got %v, want 150", got)
	}

	// Over 100% floors at zero rather than going negative.
	d = &Discount{Amount: 150, Type: DiscountPercentage}
	if got := EffectivePrice(200, d, now); got != 0 {
		t.Errorf("150%% off 200: got %v, want 0", got)
	}
}

func TestEffectivePriceFixed(t *testing.T) {
	now := time.Now()

	d := &Discount{Amount: 30, Type: DiscountFixed}
	if got := EffectivePrice(100, d, now); got != 70 {
		t.Errorf("30 off 100: got %v, want 70", got)
	}

	// Fixed discounts larger than the price floor at zero.
	d = &Discount{Amount: 500, Type: DiscountFixed}
	if got := EffectivePrice(100, d, now); got != 0 {
		t.Errorf("500 off 100: got %v, want 0", got)
	}
}

func TestEffectivePriceExpiry(t *testing.T) {
	now := time.Now()

	past := now.Add(-time.Hour)
	expired := &Discount{Amount: 50, Type: DiscountPercentage, ValidUntil: &past}
	if got := EffectivePrice(100, expired, now); got != 100 {
		t.Errorf("expired discount: got %v, want 100", got)
	}

	future := now.Add(time.Hour)
	active := &Discount{Amount: 50, Type: DiscountPercentage, ValidUntil: &future}
	if got := EffectivePrice(100, active, now); got != 50 {
		t.Errorf("active discount: got %v, want 50", got)
	}

	// No validUntil means the discount never expires.
	open := &Discount{Amount: 50, Type: DiscountPercentage}
	if got := EffectivePrice(100, open, now); got != 50 {
		t.Errorf("open-ended discount: got %v, want 50", got)
	}
}

func TestEffectivePriceUnknownType(t *testing.T) {
	d := &Discount{Amount: 50, Type: "loyalty"}
	if got := EffectivePrice(100, d, time.Now()); got != 100 {
		t.Errorf("unknown type: got %v, want 100", got)
	}
}
