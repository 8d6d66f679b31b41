package models

import (
	"testing"
	"time"
)

func baseOffer(now time.Time) Offer {
	return Offer{
		IsActive:  true,
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}
}

func TestOfferIsCurrentlyValid(t *testing.T) {
	now := time.Now()

	offer := baseOffer(now)
	if !offer.IsCurrentlyValid(now) {
		t.Error("active offer inside window must be valid")
	}

	inactive := baseOffer(now)
	inactive.IsActive = false
	if inactive.IsCurrentlyValid(now) {
		t.Error("inactive offer must not be valid")
	}

	notStarted := baseOffer(now)
	notStarted.StartDate = now.Add(time.Hour)
	if notStarted.IsCurrentlyValid(now) {
		t.Error("future offer must not be valid yet")
	}

	ended := baseOffer(now)
	ended.EndDate = now.Add(-time.Hour)
	if ended.IsCurrentlyValid(now) {
		t.Error("ended offer must not be valid")
	}
}

func TestOfferUsageLimit(t *testing.T) {
	now := time.Now()

	limit := int64(100)
	offer := baseOffer(now)
	offer.UsageLimit = &limit
	offer.UsedCount = 99
	if !offer.IsCurrentlyValid(now) {
		t.Error("offer under its usage limit must be valid")
	}

	offer.UsedCount = 100
	if offer.IsCurrentlyValid(now) {
		t.Error("exhausted offer must not be valid")
	}

	// nil limit means unlimited use.
	unlimited := baseOffer(now)
	unlimited.UsedCount = 1 << 20
	if !unlimited.IsCurrentlyValid(now) {
		t.Error("offer without a usage limit must stay valid")
	}
}

func TestOfferDaysRemaining(t *testing.T) {
	now := time.Now()

	offer := baseOffer(now)
	offer.EndDate = now.Add(49 * time.Hour)
	if got := offer.DaysRemaining(now); got != 3 {
		t.Errorf("49h remaining: got %d, want 3", got)
	}

	offer.EndDate = now.Add(-time.Hour)
	if got := offer.DaysRemaining(now); got != 0 {
		t.Errorf("past end date: got %d, want 0", got)
	}
}

func TestOfferApplyDefaults(t *testing.T) {
	var offer Offer
	offer.ApplyDefaults()

	if offer.Target != "all" {
		t.Errorf("target default: got %q", offer.Target)
	}
	if offer.MinStay != 1 {
		t.Errorf("minStay default: got %d", offer.MinStay)
	}
	if offer.BookingWindow.EndDays != 365 {
		t.Errorf("bookingWindow.endDays default: got %d", offer.BookingWindow.EndDays)
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	if BookingPending.IsTerminal() || BookingConfirmed.IsTerminal() {
		t.Error("pending and confirmed are not terminal")
	}
	if !BookingCancelled.IsTerminal() || !BookingCompleted.IsTerminal() {
		t.Error("cancelled and completed are terminal")
	}
}
