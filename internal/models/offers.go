package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OfferDiscountType string

const (
	OfferPercentage OfferDiscountType = "percentage"
	OfferFixed      OfferDiscountType = "fixed"
	OfferPackage    OfferDiscountType = "package"
)

type BookingWindow struct {
	StartDays int `bson:"startDays" json:"startDays"`
	EndDays   int `bson:"endDays" json:"endDays"`
}

type Offer struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	Title            string `bson:"title" json:"title" validate:"required,max=100"`
	Description      string `bson:"description" json:"description" validate:"required,max=500"`
	ShortDescription string `bson:"shortDescription,omitempty" json:"shortDescription,omitempty" validate:"max=200"`

	Hotel           primitive.ObjectID   `bson:"hotel" json:"hotel" validate:"required"`
	ApplicableRooms []primitive.ObjectID `bson:"applicableRooms,omitempty" json:"applicableRooms,omitempty"`

	DiscountType  OfferDiscountType `bson:"discountType" json:"discountType" validate:"required,oneof=percentage fixed package"`
	DiscountValue float64           `bson:"discountValue" json:"discountValue" validate:"min=0"`
	OriginalPrice float64           `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	OfferPrice    float64           `bson:"offerPrice,omitempty" json:"offerPrice,omitempty"`

	StartDate time.Time `bson:"startDate" json:"startDate" validate:"required"`
	EndDate   time.Time `bson:"endDate" json:"endDate" validate:"required"`
	IsActive  bool      `bson:"isActive" json:"isActive"`

	UsageLimit *int64 `bson:"usageLimit,omitempty" json:"usageLimit,omitempty"` // nil means unlimited
	UsedCount  int64  `bson:"usedCount" json:"usedCount"`
	MinStay    int    `bson:"minStay" json:"minStay"`
	MaxStay    *int   `bson:"maxStay,omitempty" json:"maxStay,omitempty"`

	BookingWindow BookingWindow `bson:"bookingWindow" json:"bookingWindow"`
	BlackoutDates []time.Time   `bson:"blackoutDates,omitempty" json:"blackoutDates,omitempty"`

	Target string `bson:"target" json:"target" validate:"omitempty,oneof=all new_customers returning corporate family"`

	PromoCode       string   `bson:"promoCode,omitempty" json:"promoCode,omitempty"`
	TermsConditions []string `bson:"termsConditions,omitempty" json:"termsConditions,omitempty"`

	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	BannerImage string `bson:"bannerImage,omitempty" json:"bannerImage,omitempty"`

	IsFeatured bool `bson:"isFeatured" json:"isFeatured"`
	Priority   int  `bson:"priority" json:"priority"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (o *Offer) ApplyDefaults() {
	if o.Target == "" {
		o.Target = "all"
	}
	if o.MinStay == 0 {
		o.MinStay = 1
	}
	if o.BookingWindow.EndDays == 0 {
		o.BookingWindow.EndDays = 365
	}
}

// IsCurrentlyValid mirrors the derived property: active, inside the
// validity window, and under the usage limit if one is set.
func (o *Offer) IsCurrentlyValid(now time.Time) bool {
	return o.IsActive &&
		!o.StartDate.After(now) &&
		!o.EndDate.Before(now) &&
		(o.UsageLimit == nil || o.UsedCount < *o.UsageLimit)
}

// DaysRemaining is ceil((endDate - now) / 1 day), never negative.
func (o *Offer) DaysRemaining(now time.Time) int {
	diff := o.EndDate.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// OfferWithMeta attaches the derived properties to the stored document for
// API responses.
type OfferWithMeta struct {
	Offer            `bson:",inline"`
	IsCurrentlyValid bool `json:"isCurrentlyValid"`
	DaysRemaining    int  `json:"daysRemaining"`
}

type OfferFilter struct {
	Hotel    *primitive.ObjectID
	Active   *bool
	Featured *bool
	ValidNow bool
}
