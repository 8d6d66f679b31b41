package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is the per-room price reduction descriptor. A discount past its
// validUntil date must be treated as absent; the amount and type alone do
// not expire.
type Discount struct {
	Amount     float64      `bson:"amount" json:"amount"`
	Type       DiscountType `bson:"type" json:"type"`
	ValidUntil *time.Time   `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
}

type Bed struct {
	Type  string `bson:"type" json:"type" validate:"omitempty,oneof=Single Double Queen King"`
	Count int    `bson:"count" json:"count"`
}

type RoomSize struct {
	Value float64 `bson:"value,omitempty" json:"value,omitempty"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

type Room struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Hotel primitive.ObjectID `bson:"hotel" json:"hotel" validate:"required"`

	RoomType   string `bson:"roomType" json:"roomType" validate:"required"`
	RoomNumber string `bson:"roomNumber" json:"roomNumber" validate:"required"`

	PricePerNight float64   `bson:"pricePerNight" json:"pricePerNight" validate:"min=0"`
	Currency      string    `bson:"currency" json:"currency"`
	Discount      *Discount `bson:"discount,omitempty" json:"discount,omitempty"`

	MaxGuests   int   `bson:"maxGuests" json:"maxGuests" validate:"required,min=1"`
	MaxAdults   int   `bson:"maxAdults" json:"maxAdults"`
	MaxChildren int   `bson:"maxChildren" json:"maxChildren"`
	Beds        []Bed `bson:"beds,omitempty" json:"beds,omitempty"`

	Description string    `bson:"description,omitempty" json:"description,omitempty" validate:"max=500"`
	Size        *RoomSize `bson:"size,omitempty" json:"size,omitempty"`

	Images    []Image  `bson:"images,omitempty" json:"images,omitempty"`
	Amenities []string `bson:"amenities,omitempty" json:"amenities,omitempty"`

	IsAvailable    bool `bson:"isAvailable" json:"isAvailable"`
	TotalRooms     int  `bson:"totalRooms" json:"totalRooms" validate:"omitempty,min=1"`
	AvailableRooms int  `bson:"availableRooms" json:"availableRooms" validate:"min=0"`

	Smoking     bool `bson:"smoking" json:"smoking"`
	PetsAllowed bool `bson:"petsAllowed" json:"petsAllowed"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ApplyDefaults fills schema defaults and enforces the availableRooms ≤
// totalRooms invariant the way the schema's save hook did.
func (r *Room) ApplyDefaults() {
	if r.Currency == "" {
		r.Currency = "NGN"
	}
	if r.MaxAdults == 0 {
		r.MaxAdults = 2
	}
	if r.MaxChildren == 0 {
		r.MaxChildren = 2
	}
	if r.TotalRooms == 0 {
		r.TotalRooms = 1
	}
	if r.AvailableRooms > r.TotalRooms {
		r.AvailableRooms = r.TotalRooms
	}
}

type RoomSort string

const (
	SortNewest    RoomSort = "newest"
	SortPriceAsc  RoomSort = "priceAsc"
	SortPriceDesc RoomSort = "priceDesc"
)

// RoomFilter is the unified predicate behind the global and hotel-scoped
// room searches. Hotel set + RequireStock is the hotel-scoped variant.
type RoomFilter struct {
	Hotel        *primitive.ObjectID
	RoomType     string
	MinPrice     *float64
	MaxPrice     *float64
	Amenities    []string
	MinGuests    int
	RequireStock bool
}

// RoomView is the denormalized search result: the room joined with its
// hotel and the approved-review statistics, plus the computed price fields.
type RoomView struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Hotel *Hotel             `bson:"hotel" json:"hotel"`

	RoomType   string `bson:"roomType" json:"roomType"`
	RoomNumber string `bson:"roomNumber" json:"roomNumber"`

	PricePerNight float64   `bson:"pricePerNight" json:"pricePerNight"`
	Currency      string    `bson:"currency" json:"currency"`
	Discount      *Discount `bson:"discount,omitempty" json:"discount,omitempty"`

	MaxGuests   int   `bson:"maxGuests" json:"maxGuests"`
	MaxAdults   int   `bson:"maxAdults" json:"maxAdults"`
	MaxChildren int   `bson:"maxChildren" json:"maxChildren"`
	Beds        []Bed `bson:"beds,omitempty" json:"beds,omitempty"`

	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Size        *RoomSize `bson:"size,omitempty" json:"size,omitempty"`

	Images    []Image  `bson:"images,omitempty" json:"images,omitempty"`
	Amenities []string `bson:"amenities,omitempty" json:"amenities,omitempty"`

	IsAvailable    bool `bson:"isAvailable" json:"isAvailable"`
	TotalRooms     int  `bson:"totalRooms" json:"totalRooms"`
	AvailableRooms int  `bson:"availableRooms" json:"availableRooms"`

	Smoking     bool `bson:"smoking" json:"smoking"`
	PetsAllowed bool `bson:"petsAllowed" json:"petsAllowed"`

	AvgRating    float64 `bson:"avgRating" json:"avgRating"`
	TotalReviews int     `bson:"totalReviews" json:"totalReviews"`
	FinalPrice   float64 `bson:"finalPrice" json:"finalPrice"`
	HasDiscount  bool    `bson:"hasDiscount" json:"hasDiscount"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
