package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HotelCategory string

const (
	CategoryBudget   HotelCategory = "Budget"
	CategoryStandard HotelCategory = "Standard"
	CategoryLuxury   HotelCategory = "Luxury"
	CategoryBoutique HotelCategory = "Boutique"
	CategoryResort   HotelCategory = "Resort"
)

type Image struct {
	URL       string `bson:"url" json:"url"`
	Caption   string `bson:"caption,omitempty" json:"caption,omitempty"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
}

type Coordinates struct {
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

type HotelPolicies struct {
	Cancellation string `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	Pets         bool   `bson:"pets" json:"pets"`
	Smoking      bool   `bson:"smoking" json:"smoking"`
}

type Hotel struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	Name string `bson:"name" json:"name" validate:"required,max=100"`

	// Ownership: opaque ids from the identity provider, never parsed.
	OwnerID    string `bson:"ownerId" json:"ownerId" validate:"required"`
	OwnerEmail string `bson:"ownerEmail" json:"ownerEmail" validate:"required"`

	Address     string       `bson:"address" json:"address" validate:"required"`
	City        string       `bson:"city" json:"city" validate:"required"`
	State       string       `bson:"state" json:"state" validate:"required"`
	Country     string       `bson:"country" json:"country"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`

	Phone   string `bson:"phone" json:"phone" validate:"required"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`

	Description      string `bson:"description,omitempty" json:"description,omitempty" validate:"max=1000"`
	ShortDescription string `bson:"shortDescription,omitempty" json:"shortDescription,omitempty" validate:"max=200"`

	Images     []Image  `bson:"images,omitempty" json:"images,omitempty"`
	CoverImage string   `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Amenities  []string `bson:"amenities,omitempty" json:"amenities,omitempty"`

	StarRating int           `bson:"starRating" json:"starRating" validate:"omitempty,min=1,max=5"`
	Category   HotelCategory `bson:"category" json:"category"`

	CheckInTime  string        `bson:"checkInTime" json:"checkInTime"`
	CheckOutTime string        `bson:"checkOutTime" json:"checkOutTime"`
	Policies     HotelPolicies `bson:"policies" json:"policies"`

	IsActive   bool `bson:"isActive" json:"isActive"`
	IsVerified bool `bson:"isVerified" json:"isVerified"`
	Featured   bool `bson:"featured" json:"featured"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ApplyDefaults fills the schema defaults for fields the client omitted.
func (h *Hotel) ApplyDefaults() {
	if h.Country == "" {
		h.Country = "Nigeria"
	}
	if h.StarRating == 0 {
		h.StarRating = 3
	}
	if h.Category == "" {
		h.Category = CategoryStandard
	}
	if h.CheckInTime == "" {
		h.CheckInTime = "14:00"
	}
	if h.CheckOutTime == "" {
		h.CheckOutTime = "12:00"
	}
}

// HotelFilter narrows the public hotel listing.
type HotelFilter struct {
	City      string
	State     string
	MinRating int
	Category  string
	Amenities []string
	Featured  *bool
}
