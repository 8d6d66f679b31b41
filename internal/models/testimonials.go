package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HotelResponse struct {
	Response    string     `bson:"response,omitempty" json:"response,omitempty"`
	RespondedAt *time.Time `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	RespondedBy string     `bson:"respondedBy,omitempty" json:"respondedBy,omitempty"`
}

type Testimonial struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	CustomerName   string `bson:"customerName" json:"customerName" validate:"required"`
	CustomerEmail  string `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerAvatar string `bson:"customerAvatar,omitempty" json:"customerAvatar,omitempty"`

	Hotel primitive.ObjectID  `bson:"hotel" json:"hotel" validate:"required"`
	Room  *primitive.ObjectID `bson:"room,omitempty" json:"room,omitempty"`

	Rating  int    `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Title   string `bson:"title,omitempty" json:"title,omitempty" validate:"max=100"`
	Comment string `bson:"comment" json:"comment" validate:"required,max=1000"`

	StayDate time.Time `bson:"stayDate" json:"stayDate" validate:"required"`
	TripType string    `bson:"tripType" json:"tripType" validate:"omitempty,oneof=Business Leisure Family Romantic Other"`

	VerifiedBooking  bool   `bson:"verifiedBooking" json:"verifiedBooking"`
	BookingReference string `bson:"bookingReference,omitempty" json:"bookingReference,omitempty"`

	HotelResponse *HotelResponse `bson:"hotelResponse,omitempty" json:"hotelResponse,omitempty"`

	// Only approved testimonials are shown publicly or counted toward
	// a room's rating statistics.
	IsApproved bool `bson:"isApproved" json:"isApproved"`
	IsFeatured bool `bson:"isFeatured" json:"isFeatured"`

	HelpfulCount int `bson:"helpfulCount" json:"helpfulCount"`
	ReportCount  int `bson:"reportCount" json:"reportCount"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Testimonial) ApplyDefaults() {
	if t.TripType == "" {
		t.TripType = "Leisure"
	}
}

type TestimonialFilter struct {
	Hotel     *primitive.ObjectID
	MinRating int
	Featured  *bool
	Approved  *bool
}
