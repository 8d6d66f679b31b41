package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// IsTerminal reports whether a status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

type Booking struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Hotel primitive.ObjectID `bson:"hotel" json:"hotel" validate:"required"`
	Room  primitive.ObjectID `bson:"room" json:"room" validate:"required"`

	// Guest contact is an immutable snapshot taken at booking time,
	// independent of any account record.
	GuestName  string `bson:"guestName" json:"guestName" validate:"required"`
	GuestEmail string `bson:"guestEmail" json:"guestEmail" validate:"required,email"`
	GuestPhone string `bson:"guestPhone" json:"guestPhone" validate:"required"`

	CheckInDate  time.Time `bson:"checkInDate" json:"checkInDate" validate:"required"`
	CheckOutDate time.Time `bson:"checkOutDate" json:"checkOutDate" validate:"required"`
	Nights       int       `bson:"nights" json:"nights" validate:"required,min=1"`
	TotalPrice   float64   `bson:"totalPrice" json:"totalPrice" validate:"required,min=0"`
	Guests       int       `bson:"guests" json:"guests" validate:"required,min=1"`

	SpecialRequests string        `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	PaymentMethod   string        `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	IsPaid          bool          `bson:"isPaid" json:"isPaid"`
	Status          BookingStatus `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingView is a booking with its room and hotel references resolved for
// list and detail responses.
type BookingView struct {
	Booking `bson:",inline"`

	RoomInfo  *Room  `bson:"roomInfo,omitempty" json:"roomInfo,omitempty"`
	HotelInfo *Hotel `bson:"hotelInfo,omitempty" json:"hotelInfo,omitempty"`
}

// PublicBooking is the trimmed projection returned on the unauthenticated
// lookup endpoint.
type PublicBooking struct {
	ID           primitive.ObjectID `json:"_id"`
	GuestName    string             `json:"guestName"`
	CheckInDate  time.Time          `json:"checkInDate"`
	CheckOutDate time.Time          `json:"checkOutDate"`
	Nights       int                `json:"nights"`
	TotalPrice   float64            `json:"totalPrice"`
	Status       BookingStatus      `json:"status"`
	IsPaid       bool               `json:"isPaid"`
	RoomInfo     *Room              `json:"roomInfo,omitempty"`
	HotelInfo    *Hotel             `json:"hotelInfo,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// BookingFilter narrows the admin booking listing.
type BookingFilter struct {
	Status     string
	GuestEmail string
	Hotel      *primitive.ObjectID
}

// BookingStats is the admin dashboard aggregate.
type BookingStats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"byStatus"`
	TotalRevenue float64          `json:"totalRevenue"`
	ByMonth      []MonthlyRevenue `json:"revenueByMonth"`
}

type MonthlyRevenue struct {
	Year     int     `bson:"year" json:"year"`
	Month    int     `bson:"month" json:"month"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
	Bookings int64   `bson:"bookings" json:"bookings"`
}
