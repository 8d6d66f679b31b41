package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

// CancellationWindow is the minimum lead time before check-in for a guest
// cancellation.
const CancellationWindow = 24 * time.Hour

type BookingService struct {
	bookingsRepo models.BookingsRepo
	roomsRepo    models.RoomsRepo
	hotelsRepo   models.HotelsRepo
	now          func() time.Time
}

func NewBookingService(bookingsRepo models.BookingsRepo, roomsRepo models.RoomsRepo, hotelsRepo models.HotelsRepo) *BookingService {
	return &BookingService{
		bookingsRepo: bookingsRepo,
		roomsRepo:    roomsRepo,
		hotelsRepo:   hotelsRepo,
		now:          time.Now,
	}
}

// CreateBookingInput is the public booking form.
type CreateBookingInput struct {
	Room            string    `json:"room" validate:"required"`
	GuestName       string    `json:"guestName" validate:"required"`
	GuestEmail      string    `json:"guestEmail" validate:"required,email"`
	GuestPhone      string    `json:"guestPhone" validate:"required"`
	CheckInDate     time.Time `json:"checkInDate" validate:"required"`
	CheckOutDate    time.Time `json:"checkOutDate" validate:"required"`
	Guests          int       `json:"guests" validate:"required,min=1"`
	SpecialRequests string    `json:"specialRequests"`
	PaymentMethod   string    `json:"paymentMethod"`
}

// CreateBooking takes the quote checks and turns them into a pending
// booking. The server recomputes nights and price; client-sent totals are
// ignored.
func (bs *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, helpers.NewValidationError(fmt.Sprintf("invalid booking data: %v", err))
	}

	roomID, err := primitive.ObjectIDFromHex(in.Room)
	if err != nil {
		return nil, helpers.NewValidationError("invalid room id")
	}
	room, err := bs.roomsRepo.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, helpers.NewNotFoundError("room not found")
	}
	hotel, err := bs.hotelsRepo.GetActiveHotel(ctx, room.Hotel)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewPolicyError("hotel is no longer accepting bookings")
	}
	if in.Guests > room.MaxGuests {
		return nil, helpers.NewValidationError(fmt.Sprintf("room accommodates at most %d guests", room.MaxGuests))
	}
	if !room.IsAvailable || room.AvailableRooms <= 0 {
		return nil, helpers.NewPolicyError("room is not available")
	}
	if !in.CheckOutDate.After(in.CheckInDate) {
		return nil, helpers.NewValidationError("checkOutDate must be after checkInDate")
	}

	now := bs.now()
	nights := Nights(in.CheckInDate, in.CheckOutDate)
	rate := models.EffectivePrice(room.PricePerNight, room.Discount, now)

	booking := &models.Booking{
		Hotel:           room.Hotel,
		Room:            room.ID,
		GuestName:       helpers.StringTrim(in.GuestName),
		GuestEmail:      strings.ToLower(helpers.StringTrim(in.GuestEmail)),
		GuestPhone:      helpers.StringTrim(in.GuestPhone),
		CheckInDate:     in.CheckInDate,
		CheckOutDate:    in.CheckOutDate,
		Nights:          nights,
		TotalPrice:      round2(rate * float64(nights)),
		Guests:          in.Guests,
		SpecialRequests: helpers.StringTrim(in.SpecialRequests),
		PaymentMethod:   in.PaymentMethod,
		IsPaid:          false,
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return bs.bookingsRepo.CreateBooking(ctx, booking)
}

// GetPublicBooking is the unauthenticated confirmation lookup; it exposes
// the stay facts but not the guest's contact details.
func (bs *BookingService) GetPublicBooking(ctx context.Context, idHex string) (*models.PublicBooking, error) {
	view, err := bs.getBookingView(ctx, idHex)
	if err != nil {
		return nil, err
	}
	return &models.PublicBooking{
		ID:           view.ID,
		GuestName:    view.GuestName,
		CheckInDate:  view.CheckInDate,
		CheckOutDate: view.CheckOutDate,
		Nights:       view.Nights,
		TotalPrice:   view.TotalPrice,
		Status:       view.Status,
		IsPaid:       view.IsPaid,
		RoomInfo:     view.RoomInfo,
		HotelInfo:    view.HotelInfo,
		CreatedAt:    view.CreatedAt,
	}, nil
}

func (bs *BookingService) getBookingView(ctx context.Context, idHex string) (*models.BookingView, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid booking id")
	}
	view, err := bs.bookingsRepo.GetBookingView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, helpers.NewNotFoundError("booking not found")
	}
	return view, nil
}

func (bs *BookingService) MyBookings(ctx context.Context, identity helpers.Identity, page, limit int) ([]*models.BookingView, int64, error) {
	filter := models.BookingFilter{GuestEmail: strings.ToLower(identity.Email)}
	return bs.bookingsRepo.ListBookings(ctx, filter, "createdAt", false, page, limit)
}

// GetBooking returns the caller's own booking; email must match the guest
// snapshot.
func (bs *BookingService) GetBooking(ctx context.Context, idHex string, identity helpers.Identity) (*models.BookingView, error) {
	view, err := bs.getBookingView(ctx, idHex)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(view.GuestEmail, identity.Email) {
		return nil, helpers.NewForbiddenError("this booking belongs to another guest")
	}
	return view, nil
}

// CancelBooking applies the guest cancellation policy: the booking must
// not be in a terminal state and check-in must be more than 24 hours away.
func (bs *BookingService) CancelBooking(ctx context.Context, idHex string, identity helpers.Identity) (*models.Booking, error) {
	view, err := bs.getBookingView(ctx, idHex)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(view.GuestEmail, identity.Email) {
		return nil, helpers.NewForbiddenError("this booking belongs to another guest")
	}
	if view.Status.IsTerminal() {
		return nil, helpers.NewPolicyError(fmt.Sprintf("booking is already %s", view.Status))
	}

	now := bs.now()
	if !now.Before(view.CheckInDate.Add(-CancellationWindow)) {
		return nil, helpers.NewPolicyError("bookings can only be cancelled more than 24 hours before check-in")
	}

	updated, err := bs.bookingsRepo.UpdateBooking(ctx, view.ID, bson.M{"status": models.BookingCancelled})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("booking not found")
	}
	return updated, nil
}

func (bs *BookingService) ListBookings(ctx context.Context, filter models.BookingFilter, sortBy string, sortAsc bool, page, limit int) ([]*models.BookingView, int64, error) {
	filter.GuestEmail = strings.ToLower(filter.GuestEmail)
	return bs.bookingsRepo.ListBookings(ctx, filter, sortBy, sortAsc, page, limit)
}

func (bs *BookingService) BookingsByGuest(ctx context.Context, email string, page, limit int) ([]*models.BookingView, int64, error) {
	filter := models.BookingFilter{GuestEmail: strings.ToLower(helpers.StringTrim(email))}
	return bs.bookingsRepo.ListBookings(ctx, filter, "createdAt", false, page, limit)
}

// UpdateBookingInput carries the admin-editable fields. Hotel, room and
// guest email are fixed once the booking exists.
type UpdateBookingInput struct {
	GuestName       *string    `json:"guestName"`
	GuestPhone      *string    `json:"guestPhone"`
	CheckInDate     *time.Time `json:"checkInDate"`
	CheckOutDate    *time.Time `json:"checkOutDate"`
	Guests          *int       `json:"guests"`
	SpecialRequests *string    `json:"specialRequests"`
	PaymentMethod   *string    `json:"paymentMethod"`
	Status          *string    `json:"status"`
}

func (bs *BookingService) UpdateBooking(ctx context.Context, idHex string, in UpdateBookingInput) (*models.Booking, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid booking id")
	}
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, helpers.NewNotFoundError("booking not found")
	}

	doc := bson.M{}
	if in.GuestName != nil {
		doc["guestName"] = helpers.StringTrim(*in.GuestName)
	}
	if in.GuestPhone != nil {
		doc["guestPhone"] = helpers.StringTrim(*in.GuestPhone)
	}
	if in.Guests != nil {
		if *in.Guests < 1 {
			return nil, helpers.NewValidationError("guests must be at least 1")
		}
		doc["guests"] = *in.Guests
	}
	if in.SpecialRequests != nil {
		doc["specialRequests"] = helpers.StringTrim(*in.SpecialRequests)
	}
	if in.PaymentMethod != nil {
		doc["paymentMethod"] = *in.PaymentMethod
	}

	checkIn, checkOut := booking.CheckInDate, booking.CheckOutDate
	if in.CheckInDate != nil {
		checkIn = *in.CheckInDate
		doc["checkInDate"] = checkIn
	}
	if in.CheckOutDate != nil {
		checkOut = *in.CheckOutDate
		doc["checkOutDate"] = checkOut
	}
	if in.CheckInDate != nil || in.CheckOutDate != nil {
		if !checkOut.After(checkIn) {
			return nil, helpers.NewValidationError("checkOutDate must be after checkInDate")
		}
		nights := Nights(checkIn, checkOut)
		doc["nights"] = nights
		doc["totalPrice"] = round2(booking.TotalPrice / float64(booking.Nights) * float64(nights))
	}

	if in.Status != nil {
		next := models.BookingStatus(*in.Status)
		switch next {
		case models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
		default:
			return nil, helpers.NewValidationError("invalid booking status")
		}
		if booking.Status.IsTerminal() && next != booking.Status {
			return nil, helpers.NewPolicyError(fmt.Sprintf("booking is already %s", booking.Status))
		}
		doc["status"] = next
	}

	if len(doc) == 0 {
		return booking, nil
	}
	updated, err := bs.bookingsRepo.UpdateBooking(ctx, id, doc)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("booking not found")
	}
	return updated, nil
}

// MarkPayment toggles the paid flag. Marking a pending booking paid
// confirms it; withdrawing payment from a confirmed booking sends it back
// to pending. Terminal bookings are left alone.
func (bs *BookingService) MarkPayment(ctx context.Context, idHex string, isPaid bool) (*models.Booking, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid booking id")
	}
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, helpers.NewNotFoundError("booking not found")
	}
	if booking.Status.IsTerminal() {
		return nil, helpers.NewPolicyError(fmt.Sprintf("booking is already %s", booking.Status))
	}

	doc := bson.M{"isPaid": isPaid}
	if isPaid && booking.Status == models.BookingPending {
		doc["status"] = models.BookingConfirmed
	}
	if !isPaid && booking.Status == models.BookingConfirmed {
		doc["status"] = models.BookingPending
	}

	updated, err := bs.bookingsRepo.UpdateBooking(ctx, id, doc)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("booking not found")
	}
	return updated, nil
}

func (bs *BookingService) DeleteBooking(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return helpers.NewValidationError("invalid booking id")
	}
	deleted, err := bs.bookingsRepo.DeleteBooking(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return helpers.NewNotFoundError("booking not found")
	}
	return nil
}

func (bs *BookingService) Stats(ctx context.Context) (*models.BookingStats, error) {
	return bs.bookingsRepo.BookingStats(ctx)
}
