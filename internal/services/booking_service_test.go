package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

type fakeRoomsRepo struct {
	rooms map[primitive.ObjectID]*models.Room
}

func newFakeRoomsRepo(rooms ...*models.Room) *fakeRoomsRepo {
	r := &fakeRoomsRepo{rooms: map[primitive.ObjectID]*models.Room{}}
	for _, room := range rooms {
		r.rooms[room.ID] = room
	}
	return r
}

func (f *fakeRoomsRepo) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	room.ID = primitive.NewObjectID()
	f.rooms[room.ID] = room
	return room, nil
}

func (f *fakeRoomsRepo) GetRoomByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	return f.rooms[id], nil
}

func (f *fakeRoomsRepo) GetRoomView(ctx context.Context, id primitive.ObjectID) (*models.RoomView, error) {
	room := f.rooms[id]
	if room == nil {
		return nil, nil
	}
	return &models.RoomView{ID: room.ID, RoomType: room.RoomType, PricePerNight: room.PricePerNight}, nil
}

func (f *fakeRoomsRepo) SearchRooms(ctx context.Context, filter models.RoomFilter, sort models.RoomSort, page, limit int) ([]*models.RoomView, int64, error) {
	return nil, 0, nil
}

func (f *fakeRoomsRepo) ListRoomsByHotels(ctx context.Context, hotelIDs []primitive.ObjectID, page, limit int) ([]*models.Room, int64, error) {
	return nil, 0, nil
}

func (f *fakeRoomsRepo) ListAvailableRoomsByHotel(ctx context.Context, hotelID primitive.ObjectID) ([]*models.Room, error) {
	return nil, nil
}

func (f *fakeRoomsRepo) CountAvailableRooms(ctx context.Context, hotelIDs []primitive.ObjectID) (int64, error) {
	return int64(len(f.rooms)), nil
}

func (f *fakeRoomsRepo) UpdateRoom(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Room, error) {
	room := f.rooms[id]
	if room == nil {
		return nil, nil
	}
	if n, ok := update["availableRooms"].(int); ok {
		room.AvailableRooms = n
	}
	if v, ok := update["isAvailable"].(bool); ok {
		room.IsAvailable = v
	}
	return room, nil
}

func (f *fakeRoomsRepo) DeleteRoom(ctx context.Context, id primitive.ObjectID) error {
	delete(f.rooms, id)
	return nil
}

type fakeBookingsRepo struct {
	bookings map[primitive.ObjectID]*models.Booking
	updates  []bson.M
}

func newFakeBookingsRepo(bookings ...*models.Booking) *fakeBookingsRepo {
	r := &fakeBookingsRepo{bookings: map[primitive.ObjectID]*models.Booking{}}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (f *fakeBookingsRepo) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.ID = primitive.NewObjectID()
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeBookingsRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingsRepo) GetBookingView(ctx context.Context, id primitive.ObjectID) (*models.BookingView, error) {
	booking := f.bookings[id]
	if booking == nil {
		return nil, nil
	}
	return &models.BookingView{Booking: *booking}, nil
}

func (f *fakeBookingsRepo) ListBookings(ctx context.Context, filter models.BookingFilter, sortBy string, sortAsc bool, page, limit int) ([]*models.BookingView, int64, error) {
	var out []*models.BookingView
	for _, b := range f.bookings {
		if filter.GuestEmail != "" && b.GuestEmail != filter.GuestEmail {
			continue
		}
		out = append(out, &models.BookingView{Booking: *b})
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingsRepo) UpdateBooking(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Booking, error) {
	booking := f.bookings[id]
	if booking == nil {
		return nil, nil
	}
	f.updates = append(f.updates, update)
	if status, ok := update["status"].(models.BookingStatus); ok {
		booking.Status = status
	}
	if isPaid, ok := update["isPaid"].(bool); ok {
		booking.IsPaid = isPaid
	}
	return booking, nil
}

func (f *fakeBookingsRepo) DeleteBooking(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.bookings[id]; !ok {
		return false, nil
	}
	delete(f.bookings, id)
	return true, nil
}

func (f *fakeBookingsRepo) BookingStats(ctx context.Context) (*models.BookingStats, error) {
	return &models.BookingStats{Total: int64(len(f.bookings))}, nil
}

func (f *fakeBookingsRepo) DashboardStats(ctx context.Context, hotelIDs []primitive.ObjectID, now time.Time) (*models.DashboardStats, error) {
	return &models.DashboardStats{TotalBookings: int64(len(f.bookings))}, nil
}

func testRoom() *models.Room {
	return &models.Room{
		ID:             primitive.NewObjectID(),
		Hotel:          primitive.NewObjectID(),
		RoomType:       "Deluxe",
		RoomNumber:     "101",
		PricePerNight:  100,
		Currency:       "NGN",
		MaxGuests:      2,
		IsAvailable:    true,
		TotalRooms:     5,
		AvailableRooms: 5,
	}
}

func fixedBookingService(roomsRepo *fakeRoomsRepo, bookingsRepo *fakeBookingsRepo, now time.Time) *BookingService {
	// Every room gets a live hotel; inactive-hotel cases build their own
	// hotels repo.
	hotelsRepo := newFakeHotelsRepo()
	for _, room := range roomsRepo.rooms {
		hotelsRepo.hotels[room.Hotel] = &models.Hotel{ID: room.Hotel, IsActive: true}
	}
	bs := NewBookingService(bookingsRepo, roomsRepo, hotelsRepo)
	bs.now = func() time.Time { return now }
	return bs
}

func TestCreateBookingComputesPrice(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	room := testRoom()
	bs := fixedBookingService(newFakeRoomsRepo(room), newFakeBookingsRepo(), now)

	in := CreateBookingInput{
		Room:         room.ID.Hex(),
		GuestName:    "Ada",
		GuestEmail:   "Ada@Example.COM",
		GuestPhone:   "0800000000",
		CheckInDate:  now.AddDate(0, 0, 7),
		CheckOutDate: now.AddDate(0, 0, 10),
		Guests:       2,
	}

	booking, err := bs.CreateBooking(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, 300.0, booking.TotalPrice)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.False(t, booking.IsPaid)
	assert.Equal(t, "ada@example.com", booking.GuestEmail)
	assert.Equal(t, room.Hotel, booking.Hotel)
}

func TestCreateBookingInactiveHotelRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	room := testRoom()
	hotelsRepo := newFakeHotelsRepo(&models.Hotel{ID: room.Hotel, IsActive: false})
	bs := NewBookingService(newFakeBookingsRepo(), newFakeRoomsRepo(room), hotelsRepo)
	bs.now = func() time.Time { return now }

	_, err := bs.CreateBooking(context.Background(), CreateBookingInput{
		Room:         room.ID.Hex(),
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		GuestPhone:   "0800000000",
		CheckInDate:  now.AddDate(0, 0, 7),
		CheckOutDate: now.AddDate(0, 0, 9),
		Guests:       2,
	})
	assertStatus(t, err, 400)
	assert.ErrorContains(t, err, "no longer accepting bookings")
}

func TestCreateBookingAppliesDiscount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	room := testRoom()
	until := now.AddDate(0, 1, 0)
	room.Discount = &models.Discount{Amount: 10, Type: models.DiscountPercentage, ValidUntil: &until}
	bs := fixedBookingService(newFakeRoomsRepo(room), newFakeBookingsRepo(), now)

	booking, err := bs.CreateBooking(context.Background(), CreateBookingInput{
		Room:         room.ID.Hex(),
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		GuestPhone:   "0800000000",
		CheckInDate:  now.AddDate(0, 0, 7),
		CheckOutDate: now.AddDate(0, 0, 9),
		Guests:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, 180.0, booking.TotalPrice)
}

func TestCreateBookingPartialNightBillsFull(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	room := testRoom()
	bs := fixedBookingService(newFakeRoomsRepo(room), newFakeBookingsRepo(), now)

	checkIn := now.AddDate(0, 0, 7)
	booking, err := bs.CreateBooking(context.Background(), CreateBookingInput{
		Room:         room.ID.Hex(),
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		GuestPhone:   "0800000000",
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.Add(36 * time.Hour),
		Guests:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, booking.Nights)
}

func TestCreateBookingRejections(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	room := testRoom()
	bs := fixedBookingService(newFakeRoomsRepo(room), newFakeBookingsRepo(), now)

	base := CreateBookingInput{
		Room:         room.ID.Hex(),
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		GuestPhone:   "0800000000",
		CheckInDate:  now.AddDate(0, 0, 7),
		CheckOutDate: now.AddDate(0, 0, 9),
		Guests:       1,
	}

	missing := base
	missing.Room = primitive.NewObjectID().Hex()
	_, err := bs.CreateBooking(context.Background(), missing)
	assertStatus(t, err, 404)

	tooMany := base
	tooMany.Guests = 3
	_, err = bs.CreateBooking(context.Background(), tooMany)
	assertStatus(t, err, 400)

	inverted := base
	inverted.CheckOutDate = base.CheckInDate
	_, err = bs.CreateBooking(context.Background(), inverted)
	assertStatus(t, err, 400)

	room.AvailableRooms = 0
	_, err = bs.CreateBooking(context.Background(), base)
	assertStatus(t, err, 400)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*helpers.ApiError)
	require.True(t, ok, "expected ApiError, got %T: %v", err, err)
	assert.Equal(t, status, apiErr.Status)
}

func TestCancelBookingWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	guest := helpers.Identity{UserID: "user_1", Email: "ada@example.com"}

	// 25 hours out: cancellable.
	booking := &models.Booking{
		ID:          primitive.NewObjectID(),
		GuestEmail:  "ada@example.com",
		CheckInDate: now.Add(25 * time.Hour),
		Status:      models.BookingConfirmed,
		Nights:      1,
		TotalPrice:  100,
	}
	bs := fixedBookingService(newFakeRoomsRepo(), newFakeBookingsRepo(booking), now)

	cancelled, err := bs.CancelBooking(context.Background(), booking.ID.Hex(), guest)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
}

func TestCancelBookingInsideWindowRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	guest := helpers.Identity{UserID: "user_1", Email: "ada@example.com"}

	cases := []time.Duration{
		24 * time.Hour, // exactly at the boundary still rejects
		23 * time.Hour,
		-time.Hour, // already checked in
	}
	for _, lead := range cases {
		booking := &models.Booking{
			ID:          primitive.NewObjectID(),
			GuestEmail:  "ada@example.com",
			CheckInDate: now.Add(lead),
			Status:      models.BookingConfirmed,
		}
		bs := fixedBookingService(newFakeRoomsRepo(), newFakeBookingsRepo(booking), now)

		_, err := bs.CancelBooking(context.Background(), booking.ID.Hex(), guest)
		assertStatus(t, err, 400)
	}
}

func TestCancelBookingWrongGuest(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		ID:          primitive.NewObjectID(),
		GuestEmail:  "ada@example.com",
		CheckInDate: now.Add(48 * time.Hour),
		Status:      models.BookingPending,
	}
	bs := fixedBookingService(newFakeRoomsRepo(), newFakeBookingsRepo(booking), now)

	_, err := bs.CancelBooking(context.Background(), booking.ID.Hex(), helpers.Identity{UserID: "user_2", Email: "eve@example.com"})
	assertStatus(t, err, 403)
}

func TestCancelBookingTerminalStateRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	guest := helpers.Identity{UserID: "user_1", Email: "ada@example.com"}

	for _, status := range []models.BookingStatus{models.BookingCancelled, models.BookingCompleted} {
		booking := &models.Booking{
			ID:          primitive.NewObjectID(),
			GuestEmail:  "ada@example.com",
			CheckInDate: now.Add(72 * time.Hour),
			Status:      status,
		}
		bs := fixedBookingService(newFakeRoomsRepo(), newFakeBookingsRepo(booking), now)

		_, err := bs.CancelBooking(context.Background(), booking.ID.Hex(), guest)
		assertStatus(t, err, 400)
	}
}

func TestMarkPaymentConfirmsPending(t *testing.T) {
	now := time.Now()
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		Status: models.BookingPending,
	}
	bs := fixedBookingService(newFakeRoomsRepo(), newFakeBookingsRepo(booking), now)

	updated, err := bs.MarkPayment(context.Background(), booking.ID.Hex(), true)
	require.NoError(t, err)
	assert.True(t, updated.IsPaid)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
}

func TestMarkPaymentWithdrawnRevertsToPending(t *testing.T) {
	now := time.Now()
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		Status: models.BookingConfirmed,
		IsPaid: true,
	}
	bs := fixedBookingService(newFakeRoomsRepo(), newFakeBookingsRepo(booking), now)

	updated, err := bs.MarkPayment(context.Background(), booking.ID.Hex(), false)
	require.NoError(t, err)
	assert.False(t, updated.IsPaid)
	assert.Equal(t, models.BookingPending, updated.Status)
}

func TestMarkPaymentTerminalRejected(t *testing.T) {
	now := time.Now()
	booking := &models.Booking{
		ID:     primitive.NewObjectID(),
		Status: models.BookingCompleted,
		IsPaid: true,
	}
	bs := fixedBookingService(newFakeRoomsRepo(), newFakeBookingsRepo(booking), now)

	_, err := bs.MarkPayment(context.Background(), booking.ID.Hex(), false)
	assertStatus(t, err, 400)
}
