package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/cache"
	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

type fakeHotelsRepo struct {
	hotels map[primitive.ObjectID]*models.Hotel
}

func newFakeHotelsRepo(hotels ...*models.Hotel) *fakeHotelsRepo {
	r := &fakeHotelsRepo{hotels: map[primitive.ObjectID]*models.Hotel{}}
	for _, h := range hotels {
		r.hotels[h.ID] = h
	}
	return r
}

func (f *fakeHotelsRepo) CreateHotel(ctx context.Context, hotel *models.Hotel) (*models.Hotel, error) {
	hotel.ID = primitive.NewObjectID()
	f.hotels[hotel.ID] = hotel
	return hotel, nil
}

func (f *fakeHotelsRepo) GetHotelByID(ctx context.Context, id primitive.ObjectID) (*models.Hotel, error) {
	return f.hotels[id], nil
}

func (f *fakeHotelsRepo) GetActiveHotel(ctx context.Context, id primitive.ObjectID) (*models.Hotel, error) {
	h := f.hotels[id]
	if h == nil || !h.IsActive {
		return nil, nil
	}
	return h, nil
}

func (f *fakeHotelsRepo) ListHotels(ctx context.Context, filter models.HotelFilter, page, limit int) ([]*models.Hotel, int64, error) {
	return nil, 0, nil
}

func (f *fakeHotelsRepo) ListHotelsByOwner(ctx context.Context, ownerID string, page, limit int) ([]*models.Hotel, int64, error) {
	var out []*models.Hotel
	for _, h := range f.hotels {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeHotelsRepo) ListFeaturedHotels(ctx context.Context, limit int) ([]*models.Hotel, error) {
	return nil, nil
}

func (f *fakeHotelsRepo) HotelIDsByOwner(ctx context.Context, ownerID string) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, h := range f.hotels {
		if h.OwnerID == ownerID {
			ids = append(ids, h.ID)
		}
	}
	return ids, nil
}

func (f *fakeHotelsRepo) UpdateHotel(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Hotel, error) {
	return f.hotels[id], nil
}

func (f *fakeHotelsRepo) SoftDeleteHotel(ctx context.Context, id primitive.ObjectID) error {
	if h := f.hotels[id]; h != nil {
		h.IsActive = false
	}
	return nil
}

func newTestRoomService(roomsRepo *fakeRoomsRepo, hotelsRepo *fakeHotelsRepo) *RoomService {
	return NewRoomService(roomsRepo, hotelsRepo, cache.Noop{}, time.Minute, nil)
}

func TestNights(t *testing.T) {
	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		stay time.Duration
		want int
	}{
		{24 * time.Hour, 1},
		{48 * time.Hour, 2},
		{36 * time.Hour, 2},  // partial final day bills a full night
		{time.Hour, 1},       // same-day stay still bills one night
		{-24 * time.Hour, 0}, // inverted range
	}
	for _, tc := range cases {
		if got := Nights(base, base.Add(tc.stay)); got != tc.want {
			t.Errorf("Nights(+%v) = %d, want %d", tc.stay, got, tc.want)
		}
	}
}

func TestCheckAvailabilityQuote(t *testing.T) {
	room := testRoom()
	rs := newTestRoomService(newFakeRoomsRepo(room), newFakeHotelsRepo())

	checkIn := time.Now().AddDate(0, 0, 7)
	quote, err := rs.CheckAvailability(context.Background(), room.ID.Hex(), AvailabilityRequest{
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 2),
		Guests:       2,
	})
	require.NoError(t, err)

	assert.True(t, quote.Available)
	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, 100.0, quote.PricePerNight)
	assert.Equal(t, 200.0, quote.TotalPrice)
	assert.Equal(t, "NGN", quote.Currency)
}

func TestCheckAvailabilityTooManyGuests(t *testing.T) {
	room := testRoom()
	rs := newTestRoomService(newFakeRoomsRepo(room), newFakeHotelsRepo())

	checkIn := time.Now().AddDate(0, 0, 7)
	_, err := rs.CheckAvailability(context.Background(), room.ID.Hex(), AvailabilityRequest{
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 1),
		Guests:       5,
	})
	assertStatus(t, err, 400)
	assert.ErrorContains(t, err, "at most 2 guests")
}

func TestCheckAvailabilityNoStock(t *testing.T) {
	room := testRoom()
	room.AvailableRooms = 0
	rs := newTestRoomService(newFakeRoomsRepo(room), newFakeHotelsRepo())

	checkIn := time.Now().AddDate(0, 0, 7)
	_, err := rs.CheckAvailability(context.Background(), room.ID.Hex(), AvailabilityRequest{
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 1),
		Guests:       1,
	})
	assertStatus(t, err, 400)
	assert.ErrorContains(t, err, "not available")
}

func TestCheckAvailabilityInvalidDates(t *testing.T) {
	room := testRoom()
	rs := newTestRoomService(newFakeRoomsRepo(room), newFakeHotelsRepo())

	checkIn := time.Now().AddDate(0, 0, 7)
	_, err := rs.CheckAvailability(context.Background(), room.ID.Hex(), AvailabilityRequest{
		CheckInDate:  checkIn,
		CheckOutDate: checkIn,
		Guests:       1,
	})
	assertStatus(t, err, 400)
}

func TestCheckAvailabilityUnknownRoom(t *testing.T) {
	rs := newTestRoomService(newFakeRoomsRepo(), newFakeHotelsRepo())

	checkIn := time.Now().AddDate(0, 0, 7)
	_, err := rs.CheckAvailability(context.Background(), primitive.NewObjectID().Hex(), AvailabilityRequest{
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 1),
		Guests:       1,
	})
	assertStatus(t, err, 404)
}

func TestUpdateAvailabilityClampsToTotal(t *testing.T) {
	owner := helpers.Identity{UserID: "user_owner"}
	hotel := &models.Hotel{ID: primitive.NewObjectID(), OwnerID: "user_owner", IsActive: true}
	room := testRoom()
	room.Hotel = hotel.ID

	roomsRepo := newFakeRoomsRepo(room)
	rs := newTestRoomService(roomsRepo, newFakeHotelsRepo(hotel))

	requested := 50
	updated, err := rs.UpdateAvailability(context.Background(), room.ID.Hex(), nil, &requested, owner)
	require.NoError(t, err)
	assert.Equal(t, room.TotalRooms, updated.AvailableRooms)

	negative := -1
	_, err = rs.UpdateAvailability(context.Background(), room.ID.Hex(), nil, &negative, owner)
	assertStatus(t, err, 400)
}

func TestCreateRoomRequiresActiveHotel(t *testing.T) {
	owner := helpers.Identity{UserID: "user_owner"}
	hotel := &models.Hotel{ID: primitive.NewObjectID(), OwnerID: "user_owner", IsActive: false}
	rs := newTestRoomService(newFakeRoomsRepo(), newFakeHotelsRepo(hotel))

	room := testRoom()
	room.Hotel = hotel.ID
	_, err := rs.CreateRoom(context.Background(), room, owner)
	assertStatus(t, err, 404)

	hotel.IsActive = true
	created, err := rs.CreateRoom(context.Background(), room, owner)
	require.NoError(t, err)
	assert.True(t, created.IsAvailable)
}

func TestRoomOwnershipEnforced(t *testing.T) {
	hotel := &models.Hotel{ID: primitive.NewObjectID(), OwnerID: "user_owner", IsActive: true}
	room := testRoom()
	room.Hotel = hotel.ID
	rs := newTestRoomService(newFakeRoomsRepo(room), newFakeHotelsRepo(hotel))

	err := rs.DeleteRoom(context.Background(), room.ID.Hex(), helpers.Identity{UserID: "user_other"})
	assertStatus(t, err, 403)

	err = rs.DeleteRoom(context.Background(), room.ID.Hex(), helpers.Identity{UserID: "user_owner"})
	require.NoError(t, err)
}
