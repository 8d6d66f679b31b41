package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/cache"
	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

type RoomService struct {
	roomsRepo  models.RoomsRepo
	hotelsRepo models.HotelsRepo
	cache      cache.Cache
	cacheTTL   time.Duration
	cld        *cloudinary.Cloudinary
}

func NewRoomService(roomsRepo models.RoomsRepo, hotelsRepo models.HotelsRepo, c cache.Cache, cacheTTL time.Duration, cld *cloudinary.Cloudinary) *RoomService {
	return &RoomService{
		roomsRepo:  roomsRepo,
		hotelsRepo: hotelsRepo,
		cache:      c,
		cacheTTL:   cacheTTL,
		cld:        cld,
	}
}

func roomKey(id primitive.ObjectID) string {
	return "room:" + id.Hex()
}

func hotelRoomsKey(hotelID primitive.ObjectID) string {
	return "rooms:hotel:" + hotelID.Hex()
}

func (rs *RoomService) SearchRooms(ctx context.Context, filter models.RoomFilter, sort models.RoomSort, page, limit int) ([]*models.RoomView, int64, error) {
	return rs.roomsRepo.SearchRooms(ctx, filter, sort, page, limit)
}

// cachedRoomPage is the cache representation of the default first page of
// a hotel's room list.
type cachedRoomPage struct {
	Items []*models.RoomView `json:"items"`
	Total int64              `json:"total"`
}

// RoomsByHotel is the hotel-scoped search: same pipeline, pinned to one
// hotel and restricted to rooms with remaining stock. The default first
// page is cached; other pages and sorts go straight to Mongo.
func (rs *RoomService) RoomsByHotel(ctx context.Context, hotelIDHex string, sort models.RoomSort, page, limit int) ([]*models.RoomView, int64, error) {
	hotelID, err := primitive.ObjectIDFromHex(hotelIDHex)
	if err != nil {
		return nil, 0, helpers.NewValidationError("invalid hotel id")
	}

	hotel, err := rs.hotelsRepo.GetActiveHotel(ctx, hotelID)
	if err != nil {
		return nil, 0, err
	}
	if hotel == nil {
		return nil, 0, helpers.NewNotFoundError("hotel not found")
	}

	cacheable := sort == models.SortNewest && page == 1 && limit == 10
	if cacheable {
		var cached cachedRoomPage
		if ok, err := rs.cache.Get(ctx, hotelRoomsKey(hotelID), &cached); err == nil && ok {
			return cached.Items, cached.Total, nil
		}
	}

	filter := models.RoomFilter{Hotel: &hotelID, RequireStock: true}
	items, total, err := rs.roomsRepo.SearchRooms(ctx, filter, sort, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if cacheable {
		_ = rs.cache.Set(ctx, hotelRoomsKey(hotelID), cachedRoomPage{Items: items, Total: total}, rs.cacheTTL)
	}
	return items, total, nil
}

// GetRoom returns the denormalized room view, read through the cache.
func (rs *RoomService) GetRoom(ctx context.Context, idHex string) (*models.RoomView, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid room id")
	}

	var cached models.RoomView
	if ok, err := rs.cache.Get(ctx, roomKey(id), &cached); err == nil && ok {
		return &cached, nil
	}

	view, err := rs.roomsRepo.GetRoomView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, helpers.NewNotFoundError("room not found")
	}

	_ = rs.cache.Set(ctx, roomKey(id), view, rs.cacheTTL)
	return view, nil
}

func (rs *RoomService) MyRooms(ctx context.Context, identity helpers.Identity, page, limit int) ([]*models.Room, int64, error) {
	hotelIDs, err := rs.hotelsRepo.HotelIDsByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, 0, err
	}
	if len(hotelIDs) == 0 {
		return []*models.Room{}, 0, nil
	}
	return rs.roomsRepo.ListRoomsByHotels(ctx, hotelIDs, page, limit)
}

// requireRoomOwner loads the room and checks the caller owns its hotel.
func (rs *RoomService) requireRoomOwner(ctx context.Context, idHex string, identity helpers.Identity) (*models.Room, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid room id")
	}
	room, err := rs.roomsRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, helpers.NewNotFoundError("room not found")
	}
	hotel, err := rs.hotelsRepo.GetHotelByID(ctx, room.Hotel)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}
	if !identity.Owns(hotel.OwnerID) {
		return nil, helpers.NewForbiddenError("you do not own this room's hotel")
	}
	return room, nil
}

func (rs *RoomService) CreateRoom(ctx context.Context, room *models.Room, identity helpers.Identity) (*models.Room, error) {
	hotel, err := rs.hotelsRepo.GetActiveHotel(ctx, room.Hotel)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}
	if !identity.Owns(hotel.OwnerID) {
		return nil, helpers.NewForbiddenError("you do not own this hotel")
	}

	if room.AvailableRooms == 0 && room.TotalRooms > 0 {
		room.AvailableRooms = room.TotalRooms
	}
	room.ApplyDefaults()

	if err := models.Validate.Struct(room); err != nil {
		return nil, helpers.NewValidationError(fmt.Sprintf("invalid room data: %v", err))
	}

	now := time.Now()
	room.ID = primitive.NilObjectID
	room.IsAvailable = true
	room.CreatedAt = now
	room.UpdatedAt = now

	if rs.cld != nil && len(room.Images) > 0 {
		urls := make([]string, 0, len(room.Images))
		for _, img := range room.Images {
			urls = append(urls, img.URL)
		}
		uploaded, err := helpers.UploadImages(ctx, rs.cld, urls, helpers.RoomFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload room images: %v", err)
		}
		for i := range room.Images {
			room.Images[i].URL = uploaded[i]
		}
	}

	created, err := rs.roomsRepo.CreateRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	_ = rs.cache.Del(ctx, hotelRoomsKey(created.Hotel))
	return created, nil
}

// UpdateRoomInput carries the owner-editable room fields.
type UpdateRoomInput struct {
	RoomType      *string          `json:"roomType"`
	RoomNumber    *string          `json:"roomNumber"`
	PricePerNight *float64         `json:"pricePerNight"`
	Currency      *string          `json:"currency"`
	Discount      *models.Discount `json:"discount"`
	MaxGuests     *int             `json:"maxGuests"`
	MaxAdults     *int             `json:"maxAdults"`
	MaxChildren   *int             `json:"maxChildren"`
	Beds          []models.Bed     `json:"beds"`
	Description   *string          `json:"description"`
	Size          *models.RoomSize `json:"size"`
	Amenities     []string         `json:"amenities"`
	TotalRooms    *int             `json:"totalRooms"`
	Smoking       *bool            `json:"smoking"`
	PetsAllowed   *bool            `json:"petsAllowed"`
}

func (in UpdateRoomInput) toUpdateDoc() bson.M {
	doc := bson.M{}
	if in.RoomType != nil {
		doc["roomType"] = helpers.StringTrim(*in.RoomType)
	}
	if in.RoomNumber != nil {
		doc["roomNumber"] = helpers.StringTrim(*in.RoomNumber)
	}
	if in.PricePerNight != nil {
		doc["pricePerNight"] = *in.PricePerNight
	}
	if in.Currency != nil {
		doc["currency"] = *in.Currency
	}
	if in.Discount != nil {
		doc["discount"] = *in.Discount
	}
	if in.MaxGuests != nil {
		doc["maxGuests"] = *in.MaxGuests
	}
	if in.MaxAdults != nil {
		doc["maxAdults"] = *in.MaxAdults
	}
	if in.MaxChildren != nil {
		doc["maxChildren"] = *in.MaxChildren
	}
	if in.Beds != nil {
		doc["beds"] = in.Beds
	}
	if in.Description != nil {
		doc["description"] = helpers.StringTrim(*in.Description)
	}
	if in.Size != nil {
		doc["size"] = *in.Size
	}
	if in.Amenities != nil {
		doc["amenities"] = in.Amenities
	}
	if in.TotalRooms != nil {
		doc["totalRooms"] = *in.TotalRooms
	}
	if in.Smoking != nil {
		doc["smoking"] = *in.Smoking
	}
	if in.PetsAllowed != nil {
		doc["petsAllowed"] = *in.PetsAllowed
	}
	return doc
}

func (rs *RoomService) UpdateRoom(ctx context.Context, idHex string, in UpdateRoomInput, identity helpers.Identity) (*models.Room, error) {
	room, err := rs.requireRoomOwner(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}

	doc := in.toUpdateDoc()
	if len(doc) == 0 {
		return room, nil
	}
	if in.PricePerNight != nil && *in.PricePerNight < 0 {
		return nil, helpers.NewValidationError("pricePerNight must not be negative")
	}

	updated, err := rs.roomsRepo.UpdateRoom(ctx, room.ID, doc)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("room not found")
	}
	rs.invalidateRoom(ctx, updated)
	return updated, nil
}

// UpdateAvailability adjusts the stock counters. availableRooms is clamped
// to totalRooms rather than rejected.
func (rs *RoomService) UpdateAvailability(ctx context.Context, idHex string, isAvailable *bool, availableRooms *int, identity helpers.Identity) (*models.Room, error) {
	room, err := rs.requireRoomOwner(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}

	doc := bson.M{}
	if isAvailable != nil {
		doc["isAvailable"] = *isAvailable
	}
	if availableRooms != nil {
		n := *availableRooms
		if n < 0 {
			return nil, helpers.NewValidationError("availableRooms must not be negative")
		}
		if n > room.TotalRooms {
			n = room.TotalRooms
		}
		doc["availableRooms"] = n
	}
	if len(doc) == 0 {
		return room, nil
	}

	updated, err := rs.roomsRepo.UpdateRoom(ctx, room.ID, doc)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("room not found")
	}
	rs.invalidateRoom(ctx, updated)
	return updated, nil
}

func (rs *RoomService) DeleteRoom(ctx context.Context, idHex string, identity helpers.Identity) error {
	room, err := rs.requireRoomOwner(ctx, idHex, identity)
	if err != nil {
		return err
	}
	if err := rs.roomsRepo.DeleteRoom(ctx, room.ID); err != nil {
		return err
	}
	rs.invalidateRoom(ctx, room)
	return nil
}

func (rs *RoomService) invalidateRoom(ctx context.Context, room *models.Room) {
	_ = rs.cache.Del(ctx, roomKey(room.ID), hotelRoomsKey(room.Hotel))
}

// AvailabilityRequest is the quote input for one prospective stay.
type AvailabilityRequest struct {
	CheckInDate  time.Time `json:"checkInDate" validate:"required"`
	CheckOutDate time.Time `json:"checkOutDate" validate:"required"`
	Guests       int       `json:"guests" validate:"required,min=1"`
}

// AvailabilityQuote is the priced answer for a bookable stay. TotalPrice
// uses the effective nightly rate at quote time.
type AvailabilityQuote struct {
	Available     bool    `json:"available"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalPrice    float64 `json:"totalPrice"`
	Currency      string  `json:"currency"`
}

// Nights counts billable nights: ceil of the stay length in days, so a
// partial final day still bills a full night.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CheckAvailability answers a stay quote. The checks run in a fixed order
// and each failure surfaces as its own typed error: the room must exist,
// the party must fit, the room must have stock, and the dates must form a
// positive range.
func (rs *RoomService) CheckAvailability(ctx context.Context, idHex string, req AvailabilityRequest) (*AvailabilityQuote, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid room id")
	}
	room, err := rs.roomsRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, helpers.NewNotFoundError("room not found")
	}

	if req.Guests > room.MaxGuests {
		return nil, helpers.NewPolicyError(fmt.Sprintf("room accommodates at most %d guests", room.MaxGuests))
	}
	if !room.IsAvailable || room.AvailableRooms <= 0 {
		return nil, helpers.NewPolicyError("room is not available")
	}
	if !req.CheckOutDate.After(req.CheckInDate) {
		return nil, helpers.NewValidationError("checkOutDate must be after checkInDate")
	}

	nights := Nights(req.CheckInDate, req.CheckOutDate)
	rate := models.EffectivePrice(room.PricePerNight, room.Discount, time.Now())

	return &AvailabilityQuote{
		Available:     true,
		Nights:        nights,
		PricePerNight: rate,
		TotalPrice:    round2(rate * float64(nights)),
		Currency:      room.Currency,
	}, nil
}
