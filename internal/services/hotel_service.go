package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/cache"
	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

const featuredHotelsKey = "hotels:featured"

// featuredHotelsLimit is the default page size for the featured list; only
// requests for the default size are cached.
const featuredHotelsLimit = 6

type HotelService struct {
	hotelsRepo models.HotelsRepo
	roomsRepo  models.RoomsRepo
	cache      cache.Cache
	cacheTTL   time.Duration
	cld        *cloudinary.Cloudinary
}

func NewHotelService(hotelsRepo models.HotelsRepo, roomsRepo models.RoomsRepo, c cache.Cache, cacheTTL time.Duration, cld *cloudinary.Cloudinary) *HotelService {
	return &HotelService{
		hotelsRepo: hotelsRepo,
		roomsRepo:  roomsRepo,
		cache:      c,
		cacheTTL:   cacheTTL,
		cld:        cld,
	}
}

// HotelDetail pairs an active hotel with its currently bookable rooms.
type HotelDetail struct {
	Hotel *models.Hotel  `json:"hotel"`
	Rooms []*models.Room `json:"rooms"`
}

func (hs *HotelService) ListHotels(ctx context.Context, filter models.HotelFilter, page, limit int) ([]*models.Hotel, int64, error) {
	return hs.hotelsRepo.ListHotels(ctx, filter, page, limit)
}

func (hs *HotelService) ListFeaturedHotels(ctx context.Context, limit int) ([]*models.Hotel, error) {
	if limit != featuredHotelsLimit {
		return hs.hotelsRepo.ListFeaturedHotels(ctx, limit)
	}

	var cached []*models.Hotel
	if ok, err := hs.cache.Get(ctx, featuredHotelsKey, &cached); err == nil && ok {
		return cached, nil
	}

	hotels, err := hs.hotelsRepo.ListFeaturedHotels(ctx, limit)
	if err != nil {
		return nil, err
	}
	_ = hs.cache.Set(ctx, featuredHotelsKey, hotels, hs.cacheTTL)
	return hotels, nil
}

func (hs *HotelService) GetHotel(ctx context.Context, idHex string) (*HotelDetail, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid hotel id")
	}

	hotel, err := hs.hotelsRepo.GetActiveHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}

	rooms, err := hs.roomsRepo.ListAvailableRoomsByHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	return &HotelDetail{Hotel: hotel, Rooms: rooms}, nil
}

func (hs *HotelService) CreateHotel(ctx context.Context, hotel *models.Hotel, identity helpers.Identity) (*models.Hotel, error) {
	hotel.OwnerID = identity.UserID
	hotel.OwnerEmail = identity.Email
	hotel.ApplyDefaults()

	if err := models.Validate.Struct(hotel); err != nil {
		return nil, helpers.NewValidationError(fmt.Sprintf("invalid hotel data: %v", err))
	}

	now := time.Now()
	hotel.ID = primitive.NilObjectID
	hotel.IsActive = true
	hotel.IsVerified = false
	hotel.CreatedAt = now
	hotel.UpdatedAt = now

	if hs.cld != nil && len(hotel.Images) > 0 {
		urls := make([]string, 0, len(hotel.Images))
		for _, img := range hotel.Images {
			urls = append(urls, img.URL)
		}
		uploaded, err := helpers.UploadImages(ctx, hs.cld, urls, helpers.HotelFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload hotel images: %v", err)
		}
		for i := range hotel.Images {
			hotel.Images[i].URL = uploaded[i]
		}
	}

	created, err := hs.hotelsRepo.CreateHotel(ctx, hotel)
	if err != nil {
		return nil, err
	}
	_ = hs.cache.Del(ctx, featuredHotelsKey)
	return created, nil
}

// UpdateHotelInput carries the owner-editable fields. Ownership and
// verification flags are never writable through this path.
type UpdateHotelInput struct {
	Name             *string               `json:"name"`
	Address          *string               `json:"address"`
	City             *string               `json:"city"`
	State            *string               `json:"state"`
	Country          *string               `json:"country"`
	Phone            *string               `json:"phone"`
	Email            *string               `json:"email"`
	Website          *string               `json:"website"`
	Description      *string               `json:"description"`
	ShortDescription *string               `json:"shortDescription"`
	CoverImage       *string               `json:"coverImage"`
	Amenities        []string              `json:"amenities"`
	StarRating       *int                  `json:"starRating"`
	Category         *string               `json:"category"`
	CheckInTime      *string               `json:"checkInTime"`
	CheckOutTime     *string               `json:"checkOutTime"`
	Policies         *models.HotelPolicies `json:"policies"`
	Featured         *bool                 `json:"featured"`
}

func (in UpdateHotelInput) toUpdateDoc() bson.M {
	doc := bson.M{}
	setStr := func(key string, v *string) {
		if v != nil {
			doc[key] = helpers.StringTrim(*v)
		}
	}
	setStr("name", in.Name)
	setStr("address", in.Address)
	setStr("city", in.City)
	setStr("state", in.State)
	setStr("country", in.Country)
	setStr("phone", in.Phone)
	setStr("email", in.Email)
	setStr("website", in.Website)
	setStr("description", in.Description)
	setStr("shortDescription", in.ShortDescription)
	setStr("coverImage", in.CoverImage)
	setStr("category", in.Category)
	setStr("checkInTime", in.CheckInTime)
	setStr("checkOutTime", in.CheckOutTime)
	if in.Amenities != nil {
		doc["amenities"] = in.Amenities
	}
	if in.StarRating != nil {
		doc["starRating"] = *in.StarRating
	}
	if in.Policies != nil {
		doc["policies"] = *in.Policies
	}
	if in.Featured != nil {
		doc["featured"] = *in.Featured
	}
	return doc
}

// requireOwnedHotel loads the hotel and checks the caller owns it.
func (hs *HotelService) requireOwnedHotel(ctx context.Context, idHex string, identity helpers.Identity) (*models.Hotel, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid hotel id")
	}
	hotel, err := hs.hotelsRepo.GetHotelByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}
	if !identity.Owns(hotel.OwnerID) {
		return nil, helpers.NewForbiddenError("you do not own this hotel")
	}
	return hotel, nil
}

func (hs *HotelService) UpdateHotel(ctx context.Context, idHex string, in UpdateHotelInput, identity helpers.Identity) (*models.Hotel, error) {
	hotel, err := hs.requireOwnedHotel(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}

	doc := in.toUpdateDoc()
	if len(doc) == 0 {
		return hotel, nil
	}
	updated, err := hs.hotelsRepo.UpdateHotel(ctx, hotel.ID, doc)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}
	_ = hs.cache.Del(ctx, featuredHotelsKey)
	return updated, nil
}

// DeleteHotel deactivates the listing rather than removing the document,
// so existing bookings keep their hotel reference.
func (hs *HotelService) DeleteHotel(ctx context.Context, idHex string, identity helpers.Identity) error {
	hotel, err := hs.requireOwnedHotel(ctx, idHex, identity)
	if err != nil {
		return err
	}
	if err := hs.hotelsRepo.SoftDeleteHotel(ctx, hotel.ID); err != nil {
		return err
	}
	_ = hs.cache.Del(ctx, featuredHotelsKey)
	return nil
}

func (hs *HotelService) MyHotels(ctx context.Context, identity helpers.Identity, page, limit int) ([]*models.Hotel, int64, error) {
	return hs.hotelsRepo.ListHotelsByOwner(ctx, identity.UserID, page, limit)
}
