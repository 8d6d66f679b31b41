package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/cache"
	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

type TestimonialService struct {
	testimonialsRepo models.TestimonialsRepo
	hotelsRepo       models.HotelsRepo
	bookingsRepo     models.BookingsRepo
	cache            cache.Cache
	now              func() time.Time
}

func NewTestimonialService(testimonialsRepo models.TestimonialsRepo, hotelsRepo models.HotelsRepo, bookingsRepo models.BookingsRepo, c cache.Cache) *TestimonialService {
	return &TestimonialService{
		testimonialsRepo: testimonialsRepo,
		hotelsRepo:       hotelsRepo,
		bookingsRepo:     bookingsRepo,
		cache:            c,
		now:              time.Now,
	}
}

// invalidateRoomStats drops cached room views whose embedded rating stats
// the testimonial feeds.
func (ts *TestimonialService) invalidateRoomStats(ctx context.Context, t *models.Testimonial) {
	keys := []string{hotelRoomsKey(t.Hotel)}
	if t.Room != nil {
		keys = append(keys, roomKey(*t.Room))
	}
	_ = ts.cache.Del(ctx, keys...)
}

// ListTestimonials is the public listing; only approved reviews are shown.
func (ts *TestimonialService) ListTestimonials(ctx context.Context, filter models.TestimonialFilter, page, limit int) ([]*models.Testimonial, int64, error) {
	approved := true
	filter.Approved = &approved
	return ts.testimonialsRepo.ListTestimonials(ctx, filter, page, limit)
}

// HotelTestimonials pairs a hotel's approved reviews with its rating
// summary.
type HotelTestimonials struct {
	Testimonials []*models.Testimonial `json:"testimonials"`
	Summary      *models.RatingSummary `json:"summary"`
}

func (ts *TestimonialService) TestimonialsByHotel(ctx context.Context, hotelIDHex string, page, limit int) (*HotelTestimonials, int64, error) {
	hotelID, err := primitive.ObjectIDFromHex(hotelIDHex)
	if err != nil {
		return nil, 0, helpers.NewValidationError("invalid hotel id")
	}

	approved := true
	filter := models.TestimonialFilter{Hotel: &hotelID, Approved: &approved}
	testimonials, total, err := ts.testimonialsRepo.ListTestimonials(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	summary, err := ts.testimonialsRepo.HotelRatingSummary(ctx, hotelID)
	if err != nil {
		return nil, 0, err
	}
	return &HotelTestimonials{Testimonials: testimonials, Summary: summary}, total, nil
}

func (ts *TestimonialService) GetTestimonial(ctx context.Context, idHex string) (*models.Testimonial, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid testimonial id")
	}
	testimonial, err := ts.testimonialsRepo.GetTestimonialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, helpers.NewNotFoundError("testimonial not found")
	}
	return testimonial, nil
}

// CreateTestimonial accepts a review for moderation. New reviews always
// start unapproved. A booking reference matching the reviewer's email
// marks the review as a verified stay.
func (ts *TestimonialService) CreateTestimonial(ctx context.Context, testimonial *models.Testimonial, identity helpers.Identity) (*models.Testimonial, error) {
	testimonial.ApplyDefaults()
	if err := models.Validate.Struct(testimonial); err != nil {
		return nil, helpers.NewValidationError(fmt.Sprintf("invalid testimonial data: %v", err))
	}

	hotel, err := ts.hotelsRepo.GetActiveHotel(ctx, testimonial.Hotel)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}

	if !identity.IsZero() && testimonial.CustomerEmail == "" {
		testimonial.CustomerEmail = identity.Email
	}

	testimonial.VerifiedBooking = false
	if testimonial.BookingReference != "" && testimonial.CustomerEmail != "" {
		if bookingID, err := primitive.ObjectIDFromHex(testimonial.BookingReference); err == nil {
			booking, err := ts.bookingsRepo.GetBookingByID(ctx, bookingID)
			if err != nil {
				return nil, err
			}
			if booking != nil &&
				booking.Hotel == testimonial.Hotel &&
				strings.EqualFold(booking.GuestEmail, testimonial.CustomerEmail) {
				testimonial.VerifiedBooking = true
			}
		}
	}

	now := ts.now()
	testimonial.ID = primitive.NilObjectID
	testimonial.IsApproved = false
	testimonial.IsFeatured = false
	testimonial.HelpfulCount = 0
	testimonial.ReportCount = 0
	testimonial.HotelResponse = nil
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now
	return ts.testimonialsRepo.CreateTestimonial(ctx, testimonial)
}

func (ts *TestimonialService) MarkHelpful(ctx context.Context, idHex string) (*models.Testimonial, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid testimonial id")
	}
	testimonial, err := ts.testimonialsRepo.IncHelpfulCount(ctx, id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, helpers.NewNotFoundError("testimonial not found")
	}
	return testimonial, nil
}

// requireHotelOwner checks the caller owns the hotel the testimonial
// reviews.
func (ts *TestimonialService) requireHotelOwner(ctx context.Context, idHex string, identity helpers.Identity) (*models.Testimonial, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid testimonial id")
	}
	testimonial, err := ts.testimonialsRepo.GetTestimonialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, helpers.NewNotFoundError("testimonial not found")
	}
	hotel, err := ts.hotelsRepo.GetHotelByID(ctx, testimonial.Hotel)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}
	if !identity.Owns(hotel.OwnerID) {
		return nil, helpers.NewForbiddenError("you do not own the reviewed hotel")
	}
	return testimonial, nil
}

// Respond records the hotel's public reply to a review.
func (ts *TestimonialService) Respond(ctx context.Context, idHex, response string, identity helpers.Identity) (*models.Testimonial, error) {
	testimonial, err := ts.requireHotelOwner(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}
	response = helpers.StringTrim(response)
	if response == "" {
		return nil, helpers.NewValidationError("response is required")
	}

	now := ts.now()
	updated, err := ts.testimonialsRepo.UpdateTestimonial(ctx, testimonial.ID, bson.M{
		"hotelResponse": models.HotelResponse{
			Response:    response,
			RespondedAt: &now,
			RespondedBy: identity.Email,
		},
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("testimonial not found")
	}
	return updated, nil
}

func (ts *TestimonialService) SetApproved(ctx context.Context, idHex string, approved bool, identity helpers.Identity) (*models.Testimonial, error) {
	testimonial, err := ts.requireHotelOwner(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}
	updated, err := ts.testimonialsRepo.UpdateTestimonial(ctx, testimonial.ID, bson.M{"isApproved": approved})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("testimonial not found")
	}
	ts.invalidateRoomStats(ctx, updated)
	return updated, nil
}

// SetFeatured promotes an approved review to the featured carousel.
func (ts *TestimonialService) SetFeatured(ctx context.Context, idHex string, featured bool, identity helpers.Identity) (*models.Testimonial, error) {
	testimonial, err := ts.requireHotelOwner(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}
	if featured && !testimonial.IsApproved {
		return nil, helpers.NewPolicyError("only approved testimonials can be featured")
	}
	updated, err := ts.testimonialsRepo.UpdateTestimonial(ctx, testimonial.ID, bson.M{"isFeatured": featured})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("testimonial not found")
	}
	return updated, nil
}

func (ts *TestimonialService) DeleteTestimonial(ctx context.Context, idHex string, identity helpers.Identity) error {
	testimonial, err := ts.requireHotelOwner(ctx, idHex, identity)
	if err != nil {
		return err
	}
	deleted, err := ts.testimonialsRepo.DeleteTestimonial(ctx, testimonial.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return helpers.NewNotFoundError("testimonial not found")
	}
	ts.invalidateRoomStats(ctx, testimonial)
	return nil
}
