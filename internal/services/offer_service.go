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

type OfferService struct {
	offersRepo models.OffersRepo
	hotelsRepo models.HotelsRepo
	now        func() time.Time
}

func NewOfferService(offersRepo models.OffersRepo, hotelsRepo models.HotelsRepo) *OfferService {
	return &OfferService{
		offersRepo: offersRepo,
		hotelsRepo: hotelsRepo,
		now:        time.Now,
	}
}

func (osvc *OfferService) withMeta(offer *models.Offer) *models.OfferWithMeta {
	now := osvc.now()
	return &models.OfferWithMeta{
		Offer:            *offer,
		IsCurrentlyValid: offer.IsCurrentlyValid(now),
		DaysRemaining:    offer.DaysRemaining(now),
	}
}

func (osvc *OfferService) withMetaAll(offers []*models.Offer) []*models.OfferWithMeta {
	out := make([]*models.OfferWithMeta, 0, len(offers))
	for _, o := range offers {
		out = append(out, osvc.withMeta(o))
	}
	return out
}

func (osvc *OfferService) ListOffers(ctx context.Context, filter models.OfferFilter, page, limit int) ([]*models.OfferWithMeta, int64, error) {
	offers, total, err := osvc.offersRepo.ListOffers(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return osvc.withMetaAll(offers), total, nil
}

func (osvc *OfferService) FeaturedOffers(ctx context.Context, limit int) ([]*models.OfferWithMeta, error) {
	featured := true
	filter := models.OfferFilter{Featured: &featured, ValidNow: true}
	offers, _, err := osvc.offersRepo.ListOffers(ctx, filter, 1, limit)
	if err != nil {
		return nil, err
	}
	return osvc.withMetaAll(offers), nil
}

func (osvc *OfferService) GetOffer(ctx context.Context, idHex string) (*models.OfferWithMeta, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid offer id")
	}
	offer, err := osvc.offersRepo.GetOfferByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, helpers.NewNotFoundError("offer not found")
	}
	return osvc.withMeta(offer), nil
}

// ValidatePromo resolves a promo code to its offer if the offer is still
// usable. An exhausted usage limit rejects the code even inside the date
// window.
func (osvc *OfferService) ValidatePromo(ctx context.Context, code string) (*models.OfferWithMeta, error) {
	code = helpers.StringTrim(code)
	if code == "" {
		return nil, helpers.NewValidationError("promo code is required")
	}

	offer, err := osvc.offersRepo.FindOfferByPromoCode(ctx, code, osvc.now())
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, helpers.NewNotFoundError("invalid or expired promo code")
	}
	if offer.UsageLimit != nil && offer.UsedCount >= *offer.UsageLimit {
		return nil, helpers.NewPolicyError("promo code usage limit reached")
	}
	return osvc.withMeta(offer), nil
}

// requireOwnedOffer checks the caller owns the offer's hotel.
func (osvc *OfferService) requireOwnedOffer(ctx context.Context, idHex string, identity helpers.Identity) (*models.Offer, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, helpers.NewValidationError("invalid offer id")
	}
	offer, err := osvc.offersRepo.GetOfferByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, helpers.NewNotFoundError("offer not found")
	}
	hotel, err := osvc.hotelsRepo.GetHotelByID(ctx, offer.Hotel)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}
	if !identity.Owns(hotel.OwnerID) {
		return nil, helpers.NewForbiddenError("you do not own this offer's hotel")
	}
	return offer, nil
}

func (osvc *OfferService) CreateOffer(ctx context.Context, offer *models.Offer, identity helpers.Identity) (*models.Offer, error) {
	hotel, err := osvc.hotelsRepo.GetHotelByID(ctx, offer.Hotel)
	if err != nil {
		return nil, err
	}
	if hotel == nil {
		return nil, helpers.NewNotFoundError("hotel not found")
	}
	if !identity.Owns(hotel.OwnerID) {
		return nil, helpers.NewForbiddenError("you do not own this hotel")
	}

	offer.ApplyDefaults()
	if err := models.Validate.Struct(offer); err != nil {
		return nil, helpers.NewValidationError(fmt.Sprintf("invalid offer data: %v", err))
	}
	if !offer.EndDate.After(offer.StartDate) {
		return nil, helpers.NewValidationError("endDate must be after startDate")
	}
	if offer.PromoCode != "" {
		offer.PromoCode = strings.ToUpper(helpers.StringTrim(offer.PromoCode))
	}

	now := osvc.now()
	offer.ID = primitive.NilObjectID
	offer.UsedCount = 0
	offer.CreatedAt = now
	offer.UpdatedAt = now
	return osvc.offersRepo.CreateOffer(ctx, offer)
}

// UpdateOfferInput carries the owner-editable offer fields.
type UpdateOfferInput struct {
	Title            *string               `json:"title"`
	Description      *string               `json:"description"`
	ShortDescription *string               `json:"shortDescription"`
	DiscountValue    *float64              `json:"discountValue"`
	StartDate        *time.Time            `json:"startDate"`
	EndDate          *time.Time            `json:"endDate"`
	UsageLimit       *int64                `json:"usageLimit"`
	MinStay          *int                  `json:"minStay"`
	MaxStay          *int                  `json:"maxStay"`
	BookingWindow    *models.BookingWindow `json:"bookingWindow"`
	PromoCode        *string               `json:"promoCode"`
	TermsConditions  []string              `json:"termsConditions"`
	Image            *string               `json:"image"`
	BannerImage      *string               `json:"bannerImage"`
	IsFeatured       *bool                 `json:"isFeatured"`
	Priority         *int                  `json:"priority"`
}

func (osvc *OfferService) UpdateOffer(ctx context.Context, idHex string, in UpdateOfferInput, identity helpers.Identity) (*models.Offer, error) {
	offer, err := osvc.requireOwnedOffer(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}

	doc := bson.M{}
	if in.Title != nil {
		doc["title"] = helpers.StringTrim(*in.Title)
	}
	if in.Description != nil {
		doc["description"] = helpers.StringTrim(*in.Description)
	}
	if in.ShortDescription != nil {
		doc["shortDescription"] = helpers.StringTrim(*in.ShortDescription)
	}
	if in.DiscountValue != nil {
		if *in.DiscountValue < 0 {
			return nil, helpers.NewValidationError("discountValue must not be negative")
		}
		doc["discountValue"] = *in.DiscountValue
	}

	start, end := offer.StartDate, offer.EndDate
	if in.StartDate != nil {
		start = *in.StartDate
		doc["startDate"] = start
	}
	if in.EndDate != nil {
		end = *in.EndDate
		doc["endDate"] = end
	}
	if (in.StartDate != nil || in.EndDate != nil) && !end.After(start) {
		return nil, helpers.NewValidationError("endDate must be after startDate")
	}

	if in.UsageLimit != nil {
		doc["usageLimit"] = *in.UsageLimit
	}
	if in.MinStay != nil {
		doc["minStay"] = *in.MinStay
	}
	if in.MaxStay != nil {
		doc["maxStay"] = *in.MaxStay
	}
	if in.BookingWindow != nil {
		doc["bookingWindow"] = *in.BookingWindow
	}
	if in.PromoCode != nil {
		doc["promoCode"] = strings.ToUpper(helpers.StringTrim(*in.PromoCode))
	}
	if in.TermsConditions != nil {
		doc["termsConditions"] = in.TermsConditions
	}
	if in.Image != nil {
		doc["image"] = *in.Image
	}
	if in.BannerImage != nil {
		doc["bannerImage"] = *in.BannerImage
	}
	if in.IsFeatured != nil {
		doc["isFeatured"] = *in.IsFeatured
	}
	if in.Priority != nil {
		doc["priority"] = *in.Priority
	}

	if len(doc) == 0 {
		return offer, nil
	}
	updated, err := osvc.offersRepo.UpdateOffer(ctx, offer.ID, doc)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("offer not found")
	}
	return updated, nil
}

func (osvc *OfferService) ToggleActive(ctx context.Context, idHex string, identity helpers.Identity) (*models.Offer, error) {
	offer, err := osvc.requireOwnedOffer(ctx, idHex, identity)
	if err != nil {
		return nil, err
	}
	updated, err := osvc.offersRepo.UpdateOffer(ctx, offer.ID, bson.M{"isActive": !offer.IsActive})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("offer not found")
	}
	return updated, nil
}

func (osvc *OfferService) DeleteOffer(ctx context.Context, idHex string, identity helpers.Identity) error {
	offer, err := osvc.requireOwnedOffer(ctx, idHex, identity)
	if err != nil {
		return err
	}
	deleted, err := osvc.offersRepo.DeleteOffer(ctx, offer.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return helpers.NewNotFoundError("offer not found")
	}
	return nil
}
