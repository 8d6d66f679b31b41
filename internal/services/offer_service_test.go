package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

type fakeOffersRepo struct {
	offers map[primitive.ObjectID]*models.Offer
}

func newFakeOffersRepo(offers ...*models.Offer) *fakeOffersRepo {
	r := &fakeOffersRepo{offers: map[primitive.ObjectID]*models.Offer{}}
	for _, o := range offers {
		r.offers[o.ID] = o
	}
	return r
}

func (f *fakeOffersRepo) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	offer.ID = primitive.NewObjectID()
	f.offers[offer.ID] = offer
	return offer, nil
}

func (f *fakeOffersRepo) GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	return f.offers[id], nil
}

func (f *fakeOffersRepo) ListOffers(ctx context.Context, filter models.OfferFilter, page, limit int) ([]*models.Offer, int64, error) {
	var out []*models.Offer
	for _, o := range f.offers {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOffersRepo) FindOfferByPromoCode(ctx context.Context, code string, now time.Time) (*models.Offer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, o := range f.offers {
		if o.PromoCode == code && o.IsActive && !o.StartDate.After(now) && !o.EndDate.Before(now) {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOffersRepo) UpdateOffer(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Offer, error) {
	offer := f.offers[id]
	if offer == nil {
		return nil, nil
	}
	if active, ok := update["isActive"].(bool); ok {
		offer.IsActive = active
	}
	return offer, nil
}

func (f *fakeOffersRepo) DeleteOffer(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.offers[id]; !ok {
		return false, nil
	}
	delete(f.offers, id)
	return true, nil
}

func fixedOfferService(offersRepo *fakeOffersRepo, hotelsRepo *fakeHotelsRepo, now time.Time) *OfferService {
	osvc := NewOfferService(offersRepo, hotelsRepo)
	osvc.now = func() time.Time { return now }
	return osvc
}

func validOffer(now time.Time) *models.Offer {
	return &models.Offer{
		ID:        primitive.NewObjectID(),
		Hotel:     primitive.NewObjectID(),
		PromoCode: "SUMMER20",
		IsActive:  true,
		StartDate: now.AddDate(0, 0, -1),
		EndDate:   now.AddDate(0, 0, 10),
	}
}

func TestValidatePromo(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	offer := validOffer(now)
	osvc := fixedOfferService(newFakeOffersRepo(offer), newFakeHotelsRepo(), now)

	// Lookup is case-insensitive and trims whitespace.
	got, err := osvc.ValidatePromo(context.Background(), "  summer20 ")
	require.NoError(t, err)
	assert.Equal(t, offer.ID, got.Offer.ID)
	assert.True(t, got.IsCurrentlyValid)
}

func TestValidatePromoUnknownCode(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	osvc := fixedOfferService(newFakeOffersRepo(validOffer(now)), newFakeHotelsRepo(), now)

	_, err := osvc.ValidatePromo(context.Background(), "NOPE")
	assertStatus(t, err, 404)

	_, err = osvc.ValidatePromo(context.Background(), "")
	assertStatus(t, err, 400)
}

func TestValidatePromoExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	offer := validOffer(now)
	offer.EndDate = now.AddDate(0, 0, -1)
	osvc := fixedOfferService(newFakeOffersRepo(offer), newFakeHotelsRepo(), now)

	_, err := osvc.ValidatePromo(context.Background(), "SUMMER20")
	assertStatus(t, err, 404)
}

func TestValidatePromoUsageLimitReached(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	offer := validOffer(now)
	limit := int64(10)
	offer.UsageLimit = &limit
	offer.UsedCount = 10
	osvc := fixedOfferService(newFakeOffersRepo(offer), newFakeHotelsRepo(), now)

	_, err := osvc.ValidatePromo(context.Background(), "SUMMER20")
	assertStatus(t, err, 400)
}

func TestCreateOfferRequiresHotelOwnership(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	hotel := &models.Hotel{ID: primitive.NewObjectID(), OwnerID: "user_owner", IsActive: true}
	osvc := fixedOfferService(newFakeOffersRepo(), newFakeHotelsRepo(hotel), now)

	offer := &models.Offer{
		Title:         "Weekend deal",
		Description:   "Two nights for the price of one",
		Hotel:         hotel.ID,
		DiscountType:  models.OfferPercentage,
		DiscountValue: 20,
		StartDate:     now,
		EndDate:       now.AddDate(0, 1, 0),
		IsActive:      true,
		PromoCode:     "weekend",
	}

	_, err := osvc.CreateOffer(context.Background(), offer, helpers.Identity{UserID: "user_other"})
	assertStatus(t, err, 403)

	created, err := osvc.CreateOffer(context.Background(), offer, helpers.Identity{UserID: "user_owner"})
	require.NoError(t, err)
	assert.Equal(t, "WEEKEND", created.PromoCode)
	assert.Equal(t, "all", created.Target)
}

func TestToggleOfferActive(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	hotel := &models.Hotel{ID: primitive.NewObjectID(), OwnerID: "user_owner", IsActive: true}
	offer := validOffer(now)
	offer.Hotel = hotel.ID
	osvc := fixedOfferService(newFakeOffersRepo(offer), newFakeHotelsRepo(hotel), now)

	toggled, err := osvc.ToggleActive(context.Background(), offer.ID.Hex(), helpers.Identity{UserID: "user_owner"})
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
}
