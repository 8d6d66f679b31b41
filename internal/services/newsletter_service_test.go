package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/joseph-annor/stayhub/internal/models"
)

type fakeNewsletterRepo struct {
	subs map[string]*models.Subscriber
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{subs: map[string]*models.Subscriber{}}
}

func (f *fakeNewsletterRepo) CreateSubscriber(ctx context.Context, sub *models.Subscriber) (*models.Subscriber, error) {
	// Store a copy so later updates don't mutate documents already returned
	// to callers, matching the real repo's decode-per-read behavior.
	stored := *sub
	f.subs[sub.Email] = &stored
	return sub, nil
}

func (f *fakeNewsletterRepo) FindSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	return f.subs[strings.ToLower(strings.TrimSpace(email))], nil
}

func (f *fakeNewsletterRepo) FindSubscriberByToken(ctx context.Context, token string) (*models.Subscriber, error) {
	for _, s := range f.subs {
		if s.VerificationToken == token && token != "" {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeNewsletterRepo) ListSubscribers(ctx context.Context, activeOnly bool, page, limit int) ([]*models.Subscriber, int64, error) {
	var out []*models.Subscriber
	for _, s := range f.subs {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNewsletterRepo) UpdateSubscriberByEmail(ctx context.Context, email string, update bson.M) (*models.Subscriber, error) {
	sub := f.subs[strings.ToLower(strings.TrimSpace(email))]
	if sub == nil {
		return nil, nil
	}
	if v, ok := update["isActive"].(bool); ok {
		sub.IsActive = v
	}
	if v, ok := update["isVerified"].(bool); ok {
		sub.IsVerified = v
	}
	if v, ok := update["verificationToken"].(string); ok {
		sub.VerificationToken = v
	}
	if v, ok := update["preferences"].(models.NewsletterPreferences); ok {
		sub.Preferences = v
	}
	return sub, nil
}

func (f *fakeNewsletterRepo) NewsletterStats(ctx context.Context, now time.Time) (*models.NewsletterStats, error) {
	return &models.NewsletterStats{}, nil
}

func TestSubscribeNewAddress(t *testing.T) {
	ns := NewNewsletterService(newFakeNewsletterRepo(), nil)

	sub, err := ns.Subscribe(context.Background(), SubscribeInput{Email: "Ada@Example.com"})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", sub.Email)
	assert.True(t, sub.IsActive)
	assert.False(t, sub.IsVerified)
	assert.NotEmpty(t, sub.VerificationToken)
	assert.True(t, sub.Preferences.Promotions, "preferences default to all on")
	assert.Equal(t, "website", sub.Source)
}

func TestSubscribeDuplicateRejected(t *testing.T) {
	ns := NewNewsletterService(newFakeNewsletterRepo(), nil)

	_, err := ns.Subscribe(context.Background(), SubscribeInput{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = ns.Subscribe(context.Background(), SubscribeInput{Email: "ada@example.com"})
	assertStatus(t, err, 400)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	ns := NewNewsletterService(newFakeNewsletterRepo(), nil)

	_, err := ns.Subscribe(context.Background(), SubscribeInput{Email: "not-an-email"})
	assertStatus(t, err, 400)
}

func TestResubscribeReactivates(t *testing.T) {
	repo := newFakeNewsletterRepo()
	ns := NewNewsletterService(repo, nil)

	sub, err := ns.Subscribe(context.Background(), SubscribeInput{Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = ns.Unsubscribe(context.Background(), "ada@example.com", "too many emails")
	require.NoError(t, err)
	assert.False(t, repo.subs[sub.Email].IsActive)

	again, err := ns.Subscribe(context.Background(), SubscribeInput{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.True(t, again.IsActive)
	assert.False(t, again.IsVerified, "resubscribing restarts verification")
	assert.NotEmpty(t, again.VerificationToken)
}

func TestVerifyConsumesToken(t *testing.T) {
	ns := NewNewsletterService(newFakeNewsletterRepo(), nil)

	sub, err := ns.Subscribe(context.Background(), SubscribeInput{Email: "ada@example.com"})
	require.NoError(t, err)

	verified, err := ns.Verify(context.Background(), sub.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Empty(t, verified.VerificationToken)

	// A consumed token no longer resolves.
	_, err = ns.Verify(context.Background(), sub.VerificationToken)
	assertStatus(t, err, 404)
}

func TestVerifyUnknownToken(t *testing.T) {
	ns := NewNewsletterService(newFakeNewsletterRepo(), nil)

	_, err := ns.Verify(context.Background(), "deadbeef")
	assertStatus(t, err, 404)

	_, err = ns.Verify(context.Background(), "")
	assertStatus(t, err, 400)
}

func TestUnsubscribeUnknownOrInactive(t *testing.T) {
	ns := NewNewsletterService(newFakeNewsletterRepo(), nil)

	_, err := ns.Unsubscribe(context.Background(), "ghost@example.com", "")
	assertStatus(t, err, 404)

	_, err = ns.Subscribe(context.Background(), SubscribeInput{Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = ns.Unsubscribe(context.Background(), "ada@example.com", "")
	require.NoError(t, err)

	_, err = ns.Unsubscribe(context.Background(), "ada@example.com", "")
	assertStatus(t, err, 400)
}

func TestUpdatePreferences(t *testing.T) {
	ns := NewNewsletterService(newFakeNewsletterRepo(), nil)

	_, err := ns.Subscribe(context.Background(), SubscribeInput{Email: "ada@example.com"})
	require.NoError(t, err)

	prefs := models.NewsletterPreferences{Promotions: false, NewHotels: true}
	updated, err := ns.UpdatePreferences(context.Background(), "ada@example.com", prefs)
	require.NoError(t, err)
	assert.False(t, updated.Preferences.Promotions)
	assert.True(t, updated.Preferences.NewHotels)
}
