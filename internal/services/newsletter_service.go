package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

type NewsletterService struct {
	newsletterRepo models.NewsletterRepo
	logger         *slog.Logger
	now            func() time.Time
}

func NewNewsletterService(newsletterRepo models.NewsletterRepo, logger *slog.Logger) *NewsletterService {
	return &NewsletterService{
		newsletterRepo: newsletterRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// SubscribeInput is the public signup form.
type SubscribeInput struct {
	Email       string                        `json:"email" validate:"required,email"`
	FirstName   string                        `json:"firstName" validate:"max=50"`
	LastName    string                        `json:"lastName" validate:"max=50"`
	Preferences *models.NewsletterPreferences `json:"preferences"`
	City        string                        `json:"city"`
	Country     string                        `json:"country"`
	Source      string                        `json:"source"`
	IPAddress   string                        `json:"-"`
	UserAgent   string                        `json:"-"`
}

// Subscribe creates a pending subscription, or reactivates a previously
// unsubscribed address. There is no mail delivery; the verification token
// is logged for out-of-band handling.
func (ns *NewsletterService) Subscribe(ctx context.Context, in SubscribeInput) (*models.Subscriber, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, helpers.NewValidationError(fmt.Sprintf("invalid subscription data: %v", err))
	}
	email := strings.ToLower(helpers.StringTrim(in.Email))

	existing, err := ns.newsletterRepo.FindSubscriberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive {
			return nil, helpers.NewPolicyError("email is already subscribed")
		}
		// Resubscribe: reactivate and restart verification.
		token := helpers.GenerateToken()
		doc := bson.M{
			"isActive":          true,
			"isVerified":        false,
			"verificationToken": token,
			"unsubscribedAt":    nil,
			"unsubscribeReason": "",
		}
		if in.Preferences != nil {
			doc["preferences"] = *in.Preferences
		}
		updated, err := ns.newsletterRepo.UpdateSubscriberByEmail(ctx, email, doc)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, helpers.NewNotFoundError("subscriber not found")
		}
		ns.logVerificationToken(email, token)
		return updated, nil
	}

	now := ns.now()
	sub := &models.Subscriber{
		Email:             email,
		FirstName:         helpers.StringTrim(in.FirstName),
		LastName:          helpers.StringTrim(in.LastName),
		Preferences:       models.DefaultNewsletterPreferences(),
		City:              helpers.StringTrim(in.City),
		Country:           helpers.StringTrim(in.Country),
		Source:            in.Source,
		IPAddress:         in.IPAddress,
		UserAgent:         in.UserAgent,
		IsActive:          true,
		IsVerified:        false,
		VerificationToken: helpers.GenerateToken(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.Preferences != nil {
		sub.Preferences = *in.Preferences
	}
	sub.ApplyDefaults()
	created, err := ns.newsletterRepo.CreateSubscriber(ctx, sub)
	if err != nil {
		return nil, err
	}
	ns.logVerificationToken(created.Email, created.VerificationToken)
	return created, nil
}

func (ns *NewsletterService) logVerificationToken(email, token string) {
	if ns.logger == nil {
		return
	}
	ns.logger.Info("Newsletter verification token issued", "email", email, "token", token)
}

// Verify consumes a verification token.
func (ns *NewsletterService) Verify(ctx context.Context, token string) (*models.Subscriber, error) {
	token = helpers.StringTrim(token)
	if token == "" {
		return nil, helpers.NewValidationError("verification token is required")
	}

	sub, err := ns.newsletterRepo.FindSubscriberByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, helpers.NewNotFoundError("invalid verification token")
	}

	now := ns.now()
	updated, err := ns.newsletterRepo.UpdateSubscriberByEmail(ctx, sub.Email, bson.M{
		"isVerified":        true,
		"verifiedAt":        now,
		"verificationToken": "",
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("subscriber not found")
	}
	return updated, nil
}

func (ns *NewsletterService) UpdatePreferences(ctx context.Context, email string, prefs models.NewsletterPreferences) (*models.Subscriber, error) {
	email = strings.ToLower(helpers.StringTrim(email))
	if email == "" {
		return nil, helpers.NewValidationError("email is required")
	}

	sub, err := ns.newsletterRepo.FindSubscriberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, helpers.NewNotFoundError("subscriber not found")
	}
	if !sub.IsActive {
		return nil, helpers.NewPolicyError("subscription is not active")
	}

	updated, err := ns.newsletterRepo.UpdateSubscriberByEmail(ctx, email, bson.M{"preferences": prefs})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("subscriber not found")
	}
	return updated, nil
}

// Unsubscribe deactivates the subscription and records why. The document
// is kept so the address can resubscribe later.
func (ns *NewsletterService) Unsubscribe(ctx context.Context, email, reason string) (*models.Subscriber, error) {
	email = strings.ToLower(helpers.StringTrim(email))
	if email == "" {
		return nil, helpers.NewValidationError("email is required")
	}

	sub, err := ns.newsletterRepo.FindSubscriberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, helpers.NewNotFoundError("subscriber not found")
	}
	if !sub.IsActive {
		return nil, helpers.NewPolicyError("email is already unsubscribed")
	}

	now := ns.now()
	updated, err := ns.newsletterRepo.UpdateSubscriberByEmail(ctx, email, bson.M{
		"isActive":          false,
		"unsubscribedAt":    now,
		"unsubscribeReason": helpers.StringTrim(reason),
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, helpers.NewNotFoundError("subscriber not found")
	}
	return updated, nil
}

func (ns *NewsletterService) ListSubscribers(ctx context.Context, activeOnly bool, page, limit int) ([]*models.Subscriber, int64, error) {
	return ns.newsletterRepo.ListSubscribers(ctx, activeOnly, page, limit)
}

func (ns *NewsletterService) Stats(ctx context.Context) (*models.NewsletterStats, error) {
	return ns.newsletterRepo.NewsletterStats(ctx, ns.now())
}
