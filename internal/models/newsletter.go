package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NewsletterPreferences struct {
	Promotions      bool `bson:"promotions" json:"promotions"`
	NewHotels       bool `bson:"newHotels" json:"newHotels"`
	TravelTips      bool `bson:"travelTips" json:"travelTips"`
	ExclusiveOffers bool `bson:"exclusiveOffers" json:"exclusiveOffers"`
}

func DefaultNewsletterPreferences() NewsletterPreferences {
	return NewsletterPreferences{
		Promotions:      true,
		NewHotels:       true,
		TravelTips:      true,
		ExclusiveOffers: true,
	}
}

type Subscriber struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`

	Email     string `bson:"email" json:"email" validate:"required,email"`
	FirstName string `bson:"firstName,omitempty" json:"firstName,omitempty" validate:"max=50"`
	LastName  string `bson:"lastName,omitempty" json:"lastName,omitempty" validate:"max=50"`

	Preferences NewsletterPreferences `bson:"preferences" json:"preferences"`

	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Country  string `bson:"country" json:"country"`
	Language string `bson:"language" json:"language"`

	Source    string `bson:"source" json:"source" validate:"omitempty,oneof=website booking social_media referral other"`
	IPAddress string `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent string `bson:"userAgent,omitempty" json:"userAgent,omitempty"`

	IsActive   bool `bson:"isActive" json:"isActive"`
	IsVerified bool `bson:"isVerified" json:"isVerified"`

	OpenCount      int        `bson:"openCount" json:"openCount"`
	ClickCount     int        `bson:"clickCount" json:"clickCount"`
	LastEngagement *time.Time `bson:"lastEngagement,omitempty" json:"lastEngagement,omitempty"`

	VerificationToken string     `bson:"verificationToken,omitempty" json:"-"`
	VerifiedAt        *time.Time `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`

	UnsubscribedAt    *time.Time `bson:"unsubscribedAt,omitempty" json:"unsubscribedAt,omitempty"`
	UnsubscribeReason string     `bson:"unsubscribeReason,omitempty" json:"unsubscribeReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Subscriber) ApplyDefaults() {
	if s.Country == "" {
		s.Country = "Nigeria"
	}
	if s.Language == "" {
		s.Language = "en"
	}
	if s.Source == "" {
		s.Source = "website"
	}
}

// NewsletterStats is the admin overview of the subscriber base.
type NewsletterStats struct {
	TotalSubscribers  int64       `json:"totalSubscribers"`
	TotalUnsubscribed int64       `json:"totalUnsubscribed"`
	NewThisWeek       int64       `json:"newThisWeek"`
	TopCities         []CityCount `json:"topCities"`
}

type CityCount struct {
	City  string `bson:"_id" json:"city"`
	Count int64  `bson:"count" json:"count"`
}
