package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	HotelsColName       = "hotels"
	RoomsColName        = "rooms"
	BookingsColName     = "bookings"
	OffersColName       = "offers"
	TestimonialsColName = "testimonials"
	NewsletterColName   = "newsletters"
)

type MongodbRepo struct {
	client *mongo.Client
	dbName string
}

func MongodbNewRepo(client *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		client: client,
		dbName: dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(name string) *mongo.Collection {
	return mdb.client.Database(mdb.dbName).Collection(name)
}

// EnsureIndexes creates the query indexes the search and listing paths
// depend on. Called once at startup.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		HotelsColName: {
			{Keys: bson.D{{Key: "city", Value: 1}, {Key: "isActive", Value: 1}}},
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "isActive", Value: 1}}},
		},
		RoomsColName: {
			{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "isAvailable", Value: 1}}},
			{Keys: bson.D{{Key: "roomType", Value: 1}}},
			{Keys: bson.D{{Key: "pricePerNight", Value: 1}}},
		},
		BookingsColName: {
			{Keys: bson.D{{Key: "guestEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "status", Value: 1}}},
		},
		OffersColName: {
			{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "isActive", Value: 1}}},
			{Keys: bson.D{{Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}}},
			{
				Keys:    bson.D{{Key: "promoCode", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
		},
		TestimonialsColName: {
			{Keys: bson.D{{Key: "hotel", Value: 1}, {Key: "isApproved", Value: 1}}},
			{Keys: bson.D{{Key: "room", Value: 1}, {Key: "isApproved", Value: 1}}},
		},
		NewsletterColName: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "isVerified", Value: 1}}},
		},
	}

	for col, models := range indexes {
		if _, err := mdb.GetCollection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("error creating indexes for %s: %v", col, err)
		}
	}
	return nil
}
