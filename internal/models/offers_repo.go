package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OffersRepo interface {
	CreateOffer(ctx context.Context, offer *Offer) (*Offer, error)
	GetOfferByID(ctx context.Context, id primitive.ObjectID) (*Offer, error)
	ListOffers(ctx context.Context, filter OfferFilter, page, limit int) ([]*Offer, int64, error)
	FindOfferByPromoCode(ctx context.Context, code string, now time.Time) (*Offer, error)
	UpdateOffer(ctx context.Context, id primitive.ObjectID, update bson.M) (*Offer, error)
	DeleteOffer(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// BuildOfferQuery turns an OfferFilter into the Mongo filter document.
func BuildOfferQuery(f OfferFilter, now time.Time) bson.M {
	query := bson.M{}
	if f.Hotel != nil {
		query["hotel"] = *f.Hotel
	}
	if f.Active != nil {
		query["isActive"] = *f.Active
	}
	if f.Featured != nil {
		query["isFeatured"] = *f.Featured
	}
	if f.ValidNow {
		query["isActive"] = true
		query["startDate"] = bson.M{"$lte": now}
		query["endDate"] = bson.M{"$gte": now}
	}
	return query
}

func (mdb *MongodbRepo) CreateOffer(ctx context.Context, offer *Offer) (*Offer, error) {
	col := mdb.GetCollection(OffersColName)

	res, err := col.InsertOne(ctx, offer)
	if err != nil {
		return nil, fmt.Errorf("error inserting offer: %v", err)
	}
	offer.ID = res.InsertedID.(primitive.ObjectID)
	return offer, nil
}

func (mdb *MongodbRepo) GetOfferByID(ctx context.Context, id primitive.ObjectID) (*Offer, error) {
	col := mdb.GetCollection(OffersColName)

	var offer Offer
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding offer: %v", err)
	}
	return &offer, nil
}

func (mdb *MongodbRepo) ListOffers(ctx context.Context, filter OfferFilter, page, limit int) ([]*Offer, int64, error) {
	col := mdb.GetCollection(OffersColName)
	query := BuildOfferQuery(filter, time.Now())

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting offers: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding offers: %v", err)
	}
	defer cursor.Close(ctx)

	offers := []*Offer{}
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, 0, fmt.Errorf("error decoding offers: %v", err)
	}
	return offers, total, nil
}

// FindOfferByPromoCode looks up a currently valid offer by its promo code.
// Codes are stored uppercase.
func (mdb *MongodbRepo) FindOfferByPromoCode(ctx context.Context, code string, now time.Time) (*Offer, error) {
	col := mdb.GetCollection(OffersColName)

	query := bson.M{
		"promoCode": strings.ToUpper(strings.TrimSpace(code)),
		"isActive":  true,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gte": now},
	}

	var offer Offer
	err := col.FindOne(ctx, query).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding offer by promo code: %v", err)
	}
	return &offer, nil
}

func (mdb *MongodbRepo) UpdateOffer(ctx context.Context, id primitive.ObjectID, update bson.M) (*Offer, error) {
	col := mdb.GetCollection(OffersColName)

	update["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var offer Offer
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating offer: %v", err)
	}
	return &offer, nil
}

func (mdb *MongodbRepo) DeleteOffer(ctx context.Context, id primitive.ObjectID) (bool, error) {
	col := mdb.GetCollection(OffersColName)

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting offer: %v", err)
	}
	return res.DeletedCount > 0, nil
}
