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

type NewsletterRepo interface {
	CreateSubscriber(ctx context.Context, sub *Subscriber) (*Subscriber, error)
	FindSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error)
	FindSubscriberByToken(ctx context.Context, token string) (*Subscriber, error)
	ListSubscribers(ctx context.Context, activeOnly bool, page, limit int) ([]*Subscriber, int64, error)
	UpdateSubscriberByEmail(ctx context.Context, email string, update bson.M) (*Subscriber, error)
	NewsletterStats(ctx context.Context, now time.Time) (*NewsletterStats, error)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (mdb *MongodbRepo) CreateSubscriber(ctx context.Context, sub *Subscriber) (*Subscriber, error) {
	col := mdb.GetCollection(NewsletterColName)

	sub.Email = normalizeEmail(sub.Email)
	res, err := col.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email already subscribed: %v", err)
		}
		return nil, fmt.Errorf("error inserting subscriber: %v", err)
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return sub, nil
}

func (mdb *MongodbRepo) FindSubscriberByEmail(ctx context.Context, email string) (*Subscriber, error) {
	col := mdb.GetCollection(NewsletterColName)

	var sub Subscriber
	err := col.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding subscriber: %v", err)
	}
	return &sub, nil
}

func (mdb *MongodbRepo) FindSubscriberByToken(ctx context.Context, token string) (*Subscriber, error) {
	col := mdb.GetCollection(NewsletterColName)

	var sub Subscriber
	err := col.FindOne(ctx, bson.M{"verificationToken": token}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding subscriber by token: %v", err)
	}
	return &sub, nil
}

func (mdb *MongodbRepo) ListSubscribers(ctx context.Context, activeOnly bool, page, limit int) ([]*Subscriber, int64, error) {
	col := mdb.GetCollection(NewsletterColName)

	query := bson.M{}
	if activeOnly {
		query["isActive"] = true
	}

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting subscribers: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding subscribers: %v", err)
	}
	defer cursor.Close(ctx)

	subs := []*Subscriber{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, fmt.Errorf("error decoding subscribers: %v", err)
	}
	return subs, total, nil
}

func (mdb *MongodbRepo) UpdateSubscriberByEmail(ctx context.Context, email string, update bson.M) (*Subscriber, error) {
	col := mdb.GetCollection(NewsletterColName)

	update["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sub Subscriber
	err := col.FindOneAndUpdate(ctx, bson.M{"email": normalizeEmail(email)}, bson.M{"$set": update}, opts).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating subscriber: %v", err)
	}
	return &sub, nil
}

func (mdb *MongodbRepo) NewsletterStats(ctx context.Context, now time.Time) (*NewsletterStats, error) {
	col := mdb.GetCollection(NewsletterColName)
	stats := &NewsletterStats{TopCities: []CityCount{}}

	active, err := col.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("error counting active subscribers: %v", err)
	}
	stats.TotalSubscribers = active

	unsubscribed, err := col.CountDocuments(ctx, bson.M{"isActive": false})
	if err != nil {
		return nil, fmt.Errorf("error counting unsubscribed: %v", err)
	}
	stats.TotalUnsubscribed = unsubscribed

	weekAgo := now.AddDate(0, 0, -7)
	newThisWeek, err := col.CountDocuments(ctx, bson.M{"isActive": true, "createdAt": bson.M{"$gte": weekAgo}})
	if err != nil {
		return nil, fmt.Errorf("error counting new subscribers: %v", err)
	}
	stats.NewThisWeek = newThisWeek

	cursor, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true, "city": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$group", Value: bson.M{"_id": "$city", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 5}},
	})
	if err != nil {
		return nil, fmt.Errorf("error aggregating top cities: %v", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &stats.TopCities); err != nil {
		return nil, fmt.Errorf("error decoding top cities: %v", err)
	}
	return stats, nil
}
