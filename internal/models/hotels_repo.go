package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HotelsRepo interface {
	CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error)
	GetHotelByID(ctx context.Context, id primitive.ObjectID) (*Hotel, error)
	GetActiveHotel(ctx context.Context, id primitive.ObjectID) (*Hotel, error)
	ListHotels(ctx context.Context, filter HotelFilter, page, limit int) ([]*Hotel, int64, error)
	ListHotelsByOwner(ctx context.Context, ownerID string, page, limit int) ([]*Hotel, int64, error)
	ListFeaturedHotels(ctx context.Context, limit int) ([]*Hotel, error)
	HotelIDsByOwner(ctx context.Context, ownerID string) ([]primitive.ObjectID, error)
	UpdateHotel(ctx context.Context, id primitive.ObjectID, update bson.M) (*Hotel, error)
	SoftDeleteHotel(ctx context.Context, id primitive.ObjectID) error
}

func (mdb *MongodbRepo) CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	col := mdb.GetCollection(HotelsColName)

	res, err := col.InsertOne(ctx, hotel)
	if err != nil {
		return nil, fmt.Errorf("error inserting hotel: %v", err)
	}
	hotel.ID = res.InsertedID.(primitive.ObjectID)
	return hotel, nil
}

func (mdb *MongodbRepo) GetHotelByID(ctx context.Context, id primitive.ObjectID) (*Hotel, error) {
	col := mdb.GetCollection(HotelsColName)

	var hotel Hotel
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&hotel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding hotel: %v", err)
	}
	return &hotel, nil
}

func (mdb *MongodbRepo) GetActiveHotel(ctx context.Context, id primitive.ObjectID) (*Hotel, error) {
	col := mdb.GetCollection(HotelsColName)

	var hotel Hotel
	err := col.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&hotel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding hotel: %v", err)
	}
	return &hotel, nil
}

// BuildHotelQuery turns a HotelFilter into the Mongo filter document for
// the public listing. Only active hotels are visible.
func BuildHotelQuery(f HotelFilter) bson.M {
	query := bson.M{"isActive": true}

	if f.City != "" {
		query["city"] = bson.M{"$regex": f.City, "$options": "i"}
	}
	if f.State != "" {
		query["state"] = bson.M{"$regex": f.State, "$options": "i"}
	}
	if f.MinRating > 0 {
		query["starRating"] = bson.M{"$gte": f.MinRating}
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Featured != nil {
		query["featured"] = *f.Featured
	}
	if len(f.Amenities) > 0 {
		query["amenities"] = bson.M{"$in": f.Amenities}
	}
	return query
}

func (mdb *MongodbRepo) ListHotels(ctx context.Context, filter HotelFilter, page, limit int) ([]*Hotel, int64, error) {
	col := mdb.GetCollection(HotelsColName)
	query := BuildHotelQuery(filter)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting hotels: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding hotels: %v", err)
	}
	defer cursor.Close(ctx)

	hotels := []*Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, 0, fmt.Errorf("error decoding hotels: %v", err)
	}
	return hotels, total, nil
}

func (mdb *MongodbRepo) ListHotelsByOwner(ctx context.Context, ownerID string, page, limit int) ([]*Hotel, int64, error) {
	col := mdb.GetCollection(HotelsColName)
	query := bson.M{"ownerId": ownerID}

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting owner hotels: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding owner hotels: %v", err)
	}
	defer cursor.Close(ctx)

	hotels := []*Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, 0, fmt.Errorf("error decoding owner hotels: %v", err)
	}
	return hotels, total, nil
}

func (mdb *MongodbRepo) ListFeaturedHotels(ctx context.Context, limit int) ([]*Hotel, error) {
	col := mdb.GetCollection(HotelsColName)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{"isActive": true, "featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding featured hotels: %v", err)
	}
	defer cursor.Close(ctx)

	hotels := []*Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding featured hotels: %v", err)
	}
	return hotels, nil
}

func (mdb *MongodbRepo) HotelIDsByOwner(ctx context.Context, ownerID string) ([]primitive.ObjectID, error) {
	col := mdb.GetCollection(HotelsColName)

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := col.Find(ctx, bson.M{"ownerId": ownerID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding owner hotel ids: %v", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding owner hotel ids: %v", err)
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (mdb *MongodbRepo) UpdateHotel(ctx context.Context, id primitive.ObjectID, update bson.M) (*Hotel, error) {
	col := mdb.GetCollection(HotelsColName)

	update["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var hotel Hotel
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&hotel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating hotel: %v", err)
	}
	return &hotel, nil
}

// SoftDeleteHotel flips isActive off; hotel documents are never removed.
func (mdb *MongodbRepo) SoftDeleteHotel(ctx context.Context, id primitive.ObjectID) error {
	col := mdb.GetCollection(HotelsColName)

	_, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("error deactivating hotel: %v", err)
	}
	return nil
}
