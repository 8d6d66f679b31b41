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

type RoomsRepo interface {
	CreateRoom(ctx context.Context, room *Room) (*Room, error)
	GetRoomByID(ctx context.Context, id primitive.ObjectID) (*Room, error)
	GetRoomView(ctx context.Context, id primitive.ObjectID) (*RoomView, error)
	SearchRooms(ctx context.Context, filter RoomFilter, sort RoomSort, page, limit int) ([]*RoomView, int64, error)
	ListRoomsByHotels(ctx context.Context, hotelIDs []primitive.ObjectID, page, limit int) ([]*Room, int64, error)
	ListAvailableRoomsByHotel(ctx context.Context, hotelID primitive.ObjectID) ([]*Room, error)
	CountAvailableRooms(ctx context.Context, hotelIDs []primitive.ObjectID) (int64, error)
	UpdateRoom(ctx context.Context, id primitive.ObjectID, update bson.M) (*Room, error)
	DeleteRoom(ctx context.Context, id primitive.ObjectID) error
}

// BuildRoomQuery turns a RoomFilter into the $match document shared by the
// global and hotel-scoped searches. Only available rooms are eligible; the
// hotel-scoped variant additionally requires remaining stock.
func BuildRoomQuery(f RoomFilter) bson.M {
	query := bson.M{"isAvailable": true}

	if f.Hotel != nil {
		query["hotel"] = *f.Hotel
	}
	if f.RequireStock {
		query["availableRooms"] = bson.M{"$gt": 0}
	}
	if f.RoomType != "" {
		query["roomType"] = bson.M{"$regex": f.RoomType, "$options": "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["pricePerNight"] = price
	}
	if len(f.Amenities) > 0 {
		query["amenities"] = bson.M{"$in": f.Amenities}
	}
	if f.MinGuests > 0 {
		query["maxGuests"] = bson.M{"$gte": f.MinGuests}
	}
	return query
}

// RoomSortStage maps a sort key to a deterministic $sort document; _id
// breaks ties so pagination is stable.
func RoomSortStage(sort RoomSort) bson.D {
	switch sort {
	case SortPriceAsc:
		return bson.D{{Key: "pricePerNight", Value: 1}, {Key: "_id", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "pricePerNight", Value: -1}, {Key: "_id", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	}
}

// roomViewStages joins the owning hotel, aggregates approved-testimonial
// statistics per room and computes finalPrice/hasDiscount. A discount past
// its validUntil date counts as absent.
func roomViewStages(now time.Time) mongo.Pipeline {
	discountValid := bson.M{"$and": bson.A{
		bson.M{"$gt": bson.A{bson.M{"$ifNull": bson.A{"$discount.amount", 0}}, 0}},
		bson.M{"$or": bson.A{
			bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$discount.validUntil", nil}}, nil}},
			bson.M{"$gte": bson.A{"$discount.validUntil", now}},
		}},
	}}

	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         HotelsColName,
			"localField":   "hotel",
			"foreignField": "_id",
			"as":           "hotel",
		}}},
		{{Key: "$unwind", Value: "$hotel"}},
		{{Key: "$lookup", Value: bson.M{
			"from": TestimonialsColName,
			"let":  bson.M{"roomId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{
					"$expr":      bson.M{"$eq": bson.A{"$room", "$$roomId"}},
					"isApproved": true,
				}},
				bson.M{"$group": bson.M{
					"_id":          "$room",
					"avgRating":    bson.M{"$avg": "$rating"},
					"totalReviews": bson.M{"$sum": 1},
				}},
			},
			"as": "reviews",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"avgRating": bson.M{
				"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$reviews.avgRating", 0}}, 0},
			},
			"totalReviews": bson.M{
				"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$reviews.totalReviews", 0}}, 0},
			},
			"finalPrice": bson.M{"$cond": bson.A{
				discountValid,
				bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$discount.type", "percentage"}},
					bson.M{"$multiply": bson.A{
						"$pricePerNight",
						bson.M{"$subtract": bson.A{1, bson.M{"$divide": bson.A{"$discount.amount", 100}}}},
					}},
					bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$pricePerNight", "$discount.amount"}}}},
				}},
				"$pricePerNight",
			}},
			"hasDiscount": discountValid,
		}}},
		{{Key: "$project", Value: bson.M{"reviews": 0}}},
	}
}

// PageStages is the $skip/$limit tail shared by the paginated pipelines.
// A page past the last one skips beyond every document, so the result is
// an empty slice while the caller's count is unaffected.
func PageStages(page, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$skip", Value: int64((page - 1) * limit)}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}

func (mdb *MongodbRepo) SearchRooms(ctx context.Context, filter RoomFilter, sort RoomSort, page, limit int) ([]*RoomView, int64, error) {
	col := mdb.GetCollection(RoomsColName)
	query := BuildRoomQuery(filter)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting rooms: %v", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
	}
	pipeline = append(pipeline, roomViewStages(time.Now())...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: RoomSortStage(sort)}})
	pipeline = append(pipeline, PageStages(page, limit)...)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("error aggregating rooms: %v", err)
	}
	defer cursor.Close(ctx)

	rooms := []*RoomView{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, 0, fmt.Errorf("error decoding rooms: %v", err)
	}
	return rooms, total, nil
}

func (mdb *MongodbRepo) GetRoomView(ctx context.Context, id primitive.ObjectID) (*RoomView, error) {
	col := mdb.GetCollection(RoomsColName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, roomViewStages(time.Now())...)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating room: %v", err)
	}
	defer cursor.Close(ctx)

	var rooms []*RoomView
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding room: %v", err)
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	return rooms[0], nil
}

func (mdb *MongodbRepo) CreateRoom(ctx context.Context, room *Room) (*Room, error) {
	col := mdb.GetCollection(RoomsColName)

	res, err := col.InsertOne(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("error inserting room: %v", err)
	}
	room.ID = res.InsertedID.(primitive.ObjectID)
	return room, nil
}

func (mdb *MongodbRepo) GetRoomByID(ctx context.Context, id primitive.ObjectID) (*Room, error) {
	col := mdb.GetCollection(RoomsColName)

	var room Room
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding room: %v", err)
	}
	return &room, nil
}

func (mdb *MongodbRepo) ListRoomsByHotels(ctx context.Context, hotelIDs []primitive.ObjectID, page, limit int) ([]*Room, int64, error) {
	col := mdb.GetCollection(RoomsColName)
	query := bson.M{"hotel": bson.M{"$in": hotelIDs}}

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting owner rooms: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding owner rooms: %v", err)
	}
	defer cursor.Close(ctx)

	rooms := []*Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, 0, fmt.Errorf("error decoding owner rooms: %v", err)
	}
	return rooms, total, nil
}

func (mdb *MongodbRepo) ListAvailableRoomsByHotel(ctx context.Context, hotelID primitive.ObjectID) ([]*Room, error) {
	col := mdb.GetCollection(RoomsColName)

	cursor, err := col.Find(ctx, bson.M{"hotel": hotelID, "isAvailable": true})
	if err != nil {
		return nil, fmt.Errorf("error finding hotel rooms: %v", err)
	}
	defer cursor.Close(ctx)

	rooms := []*Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("error decoding hotel rooms: %v", err)
	}
	return rooms, nil
}

func (mdb *MongodbRepo) CountAvailableRooms(ctx context.Context, hotelIDs []primitive.ObjectID) (int64, error) {
	col := mdb.GetCollection(RoomsColName)
	return col.CountDocuments(ctx, bson.M{
		"hotel":       bson.M{"$in": hotelIDs},
		"isAvailable": true,
	})
}

func (mdb *MongodbRepo) UpdateRoom(ctx context.Context, id primitive.ObjectID, update bson.M) (*Room, error) {
	col := mdb.GetCollection(RoomsColName)

	update["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var room Room
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating room: %v", err)
	}
	return &room, nil
}

func (mdb *MongodbRepo) DeleteRoom(ctx context.Context, id primitive.ObjectID) error {
	col := mdb.GetCollection(RoomsColName)

	if _, err := col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("error deleting room: %v", err)
	}
	return nil
}
