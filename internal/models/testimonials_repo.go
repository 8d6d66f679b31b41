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

type TestimonialsRepo interface {
	CreateTestimonial(ctx context.Context, testimonial *Testimonial) (*Testimonial, error)
	GetTestimonialByID(ctx context.Context, id primitive.ObjectID) (*Testimonial, error)
	ListTestimonials(ctx context.Context, filter TestimonialFilter, page, limit int) ([]*Testimonial, int64, error)
	HotelRatingSummary(ctx context.Context, hotelID primitive.ObjectID) (*RatingSummary, error)
	UpdateTestimonial(ctx context.Context, id primitive.ObjectID, update bson.M) (*Testimonial, error)
	IncHelpfulCount(ctx context.Context, id primitive.ObjectID) (*Testimonial, error)
	DeleteTestimonial(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// RatingSummary aggregates approved testimonials for one hotel.
type RatingSummary struct {
	AvgRating    float64       `bson:"avgRating" json:"avgRating"`
	TotalReviews int64         `bson:"totalReviews" json:"totalReviews"`
	Breakdown    map[int]int64 `bson:"-" json:"breakdown"`
}

// BuildTestimonialQuery turns a TestimonialFilter into the Mongo filter
// document.
func BuildTestimonialQuery(f TestimonialFilter) bson.M {
	query := bson.M{}
	if f.Hotel != nil {
		query["hotel"] = *f.Hotel
	}
	if f.MinRating > 0 {
		query["rating"] = bson.M{"$gte": f.MinRating}
	}
	if f.Featured != nil {
		query["isFeatured"] = *f.Featured
	}
	if f.Approved != nil {
		query["isApproved"] = *f.Approved
	}
	return query
}

func (mdb *MongodbRepo) CreateTestimonial(ctx context.Context, testimonial *Testimonial) (*Testimonial, error) {
	col := mdb.GetCollection(TestimonialsColName)

	res, err := col.InsertOne(ctx, testimonial)
	if err != nil {
		return nil, fmt.Errorf("error inserting testimonial: %v", err)
	}
	testimonial.ID = res.InsertedID.(primitive.ObjectID)
	return testimonial, nil
}

func (mdb *MongodbRepo) GetTestimonialByID(ctx context.Context, id primitive.ObjectID) (*Testimonial, error) {
	col := mdb.GetCollection(TestimonialsColName)

	var testimonial Testimonial
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding testimonial: %v", err)
	}
	return &testimonial, nil
}

func (mdb *MongodbRepo) ListTestimonials(ctx context.Context, filter TestimonialFilter, page, limit int) ([]*Testimonial, int64, error) {
	col := mdb.GetCollection(TestimonialsColName)
	query := BuildTestimonialQuery(filter)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting testimonials: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding testimonials: %v", err)
	}
	defer cursor.Close(ctx)

	testimonials := []*Testimonial{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		return nil, 0, fmt.Errorf("error decoding testimonials: %v", err)
	}
	return testimonials, total, nil
}

// HotelRatingSummary averages approved testimonials only, with a per-star
// breakdown.
func (mdb *MongodbRepo) HotelRatingSummary(ctx context.Context, hotelID primitive.ObjectID) (*RatingSummary, error) {
	col := mdb.GetCollection(TestimonialsColName)

	cursor, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"hotel": hotelID, "isApproved": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("error aggregating ratings: %v", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding ratings: %v", err)
	}

	summary := &RatingSummary{Breakdown: map[int]int64{}}
	var sum int64
	for _, row := range rows {
		summary.Breakdown[row.Rating] = row.Count
		summary.TotalReviews += row.Count
		sum += int64(row.Rating) * row.Count
	}
	if summary.TotalReviews > 0 {
		summary.AvgRating = float64(sum) / float64(summary.TotalReviews)
	}
	return summary, nil
}

func (mdb *MongodbRepo) UpdateTestimonial(ctx context.Context, id primitive.ObjectID, update bson.M) (*Testimonial, error) {
	col := mdb.GetCollection(TestimonialsColName)

	update["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var testimonial Testimonial
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating testimonial: %v", err)
	}
	return &testimonial, nil
}

func (mdb *MongodbRepo) IncHelpfulCount(ctx context.Context, id primitive.ObjectID) (*Testimonial, error) {
	col := mdb.GetCollection(TestimonialsColName)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var testimonial Testimonial
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"helpfulCount": 1}}, opts).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error incrementing helpful count: %v", err)
	}
	return &testimonial, nil
}

func (mdb *MongodbRepo) DeleteTestimonial(ctx context.Context, id primitive.ObjectID) (bool, error) {
	col := mdb.GetCollection(TestimonialsColName)

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting testimonial: %v", err)
	}
	return res.DeletedCount > 0, nil
}
