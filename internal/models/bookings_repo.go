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

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	GetBookingView(ctx context.Context, id primitive.ObjectID) (*BookingView, error)
	ListBookings(ctx context.Context, filter BookingFilter, sortBy string, sortAsc bool, page, limit int) ([]*BookingView, int64, error)
	UpdateBooking(ctx context.Context, id primitive.ObjectID, update bson.M) (*Booking, error)
	DeleteBooking(ctx context.Context, id primitive.ObjectID) (bool, error)
	BookingStats(ctx context.Context) (*BookingStats, error)
	DashboardStats(ctx context.Context, hotelIDs []primitive.ObjectID, now time.Time) (*DashboardStats, error)
}

// BuildBookingQuery turns a BookingFilter into the Mongo filter document.
func BuildBookingQuery(f BookingFilter) bson.M {
	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.GuestEmail != "" {
		query["guestEmail"] = f.GuestEmail
	}
	if f.Hotel != nil {
		query["hotel"] = *f.Hotel
	}
	return query
}

// bookingViewStages resolves the room and hotel references. Lookups keep
// the booking even when the referenced documents are gone.
func bookingViewStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         RoomsColName,
			"localField":   "room",
			"foreignField": "_id",
			"as":           "roomInfo",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$roomInfo", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         HotelsColName,
			"localField":   "hotel",
			"foreignField": "_id",
			"as":           "hotelInfo",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$hotelInfo", "preserveNullAndEmptyArrays": true}}},
	}
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col := mdb.GetCollection(BookingsColName)

	res, err := col.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("error inserting booking: %v", err)
	}
	booking.ID = res.InsertedID.(primitive.ObjectID)
	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col := mdb.GetCollection(BookingsColName)

	var booking Booking
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding booking: %v", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) GetBookingView(ctx context.Context, id primitive.ObjectID) (*BookingView, error) {
	col := mdb.GetCollection(BookingsColName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, bookingViewStages()...)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating booking: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []*BookingView
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding booking: %v", err)
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return bookings[0], nil
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context, filter BookingFilter, sortBy string, sortAsc bool, page, limit int) ([]*BookingView, int64, error) {
	col := mdb.GetCollection(BookingsColName)
	query := BuildBookingQuery(filter)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %v", err)
	}

	if sortBy == "" {
		sortBy = "createdAt"
	}
	order := -1
	if sortAsc {
		order = 1
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: order}, {Key: "_id", Value: order}}}},
	}
	pipeline = append(pipeline, PageStages(page, limit)...)
	pipeline = append(pipeline, bookingViewStages()...)

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("error aggregating bookings: %v", err)
	}
	defer cursor.Close(ctx)

	bookings := []*BookingView{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %v", err)
	}
	return bookings, total, nil
}

func (mdb *MongodbRepo) UpdateBooking(ctx context.Context, id primitive.ObjectID, update bson.M) (*Booking, error) {
	col := mdb.GetCollection(BookingsColName)

	update["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking Booking
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking: %v", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) DeleteBooking(ctx context.Context, id primitive.ObjectID) (bool, error) {
	col := mdb.GetCollection(BookingsColName)

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting booking: %v", err)
	}
	return res.DeletedCount > 0, nil
}

func (mdb *MongodbRepo) BookingStats(ctx context.Context) (*BookingStats, error) {
	col := mdb.GetCollection(BookingsColName)

	stats := &BookingStats{ByStatus: map[string]int64{}}

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error counting bookings: %v", err)
	}
	stats.Total = total

	statusCursor, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("error aggregating booking statuses: %v", err)
	}
	defer statusCursor.Close(ctx)

	var statusRows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := statusCursor.All(ctx, &statusRows); err != nil {
		return nil, fmt.Errorf("error decoding booking statuses: %v", err)
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	revenueCursor, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isPaid": true}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalPrice"}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("error aggregating revenue: %v", err)
	}
	defer revenueCursor.Close(ctx)

	var revenueRows []struct {
		Total float64 `bson:"total"`
	}
	if err := revenueCursor.All(ctx, &revenueRows); err != nil {
		return nil, fmt.Errorf("error decoding revenue: %v", err)
	}
	if len(revenueRows) > 0 {
		stats.TotalRevenue = revenueRows[0].Total
	}

	monthCursor, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isPaid": true}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"revenue":  bson.M{"$sum": "$totalPrice"},
			"bookings": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: -1}, {Key: "_id.month", Value: -1}}}},
		{{Key: "$limit", Value: 12}},
	})
	if err != nil {
		return nil, fmt.Errorf("error aggregating monthly revenue: %v", err)
	}
	defer monthCursor.Close(ctx)

	var monthRows []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Revenue  float64 `bson:"revenue"`
		Bookings int64   `bson:"bookings"`
	}
	if err := monthCursor.All(ctx, &monthRows); err != nil {
		return nil, fmt.Errorf("error decoding monthly revenue: %v", err)
	}
	for _, row := range monthRows {
		stats.ByMonth = append(stats.ByMonth, MonthlyRevenue{
			Year:     row.ID.Year,
			Month:    row.ID.Month,
			Revenue:  row.Revenue,
			Bookings: row.Bookings,
		})
	}

	return stats, nil
}

// DashboardStats is the owner dashboard aggregate across their hotels.
type DashboardStats struct {
	TotalBookings  int64          `json:"totalBookings"`
	TotalRevenue   float64        `json:"totalRevenue"`
	RecentBookings []*BookingView `json:"recentBookings"`
	TotalRooms     int64          `json:"totalRooms"`
	OccupancyRate  int            `json:"occupancyRate"`
}

func (mdb *MongodbRepo) DashboardStats(ctx context.Context, hotelIDs []primitive.ObjectID, now time.Time) (*DashboardStats, error) {
	col := mdb.GetCollection(BookingsColName)
	stats := &DashboardStats{RecentBookings: []*BookingView{}}

	hotelScope := bson.M{"$in": hotelIDs}

	totalBookings, err := col.CountDocuments(ctx, bson.M{
		"hotel":  hotelScope,
		"status": bson.M{"$in": bson.A{BookingConfirmed, BookingCompleted}},
	})
	if err != nil {
		return nil, fmt.Errorf("error counting owner bookings: %v", err)
	}
	stats.TotalBookings = totalBookings

	revenueCursor, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"hotel":  hotelScope,
			"status": bson.M{"$in": bson.A{BookingConfirmed, BookingCompleted}},
			"isPaid": true,
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalPrice"}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("error aggregating owner revenue: %v", err)
	}
	defer revenueCursor.Close(ctx)

	var revenueRows []struct {
		Total float64 `bson:"total"`
	}
	if err := revenueCursor.All(ctx, &revenueRows); err != nil {
		return nil, fmt.Errorf("error decoding owner revenue: %v", err)
	}
	if len(revenueRows) > 0 {
		stats.TotalRevenue = revenueRows[0].Total
	}

	recentPipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"hotel": hotelScope}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: 10}},
	}
	recentPipeline = append(recentPipeline, bookingViewStages()...)

	recentCursor, err := col.Aggregate(ctx, recentPipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating recent bookings: %v", err)
	}
	defer recentCursor.Close(ctx)

	if err := recentCursor.All(ctx, &stats.RecentBookings); err != nil {
		return nil, fmt.Errorf("error decoding recent bookings: %v", err)
	}

	totalRooms, err := mdb.CountAvailableRooms(ctx, hotelIDs)
	if err != nil {
		return nil, fmt.Errorf("error counting owner rooms: %v", err)
	}
	stats.TotalRooms = totalRooms

	// Simplified occupancy: confirmed bookings whose stay covers today.
	occupied, err := col.CountDocuments(ctx, bson.M{
		"hotel":        hotelScope,
		"status":       BookingConfirmed,
		"checkInDate":  bson.M{"$lte": now},
		"checkOutDate": bson.M{"$gte": now},
	})
	if err != nil {
		return nil, fmt.Errorf("error counting occupied rooms: %v", err)
	}
	if totalRooms > 0 {
		stats.OccupancyRate = int(float64(occupied)/float64(totalRooms)*100 + 0.5)
	}

	return stats, nil
}
