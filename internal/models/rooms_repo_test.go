package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildRoomQueryDefaults(t *testing.T) {
	query := BuildRoomQuery(RoomFilter{})

	if query["isAvailable"] != true {
		t.Error("query must always require isAvailable")
	}
	if _, ok := query["availableRooms"]; ok {
		t.Error("stock filter must be off by default")
	}
	if _, ok := query["hotel"]; ok {
		t.Error("hotel filter must be absent when not scoped")
	}
}

func TestBuildRoomQueryHotelScoped(t *testing.T) {
	hotelID := primitive.NewObjectID()
	query := BuildRoomQuery(RoomFilter{Hotel: &hotelID, RequireStock: true})

	if query["hotel"] != hotelID {
		t.Errorf("hotel filter: got %v, want %v", query["hotel"], hotelID)
	}
	stock, ok := query["availableRooms"].(bson.M)
	if !ok || stock["$gt"] != 0 {
		t.Errorf("stock filter: got %v, want $gt 0", query["availableRooms"])
	}
}

func TestBuildRoomQueryPriceRange(t *testing.T) {
	min, max := 50.0, 200.0
	query := BuildRoomQuery(RoomFilter{MinPrice: &min, MaxPrice: &max})

	price, ok := query["pricePerNight"].(bson.M)
	if !ok {
		t.Fatalf("price filter missing: %v", query)
	}
	if price["$gte"] != min || price["$lte"] != max {
		t.Errorf("price range: got %v", price)
	}

	// Only one bound set keeps the other absent.
	query = BuildRoomQuery(RoomFilter{MaxPrice: &max})
	price = query["pricePerNight"].(bson.M)
	if _, ok := price["$gte"]; ok {
		t.Error("min bound should be absent")
	}
}

func TestBuildRoomQueryRoomTypeIsCaseInsensitive(t *testing.T) {
	query := BuildRoomQuery(RoomFilter{RoomType: "deluxe"})

	rt, ok := query["roomType"].(bson.M)
	if !ok {
		t.Fatalf("roomType filter missing: %v", query)
	}
	if rt["$regex"] != "deluxe" || rt["$options"] != "i" {
		t.Errorf("roomType filter: got %v", rt)
	}
}

func TestBuildRoomQueryGuestsAndAmenities(t *testing.T) {
	query := BuildRoomQuery(RoomFilter{MinGuests: 3, Amenities: []string{"wifi", "ac"}})

	guests := query["maxGuests"].(bson.M)
	if guests["$gte"] != 3 {
		t.Errorf("guests filter: got %v", guests)
	}
	amenities := query["amenities"].(bson.M)
	in, ok := amenities["$in"].([]string)
	if !ok || len(in) != 2 {
		t.Errorf("amenities filter: got %v", amenities)
	}
}

func TestRoomSortStageIsDeterministic(t *testing.T) {
	cases := []struct {
		sort  RoomSort
		first string
		order int
	}{
		{SortNewest, "createdAt", -1},
		{SortPriceAsc, "pricePerNight", 1},
		{SortPriceDesc, "pricePerNight", -1},
		{RoomSort("bogus"), "createdAt", -1},
	}

	for _, tc := range cases {
		stage := RoomSortStage(tc.sort)
		if len(stage) != 2 {
			t.Fatalf("%s: sort stage needs an _id tiebreak, got %v", tc.sort, stage)
		}
		if stage[0].Key != tc.first || stage[0].Value != tc.order {
			t.Errorf("%s: got %v", tc.sort, stage)
		}
		if stage[1].Key != "_id" {
			t.Errorf("%s: tiebreak key must be _id, got %v", tc.sort, stage[1])
		}
	}
}

func TestPageStagesBeyondLastPage(t *testing.T) {
	// 25 matching rooms at 10 per page gives 3 pages; page 9 must skip
	// past every document and leave the limit untouched, so the caller
	// gets an empty slice with the real total.
	stages := PageStages(9, 10)

	if len(stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(stages))
	}
	skip := stages[0][0]
	if skip.Key != "$skip" || skip.Value != int64(80) {
		t.Errorf("skip stage = %+v, want $skip 80", skip)
	}
	limit := stages[1][0]
	if limit.Key != "$limit" || limit.Value != int64(10) {
		t.Errorf("limit stage = %+v, want $limit 10", limit)
	}

	first := PageStages(1, 10)
	if first[0][0].Value != int64(0) {
		t.Errorf("first page skip = %v, want 0", first[0][0].Value)
	}
}

func TestRoomApplyDefaultsClampsStock(t *testing.T) {
	room := Room{TotalRooms: 3, AvailableRooms: 10}
	room.ApplyDefaults()

	if room.AvailableRooms != 3 {
		t.Errorf("availableRooms: got %d, want clamp to 3", room.AvailableRooms)
	}
	if room.Currency != "NGN" {
		t.Errorf("currency default: got %q", room.Currency)
	}
}
