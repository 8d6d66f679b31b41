package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/middleware"
	"github.com/joseph-annor/stayhub/internal/models"
	"github.com/joseph-annor/stayhub/internal/services"
)

func roomSort(c *gin.Context) models.RoomSort {
	switch c.Query("sort") {
	case "priceAsc":
		return models.SortPriceAsc
	case "priceDesc":
		return models.SortPriceDesc
	default:
		return models.SortNewest
	}
}

func SearchRooms(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)

		filter := models.RoomFilter{
			RoomType:  c.Query("roomType"),
			MinPrice:  queryFloat(c, "minPrice"),
			MaxPrice:  queryFloat(c, "maxPrice"),
			MinGuests: queryInt(c, "guests"),
		}
		if amenities := c.Query("amenities"); amenities != "" {
			filter.Amenities = strings.Split(amenities, ",")
		}
		if hotelHex := c.Query("hotel"); hotelHex != "" {
			hotelID, err := primitive.ObjectIDFromHex(hotelHex)
			if err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid hotel id"))
				return
			}
			filter.Hotel = &hotelID
		}

		rooms, total, err := rs.SearchRooms(c.Request.Context(), filter, roomSort(c), page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(rooms, page, limit, total))
	}
}

func RoomsByHotel(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		rooms, total, err := rs.RoomsByHotel(c.Request.Context(), c.Param("hotelId"), roomSort(c), page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(rooms, page, limit, total))
	}
}

func GetRoom(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, err := rs.GetRoom(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(room, "Room retrieved"))
	}
}

func MyRooms(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		rooms, total, err := rs.MyRooms(c.Request.Context(), middleware.GetIdentity(c), page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(rooms, page, limit, total))
	}
}

func CreateRoom(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.Room
		if err := c.ShouldBindJSON(&room); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := rs.CreateRoom(c.Request.Context(), &room, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Room created successfully"))
	}
}

func UpdateRoom(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UpdateRoomInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		updated, err := rs.UpdateRoom(c.Request.Context(), c.Param("id"), in, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Room updated successfully"))
	}
}

func UpdateRoomAvailability(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			IsAvailable    *bool `json:"isAvailable"`
			AvailableRooms *int  `json:"availableRooms"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		updated, err := rs.UpdateAvailability(c.Request.Context(), c.Param("id"), in.IsAvailable, in.AvailableRooms, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Room availability updated"))
	}
}

func DeleteRoom(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rs.DeleteRoom(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Room deleted successfully"))
	}
}

func CheckRoomAvailability(rs *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.AvailabilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		quote, err := rs.CheckAvailability(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(quote, "Availability checked"))
	}
}
