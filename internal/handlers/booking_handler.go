package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/middleware"
	"github.com/joseph-annor/stayhub/internal/models"
	"github.com/joseph-annor/stayhub/internal/services"
)

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.CreateBookingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.CreateBooking(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(booking, "Booking created successfully"))
	}
}

func GetPublicBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := bs.GetPublicBooking(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, "Booking retrieved"))
	}
}

func MyBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		bookings, total, err := bs.MyBookings(c.Request.Context(), middleware.GetIdentity(c), page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(bookings, page, limit, total))
	}
}

func GetBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := bs.GetBooking(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, "Booking retrieved"))
	}
}

func CancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := bs.CancelBooking(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, "Booking cancelled"))
	}
}

func ListBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)

		filter := models.BookingFilter{
			Status:     c.Query("status"),
			GuestEmail: c.Query("guestEmail"),
		}
		if hotelHex := c.Query("hotel"); hotelHex != "" {
			hotelID, err := primitive.ObjectIDFromHex(hotelHex)
			if err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid hotel id"))
				return
			}
			filter.Hotel = &hotelID
		}

		sortBy := c.DefaultQuery("sortBy", "createdAt")
		sortAsc := c.Query("order") == "asc"

		bookings, total, err := bs.ListBookings(c.Request.Context(), filter, sortBy, sortAsc, page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(bookings, page, limit, total))
	}
}

func BookingStats(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := bs.Stats(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, "Booking stats retrieved"))
	}
}

func BookingsByGuest(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		bookings, total, err := bs.BookingsByGuest(c.Request.Context(), c.Param("email"), page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(bookings, page, limit, total))
	}
}

func UpdateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UpdateBookingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.UpdateBooking(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, "Booking updated successfully"))
	}
}

func UpdateBookingPayment(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			IsPaid *bool `json:"isPaid" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("isPaid is required"))
			return
		}

		booking, err := bs.MarkPayment(c.Request.Context(), c.Param("id"), *in.IsPaid)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, "Booking payment updated"))
	}
}

func DeleteBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := bs.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Booking deleted successfully"))
	}
}
