package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/middleware"
	"github.com/joseph-annor/stayhub/internal/models"
	"github.com/joseph-annor/stayhub/internal/services"
)

func ListHotels(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)

		filter := models.HotelFilter{
			City:      c.Query("city"),
			State:     c.Query("state"),
			MinRating: queryInt(c, "minRating"),
			Category:  c.Query("category"),
			Featured:  queryBool(c, "featured"),
		}
		if amenities := c.Query("amenities"); amenities != "" {
			filter.Amenities = strings.Split(amenities, ",")
		}

		hotels, total, err := hs.ListHotels(c.Request.Context(), filter, page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(hotels, page, limit, total))
	}
}

func ListFeaturedHotels(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit")
		if limit <= 0 || limit > 50 {
			limit = 6
		}
		hotels, err := hs.ListFeaturedHotels(c.Request.Context(), limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(hotels, "Featured hotels retrieved"))
	}
}

func GetHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := hs.GetHotel(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(detail, "Hotel retrieved"))
	}
}

func CreateHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var hotel models.Hotel
		if err := c.ShouldBindJSON(&hotel); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := hs.CreateHotel(c.Request.Context(), &hotel, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Hotel created successfully"))
	}
}

func UpdateHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UpdateHotelInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		updated, err := hs.UpdateHotel(c.Request.Context(), c.Param("id"), in, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Hotel updated successfully"))
	}
}

func DeleteHotel(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := hs.DeleteHotel(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Hotel deactivated successfully"))
	}
}

func MyHotels(hs *services.HotelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		hotels, total, err := hs.MyHotels(c.Request.Context(), middleware.GetIdentity(c), page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(hotels, page, limit, total))
	}
}
