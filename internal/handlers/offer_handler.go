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

func ListOffers(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)

		filter := models.OfferFilter{
			Active:   queryBool(c, "active"),
			Featured: queryBool(c, "featured"),
			ValidNow: c.Query("validNow") != "false",
		}
		if hotelHex := c.Query("hotel"); hotelHex != "" {
			hotelID, err := primitive.ObjectIDFromHex(hotelHex)
			if err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid hotel id"))
				return
			}
			filter.Hotel = &hotelID
		}

		offers, total, err := osvc.ListOffers(c.Request.Context(), filter, page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(offers, page, limit, total))
	}
}

func ListFeaturedOffers(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit")
		if limit <= 0 || limit > 50 {
			limit = 6
		}
		offers, err := osvc.FeaturedOffers(c.Request.Context(), limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(offers, "Featured offers retrieved"))
	}
}

func GetOffer(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offer, err := osvc.GetOffer(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(offer, "Offer retrieved"))
	}
}

func ValidatePromoCode(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Code string `json:"code"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		offer, err := osvc.ValidatePromo(c.Request.Context(), in.Code)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(offer, "Promo code is valid"))
	}
}

func CreateOffer(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var offer models.Offer
		if err := c.ShouldBindJSON(&offer); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := osvc.CreateOffer(c.Request.Context(), &offer, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Offer created successfully"))
	}
}

func UpdateOffer(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UpdateOfferInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		updated, err := osvc.UpdateOffer(c.Request.Context(), c.Param("id"), in, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Offer updated successfully"))
	}
}

func ToggleOfferActive(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		updated, err := osvc.ToggleActive(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Offer status toggled"))
	}
}

func DeleteOffer(osvc *services.OfferService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := osvc.DeleteOffer(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Offer deleted successfully"))
	}
}
