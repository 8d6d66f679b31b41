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

func ListTestimonials(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)

		filter := models.TestimonialFilter{
			MinRating: queryInt(c, "minRating"),
			Featured:  queryBool(c, "featured"),
		}
		if hotelHex := c.Query("hotel"); hotelHex != "" {
			hotelID, err := primitive.ObjectIDFromHex(hotelHex)
			if err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid hotel id"))
				return
			}
			filter.Hotel = &hotelID
		}

		testimonials, total, err := ts.ListTestimonials(c.Request.Context(), filter, page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(testimonials, page, limit, total))
	}
}

func TestimonialsByHotel(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		result, total, err := ts.TestimonialsByHotel(c.Request.Context(), c.Param("hotelId"), page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(result, page, limit, total))
	}
}

func GetTestimonial(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonial, err := ts.GetTestimonial(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(testimonial, "Testimonial retrieved"))
	}
}

func CreateTestimonial(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var testimonial models.Testimonial
		if err := c.ShouldBindJSON(&testimonial); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := ts.CreateTestimonial(c.Request.Context(), &testimonial, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Testimonial submitted for review"))
	}
}

func MarkTestimonialHelpful(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		testimonial, err := ts.MarkHelpful(c.Request.Context(), c.Param("id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(testimonial, "Marked as helpful"))
	}
}

func RespondToTestimonial(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Response string `json:"response"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		testimonial, err := ts.Respond(c.Request.Context(), c.Param("id"), in.Response, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(testimonial, "Response recorded"))
	}
}

func ApproveTestimonial(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Approved *bool `json:"approved"`
		}
		_ = c.ShouldBindJSON(&in)
		approved := true
		if in.Approved != nil {
			approved = *in.Approved
		}

		testimonial, err := ts.SetApproved(c.Request.Context(), c.Param("id"), approved, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(testimonial, "Testimonial approval updated"))
	}
}

func FeatureTestimonial(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Featured *bool `json:"featured"`
		}
		_ = c.ShouldBindJSON(&in)
		featured := true
		if in.Featured != nil {
			featured = *in.Featured
		}

		testimonial, err := ts.SetFeatured(c.Request.Context(), c.Param("id"), featured, middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(testimonial, "Testimonial feature flag updated"))
	}
}

func DeleteTestimonial(ts *services.TestimonialService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ts.DeleteTestimonial(c.Request.Context(), c.Param("id"), middleware.GetIdentity(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Testimonial deleted successfully"))
	}
}
