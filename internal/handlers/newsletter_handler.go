package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
	"github.com/joseph-annor/stayhub/internal/services"
)

func SubscribeNewsletter(ns *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.SubscribeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		in.IPAddress = c.ClientIP()
		in.UserAgent = c.Request.UserAgent()

		sub, err := ns.Subscribe(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(sub, "Subscribed successfully, please verify your email"))
	}
}

func VerifyNewsletter(ns *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := ns.Verify(c.Request.Context(), c.Query("token"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(sub, "Email verified successfully"))
	}
}

func UpdateNewsletterPreferences(ns *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email       string                       `json:"email"`
			Preferences models.NewsletterPreferences `json:"preferences"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		sub, err := ns.UpdatePreferences(c.Request.Context(), in.Email, in.Preferences)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(sub, "Preferences updated"))
	}
}

func UnsubscribeNewsletter(ns *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email  string `json:"email"`
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		sub, err := ns.Unsubscribe(c.Request.Context(), in.Email, in.Reason)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(sub, "Unsubscribed successfully"))
	}
}

func ListSubscribers(ns *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		activeOnly := c.DefaultQuery("active", "true") != "false"

		subs, total, err := ns.ListSubscribers(c.Request.Context(), activeOnly, page, limit)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.PaginatedResponse(subs, page, limit, total))
	}
}

func NewsletterStats(ns *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := ns.Stats(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, "Newsletter stats retrieved"))
	}
}
