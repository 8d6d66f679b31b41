package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/middleware"
	"github.com/joseph-annor/stayhub/internal/services"
)

func OwnerDashboard(ds *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := ds.OwnerDashboard(c.Request.Context(), middleware.GetIdentity(c))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, "Dashboard retrieved"))
	}
}
