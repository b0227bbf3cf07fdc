package handlers

import (
	"net/http"

	"fleetops-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// identityFromContext rebuilds the caller identity set by the auth
// middleware. A missing identity aborts with 401.
func identityFromContext(c *gin.Context) (services.Identity, bool) {
	userID := c.GetString("user_id")
	organisationID := c.GetString("organisation_id")
	role := c.GetString("role")

	if userID == "" || organisationID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		c.Abort()
		return services.Identity{}, false
	}

	return services.Identity{
		UserID:         userID,
		OrganisationID: organisationID,
		Role:           role,
	}, true
}
