package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"neuralife-notes/neuralife/services"
)

// ownerSession resolves the sync session for the authenticated user.
// It writes the error response itself and returns nil when the caller
// should bail out.
func ownerSession(c *gin.Context, sessions services.SessionServiceInterface) services.SyncServiceInterface {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil
	}

	ownerID, ok := userIDInterface.(string)
	if !ok || ownerID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return nil
	}

	session, err := sessions.GetSession(ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	return session
}
