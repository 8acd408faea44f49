package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"neuralife-notes/neuralife/services"
)

func RegisterSyncRoutes(group *gin.RouterGroup, sessions services.SessionServiceInterface) {
	group.GET("/sync/status", func(c *gin.Context) { GetSyncStatus(c, sessions) })
	group.POST("/sync/flush", func(c *gin.Context) { FlushOfflineRecords(c, sessions) })
	group.DELETE("/session", func(c *gin.Context) { EndSession(c, sessions) })
}

func GetSyncStatus(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"online":  session.IsOnline(),
		"loading": session.Loading(),
		"owner":   session.OwnerID(),
	})
}

// FlushOfflineRecords manually replays the unsynced backlog. The same
// flush runs automatically on every offline to online transition.
func FlushOfflineRecords(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	synced, err := session.SyncOfflineRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "synced": synced})
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": synced})
}

// EndSession stops the owner's sync session. With purge=true it also
// drops the owner's cached data, the full logout path.
func EndSession(c *gin.Context, sessions services.SessionServiceInterface) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	ownerID, ok := userIDInterface.(string)
	if !ok || ownerID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	end := sessions.EndSession
	if c.Query("purge") == "true" {
		end = sessions.PurgeSession
	}
	if err := end(ownerID); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
