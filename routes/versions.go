package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"neuralife-notes/neuralife/services"
)

func RegisterVersionRoutes(group *gin.RouterGroup, sessions services.SessionServiceInterface) {
	group.GET("/notes/:id/versions", func(c *gin.Context) { GetVersionHistory(c, sessions) })
	group.POST("/notes/:id/versions", func(c *gin.Context) { SaveVersion(c, sessions) })
	group.DELETE("/notes/:id/versions", func(c *gin.Context) { DeleteVersionHistory(c, sessions) })
}

// SaveVersion appends a snapshot of the note content to the local
// version history. Versions never leave the device.
func SaveVersion(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	noteID := c.Param("id")
	var versionData struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&versionData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SaveVersion(noteID, versionData.Title, versionData.Content); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{})
}

func GetVersionHistory(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	noteID := c.Param("id")
	versions, err := session.GetVersionHistory(noteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, versions)
}

func DeleteVersionHistory(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	noteID := c.Param("id")
	if err := session.DeleteVersionHistory(noteID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
