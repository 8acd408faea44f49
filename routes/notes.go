package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"neuralife-notes/neuralife/services"
)

func RegisterNoteRoutes(group *gin.RouterGroup, sessions services.SessionServiceInterface) {
	// Collection endpoints
	group.GET("/notes", func(c *gin.Context) { GetNotes(c, sessions) })
	group.POST("/notes", func(c *gin.Context) { SaveNote(c, sessions) })

	// Resource-specific endpoints
	group.GET("/notes/:id", func(c *gin.Context) { GetNoteById(c, sessions) })
	group.DELETE("/notes/:id", func(c *gin.Context) { DeleteNote(c, sessions) })
}

// SaveNote handles both creation and edits. A payload without an id (or
// with a temp id) creates locally first; the id is promoted once the
// remote write lands.
func SaveNote(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	var noteData map[string]interface{}
	if err := c.ShouldBindJSON(&noteData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	savedNote, err := session.SaveNote(noteData)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, savedNote)
}

func GetNoteById(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	id := c.Param("id")
	note, err := session.GetNote(id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

func DeleteNote(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	id := c.Param("id")
	if err := session.DeleteNote(id); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

// GetNotes serves the session's in-memory view, which mirrors the local
// cache and is refreshed by remote snapshots while online.
func GetNotes(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	c.JSON(http.StatusOK, session.Notes())
}
