package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"neuralife-notes/neuralife/services"
)

func RegisterFolderRoutes(group *gin.RouterGroup, sessions services.SessionServiceInterface) {
	group.GET("/folders", func(c *gin.Context) { GetFolders(c, sessions) })
	group.POST("/folders", func(c *gin.Context) { CreateFolder(c, sessions) })
	group.DELETE("/folders/:id", func(c *gin.Context) { DeleteFolder(c, sessions) })
}

func CreateFolder(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	var folderData map[string]interface{}
	if err := c.ShouldBindJSON(&folderData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdFolder, err := session.CreateFolder(folderData)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, createdFolder)
}

// DeleteFolder removes only the folder row. Notes that referenced it
// keep their folder_id and surface as orphans until reassigned.
func DeleteFolder(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	id := c.Param("id")
	if err := session.DeleteFolder(id); err != nil {
		if errors.Is(err, services.ErrFolderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func GetFolders(c *gin.Context, sessions services.SessionServiceInterface) {
	session := ownerSession(c, sessions)
	if session == nil {
		return
	}

	c.JSON(http.StatusOK, session.Folders())
}
