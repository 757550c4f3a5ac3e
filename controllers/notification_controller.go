package controllers

import (
	"net/http"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"

	"github.com/gin-gonic/gin"
)

type toggleInput struct {
	Enabled bool `json:"enabled"`
}

// ToggleNotifications flips push delivery for all of the user's devices.
func ToggleNotifications(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.
		Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", input.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
