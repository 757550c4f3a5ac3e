package controllers

import (
	"net/http"

	"github.com/ammiagames/sonder-sub002/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct{ PS *services.PushService }

func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{PS: ps}
}

type registerDeviceInput struct {
	Platform string `json:"platform" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

func (dc *DeviceController) Register(c *gin.Context) {
	if dc.PS == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push registration unavailable"})
		return
	}

	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input registerDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.PS.RegisterDevice(userID, input.Platform, input.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dev)
}
