// controllers/gallery_controller.go
package controllers

import (
	"net/http"

	"github.com/ammiagames/sonder-sub002/services"

	"github.com/gin-gonic/gin"
)

type GalleryController struct {
	Svc *services.GalleryService
}

func NewGalleryController(svc *services.GalleryService) *GalleryController {
	return &GalleryController{Svc: svc}
}

// GetMasonry serves the two-column grid with the chronological trail order.
func (gc *GalleryController) GetMasonry(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	view, err := gc.Svc.Masonry(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (gc *GalleryController) GetBoardingPass(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	view, err := gc.Svc.BoardingPass(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (gc *GalleryController) GetFeed(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := gc.Svc.Feed(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
