package controllers

import (
	"net/http"

	"github.com/ammiagames/sonder-sub002/services"

	"github.com/gin-gonic/gin"
)

type PlaceController struct {
	Svc *services.PlaceService
	Rek *services.RekognitionService // nil when AWS is not configured
}

func NewPlaceController(svc *services.PlaceService, rek *services.RekognitionService) *PlaceController {
	return &PlaceController{Svc: svc, Rek: rek}
}

func (pc *PlaceController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	places, err := pc.Svc.Search(q)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, places)
}

func (pc *PlaceController) Get(c *gin.Context) {
	p, err := pc.Svc.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type SuggestTagsInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// SuggestTags runs label detection over a photo so the app can offer tag
// chips while the user is composing a log.
func (pc *PlaceController) SuggestTags(c *gin.Context) {
	if pc.Rek == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tag suggestions unavailable"})
		return
	}

	var input SuggestTagsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	tags, err := pc.Rek.SuggestTags(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
