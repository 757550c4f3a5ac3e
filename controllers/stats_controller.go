// controllers/stats_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/ammiagames/sonder-sub002/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Svc *services.StatsService
}

func NewStatsController(svc *services.StatsService) *StatsController {
	return &StatsController{Svc: svc}
}

func (h *StatsController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	fromStr := c.DefaultQuery("from", yearStart.Format("2006-01-02"))
	toStr := c.DefaultQuery("to", now.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
