package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ammiagames/sonder-sub002/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type SyncController struct {
	Hub *services.SyncHub
}

func NewSyncController(hub *services.SyncHub) *SyncController {
	return &SyncController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// ChangesWS upgrades to the per-device sync socket. Devices hold this open
// and re-fetch whenever a journal.changed envelope arrives.
func (sc *SyncController) ChangesWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	sc.Hub.Register(cl)

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sc.Hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			sc.Hub.Unregister(cl)
			return
		}
	}
}

// GetChanges lets a reconnecting device catch up on feed entries it missed
// while offline, paging forward from its last seen change id.
func (sc *SyncController) GetChanges(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	afterID, _ := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	rows, err := services.ChangesSince(userID, uint(afterID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changes": rows})
}
