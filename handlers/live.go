package handlers

import (
	"log"
	"net/http"

	"github.com/escolacolaco/backend/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	newsHub  *services.NewsHub
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true // Allow all origins for now
		},
	}
)

// SetNewsHub sets the live news hub for the handlers
func SetNewsHub(hub *services.NewsHub) {
	newsHub = hub
}

// HandleNewsWebSocket handles WebSocket connections for the live news ticker
func HandleNewsWebSocket(c *gin.Context) {
	if newsHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "News hub not initialized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}

	client := services.NewNewsClient(newsHub, conn, c.ClientIP())

	newsHub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// GetNewsHubStats returns live news hub statistics
func GetNewsHubStats(c *gin.Context) {
	if newsHub == nil {
		c.JSON(http.StatusOK, gin.H{
			"enabled": false,
		})
		return
	}

	stats := newsHub.GetStats()
	c.JSON(http.StatusOK, gin.H{
		"enabled":   true,
		"clients":   stats.Clients,
		"published": stats.Published,
	})
}
