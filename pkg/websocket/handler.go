package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
	}
}

// HandleWebSocket upgrades a dashboard connection. The auth middleware has
// already set user_id; shop_ids is resolved by the route from the owner's
// shops so clients cannot subscribe to rooms they do not own.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var shopIDs []primitive.ObjectID
	if ids, exists := c.Get("shop_ids"); exists {
		if list, ok := ids.([]primitive.ObjectID); ok {
			shopIDs = list
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userObjectID, shopIDs)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// NotifyShop publishes a loyalty event to the shop's dashboard room.
func (h *Handler) NotifyShop(shopID primitive.ObjectID, eventType string, data map[string]interface{}) {
	h.hub.SendToRoom(ShopRoom(shopID), Message{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}
