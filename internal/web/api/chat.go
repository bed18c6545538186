package api

import (
	"net/http"
	"strconv"
	"sync"

	"smartoffice/internal/db"
	"smartoffice/internal/models"
	"smartoffice/internal/web/middleware"
	webModels "smartoffice/internal/web/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatHub fans new messages out to connected websocket clients. REST
// remains the source of truth; the hub is push-only.
type ChatHub struct {
	clients map[*websocket.Conn]struct{}
	mux     sync.Mutex
}

func NewChatHub() *ChatHub {
	return &ChatHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *ChatHub) add(conn *websocket.Conn) {
	h.mux.Lock()
	h.clients[conn] = struct{}{}
	h.mux.Unlock()
}

func (h *ChatHub) remove(conn *websocket.Conn) {
	h.mux.Lock()
	delete(h.clients, conn)
	h.mux.Unlock()
	conn.Close()
}

// Broadcast sends a message to every connected client, dropping
// clients whose connection has gone away.
func (h *ChatHub) Broadcast(message models.ChatMessage) {
	h.mux.Lock()
	defer h.mux.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(message); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func RegisterChatRoutes(r *gin.Engine, middleware *middleware.MiddlewareManager, dbConn *db.DB, hub *ChatHub) {
	chat := r.Group("/api/chat")
	chat.Use(middleware.RequireAuth())
	{
		chat.GET("/messages", func(c *gin.Context) {
			messages, err := dbConn.ListRecentMessages(c, 50)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch messages"})
				return
			}
			if messages == nil {
				messages = []models.ChatMessage{}
			}
			c.JSON(200, messages)
		})

		chat.POST("/send", func(c *gin.Context) {
			var req webModels.ChatSendRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(400, gin.H{"error": "Message content is required"})
				return
			}
			message, err := dbConn.InsertChatMessage(c, c.GetString("username"), req.Message)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to store message"})
				return
			}
			hub.Broadcast(*message)
			c.JSON(201, message)
		})

		chat.DELETE("/messages/:id", middleware.RequireAdmin(), func(c *gin.Context) {
			id, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid message ID"})
				return
			}
			if err := dbConn.DeleteChatMessage(c, id); err != nil {
				c.JSON(404, gin.H{"error": "Message not found"})
				return
			}
			c.JSON(200, gin.H{"message": "Message deleted successfully"})
		})

		chat.GET("/ws", func(c *gin.Context) {
			conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
			if err != nil {
				log.Warn().Err(err).Msg("websocket upgrade failed")
				return
			}
			hub.add(conn)
			go func() {
				// Reads are discarded; the read loop only detects disconnects
				for {
					if _, _, err := conn.ReadMessage(); err != nil {
						hub.remove(conn)
						return
					}
				}
			}()
		})
	}
}
