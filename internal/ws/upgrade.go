package ws

import (
	"net/http"
	"time"

	"roamio/config"
	"roamio/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UpgradeEvents upgrades the connection for the lifecycle event feed. The
// client authenticates with ?token=<access token>.
func UpgradeEvents(cfg *config.JWTConfig, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		token := c.Query("token")
		if token == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"token required"}`))
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
			return
		}
		client := &Client{
			UserID: claims.UserID,
			Role:   claims.Role,
			Send:   make(chan []byte, 256),
		}
		hub.Register(client)
		defer client.Close()
		go writePump(client, conn)
		readPump(conn)
	}
}

// writePump copies messages from client.Send to the connection.
func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
