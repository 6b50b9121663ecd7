package alerts

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/jie0129/AI-Restaurant-Menu-System-sub000/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Evaluator produces the current alert set. *Service satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context) ([]Alert, error)
}

// Hub pushes freshly evaluated alerts to every connected dashboard on a
// fixed interval.
type Hub struct {
	evaluator Evaluator
	interval  time.Duration

	mu      sync.Mutex
	clients map[*wsClient]bool
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(evaluator Evaluator, interval time.Duration) *Hub {
	return &Hub{
		evaluator: evaluator,
		interval:  interval,
		clients:   make(map[*wsClient]bool),
	}
}

type wsPayload struct {
	Alerts      []Alert   `json:"alerts"`
	Count       int       `json:"count"`
	GeneratedAt time.Time `json:"generated_at"`
}

func marshalPayload(alerts []Alert) ([]byte, error) {
	if alerts == nil {
		alerts = []Alert{}
	}
	return json.Marshal(wsPayload{
		Alerts:      alerts,
		Count:       len(alerts),
		GeneratedAt: time.Now(),
	})
}

// Run re-evaluates alerts on the hub interval and broadcasts the result.
// It blocks; run it in a goroutine.
func (h *Hub) Run() {
	log.Println("🔔 Alert hub started")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for range ticker.C {
		if h.clientCount() == 0 {
			continue
		}

		alerts, err := h.evaluator.Evaluate(context.Background())
		if err != nil {
			log.Printf("⚠️  Alert evaluation error: %v", err)
			continue
		}

		data, err := marshalPayload(alerts)
		if err != nil {
			log.Printf("⚠️  Alert payload marshal error: %v", err)
			continue
		}

		h.broadcast(data)
	}
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			log.Println("WebSocket buffer full, dropping alert update")
		}
	}
}

func (h *Hub) register(client *wsClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(client *wsClient) {
	h.mu.Lock()
	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// ServeWS upgrades the connection after validating the JWT. Browsers
// cannot set headers on WebSocket requests, so the token may also arrive
// as a query parameter.
func (h *Hub) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
	}

	if _, _, _, err := auth.ValidateToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.register(client)

	go client.writePump()
	go h.readPump(client)

	// Snapshot so a fresh dashboard does not wait a full interval.
	if alerts, err := h.evaluator.Evaluate(context.Background()); err == nil {
		if data, err := marshalPayload(alerts); err == nil {
			select {
			case client.send <- data:
			default:
			}
		}
	}
}

// readPump only consumes control frames; clients never send data.
func (h *Hub) readPump(client *wsClient) {
	defer func() {
		h.unregister(client)
		client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
