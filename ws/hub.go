package ws

import (
	"log"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub giữ các kết nối đang mở theo từng userID
type Hub struct {
	Clients map[string]map[*Client]struct{}
	Mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{Clients: make(map[string]map[*Client]struct{})}
}

var H = NewHub()

type BadgeUpdate struct {
	Type        string `json:"type"`
	UnreadCount int64  `json:"unread_count"`
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
}

// RegisterUser đăng ký kết nối, gửi hello (nếu có) rồi chạy read/write pump
func (h *Hub) RegisterUser(userID string, conn *websocket.Conn, hello []byte) *Client {
	client := newClient(conn)
	h.add(userID, client)

	if hello != nil {
		if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
			log.Println("WebSocket hello failed:", err)
		}
	}

	go h.readPump(userID, client)
	go h.writePump(client)
	return client
}

func (h *Hub) add(userID string, client *Client) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[userID]; !ok {
		h.Clients[userID] = make(map[*Client]struct{})
	}
	h.Clients[userID][client] = struct{}{}
}

func (h *Hub) UnregisterUser(userID string, client *Client) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	clients, ok := h.Clients[userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; ok {
		close(client.Send)
		delete(clients, client)
	}
	if len(clients) == 0 {
		delete(h.Clients, userID)
	}
}

// BroadcastToUser gửi data tới mọi kết nối của user, trả về số kết nối nhận được.
// Client có buffer đầy sẽ bị bỏ qua.
func (h *Hub) BroadcastToUser(userID string, data []byte) int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	sent := 0
	for client := range h.Clients[userID] {
		select {
		case client.Send <- data:
			sent++
		default:
		}
	}
	return sent
}

func (h *Hub) IsOnline(userID string) bool {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()
	return len(h.Clients[userID]) > 0
}

// SendBadgeUpdate cập nhật số thông báo chưa đọc
func (h *Hub) SendBadgeUpdate(userID string, count int64) {
	data, err := sonic.Marshal(BadgeUpdate{Type: "badge_update", UnreadCount: count})
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	h.BroadcastToUser(userID, data)
}

func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	conns := 0
	for _, clients := range h.Clients {
		conns += len(clients)
	}
	return map[string]int{
		"users":       len(h.Clients),
		"connections": conns,
	}
}

func (h *Hub) readPump(userID string, client *Client) {
	defer h.UnregisterUser(userID, client)
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
