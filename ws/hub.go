package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const EventNewMessage = "NEW_MESSAGE"

// Event — кадр, отправляемый клиентам: {"type": "...", "data": {...}}.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub рассылает каждое событие всем подключённым клиентам. Адресной доставки
// нет: клиенты фильтруют события по chat_id на своей стороне.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
	running    bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// DefaultHub — общий хаб процесса.
var DefaultHub = NewHub()

// Run обслуживает регистрацию клиентов и рассылку. Запускается одной горутиной.
func (h *Hub) Run() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			slog.Debug("websocket клиент подключён", "total", h.ClientCount())

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
			slog.Debug("websocket клиент отключён", "total", h.ClientCount())

		case message := <-h.broadcast:
			h.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.RUnlock()

			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					select {
					case h.unregister <- conn:
					default:
					}
				}
			}
		}
	}
}

// Broadcast ставит событие в очередь рассылки; при переполнении событие теряется.
func (h *Hub) Broadcast(ev Event) {
	message, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("не удалось сериализовать websocket-событие", "error", err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		slog.Warn("очередь websocket-рассылки переполнена, событие потеряно")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handle обновляет соединение до WebSocket и держит его до закрытия клиентом.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.register <- conn
	defer func() {
		select {
		case h.unregister <- conn:
		default:
			conn.Close()
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
