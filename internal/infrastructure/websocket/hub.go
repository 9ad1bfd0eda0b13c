package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/todoapp/backend/internal/infrastructure/log"
)

const (
	// broadcastBuffer 广播队列容量
	broadcastBuffer = 256
	// sendBuffer 单个连接的发送队列容量
	sendBuffer = 64
)

var (
	// ErrHubStopped Hub 已停止
	ErrHubStopped = errors.New("websocket hub stopped")
	// ErrBroadcastFull 广播队列已满，消息被丢弃
	ErrBroadcastFull = errors.New("websocket broadcast queue full")
)

// Hub WebSocket 连接管理中心
// 所有连接属于同一个广播组，状态只在 Run 协程中修改
type Hub struct {
	clients    map[*Connection]bool
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	count      int
	logger     *slog.Logger
}

// Connection WebSocket 连接
type Connection struct {
	ID   string
	Send chan []byte
}

// NewConnection 创建连接
func NewConnection(id string) *Connection {
	return &Connection{
		ID:   id,
		Send: make(chan []byte, sendBuffer),
	}
}

// NewHub 创建 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     log.NewModuleLogger("websocket", "hub"),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行）
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for conn := range h.clients {
				h.drop(conn)
			}
			return

		case conn := <-h.register:
			h.clients[conn] = true
			h.setCount(len(h.clients))
			h.logger.Debug("client registered", "conn_id", conn.ID, "clients", len(h.clients))

		case conn := <-h.unregister:
			if h.clients[conn] {
				h.drop(conn)
				h.logger.Debug("client unregistered", "conn_id", conn.ID, "clients", len(h.clients))
			}

		case data := <-h.broadcast:
			for conn := range h.clients {
				select {
				case conn.Send <- data:
				default:
					// 慢连接直接断开
					h.logger.Warn("client send buffer full, disconnecting", "conn_id", conn.ID)
					h.drop(conn)
				}
			}
		}
	}
}

func (h *Hub) drop(conn *Connection) {
	delete(h.clients, conn)
	close(conn.Send)
	h.setCount(len(h.clients))
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Stop 停止 Hub 并关闭所有连接的发送队列，可重复调用
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Register 注册连接
func (h *Hub) Register(conn *Connection) error {
	select {
	case h.register <- conn:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast 向所有连接广播消息，队列满时丢弃而不阻塞调用方
func (h *Hub) Broadcast(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.broadcast <- jsonData:
		return nil
	default:
		return ErrBroadcastFull
	}
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
