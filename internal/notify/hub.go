package notify

import (
	"log"
	"sync"
	"time"
)

// Connection - интерфейс живого соединения, в которое можно писать JSON.
// Ему удовлетворяет *websocket.Conn.
type Connection interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
}

// Hub хранит соответствие пользователей и их живых соединений.
// У пользователя может быть ноль, одно или несколько соединений одновременно.
type Hub struct {
	mu        sync.Mutex
	logger    *log.Logger
	writeWait time.Duration
	users     map[string]map[Connection]struct{}
	conns     map[Connection]string
}

// NewHub создает новый экземпляр Hub. writeWait ограничивает время записи
// в одно соединение.
func NewHub(logger *log.Logger, writeWait time.Duration) *Hub {
	return &Hub{
		logger:    logger,
		writeWait: writeWait,
		users:     make(map[string]map[Connection]struct{}),
		conns:     make(map[Connection]string),
	}
}

// Register добавляет соединение пользователя.
func (h *Hub) Register(userId string, conn Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userId]; !ok {
		h.users[userId] = make(map[Connection]struct{})
	}
	h.users[userId][conn] = struct{}{}
	h.conns[conn] = userId
}

// Unregister удаляет соединение, под каким бы пользователем оно ни числилось.
// Безопасен для соединений, которые никогда не регистрировались.
func (h *Hub) Unregister(conn Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userId, ok := h.conns[conn]
	if !ok {
		return
	}
	delete(h.conns, conn)
	delete(h.users[userId], conn)
	if len(h.users[userId]) == 0 {
		delete(h.users, userId)
	}
}

// IsOnline сообщает, есть ли у пользователя хотя бы одно живое соединение.
func (h *Hub) IsOnline(userId string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.users[userId]) > 0
}

// Notify отправляет событие во все живые соединения пользователя.
// Доставка негарантированная: если соединений нет, событие отбрасывается,
// ошибки записи логируются и не возвращаются вызывающему. Перед каждой
// записью выставляется дедлайн, поэтому зависший получатель не может
// удерживать Hub дольше writeWait.
func (h *Hub) Notify(userId string, event interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.users[userId]
	if !ok {
		return
	}
	for conn := range conns {
		if err := conn.SetWriteDeadline(time.Now().Add(h.writeWait)); err != nil {
			h.logger.Printf("failed to set write deadline for user %s: %v", userId, err)
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Printf("failed to deliver event to user %s: %v", userId, err)
		}
	}
}
