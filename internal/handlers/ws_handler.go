package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/gig-service/internal/models"
	"github.com/senyabanana/gig-service/internal/notify"
	"github.com/senyabanana/gig-service/internal/repository"

	"github.com/gorilla/websocket"
)

// WSHandler - структура для обработки WebSocket-соединений.
type WSHandler struct {
	Hub      *notify.Hub
	Users    repository.UserRepository
	Logger   *log.Logger
	Timeout  time.Duration
	upgrader websocket.Upgrader
}

// NewWSHandler создает новый экземпляр WSHandler.
func NewWSHandler(hub *notify.Hub, users repository.UserRepository, logger *log.Logger, timeout time.Duration) *WSHandler {
	return &WSHandler{
		Hub:     hub,
		Users:   users,
		Logger:  logger,
		Timeout: timeout,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve обрабатывает подключение клиента. Первым сообщением клиент называет
// свой userId, после чего соединение регистрируется для доставки событий.
// При любой ошибке чтения соединение снимается с регистрации и закрывается.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Println(err)
		return
	}
	defer conn.Close()

	if err = conn.SetReadDeadline(time.Now().Add(h.Timeout)); err != nil {
		return
	}
	var join models.JoinMessage
	if err = conn.ReadJSON(&join); err != nil || join.UserID == "" {
		return
	}
	if err = conn.SetReadDeadline(time.Time{}); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	user, err := h.Users.GetByID(ctx, join.UserID)
	cancel()
	if err != nil {
		h.Logger.Println(err)
		return
	}
	if user == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(h.Timeout))
		_ = conn.WriteJSON(models.NewErrorResponse(http.StatusUnauthorized, "user does not exist"))
		return
	}

	h.Hub.Register(user.ID, conn)
	defer h.Hub.Unregister(conn)

	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			return
		}
	}
}
