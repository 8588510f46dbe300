package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/qrave1/BerrowBooks/internal/application/config"
	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/memory"
	"github.com/qrave1/BerrowBooks/internal/usecase"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// EventsHandler отдает события комнаты (новые заявки, смена статуса) по WebSocket
type EventsHandler struct {
	upgrader *websocket.Upgrader

	access  usecase.AccessUsecase
	subRepo memory.RoomSubscriberRepository
}

func NewEventsHandler(
	cfg *config.Config,
	access usecase.AccessUsecase,
	subRepo memory.RoomSubscriberRepository,
) *EventsHandler {
	return &EventsHandler{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug {
					return true
				}

				return r.Header.Get("Origin") == cfg.Domain
			},
		},
		access:  access,
		subRepo: subRepo,
	}
}

func (h *EventsHandler) Handle(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "room events", err)
	}

	// права проверяем до апгрейда, чтобы ответить обычным HTTP статусом
	if _, err := h.access.Authorize(c.Request().Context(), identity(c), roomID, usecase.RoleOwnerOrAdmin); err != nil {
		return respondError(c, "room events", err)
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"WebSocket upgrade error",
			slog.Any(constant.Error, err),
		)
		return nil
	}
	defer ws.Close()

	subscriberID := uuid.New()

	h.subRepo.Add(roomID, subscriberID, ws)
	defer h.subRepo.Remove(roomID, subscriberID)

	if err = ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return nil
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := h.subRepo.Ping(roomID, subscriberID); err != nil {
					slog.Debug("ping failed", slog.Any(constant.Error, err))
					return
				}
			case <-done:
				return
			}
		}
	}()

	// входящие сообщения не ожидаются, читаем только чтобы заметить закрытие
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn(
					"webSocket read error",
					slog.Any(constant.Error, err),
					slog.Any(constant.RoomID, roomID),
				)
			}

			return nil
		}
	}
}
