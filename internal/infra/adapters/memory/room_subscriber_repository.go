package memory

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/application/metric"
	"github.com/qrave1/BerrowBooks/internal/domain/events"
)

// RoomSubscriberRepository хранит WebSocket соединения, подписанные на события комнат
type RoomSubscriberRepository interface {
	Add(roomID, subscriberID uuid.UUID, conn *websocket.Conn)
	Remove(roomID, subscriberID uuid.UUID)

	Publish(event events.RoomEvent)
	// Ping пишет ping-фрейм под тем же мьютексом, что и события
	Ping(roomID, subscriberID uuid.UUID) error
	Count(roomID uuid.UUID) int
}

type safeWS struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

type roomSubscriberRepository struct {
	// subs хранит map[room_id]map[subscriber_id]*ws.conn
	subs map[uuid.UUID]map[uuid.UUID]*safeWS

	mu sync.RWMutex
}

func NewRoomSubscriberRepository() RoomSubscriberRepository {
	return &roomSubscriberRepository{
		subs: make(map[uuid.UUID]map[uuid.UUID]*safeWS, 10),
	}
}

func (r *roomSubscriberRepository) Add(roomID, subscriberID uuid.UUID, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.subs[roomID]
	if !ok {
		room = make(map[uuid.UUID]*safeWS)
		r.subs[roomID] = room
	}

	room[subscriberID] = &safeWS{conn: conn}

	metric.IncrementWSActiveConnections()
}

func (r *roomSubscriberRepository) Remove(roomID, subscriberID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.subs[roomID]
	if !ok {
		return
	}

	if _, exists := room[subscriberID]; exists {
		delete(room, subscriberID)

		metric.DecrementWSActiveConnections()
	}

	if len(room) == 0 {
		delete(r.subs, roomID)
	}
}

// Publish рассылает событие всем подписчикам комнаты. Ошибки записи только логируются.
func (r *roomSubscriberRepository) Publish(event events.RoomEvent) {
	for _, sub := range r.snapshot(event.RoomID) {
		sub.write(event)
	}
}

func (r *roomSubscriberRepository) Count(roomID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.subs[roomID])
}

func (r *roomSubscriberRepository) snapshot(roomID uuid.UUID) []*safeWS {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]*safeWS, 0, len(r.subs[roomID]))
	for _, sub := range r.subs[roomID] {
		subs = append(subs, sub)
	}

	return subs
}

func (s *safeWS) write(event events.RoomEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.WriteJSON(event); err != nil {
		slog.Error(
			"write to websocket",
			slog.Any(constant.Error, err),
			slog.Any(constant.RoomID, event.RoomID),
		)
	}
}

func (r *roomSubscriberRepository) Ping(roomID, subscriberID uuid.UUID) error {
	r.mu.RLock()
	sub, ok := r.subs[roomID][subscriberID]
	r.mu.RUnlock()

	if !ok {
		return nil
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()

	return sub.conn.WriteMessage(websocket.PingMessage, nil)
}
