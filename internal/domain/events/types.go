package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

const (
	TypeRequestCreated       = "request.created"
	TypeRequestStatusChanged = "request.status_changed"
)

// RoomEvent уходит подписчикам комнаты по WebSocket
type RoomEvent struct {
	Type       string              `json:"type"`
	RoomID     uuid.UUID           `json:"room_id"`
	Request    *models.BookRequest `json:"request"`
	PrevStatus string              `json:"prev_status,omitempty"`
	At         time.Time           `json:"at"`
}

func NewRequestCreated(req *models.BookRequest, at time.Time) RoomEvent {
	return RoomEvent{
		Type:    TypeRequestCreated,
		RoomID:  req.RoomID,
		Request: req,
		At:      at,
	}
}

func NewStatusChanged(req *models.BookRequest, prev models.RequestStatus, at time.Time) RoomEvent {
	return RoomEvent{
		Type:       TypeRequestStatusChanged,
		RoomID:     req.RoomID,
		Request:    req,
		PrevStatus: string(prev),
		At:         at,
	}
}
