package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusRequested RequestStatus = "REQUESTED"
	StatusPurchased RequestStatus = "PURCHASED"
	StatusSent      RequestStatus = "SENT"
	StatusReturned  RequestStatus = "RETURNED"
)

// lifecycle - порядок стадий заявки
var lifecycle = []RequestStatus{StatusRequested, StatusPurchased, StatusSent, StatusReturned}

func (s RequestStatus) Valid() bool {
	return s.position() >= 0
}

func (s RequestStatus) position() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}

	return -1
}

// TransitionPolicy определяет, какие смены статуса разрешены
type TransitionPolicy int

const (
	// TransitionStrict - только повтор текущего статуса или следующая стадия
	TransitionStrict TransitionPolicy = iota
	// TransitionPermissive - любой статус поверх любого
	TransitionPermissive
)

func (p TransitionPolicy) Allows(from, to RequestStatus) bool {
	if !to.Valid() {
		return false
	}

	if p == TransitionPermissive {
		return true
	}

	return to == from || to.position() == from.position()+1
}

type BookRequest struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	Title          string        `json:"title" db:"title"`
	Status         RequestStatus `json:"status" db:"status"`
	RequesterID    uuid.UUID     `json:"requester_id" db:"requester_id"`
	RequesterEmail string        `json:"requester_email" db:"requester_email"`
	RoomID         uuid.UUID     `json:"room_id" db:"room_id"`
	RequestedAt    time.Time     `json:"requested_at" db:"requested_at"`
	PurchasedAt    *time.Time    `json:"purchased_at,omitempty" db:"purchased_at"`
	SentAt         *time.Time    `json:"sent_at,omitempty" db:"sent_at"`
	ReturnDueDate  *time.Time    `json:"return_due_date,omitempty" db:"return_due_date"`
	ReturnedAt     *time.Time    `json:"returned_at,omitempty" db:"returned_at"`
}

func NewBookRequest(requester Identity, roomID uuid.UUID, title string, now time.Time) *BookRequest {
	return &BookRequest{
		ID:             uuid.New(),
		Title:          title,
		Status:         StatusRequested,
		RequesterID:    requester.UserID,
		RequesterEmail: requester.Email,
		RoomID:         roomID,
		RequestedAt:    now,
	}
}

// ApplyStatus записывает новый статус и проставляет поля, зависящие только
// от нового статуса. Остальные поля не трогаются.
func (r *BookRequest) ApplyStatus(status RequestStatus, returnDueDate *time.Time, now time.Time) {
	r.Status = status

	switch status {
	case StatusPurchased:
		r.PurchasedAt = &now
	case StatusSent:
		r.SentAt = &now
		if returnDueDate != nil {
			due := *returnDueDate
			r.ReturnDueDate = &due
		}
	case StatusReturned:
		r.ReturnedAt = &now
	case StatusRequested:
	}
}
