package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	OwnerID        uuid.UUID `json:"owner_id" db:"owner_id"`
	Token          string    `json:"token" db:"token"`
	TokenExpiresAt time.Time `json:"token_expires_at" db:"token_expires_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

func NewRoom(ownerID uuid.UUID, name, token string, tokenExpiresAt, now time.Time) *Room {
	return &Room{
		ID:             uuid.New(),
		Name:           name,
		OwnerID:        ownerID,
		Token:          token,
		TokenExpiresAt: tokenExpiresAt,
		CreatedAt:      now,
	}
}

// MatchesToken сравнивает токен как есть, без constant-time сравнения.
func (r *Room) MatchesToken(token string) bool {
	return r.Token == token
}

// TokenExpired - токен действителен, пока now <= TokenExpiresAt
func (r *Room) TokenExpired(now time.Time) bool {
	return now.After(r.TokenExpiresAt)
}

type RoomAdmin struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	RoomID    uuid.UUID `json:"room_id" db:"room_id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewRoomAdmin(user *User, roomID uuid.UUID, now time.Time) *RoomAdmin {
	return &RoomAdmin{
		ID:        uuid.New(),
		UserID:    user.ID,
		RoomID:    roomID,
		Email:     user.Email,
		CreatedAt: now,
	}
}
