package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewUser(email string, now time.Time) *User {
	return &User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: now,
	}
}

// Identity - аутентифицированный пользователь текущего запроса
type Identity struct {
	UserID uuid.UUID
	Email  string
}

func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}
