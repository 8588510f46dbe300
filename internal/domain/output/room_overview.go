package output

import (
	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

// RoomOverview - комната в списке пользователя
type RoomOverview struct {
	models.Room

	OwnerEmail   string              `json:"owner_email" db:"owner_email"`
	RequestCount int                 `json:"request_count" db:"request_count"`
	Admins       []*models.RoomAdmin `json:"admins" db:"-"`
}
