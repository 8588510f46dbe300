package constant

// Ключи атрибутов для slog
const (
	Error     = "error"
	UserID    = "user_id"
	Email     = "email"
	RoomID    = "room_id"
	RequestID = "request_id"
	AdminID   = "admin_id"
	Status    = "status"
	Event     = "event"
)
