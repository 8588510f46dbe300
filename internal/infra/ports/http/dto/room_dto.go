package dto

type CreateRoomRequest struct {
	Name           string `json:"name"`
	TokenExpiresAt string `json:"token_expires_at"`
}

type AddAdminRequest struct {
	Email string `json:"email"`
}
