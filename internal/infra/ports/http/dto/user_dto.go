package dto

import "github.com/google/uuid"

type GetMeResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ClientLogRequest - ошибка, пойманная на стороне браузера
type ClientLogRequest struct {
	Message   string `json:"message"`
	Stack     string `json:"stack"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}
