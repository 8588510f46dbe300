package dto

type CreateBookRequestRequest struct {
	Title string `json:"title"`
	Token string `json:"token"`
}

type UpdateStatusRequest struct {
	Status        string `json:"status"`
	ReturnDueDate string `json:"return_due_date"`
}
