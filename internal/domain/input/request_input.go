package input

import (
	"time"
	"unicode/utf8"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

const MaxTitleLength = 200

type CreateRequestInput struct {
	Title string
	Token string
}

func ParseCreateRequest(title, token string) (*CreateRequestInput, error) {
	if title == "" {
		return nil, domain.NewValidationError("title", "book title is required")
	}

	if utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, domain.NewValidationError("title", "title must be at most 200 characters")
	}

	if token == "" {
		return nil, domain.NewValidationError("token", "token is required")
	}

	return &CreateRequestInput{Title: title, Token: token}, nil
}

type UpdateStatusInput struct {
	Status        models.RequestStatus
	ReturnDueDate *time.Time
}

// ParseUpdateStatus проверяет статус и необязательную дату возврата.
func ParseUpdateStatus(status, returnDueDate string) (*UpdateStatusInput, error) {
	st := models.RequestStatus(status)
	if !st.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	in := &UpdateStatusInput{Status: st}

	if returnDueDate != "" {
		due, ok := ParseTimestamp(returnDueDate)
		if !ok {
			return nil, domain.NewValidationError("return_due_date", "return due date is not a valid date")
		}

		in.ReturnDueDate = &due
	}

	return in, nil
}
