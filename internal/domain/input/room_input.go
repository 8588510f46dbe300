package input

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/qrave1/BerrowBooks/internal/domain"
)

const MaxRoomNameLength = 100

type CreateRoomInput struct {
	Name           string
	TokenExpiresAt time.Time
}

// ParseCreateRoom проверяет данные новой комнаты. Срок токена должен быть строго позже now.
func ParseCreateRoom(name, tokenExpiresAt string, now time.Time) (*CreateRoomInput, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "room name is required")
	}

	if utf8.RuneCountInString(name) > MaxRoomNameLength {
		return nil, domain.NewValidationError("name", "room name must be at most 100 characters")
	}

	if tokenExpiresAt == "" {
		return nil, domain.NewValidationError("token_expires_at", "token expiry is required")
	}

	expiresAt, ok := ParseTimestamp(tokenExpiresAt)
	if !ok || !expiresAt.After(now) {
		return nil, domain.NewValidationError("token_expires_at", "token expiry must be in the future")
	}

	return &CreateRoomInput{Name: name, TokenExpiresAt: expiresAt}, nil
}

type AddAdminInput struct {
	Email string
}

func ParseAddAdmin(email string) (*AddAdminInput, error) {
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}

	if !validEmail(email) {
		return nil, domain.NewValidationError("email", "a valid email address is required")
	}

	return &AddAdminInput{Email: email}, nil
}

// validEmail принимает только голый адрес, без "Имя <addr>"
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
