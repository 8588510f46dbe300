package input

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"2026-05-02T10:00:00Z", time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC), true},
		{"2026-05-02T12:00:00+02:00", time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC), true},
		{"2026-05-02T10:00:00.500Z", time.Date(2026, 5, 2, 10, 0, 0, 500_000_000, time.UTC), true},
		{"2026-05-02T10:30", time.Date(2026, 5, 2, 10, 30, 0, 0, time.UTC), true},
		{"2026-05-02", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), true},
		{" 2026-05-02 ", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), true},
		{"tomorrow", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.raw)
		if ok != tt.ok {
			t.Errorf("%q: ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}

		if ok && !got.Equal(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseCreateRoom(t *testing.T) {
	tests := []struct {
		name      string
		roomName  string
		expiresAt string
		field     string
	}{
		{"valid", "Shelf", "2026-06-01T00:00", ""},
		{"empty name", "", "2026-06-01T00:00", "name"},
		{"name at limit", strings.Repeat("я", 100), "2026-06-01T00:00", ""},
		{"name too long", strings.Repeat("a", 101), "2026-06-01T00:00", "name"},
		{"missing expiry", "Shelf", "", "token_expires_at"},
		{"unparseable expiry", "Shelf", "soon", "token_expires_at"},
		{"expiry equals now", "Shelf", now.Format(time.RFC3339), "token_expires_at"},
		{"expiry in past", "Shelf", "2026-04-01", "token_expires_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseCreateRoom(tt.roomName, tt.expiresAt, now)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if in.Name != tt.roomName {
					t.Fatalf("name: got %q", in.Name)
				}
				return
			}

			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Fatalf("field: got %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestParseCreateRoomReportsFirstError(t *testing.T) {
	_, err := ParseCreateRoom("", "", now)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "name" {
		t.Fatalf("expected name error first, got %v", err)
	}
}

func TestParseAddAdmin(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"friend@example.com", true},
		{"first.last+tag@mail.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"friend@localhost", false},
		{"Friend <friend@example.com>", false},
	}

	for _, tt := range tests {
		_, err := ParseAddAdmin(tt.email)
		if (err == nil) != tt.ok {
			t.Errorf("%q: err = %v, want ok=%v", tt.email, err, tt.ok)
		}
	}
}

func TestParseCreateRequest(t *testing.T) {
	if _, err := ParseCreateRequest("", "tok"); err == nil {
		t.Fatal("empty title must fail")
	}

	if _, err := ParseCreateRequest(strings.Repeat("b", 201), "tok"); err == nil {
		t.Fatal("title over 200 characters must fail")
	}

	_, err := ParseCreateRequest("Dune", "")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "token" {
		t.Fatalf("expected token error, got %v", err)
	}

	in, err := ParseCreateRequest(strings.Repeat("b", 200), "tok")
	if err != nil || in.Token != "tok" {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestParseUpdateStatus(t *testing.T) {
	if _, err := ParseUpdateStatus("LOST", ""); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if _, err := ParseUpdateStatus("sent", ""); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("lowercase status must be rejected, got %v", err)
	}

	_, err := ParseUpdateStatus("SENT", "someday")
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "return_due_date" {
		t.Fatalf("expected return_due_date error, got %v", err)
	}

	in, err := ParseUpdateStatus("SENT", "2026-05-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Status != models.StatusSent || in.ReturnDueDate == nil {
		t.Fatalf("unexpected input: %+v", in)
	}

	in, err = ParseUpdateStatus("PURCHASED", "")
	if err != nil || in.ReturnDueDate != nil {
		t.Fatalf("due date must be optional: %+v, %v", in, err)
	}
}
