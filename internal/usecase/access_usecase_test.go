package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.TransitionStrict)

	owner := f.identity(t, "owner@example.com")
	helper := f.identity(t, "helper@example.com")
	stranger := f.identity(t, "stranger@example.com")

	room := f.room(t, owner)

	if _, err := f.admins.AddAdmin(ctx, owner, room.ID, helper.Email); err != nil {
		t.Fatalf("add admin: %v", err)
	}

	tests := []struct {
		name     string
		identity models.Identity
		roomID   uuid.UUID
		role     Role
		wantErr  error
	}{
		{"anonymous", models.Identity{}, room.ID, RoleOwnerOrAdmin, domain.ErrUnauthorized},
		{"missing room", owner, uuid.New(), RoleOwnerOrAdmin, domain.ErrRoomNotFound},
		{"owner as owner", owner, room.ID, RoleOwner, nil},
		{"owner as admin", owner, room.ID, RoleOwnerOrAdmin, nil},
		{"admin as admin", helper, room.ID, RoleOwnerOrAdmin, nil},
		{"admin as owner", helper, room.ID, RoleOwner, domain.ErrForbidden},
		{"stranger", stranger, room.ID, RoleOwnerOrAdmin, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.access.Authorize(ctx, tt.identity, tt.roomID, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && got.ID != room.ID {
				t.Fatalf("wrong room returned: %s", got.ID)
			}
		})
	}
}
