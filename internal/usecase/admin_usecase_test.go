package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

func TestAddAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.TransitionStrict)

	owner := f.identity(t, "owner@example.com")
	room := f.room(t, owner)

	// пользователя с таким email еще нет - создается
	admin, err := f.admins.AddAdmin(ctx, owner, room.ID, "newcomer@example.com")
	if err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if admin.Email != "newcomer@example.com" || admin.RoomID != room.ID {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	if _, err := f.admins.AddAdmin(ctx, owner, room.ID, "newcomer@example.com"); !errors.Is(err, domain.ErrAlreadyAdmin) {
		t.Fatalf("expected ErrAlreadyAdmin, got %v", err)
	}

	if _, err := f.admins.AddAdmin(ctx, owner, room.ID, owner.Email); !errors.Is(err, domain.ErrOwnerCannotBeAdmin) {
		t.Fatalf("expected ErrOwnerCannotBeAdmin, got %v", err)
	}

	// отклоненные вызовы строк не добавляют
	stored, err := f.store.Admins().ListByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(stored) != 1 || stored[0].UserID != admin.UserID {
		t.Fatalf("expected exactly one admin row, got %+v", stored)
	}
	for _, a := range stored {
		if a.UserID == owner.UserID {
			t.Fatal("owner must never get an admin row")
		}
	}

	newcomer := f.identity(t, "newcomer@example.com")
	if newcomer.UserID != admin.UserID {
		t.Fatal("upsert must reuse the user created for the admin")
	}

	if _, err := f.admins.AddAdmin(ctx, newcomer, room.ID, "third@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin cannot add admins, got %v", err)
	}

	var vErr *domain.ValidationError
	if _, err := f.admins.AddAdmin(ctx, owner, room.ID, "broken"); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := f.admins.AddAdmin(ctx, owner, uuid.New(), "third@example.com"); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestRemoveAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.TransitionStrict)

	owner := f.identity(t, "owner@example.com")
	room := f.room(t, owner)
	otherRoom := f.room(t, owner)

	admin, err := f.admins.AddAdmin(ctx, owner, room.ID, "helper@example.com")
	if err != nil {
		t.Fatalf("add admin: %v", err)
	}

	helper := models.Identity{UserID: admin.UserID, Email: admin.Email}

	if err := f.admins.RemoveAdmin(ctx, helper, room.ID, admin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin cannot remove admins, got %v", err)
	}

	if err := f.admins.RemoveAdmin(ctx, owner, otherRoom.ID, admin.ID); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("admin of another room: expected ErrAdminNotFound, got %v", err)
	}

	if err := f.admins.RemoveAdmin(ctx, owner, room.ID, admin.ID); err != nil {
		t.Fatalf("remove admin: %v", err)
	}

	if _, err := f.access.Authorize(ctx, helper, room.ID, RoleOwnerOrAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("removed admin must lose access, got %v", err)
	}

	if err := f.admins.RemoveAdmin(ctx, owner, room.ID, admin.ID); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestListAdmins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.TransitionStrict)

	owner := f.identity(t, "owner@example.com")
	room := f.room(t, owner)

	admins, err := f.admins.ListAdmins(ctx, owner, room.ID)
	if err != nil || len(admins) != 0 {
		t.Fatalf("empty room: %v, %v", admins, err)
	}

	if _, err := f.admins.AddAdmin(ctx, owner, room.ID, "helper@example.com"); err != nil {
		t.Fatalf("add admin: %v", err)
	}

	helper := f.identity(t, "helper@example.com")

	admins, err = f.admins.ListAdmins(ctx, helper, room.ID)
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 1 || admins[0].Email != "helper@example.com" {
		t.Fatalf("unexpected admins: %+v", admins)
	}
}
