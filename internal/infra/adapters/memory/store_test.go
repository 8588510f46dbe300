package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()

	u, err := s.Users().UpsertByEmail(context.Background(), models.NewUser(email, now))
	if err != nil {
		t.Fatalf("upsert user: %v", err)
	}

	return u
}

func TestUpsertByEmailReturnsExisting(t *testing.T) {
	s := NewStore()

	first := seedUser(t, s, "owner@example.com")
	second := seedUser(t, s, "owner@example.com")

	if first.ID != second.ID {
		t.Fatalf("expected same user, got %s and %s", first.ID, second.ID)
	}
}

func TestCreateWithinQuotaConcurrent(t *testing.T) {
	s := NewStore()
	owner := seedUser(t, s, "owner@example.com")

	const limit = 5

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			room := models.NewRoom(owner.ID, "room", uuid.NewString(), now.Add(time.Hour), now)
			err := s.Rooms().CreateWithinQuota(context.Background(), room, limit)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				created++
			case errors.Is(err, domain.ErrQuotaExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if created != limit || rejected != 20-limit {
		t.Fatalf("created %d, rejected %d", created, rejected)
	}
}

func TestCreateWithinQuotaUnknownOwner(t *testing.T) {
	s := NewStore()

	room := models.NewRoom(uuid.New(), "room", "tok", now.Add(time.Hour), now)
	if err := s.Rooms().CreateWithinQuota(context.Background(), room, 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	owner := seedUser(t, s, "owner@example.com")
	helper := seedUser(t, s, "helper@example.com")
	stranger := seedUser(t, s, "stranger@example.com")

	older := models.NewRoom(owner.ID, "older", "t1", now.Add(time.Hour), now)
	newer := models.NewRoom(owner.ID, "newer", "t2", now.Add(time.Hour), now.Add(time.Minute))

	for _, r := range []*models.Room{older, newer} {
		if err := s.Rooms().CreateWithinQuota(ctx, r, 5); err != nil {
			t.Fatalf("create room: %v", err)
		}
	}

	if err := s.Admins().Create(ctx, models.NewRoomAdmin(helper, older.ID, now)); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	req := models.NewBookRequest(models.Identity{UserID: stranger.ID}, older.ID, "Dune", now)
	if err := s.Requests().Create(ctx, req); err != nil {
		t.Fatalf("create request: %v", err)
	}

	rooms, err := s.Rooms().ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 2 || rooms[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %+v", rooms)
	}
	if rooms[1].RequestCount != 1 || rooms[1].OwnerEmail != owner.Email {
		t.Fatalf("unexpected overview: %+v", rooms[1])
	}

	rooms, err = s.Rooms().ListForUser(ctx, helper.ID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != older.ID {
		t.Fatalf("admin should see only the room they administer, got %+v", rooms)
	}

	rooms, _ = s.Rooms().ListForUser(ctx, stranger.ID)
	if len(rooms) != 0 {
		t.Fatalf("requester is not a member, got %d rooms", len(rooms))
	}
}

func TestAdminDuplicateAndScopedDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	owner := seedUser(t, s, "owner@example.com")
	helper := seedUser(t, s, "helper@example.com")

	roomA := models.NewRoom(owner.ID, "a", "ta", now.Add(time.Hour), now)
	roomB := models.NewRoom(owner.ID, "b", "tb", now.Add(time.Hour), now)
	_ = s.Rooms().CreateWithinQuota(ctx, roomA, 5)
	_ = s.Rooms().CreateWithinQuota(ctx, roomB, 5)

	admin := models.NewRoomAdmin(helper, roomA.ID, now)
	if err := s.Admins().Create(ctx, admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	if err := s.Admins().Create(ctx, models.NewRoomAdmin(helper, roomA.ID, now)); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := s.Admins().GetByUserAndRoom(ctx, helper.ID, roomA.ID)
	if err != nil || got.Email != helper.Email {
		t.Fatalf("admin email must be joined: %+v, %v", got, err)
	}

	if err := s.Admins().Delete(ctx, roomB.ID, admin.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete from another room must fail, got %v", err)
	}

	if err := s.Admins().Delete(ctx, roomA.ID, admin.ID); err != nil {
		t.Fatalf("delete admin: %v", err)
	}

	if err := s.Admins().Delete(ctx, roomA.ID, admin.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete must fail, got %v", err)
	}
}

func TestRequestsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	owner := seedUser(t, s, "owner@example.com")
	room := models.NewRoom(owner.ID, "a", "ta", now.Add(time.Hour), now)
	_ = s.Rooms().CreateWithinQuota(ctx, room, 5)

	req := models.NewBookRequest(models.Identity{UserID: owner.ID}, room.ID, "Dune", now)
	if err := s.Requests().Create(ctx, req); err != nil {
		t.Fatalf("create request: %v", err)
	}

	got, err := s.Requests().GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if got.RequesterEmail != owner.Email {
		t.Fatalf("requester email: got %q", got.RequesterEmail)
	}

	got.ApplyStatus(models.StatusPurchased, nil, now)

	again, _ := s.Requests().GetByID(ctx, req.ID)
	if again.Status != models.StatusRequested || again.PurchasedAt != nil {
		t.Fatal("mutating a returned request must not change the store")
	}

	if err := s.Requests().Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	again, _ = s.Requests().GetByID(ctx, req.ID)
	if again.Status != models.StatusPurchased || again.PurchasedAt == nil {
		t.Fatalf("update not stored: %+v", again)
	}
}
