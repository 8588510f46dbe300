package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/domain/output"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
)

// Store - хранилище в памяти с той же семантикой, что и postgres-репозитории.
// Используется в тестах вместо базы.
type Store struct {
	users    map[uuid.UUID]models.User
	rooms    map[uuid.UUID]models.Room
	admins   map[uuid.UUID]models.RoomAdmin
	requests map[uuid.UUID]models.BookRequest

	mu sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]models.User),
		rooms:    make(map[uuid.UUID]models.Room),
		admins:   make(map[uuid.UUID]models.RoomAdmin),
		requests: make(map[uuid.UUID]models.BookRequest),
	}
}

func (s *Store) Users() repository.UserRepository       { return &userRepository{s: s} }
func (s *Store) Rooms() repository.RoomRepository       { return &roomRepository{s: s} }
func (s *Store) Admins() repository.AdminRepository     { return &adminRepository{s: s} }
func (s *Store) Requests() repository.RequestRepository { return &requestRepository{s: s} }

// emailOf вызывается под блокировкой
func (s *Store) emailOf(userID uuid.UUID) string {
	return s.users[userID].Email
}

type userRepository struct {
	s *Store
}

func (r *userRepository) UpsertByEmail(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return &u, nil
		}
	}

	stored := *user
	r.s.users[stored.ID] = stored

	return &stored, nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user by id: %w", domain.ErrNotFound)
	}

	return &u, nil
}

type roomRepository struct {
	s *Store
}

func (r *roomRepository) CreateWithinQuota(_ context.Context, room *models.Room, limit int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[room.OwnerID]; !ok {
		return fmt.Errorf("lock room owner: %w", domain.ErrNotFound)
	}

	count := 0
	for _, existing := range r.s.rooms {
		if existing.OwnerID == room.OwnerID {
			count++
		}
	}

	if count >= limit {
		return domain.ErrQuotaExceeded
	}

	r.s.rooms[room.ID] = *room

	return nil
}

func (r *roomRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("get room by id: %w", domain.ErrNotFound)
	}

	return &room, nil
}

func (r *roomRepository) ListForUser(_ context.Context, userID uuid.UUID) ([]*output.RoomOverview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	adminOf := make(map[uuid.UUID]bool)
	for _, a := range r.s.admins {
		if a.UserID == userID {
			adminOf[a.RoomID] = true
		}
	}

	counts := make(map[uuid.UUID]int)
	for _, req := range r.s.requests {
		counts[req.RoomID]++
	}

	rooms := make([]*output.RoomOverview, 0)

	for _, room := range r.s.rooms {
		if room.OwnerID != userID && !adminOf[room.ID] {
			continue
		}

		rooms = append(rooms, &output.RoomOverview{
			Room:         room,
			OwnerEmail:   r.s.emailOf(room.OwnerID),
			RequestCount: counts[room.ID],
		})
	}

	slices.SortFunc(rooms, func(a, b *output.RoomOverview) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return rooms, nil
}

type adminRepository struct {
	s *Store
}

func (r *adminRepository) Create(_ context.Context, admin *models.RoomAdmin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.admins {
		if a.UserID == admin.UserID && a.RoomID == admin.RoomID {
			return fmt.Errorf("create room admin: %w", domain.ErrDuplicate)
		}
	}

	stored := *admin
	stored.Email = ""
	r.s.admins[stored.ID] = stored

	return nil
}

func (r *adminRepository) withEmail(a models.RoomAdmin) *models.RoomAdmin {
	a.Email = r.s.emailOf(a.UserID)
	return &a
}

func (r *adminRepository) GetByUserAndRoom(_ context.Context, userID, roomID uuid.UUID) (*models.RoomAdmin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.admins {
		if a.UserID == userID && a.RoomID == roomID {
			return r.withEmail(a), nil
		}
	}

	return nil, fmt.Errorf("get room admin: %w", domain.ErrNotFound)
}

func (r *adminRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.RoomAdmin, error) {
	return r.ListByRooms(ctx, []uuid.UUID{roomID})
}

func (r *adminRepository) ListByRooms(_ context.Context, roomIDs []uuid.UUID) ([]*models.RoomAdmin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	admins := make([]*models.RoomAdmin, 0)

	for _, a := range r.s.admins {
		if slices.Contains(roomIDs, a.RoomID) {
			admins = append(admins, r.withEmail(a))
		}
	}

	slices.SortFunc(admins, func(a, b *models.RoomAdmin) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return admins, nil
}

func (r *adminRepository) Delete(_ context.Context, roomID, adminID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.admins[adminID]
	if !ok || a.RoomID != roomID {
		return domain.ErrNotFound
	}

	delete(r.s.admins, adminID)

	return nil
}

type requestRepository struct {
	s *Store
}

func (r *requestRepository) Create(_ context.Context, req *models.BookRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[req.RoomID]; !ok {
		return fmt.Errorf("create book request: %w", domain.ErrNotFound)
	}

	r.s.requests[req.ID] = cloneRequest(*req)

	return nil
}

func (r *requestRepository) GetByID(_ context.Context, id uuid.UUID) (*models.BookRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.requests[id]
	if !ok {
		return nil, fmt.Errorf("get book request: %w", domain.ErrNotFound)
	}

	return r.view(req), nil
}

func (r *requestRepository) ListByRoom(_ context.Context, roomID uuid.UUID) ([]*models.BookRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reqs := make([]*models.BookRequest, 0)

	for _, req := range r.s.requests {
		if req.RoomID == roomID {
			reqs = append(reqs, r.view(req))
		}
	}

	slices.SortFunc(reqs, func(a, b *models.BookRequest) int {
		return b.RequestedAt.Compare(a.RequestedAt)
	})

	return reqs, nil
}

func (r *requestRepository) Update(_ context.Context, req *models.BookRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.requests[req.ID]
	if !ok {
		return domain.ErrNotFound
	}

	stored.Status = req.Status
	stored.PurchasedAt = req.PurchasedAt
	stored.SentAt = req.SentAt
	stored.ReturnDueDate = req.ReturnDueDate
	stored.ReturnedAt = req.ReturnedAt

	r.s.requests[req.ID] = cloneRequest(stored)

	return nil
}

// view вызывается под блокировкой
func (r *requestRepository) view(req models.BookRequest) *models.BookRequest {
	out := cloneRequest(req)
	out.RequesterEmail = r.s.emailOf(req.RequesterID)

	return &out
}

// cloneRequest копирует указатели на время, чтобы вызывающий не менял хранилище
func cloneRequest(req models.BookRequest) models.BookRequest {
	req.PurchasedAt = cloneTime(req.PurchasedAt)
	req.SentAt = cloneTime(req.SentAt)
	req.ReturnDueDate = cloneTime(req.ReturnDueDate)
	req.ReturnedAt = cloneTime(req.ReturnedAt)

	return req
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	c := *t
	return &c
}
