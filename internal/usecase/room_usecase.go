package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/application/clock"
	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/application/metric"
	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/input"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/domain/output"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
)

const roomTokenBytes = 32

type RoomUsecase interface {
	ListRooms(ctx context.Context, identity models.Identity) ([]*output.RoomOverview, error)
	CreateRoom(ctx context.Context, identity models.Identity, name, tokenExpiresAt string) (*models.Room, error)
	GetRoom(ctx context.Context, identity models.Identity, roomID uuid.UUID) (*models.Room, error)
}

type roomUsecase struct {
	clock         clock.Clock
	maxRoomsOwned int

	access    AccessUsecase
	roomRepo  repository.RoomRepository
	adminRepo repository.AdminRepository
}

func NewRoomUsecase(
	clk clock.Clock,
	maxRoomsOwned int,
	access AccessUsecase,
	roomRepo repository.RoomRepository,
	adminRepo repository.AdminRepository,
) RoomUsecase {
	return &roomUsecase{
		clock:         clk,
		maxRoomsOwned: maxRoomsOwned,
		access:        access,
		roomRepo:      roomRepo,
		adminRepo:     adminRepo,
	}
}

func (uc *roomUsecase) ListRooms(ctx context.Context, identity models.Identity) ([]*output.RoomOverview, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	rooms, err := uc.roomRepo.ListForUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	roomIDs := make([]uuid.UUID, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
		room.Admins = make([]*models.RoomAdmin, 0)
	}

	admins, err := uc.adminRepo.ListByRooms(ctx, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("list room admins: %w", err)
	}

	byRoom := make(map[uuid.UUID]*output.RoomOverview, len(rooms))
	for _, room := range rooms {
		byRoom[room.ID] = room
	}

	for _, admin := range admins {
		if room, ok := byRoom[admin.RoomID]; ok {
			room.Admins = append(room.Admins, admin)
		}
	}

	return rooms, nil
}

func (uc *roomUsecase) CreateRoom(ctx context.Context, identity models.Identity, name, tokenExpiresAt string) (*models.Room, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	now := uc.clock.Now()

	in, err := input.ParseCreateRoom(name, tokenExpiresAt, now)
	if err != nil {
		return nil, err
	}

	token, err := newRoomToken()
	if err != nil {
		return nil, err
	}

	room := models.NewRoom(identity.UserID, in.Name, token, in.TokenExpiresAt, now)

	if err = uc.roomRepo.CreateWithinQuota(ctx, room, uc.maxRoomsOwned); err != nil {
		switch {
		case errors.Is(err, domain.ErrQuotaExceeded):
			return nil, domain.ErrQuotaExceeded
		case errors.Is(err, domain.ErrNotFound):
			// владельца нет в users - токен от удаленного пользователя
			return nil, domain.ErrUnauthorized
		}

		return nil, fmt.Errorf("create room: %w", err)
	}

	metric.IncrementRoomsCreated()

	slog.InfoContext(ctx, "room created", slog.Any(constant.RoomID, room.ID), slog.Any(constant.UserID, identity.UserID))

	return room, nil
}

func (uc *roomUsecase) GetRoom(ctx context.Context, identity models.Identity, roomID uuid.UUID) (*models.Room, error) {
	return uc.access.Authorize(ctx, identity, roomID, RoleOwnerOrAdmin)
}

// newRoomToken - 32 случайных байта из crypto/rand в hex (64 символа)
func newRoomToken() (string, error) {
	b := make([]byte, roomTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate room token: %w", err)
	}

	return hex.EncodeToString(b), nil
}
