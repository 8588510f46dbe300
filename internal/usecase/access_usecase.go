package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
)

type Role int

const (
	RoleOwner Role = iota
	RoleOwnerOrAdmin
)

// AccessUsecase проверяет права пользователя на комнату
type AccessUsecase interface {
	// Authorize возвращает комнату, если у identity есть роль role.
	// Ошибки: domain.ErrUnauthorized, domain.ErrRoomNotFound, domain.ErrForbidden.
	Authorize(ctx context.Context, identity models.Identity, roomID uuid.UUID, role Role) (*models.Room, error)
}

type accessUsecase struct {
	roomRepo  repository.RoomRepository
	adminRepo repository.AdminRepository
}

func NewAccessUsecase(roomRepo repository.RoomRepository, adminRepo repository.AdminRepository) AccessUsecase {
	return &accessUsecase{roomRepo: roomRepo, adminRepo: adminRepo}
}

func (uc *accessUsecase) Authorize(ctx context.Context, identity models.Identity, roomID uuid.UUID, role Role) (*models.Room, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}

		return nil, fmt.Errorf("get room: %w", err)
	}

	if room.OwnerID == identity.UserID {
		return room, nil
	}

	if role == RoleOwner {
		return nil, domain.ErrForbidden
	}

	_, err = uc.adminRepo.GetByUserAndRoom(ctx, identity.UserID, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}

		return nil, fmt.Errorf("get room admin: %w", err)
	}

	return room, nil
}
