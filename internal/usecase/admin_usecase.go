package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/application/clock"
	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/input"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
)

// AdminUsecase управляет дополнительными админами комнаты. Менять состав может только владелец.
type AdminUsecase interface {
	AddAdmin(ctx context.Context, identity models.Identity, roomID uuid.UUID, email string) (*models.RoomAdmin, error)
	RemoveAdmin(ctx context.Context, identity models.Identity, roomID, adminID uuid.UUID) error
	ListAdmins(ctx context.Context, identity models.Identity, roomID uuid.UUID) ([]*models.RoomAdmin, error)
}

type adminUsecase struct {
	clock clock.Clock

	access    AccessUsecase
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
}

func NewAdminUsecase(
	clk clock.Clock,
	access AccessUsecase,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
) AdminUsecase {
	return &adminUsecase{
		clock:     clk,
		access:    access,
		userRepo:  userRepo,
		adminRepo: adminRepo,
	}
}

func (uc *adminUsecase) AddAdmin(ctx context.Context, identity models.Identity, roomID uuid.UUID, email string) (*models.RoomAdmin, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	in, err := input.ParseAddAdmin(email)
	if err != nil {
		return nil, err
	}

	room, err := uc.access.Authorize(ctx, identity, roomID, RoleOwner)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	// Пользователь может еще ни разу не входить - создаем его по email.
	// Если дальше упадем, останется пользователь без админской записи, это допустимо.
	user, err := uc.userRepo.UpsertByEmail(ctx, models.NewUser(in.Email, now))
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	_, err = uc.adminRepo.GetByUserAndRoom(ctx, user.ID, room.ID)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyAdmin
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get room admin: %w", err)
	}

	if user.ID == room.OwnerID {
		return nil, domain.ErrOwnerCannotBeAdmin
	}

	admin := models.NewRoomAdmin(user, room.ID, now)

	if err = uc.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrAlreadyAdmin
		}

		return nil, fmt.Errorf("create room admin: %w", err)
	}

	slog.InfoContext(
		ctx,
		"room admin added",
		slog.Any(constant.RoomID, room.ID),
		slog.Any(constant.AdminID, admin.ID),
	)

	return admin, nil
}

func (uc *adminUsecase) RemoveAdmin(ctx context.Context, identity models.Identity, roomID, adminID uuid.UUID) error {
	room, err := uc.access.Authorize(ctx, identity, roomID, RoleOwner)
	if err != nil {
		return err
	}

	if err = uc.adminRepo.Delete(ctx, room.ID, adminID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAdminNotFound
		}

		return fmt.Errorf("delete room admin: %w", err)
	}

	slog.InfoContext(
		ctx,
		"room admin removed",
		slog.Any(constant.RoomID, room.ID),
		slog.Any(constant.AdminID, adminID),
	)

	return nil
}

func (uc *adminUsecase) ListAdmins(ctx context.Context, identity models.Identity, roomID uuid.UUID) ([]*models.RoomAdmin, error) {
	room, err := uc.access.Authorize(ctx, identity, roomID, RoleOwnerOrAdmin)
	if err != nil {
		return nil, err
	}

	admins, err := uc.adminRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("list room admins: %w", err)
	}

	return admins, nil
}
