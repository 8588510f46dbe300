package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

type AdminRepository interface {
	// Create возвращает domain.ErrDuplicate, если пара (user, room) уже есть
	Create(ctx context.Context, admin *models.RoomAdmin) error
	GetByUserAndRoom(ctx context.Context, userID, roomID uuid.UUID) (*models.RoomAdmin, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.RoomAdmin, error)
	ListByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]*models.RoomAdmin, error)
	// Delete удаляет админа только внутри указанной комнаты
	Delete(ctx context.Context, roomID, adminID uuid.UUID) error
}

type adminRepo struct {
	db *sqlx.DB
}

func NewAdminRepo(db *sqlx.DB) AdminRepository {
	return &adminRepo{db: db}
}

const adminColumns = "ra.id, ra.user_id, ra.room_id, u.email, ra.created_at"

func (r *adminRepo) Create(ctx context.Context, admin *models.RoomAdmin) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO room_admins (id, user_id, room_id, created_at) VALUES ($1, $2, $3, $4)",
		admin.ID,
		admin.UserID,
		admin.RoomID,
		admin.CreatedAt,
	)
	if err != nil {
		return wrapErr("create room admin", err)
	}

	return nil
}

func (r *adminRepo) GetByUserAndRoom(ctx context.Context, userID, roomID uuid.UUID) (*models.RoomAdmin, error) {
	var admin models.RoomAdmin

	query := `
		SELECT ` + adminColumns + `
		FROM room_admins ra
		INNER JOIN users u ON u.id = ra.user_id
		WHERE ra.user_id = $1 AND ra.room_id = $2
	`

	if err := r.db.GetContext(ctx, &admin, query, userID, roomID); err != nil {
		return nil, wrapErr("get room admin", err)
	}

	return &admin, nil
}

func (r *adminRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.RoomAdmin, error) {
	admins := make([]*models.RoomAdmin, 0)

	query := `
		SELECT ` + adminColumns + `
		FROM room_admins ra
		INNER JOIN users u ON u.id = ra.user_id
		WHERE ra.room_id = $1
		ORDER BY ra.created_at
	`

	if err := r.db.SelectContext(ctx, &admins, query, roomID); err != nil {
		return nil, wrapErr("list room admins", err)
	}

	return admins, nil
}

func (r *adminRepo) ListByRooms(ctx context.Context, roomIDs []uuid.UUID) ([]*models.RoomAdmin, error) {
	if len(roomIDs) == 0 {
		return []*models.RoomAdmin{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+adminColumns+`
		FROM room_admins ra
		INNER JOIN users u ON u.id = ra.user_id
		WHERE ra.room_id IN (?)
		ORDER BY ra.created_at
	`, roomIDs)
	if err != nil {
		return nil, wrapErr("build admins query", err)
	}

	admins := make([]*models.RoomAdmin, 0)

	if err = r.db.SelectContext(ctx, &admins, r.db.Rebind(query), args...); err != nil {
		return nil, wrapErr("list admins by rooms", err)
	}

	return admins, nil
}

func (r *adminRepo) Delete(ctx context.Context, roomID, adminID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM room_admins WHERE id = $1 AND room_id = $2", adminID, roomID)
	if err != nil {
		return wrapErr("delete room admin", err)
	}

	return checkAffected("delete room admin", res)
}
