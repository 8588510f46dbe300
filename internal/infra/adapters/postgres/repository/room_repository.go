package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/domain/output"
)

type RoomRepository interface {
	// CreateWithinQuota создает комнату, если у владельца меньше limit комнат.
	// Проверка и вставка атомарны для одного владельца.
	CreateWithinQuota(ctx context.Context, room *models.Room, limit int) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	// ListForUser - комнаты, где пользователь владелец или админ, новые первыми
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*output.RoomOverview, error)
}

type roomRepo struct {
	db *sqlx.DB
}

func NewRoomRepo(db *sqlx.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) CreateWithinQuota(ctx context.Context, room *models.Room, limit int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Блокируем строку владельца: параллельные создания одного владельца идут по очереди
	var ownerID uuid.UUID
	if err = tx.GetContext(ctx, &ownerID, "SELECT id FROM users WHERE id = $1 FOR UPDATE", room.OwnerID); err != nil {
		return wrapErr("lock room owner", err)
	}

	var count int
	if err = tx.GetContext(ctx, &count, "SELECT count(*) FROM rooms WHERE owner_id = $1", room.OwnerID); err != nil {
		return wrapErr("count owner rooms", err)
	}

	if count >= limit {
		return domain.ErrQuotaExceeded
	}

	_, err = tx.ExecContext(
		ctx,
		"INSERT INTO rooms (id, name, owner_id, token, token_expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		room.ID,
		room.Name,
		room.OwnerID,
		room.Token,
		room.TokenExpiresAt,
		room.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert room", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit room: %w", err)
	}

	return nil
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room

	query := "SELECT id, name, owner_id, token, token_expires_at, created_at FROM rooms WHERE id = $1"

	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, wrapErr("get room by id", err)
	}

	return &room, nil
}

func (r *roomRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*output.RoomOverview, error) {
	rooms := make([]*output.RoomOverview, 0)

	query := `
		SELECT r.id, r.name, r.owner_id, r.token, r.token_expires_at, r.created_at,
		       o.email AS owner_email,
		       (SELECT count(*) FROM book_requests br WHERE br.room_id = r.id) AS request_count
		FROM rooms r
		INNER JOIN users o ON o.id = r.owner_id
		WHERE r.owner_id = $1
		   OR EXISTS (SELECT 1 FROM room_admins ra WHERE ra.room_id = r.id AND ra.user_id = $1)
		ORDER BY r.created_at DESC
	`

	if err := r.db.SelectContext(ctx, &rooms, query, userID); err != nil {
		return nil, wrapErr("list rooms for user", err)
	}

	return rooms, nil
}
