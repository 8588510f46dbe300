package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

type UserRepository interface {
	// UpsertByEmail возвращает пользователя с таким email, создавая его при отсутствии
	UpsertByEmail(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) UpsertByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	var stored models.User

	// DO UPDATE вместо DO NOTHING, чтобы RETURNING отдал существующую строку
	query := `
		INSERT INTO users (id, email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, created_at
	`

	err := r.db.GetContext(ctx, &stored, query, user.ID, user.Email, user.CreatedAt)
	if err != nil {
		return nil, wrapErr("upsert user", err)
	}

	return &stored, nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, "SELECT id, email, created_at FROM users WHERE id = $1", id)
	if err != nil {
		return nil, wrapErr("get user by id", err)
	}

	return &user, nil
}
