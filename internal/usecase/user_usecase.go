package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/application/clock"
	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/input"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
)

const tokenTTL = 72 * time.Hour

// Claims - JWT сессии: Subject = id пользователя
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserUsecase определяет интерфейс для работы с пользователями
type UserUsecase interface {
	// EnsureUser находит или создает пользователя по email
	EnsureUser(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	GenerateJWT(user *models.User) (string, error)
	ParseJWT(token string) (models.Identity, error)
}

type userUsecase struct {
	jwtSecret []byte
	clock     clock.Clock

	userRepo repository.UserRepository
}

// NewUserUsecase создает новый экземпляр UserUsecase
func NewUserUsecase(jwtSecret []byte, clk clock.Clock, userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{
		jwtSecret: jwtSecret,
		clock:     clk,
		userRepo:  userRepo,
	}
}

func (uc *userUsecase) EnsureUser(ctx context.Context, email string) (*models.User, error) {
	in, err := input.ParseAddAdmin(email)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.UpsertByEmail(ctx, models.NewUser(in.Email, uc.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	return user, nil
}

func (uc *userUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

// GenerateJWT генерирует JWT токен для пользователя
func (uc *userUsecase) GenerateJWT(user *models.User) (string, error) {
	now := uc.clock.Now()

	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}

// ParseJWT проверяет подпись и срок токена и достает identity
func (uc *userUsecase) ParseJWT(tokenString string) (models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return uc.jwtSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(uc.clock.Now),
	)
	if err != nil || !token.Valid {
		return models.Identity{}, domain.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Identity{}, domain.ErrUnauthorized
	}

	return models.Identity{UserID: userID, Email: claims.Email}, nil
}
