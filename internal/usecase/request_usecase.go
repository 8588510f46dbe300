package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/qrave1/BerrowBooks/internal/application/clock"
	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/application/metric"
	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/events"
	"github.com/qrave1/BerrowBooks/internal/domain/input"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
)

// RequestUsecase - жизненный цикл заявок на книги:
// REQUESTED -> PURCHASED -> SENT -> RETURNED
type RequestUsecase interface {
	ListRequests(ctx context.Context, identity models.Identity, roomID uuid.UUID) ([]*models.BookRequest, error)

	// CreateRequest доступен любому пользователю, знающему действующий токен комнаты
	CreateRequest(ctx context.Context, identity models.Identity, roomID uuid.UUID, title, token string) (*models.BookRequest, error)

	UpdateStatus(
		ctx context.Context,
		identity models.Identity,
		roomID, requestID uuid.UUID,
		status, returnDueDate string,
	) (*models.BookRequest, error)

	// SendReminder напоминает заявителю о сроке возврата. Заявка не меняется.
	SendReminder(ctx context.Context, identity models.Identity, roomID, requestID uuid.UUID) error
}

type requestUsecase struct {
	clock  clock.Clock
	policy models.TransitionPolicy

	access      AccessUsecase
	userRepo    repository.UserRepository
	roomRepo    repository.RoomRepository
	requestRepo repository.RequestRepository

	notifier  Notifier
	publisher EventPublisher
}

func NewRequestUsecase(
	clk clock.Clock,
	policy models.TransitionPolicy,
	access AccessUsecase,
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	requestRepo repository.RequestRepository,
	notifier Notifier,
	publisher EventPublisher,
) RequestUsecase {
	if publisher == nil {
		publisher = noopPublisher{}
	}

	return &requestUsecase{
		clock:       clk,
		policy:      policy,
		access:      access,
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		requestRepo: requestRepo,
		notifier:    notifier,
		publisher:   publisher,
	}
}

func (uc *requestUsecase) ListRequests(ctx context.Context, identity models.Identity, roomID uuid.UUID) ([]*models.BookRequest, error) {
	room, err := uc.access.Authorize(ctx, identity, roomID, RoleOwnerOrAdmin)
	if err != nil {
		return nil, err
	}

	reqs, err := uc.requestRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	return reqs, nil
}

func (uc *requestUsecase) CreateRequest(
	ctx context.Context,
	identity models.Identity,
	roomID uuid.UUID,
	title, token string,
) (*models.BookRequest, error) {
	if identity.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	in, err := input.ParseCreateRequest(title, token)
	if err != nil {
		return nil, err
	}

	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}

		return nil, fmt.Errorf("get room: %w", err)
	}

	if !room.MatchesToken(in.Token) {
		return nil, domain.ErrInvalidToken
	}

	now := uc.clock.Now()

	if room.TokenExpired(now) {
		return nil, domain.ErrTokenExpired
	}

	requester, err := uc.lookupUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.lookupUser(ctx, room.OwnerID)
	if err != nil {
		return nil, err
	}

	req := models.NewBookRequest(models.Identity{UserID: requester.ID, Email: requester.Email}, room.ID, in.Title, now)

	if err = uc.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	slog.InfoContext(ctx, "book request created", slog.Any(constant.RequestID, req.ID), slog.Any(constant.RoomID, room.ID))

	notify(ctx, "new_request", func() error {
		return uc.notifier.NotifyNewRequest(ctx, events.NewRequestNotice{
			OwnerEmail:     owner.Email,
			RoomName:       room.Name,
			BookTitle:      req.Title,
			RequesterEmail: requester.Email,
		})
	})

	uc.publisher.Publish(events.NewRequestCreated(req, now))

	return req, nil
}

func (uc *requestUsecase) UpdateStatus(
	ctx context.Context,
	identity models.Identity,
	roomID, requestID uuid.UUID,
	status, returnDueDate string,
) (*models.BookRequest, error) {
	room, err := uc.access.Authorize(ctx, identity, roomID, RoleOwnerOrAdmin)
	if err != nil {
		return nil, err
	}

	in, err := input.ParseUpdateStatus(status, returnDueDate)
	if err != nil {
		return nil, err
	}

	req, err := uc.getRoomRequest(ctx, room.ID, requestID)
	if err != nil {
		return nil, err
	}

	prev := req.Status

	if !uc.policy.Allows(prev, in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	now := uc.clock.Now()

	req.ApplyStatus(in.Status, in.ReturnDueDate, now)

	// Без версии строки: параллельные обновления одной заявки не сериализуются
	if err = uc.requestRepo.Update(ctx, req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRequestNotFound
		}

		return nil, fmt.Errorf("update request: %w", err)
	}

	metric.RecordTransition(string(prev), string(req.Status))

	slog.InfoContext(
		ctx,
		"book request status updated",
		slog.Any(constant.RequestID, req.ID),
		slog.String("prev_status", string(prev)),
		slog.String(constant.Status, string(req.Status)),
	)

	if prev != req.Status {
		uc.notifyStatusChange(ctx, req)
		uc.publisher.Publish(events.NewStatusChanged(req, prev, now))
	}

	return req, nil
}

func (uc *requestUsecase) notifyStatusChange(ctx context.Context, req *models.BookRequest) {
	switch req.Status {
	case models.StatusSent:
		notify(ctx, "shipped", func() error {
			return uc.notifier.NotifyShipped(ctx, events.ShippedNotice{
				RequesterEmail: req.RequesterEmail,
				BookTitle:      req.Title,
				ReturnDueDate:  req.ReturnDueDate,
			})
		})
	case models.StatusReturned:
		notify(ctx, "return_complete", func() error {
			return uc.notifier.NotifyReturnComplete(ctx, events.ReturnCompleteNotice{
				RequesterEmail: req.RequesterEmail,
				BookTitle:      req.Title,
			})
		})
	}
}

func (uc *requestUsecase) SendReminder(ctx context.Context, identity models.Identity, roomID, requestID uuid.UUID) error {
	room, err := uc.access.Authorize(ctx, identity, roomID, RoleOwnerOrAdmin)
	if err != nil {
		return err
	}

	req, err := uc.getRoomRequest(ctx, room.ID, requestID)
	if err != nil {
		return err
	}

	if req.ReturnDueDate == nil {
		return domain.ErrNoDueDateSet
	}

	if req.Status == models.StatusReturned {
		return domain.ErrAlreadyReturned
	}

	// здесь письмо и есть результат операции, поэтому ошибку отдаем наверх
	err = uc.notifier.NotifyReminder(ctx, events.ReminderNotice{
		RequesterEmail: req.RequesterEmail,
		BookTitle:      req.Title,
		ReturnDueDate:  *req.ReturnDueDate,
	})
	metric.RecordNotification("reminder", err)

	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	return nil
}

// getRoomRequest не различает "нет заявки" и "заявка из другой комнаты"
func (uc *requestUsecase) getRoomRequest(ctx context.Context, roomID, requestID uuid.UUID) (*models.BookRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRequestNotFound
		}

		return nil, fmt.Errorf("get request: %w", err)
	}

	if req.RoomID != roomID {
		return nil, domain.ErrRequestNotFound
	}

	return req, nil
}

func (uc *requestUsecase) lookupUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}

		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}
