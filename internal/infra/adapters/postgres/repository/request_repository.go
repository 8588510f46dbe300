package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

type RequestRepository interface {
	Create(ctx context.Context, req *models.BookRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BookRequest, error)
	// ListByRoom - заявки комнаты, новые первыми
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.BookRequest, error)
	// Update сохраняет статус и все временные поля заявки
	Update(ctx context.Context, req *models.BookRequest) error
}

type requestRepo struct {
	db *sqlx.DB
}

func NewRequestRepo(db *sqlx.DB) RequestRepository {
	return &requestRepo{db: db}
}

const requestSelect = `
	SELECT br.id, br.title, br.status, br.requester_id, u.email AS requester_email, br.room_id,
	       br.requested_at, br.purchased_at, br.sent_at, br.return_due_date, br.returned_at
	FROM book_requests br
	INNER JOIN users u ON u.id = br.requester_id
`

func (r *requestRepo) Create(ctx context.Context, req *models.BookRequest) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO book_requests (id, title, status, requester_id, room_id, requested_at) VALUES ($1, $2, $3, $4, $5, $6)",
		req.ID,
		req.Title,
		string(req.Status),
		req.RequesterID,
		req.RoomID,
		req.RequestedAt,
	)
	if err != nil {
		return wrapErr("create book request", err)
	}

	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BookRequest, error) {
	var req models.BookRequest

	if err := r.db.GetContext(ctx, &req, requestSelect+" WHERE br.id = $1", id); err != nil {
		return nil, wrapErr("get book request", err)
	}

	return &req, nil
}

func (r *requestRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.BookRequest, error) {
	reqs := make([]*models.BookRequest, 0)

	err := r.db.SelectContext(ctx, &reqs, requestSelect+" WHERE br.room_id = $1 ORDER BY br.requested_at DESC", roomID)
	if err != nil {
		return nil, wrapErr("list book requests", err)
	}

	return reqs, nil
}

func (r *requestRepo) Update(ctx context.Context, req *models.BookRequest) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE book_requests
		 SET status = $1, purchased_at = $2, sent_at = $3, return_due_date = $4, returned_at = $5
		 WHERE id = $6`,
		string(req.Status),
		req.PurchasedAt,
		req.SentAt,
		req.ReturnDueDate,
		req.ReturnedAt,
		req.ID,
	)
	if err != nil {
		return wrapErr("update book request", err)
	}

	return checkAffected("update book request", res)
}
