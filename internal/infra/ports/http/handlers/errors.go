package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/infra/appctx"
	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/dto"
)

var statusByCode = map[string]int{
	domain.CodeUnauthorized:       http.StatusUnauthorized,
	domain.CodeForbidden:          http.StatusForbidden,
	domain.CodeInvalidToken:       http.StatusForbidden,
	domain.CodeTokenExpired:       http.StatusForbidden,
	domain.CodeRoomNotFound:       http.StatusNotFound,
	domain.CodeRequestNotFound:    http.StatusNotFound,
	domain.CodeAdminNotFound:      http.StatusNotFound,
	domain.CodeValidation:         http.StatusBadRequest,
	domain.CodeInvalidStatus:      http.StatusBadRequest,
	domain.CodeQuotaExceeded:      http.StatusBadRequest,
	domain.CodeAlreadyAdmin:       http.StatusBadRequest,
	domain.CodeOwnerCannotBeAdmin: http.StatusBadRequest,
	domain.CodeNoDueDateSet:       http.StatusBadRequest,
	domain.CodeAlreadyReturned:    http.StatusBadRequest,
	domain.CodeInvalidTransition:  http.StatusConflict,
}

// respondError переводит ошибку usecase в HTTP ответ.
// Внутренние ошибки логируются, клиент видит только "internal error".
func respondError(c echo.Context, op string, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Message})
	}

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		if status, ok := statusByCode[domainErr.Code]; ok {
			return c.JSON(status, dto.ErrorResponse{Error: domainErr.Message})
		}
	}

	slog.Error(op, slog.Any(constant.Error, err))

	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}

// identity - пользователь запроса; пустой, если middleware его не положил
func identity(c echo.Context) models.Identity {
	id, _ := appctx.Identity(c.Request().Context())
	return id
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "invalid "+name)
	}

	return id, nil
}
