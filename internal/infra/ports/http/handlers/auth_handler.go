package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/domain"
	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/dto"
	"github.com/qrave1/BerrowBooks/internal/usecase"
)

type AuthHandler struct {
	userUsecase usecase.UserUsecase
}

func NewAuthHandler(userUsecase usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{
		userUsecase: userUsecase,
	}
}

func (h *AuthHandler) GetMe(c echo.Context) error {
	id := identity(c)
	if id.IsZero() {
		return respondError(c, "get me", domain.ErrUnauthorized)
	}

	user, err := h.userUsecase.GetUserByID(c.Request().Context(), id.UserID)
	if err != nil {
		return respondError(c, "get me", err)
	}

	return c.JSON(http.StatusOK, dto.GetMeResponse{ID: user.ID, Email: user.Email})
}

// ClientLog пишет в лог ошибку, которую прислал браузер
func (h *AuthHandler) ClientLog(c echo.Context) error {
	var req dto.ClientLogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
	}

	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "message is required"})
	}

	slog.Error(
		"client error",
		slog.String("message", req.Message),
		slog.String("stack", req.Stack),
		slog.String("url", req.URL),
		slog.String("timestamp", req.Timestamp),
		slog.String(constant.Email, identity(c).Email),
	)

	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
