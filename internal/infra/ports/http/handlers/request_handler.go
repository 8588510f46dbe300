package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/dto"
	"github.com/qrave1/BerrowBooks/internal/usecase"
)

type RequestHandler struct {
	requestUsecase usecase.RequestUsecase
}

func NewRequestHandler(requestUsecase usecase.RequestUsecase) *RequestHandler {
	return &RequestHandler{requestUsecase: requestUsecase}
}

func (h *RequestHandler) ListRequests(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "list requests", err)
	}

	requests, err := h.requestUsecase.ListRequests(c.Request().Context(), identity(c), roomID)
	if err != nil {
		return respondError(c, "list requests", err)
	}

	return c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "create request", err)
	}

	var req dto.CreateBookRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
	}

	created, err := h.requestUsecase.CreateRequest(c.Request().Context(), identity(c), roomID, req.Title, req.Token)
	if err != nil {
		return respondError(c, "create request", err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "update request status", err)
	}

	requestID, err := uuidParam(c, "requestId")
	if err != nil {
		return respondError(c, "update request status", err)
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
	}

	updated, err := h.requestUsecase.UpdateStatus(
		c.Request().Context(),
		identity(c),
		roomID,
		requestID,
		req.Status,
		req.ReturnDueDate,
	)
	if err != nil {
		return respondError(c, "update request status", err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *RequestHandler) SendReminder(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "send reminder", err)
	}

	requestID, err := uuidParam(c, "requestId")
	if err != nil {
		return respondError(c, "send reminder", err)
	}

	if err := h.requestUsecase.SendReminder(c.Request().Context(), identity(c), roomID, requestID); err != nil {
		return respondError(c, "send reminder", err)
	}

	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
