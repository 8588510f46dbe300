package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/dto"
	"github.com/qrave1/BerrowBooks/internal/usecase"
)

type RoomHandler struct {
	roomUsecase  usecase.RoomUsecase
	adminUsecase usecase.AdminUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase, adminUsecase usecase.AdminUsecase) *RoomHandler {
	return &RoomHandler{
		roomUsecase:  roomUsecase,
		adminUsecase: adminUsecase,
	}
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.roomUsecase.ListRooms(c.Request().Context(), identity(c))
	if err != nil {
		return respondError(c, "list rooms", err)
	}

	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
	}

	room, err := h.roomUsecase.CreateRoom(c.Request().Context(), identity(c), req.Name, req.TokenExpiresAt)
	if err != nil {
		return respondError(c, "create room", err)
	}

	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "get room", err)
	}

	room, err := h.roomUsecase.GetRoom(c.Request().Context(), identity(c), roomID)
	if err != nil {
		return respondError(c, "get room", err)
	}

	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) ListAdmins(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "list admins", err)
	}

	admins, err := h.adminUsecase.ListAdmins(c.Request().Context(), identity(c), roomID)
	if err != nil {
		return respondError(c, "list admins", err)
	}

	return c.JSON(http.StatusOK, admins)
}

func (h *RoomHandler) AddAdmin(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "add admin", err)
	}

	var req dto.AddAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
	}

	admin, err := h.adminUsecase.AddAdmin(c.Request().Context(), identity(c), roomID, req.Email)
	if err != nil {
		return respondError(c, "add admin", err)
	}

	return c.JSON(http.StatusCreated, admin)
}

func (h *RoomHandler) RemoveAdmin(c echo.Context) error {
	roomID, err := uuidParam(c, "roomId")
	if err != nil {
		return respondError(c, "remove admin", err)
	}

	adminID, err := uuidParam(c, "adminId")
	if err != nil {
		return respondError(c, "remove admin", err)
	}

	if err := h.adminUsecase.RemoveAdmin(c.Request().Context(), identity(c), roomID, adminID); err != nil {
		return respondError(c, "remove admin", err)
	}

	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
