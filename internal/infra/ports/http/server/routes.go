package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/qrave1/BerrowBooks/internal/application/config"
	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/handlers"
	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/middleware"
	"github.com/qrave1/BerrowBooks/internal/usecase"
)

func New(
	cfg *config.Config,
	userUsecase usecase.UserUsecase,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	requestHandler *handlers.RequestHandler,
	eventsHandler *handlers.EventsHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.Domain},
		AllowCredentials: true,
	}))

	api := e.Group("/api")
	{
		v1 := api.Group("/v1")
		v1.Use(middleware.JWTAuthMiddleware(userUsecase))
		{
			v1.GET("/me", authHandler.GetMe)
			v1.POST("/logs", authHandler.ClientLog)

			v1.GET("/rooms", roomHandler.ListRooms)
			v1.POST("/rooms", roomHandler.CreateRoom)

			room := v1.Group("/rooms/:roomId")
			{
				room.GET("", roomHandler.GetRoom)

				room.GET("/admins", roomHandler.ListAdmins)
				room.POST("/admins", roomHandler.AddAdmin)
				room.DELETE("/admins/:adminId", roomHandler.RemoveAdmin)

				room.GET("/requests", requestHandler.ListRequests)
				room.POST("/requests", requestHandler.CreateRequest)
				room.PATCH("/requests/:requestId", requestHandler.UpdateStatus)
				room.POST("/requests/:requestId/reminder", requestHandler.SendReminder)

				room.GET("/events", eventsHandler.Handle)
			}
		}
	}

	return e
}
