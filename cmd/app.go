package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qrave1/BerrowBooks/internal/application/clock"
	"github.com/qrave1/BerrowBooks/internal/application/config"
	"github.com/qrave1/BerrowBooks/internal/application/constant"
	"github.com/qrave1/BerrowBooks/internal/application/metric"
	"github.com/qrave1/BerrowBooks/internal/domain/models"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/mail"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/memory"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/handlers"
	"github.com/qrave1/BerrowBooks/internal/infra/ports/http/server"
	"github.com/qrave1/BerrowBooks/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: level},
			),
		),
	)

	slog.Info(
		"Running app",
		slog.Bool("debug", cfg.Debug),
		slog.String("transitions", cfg.StatusTransitions),
		slog.String("mail_provider", cfg.Mail.Provider),
	)

	dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
	if err != nil {
		slog.Error("connect to postgres", slog.Any(constant.Error, err))
		os.Exit(1)
	}
	defer dbConn.Close()

	clk := clock.Real()

	userRepo := repository.NewUserRepo(dbConn)
	roomRepo := repository.NewRoomRepo(dbConn)
	adminRepo := repository.NewAdminRepo(dbConn)
	requestRepo := repository.NewRequestRepo(dbConn)
	subRepo := memory.NewRoomSubscriberRepository()

	notifier, closeNotifier := newNotifier(cfg)

	accessUsecase := usecase.NewAccessUsecase(roomRepo, adminRepo)
	userUsecase := usecase.NewUserUsecase([]byte(cfg.JWTSecret), clk, userRepo)
	roomUsecase := usecase.NewRoomUsecase(clk, cfg.MaxRoomsPerOwner, accessUsecase, roomRepo, adminRepo)
	adminUsecase := usecase.NewAdminUsecase(clk, accessUsecase, userRepo, adminRepo)
	requestUsecase := usecase.NewRequestUsecase(
		clk,
		transitionPolicy(cfg.StatusTransitions),
		accessUsecase,
		userRepo,
		roomRepo,
		requestRepo,
		notifier,
		subRepo,
	)

	authHandler := handlers.NewAuthHandler(userUsecase)
	roomHandler := handlers.NewRoomHandler(roomUsecase, adminUsecase)
	requestHandler := handlers.NewRequestHandler(requestUsecase)
	eventsHandler := handlers.NewEventsHandler(cfg, accessUsecase, subRepo)

	echoSrv := server.New(cfg, userUsecase, authHandler, roomHandler, requestHandler, eventsHandler)
	metricSrv := metric.NewServer()

	srvCh := make(chan error, 1)
	go func() {
		srvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	metricCh := make(chan error, 1)
	go func() {
		metricCh <- metricSrv.Start(":" + cfg.MetricPort)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server due to context cancel")
	case err = <-srvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)
	case err = <-metricCh:
		slog.Error(
			"Metric server failed",
			slog.Any(constant.Error, err),
		)
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown server", slog.Any(constant.Error, err))
	}

	if err := metricSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
	}

	// письма из очереди досылаем после остановки HTTP, новых заявок уже не будет
	if err := closeNotifier(timeoutCtx); err != nil {
		slog.Error("Failed to drain mail queue", slog.Any(constant.Error, err))
	}
}

func newNotifier(cfg *config.Config) (usecase.Notifier, func(ctx context.Context) error) {
	var sender mail.Sender = mail.NewLogSender()
	if cfg.Mail.Provider == config.MailProviderResend {
		sender = mail.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, cfg.Mail.MaxRetries)
	}

	notifier := mail.NewNotifier(sender)

	if !cfg.Mail.Async {
		return notifier, func(context.Context) error { return nil }
	}

	queue := mail.NewQueue(notifier, cfg.Mail.QueueSize, cfg.Mail.Workers)

	return queue, queue.Close
}

func transitionPolicy(name string) models.TransitionPolicy {
	if name == config.TransitionsPermissive {
		return models.TransitionPermissive
	}

	return models.TransitionStrict
}
