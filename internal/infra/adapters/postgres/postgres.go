package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const (
	connectTimeout  = 10 * time.Second
	maxOpenConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// NewPostgres открывает пул через драйвер pgx и проверяет его пингом.
// На подключение дается connectTimeout, дальше пул живет с ctx приложения.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(connCtx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err = db.PingContext(connCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	slog.InfoContext(ctx, "postgres pool ready", slog.Int("max_open_conns", maxOpenConns))

	return db, nil
}
