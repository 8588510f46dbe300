package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/qrave1/BerrowBooks/internal/domain"
)

const uniqueViolation = "23505"

// wrapErr переводит ошибки драйвера в доменные ErrNotFound / ErrDuplicate
func wrapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// checkAffected возвращает ErrNotFound, если запрос не затронул ни одной строки
func checkAffected(op string, res sql.Result) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}

	if aff == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	return nil
}
