package repository

import (
	"errors"
	"log/slog"

	"store-fulfillment/internal/infra"
	"store-fulfillment/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// translate maps a pgx error onto a repository error kind. A missing row wraps notFound so
// callers can match the domain sentinel.
func translate(msg string, err error, notFound error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, msg, notFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(slog.Default(), infra.KindDuplicateKey, msg, err)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(slog.Default(), infra.KindForeignKeyViolated, msg, err)
		}
	}
	return infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, msg, err)
}

// casResult turns the affected row count of a versioned update into a conflict error.
func casResult(tag pgconn.CommandTag, err error, msg string) error {
	if err != nil {
		return translate(msg, err, nil)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(slog.Default(), infra.KindConflict, msg+": stale version", nil)
	}
	return nil
}
