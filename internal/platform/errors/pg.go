package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that change how an error is classified
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgRightTruncation      = "22001"
	pgInvalidText          = "22P02"
	pgSerializationFailure = "40001"
	pgDeadlock             = "40P01"
	pgLockNotAvailable     = "55P03"
	pgReadOnlyTx           = "25006"
	pgCannotConnectNow     = "57P03"
	pgQueryCanceled        = "57014"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pg *pgconn.PgError
	ok := stderrs.As(err, &pg)
	return pg, ok
}

// FromPostgres wraps a pgx error with a code from its SQLSTATE; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if pg, ok := pgError(err); ok {
		switch pg.Code {
		case pgUniqueViolation:
			code = ErrorCodeDuplicateKey
		case pgForeignKeyViolation, pgRightTruncation, pgInvalidText:
			code = ErrorCodeInvalidArgument
		case pgNotNullViolation, pgCheckViolation:
			code = ErrorCodeValidation
		case pgReadOnlyTx, pgCannotConnectNow:
			code = ErrorCodeUnavailable
		case pgQueryCanceled:
			code = ErrorCodeTimeout
		}
		if pg.ColumnName != "" {
			return WithField(Wrap(err, code, msg), pg.ColumnName)
		}
	}
	return Wrap(err, code, msg)
}

// Retryable reports contention a second attempt can win: serialization failures, deadlocks,
// lock timeouts and the text pgx reports when a commit rolls back. Local cancellation never is
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pg, ok := pgError(err); ok {
		switch pg.Code {
		case pgSerializationFailure, pgDeadlock, pgLockNotAvailable:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	for _, frag := range []string{
		"commit unexpectedly resulted in rollback",
		"deadlock detected",
		"could not serialize access",
		"could not obtain lock on row",
	} {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
