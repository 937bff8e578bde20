package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	SQLStateUniqueViolation           = "23505"
	SQLStateForeignKeyViolation       = "23503"
	SQLStateInvalidTextRepresentation = "22P02"
)

// SQLState returns the Postgres error code carried by err, if any.
func SQLState(err error) string {
	if err == nil {
		return ""
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
// The message fallback covers SQLite, which the test suite runs on.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if SQLState(err) == SQLStateUniqueViolation {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if SQLState(err) == SQLStateForeignKeyViolation {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// IsInvalidTextRepresentation reports whether Postgres rejected a value's textual form.
func IsInvalidTextRepresentation(err error) bool {
	return SQLState(err) == SQLStateInvalidTextRepresentation
}
