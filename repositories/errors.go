package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// Postgres SQLSTATE codes
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// IsNotFound reports whether err means the requested row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsForeignKeyViolation reports whether err was raised by a referential constraint
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return isSQLiteConstraint(sqliteErr, sqlitelib.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY")
	}
	return false
}

// IsUniqueViolation reports whether err was raised by a unique index
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return isSQLiteConstraint(sqliteErr, sqlitelib.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE")
	}
	return false
}

// SQLite reports the extended code only when extended result codes are on,
// otherwise the primary code plus the message tells us which constraint failed.
func isSQLiteConstraint(err *sqlite.Error, extended int, marker string) bool {
	code := err.Code()
	if code == extended {
		return true
	}
	return code&0xff == sqlitelib.SQLITE_CONSTRAINT && strings.Contains(err.Error(), marker)
}
