package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotConnected is returned by every write when the server runs without
// a database connection. Reads soft-fail to empty results instead.
var ErrNotConnected = errors.New("database not connected")

// Connectivity reports whether the server holds a live database
// connection. Write handlers probe it before anything else, so degraded
// mode answers with the connectivity error rather than an auth error
// (the session lookup also fails when the database is down).
type Connectivity interface {
	Connected() bool
}

// PostgreSQL SQLSTATEs for constraint errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. The database's UNIQUE constraints are the authority for
// duplicate detection; application-level pre-checks are advisory only.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation, e.g. an interaction referencing a post that was deleted in
// the meantime.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
