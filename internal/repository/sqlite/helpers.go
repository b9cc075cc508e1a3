package sqlite

import (
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// page clamps a requested limit/offset pair.
func page(limit, offset int) (uint64, uint64) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uint64(limit), uint64(offset)
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
