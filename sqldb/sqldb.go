// Package sqldb implements the core storage interfaces on an SQL database.
// Statements are prepared once when a store is created. They are written
// with ? placeholders and rebound for postgres at prepare time.
package sqldb

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Driver is the database/sql driver name the stores build their SQL for.
// Main must set it before constructing any store.
var Driver = "sqlite3"

func postgres() bool {
	return Driver == "pgx" || Driver == "postgres"
}

// rebind replaces ? placeholders with $1..$n for postgres.
func rebind(query string) string {
	if !postgres() {
		return query
	}
	var b strings.Builder
	var n = 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// serial returns the dialect's auto-incrementing primary key column type.
func serial() string {
	if postgres() {
		return "SERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY"
}

// stmtBuilder returns a squirrel builder with the dialect's placeholders,
// for the listing queries which are assembled at runtime.
func stmtBuilder() sq.StatementBuilderType {
	if postgres() {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func mustPrepare(db *sql.DB, query string) *sql.Stmt {
	stmt, err := db.Prepare(rebind(query))
	if err != nil {
		panic(fmt.Sprintf("error preparing %s: %v", query, err))
	}
	return stmt
}
