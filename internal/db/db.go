package db

import (
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Open connects to the local analytics database. Domain rows live in the
// remote row store; this connection only backs visit tracking and metrics.
func Open(dsn string) (*sqlx.DB, error) {
	database, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	database.SetMaxOpenConns(10)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(30 * time.Minute)
	if err := database.Ping(); err != nil {
		return nil, err
	}
	return database, nil
}
