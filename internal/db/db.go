package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX es el subconjunto de pgxpool.Pool que usan los repositorios.
// Permite testear SQL con fakes sin levantar Postgres.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type poolPinger interface {
	Ping(ctx context.Context) error
	Close()
}

var (
	newPool  = pgxpool.New
	pingPool = func(ctx context.Context, pool poolPinger) error {
		return pool.Ping(ctx)
	}
	closePool = func(pool poolPinger) {
		pool.Close()
	}
)

// NewPool crea un pool de conexiones a PostgreSQL.
// Se usa un timeout corto para evitar que el arranque quede colgado si la DB no responde.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := newPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	// Validación temprana: asegura que la app no arranca "a medias".
	if err := pingPool(ctx, pool); err != nil {
		closePool(pool)
		return nil, err
	}

	return pool, nil
}

// schema crea las tablas documento si no existen.
// Cada fila guarda el documento completo en JSONB; solo la clave vive en columna.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		item_id  BIGINT PRIMARY KEY,
		document JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wishlists (
		id         UUID PRIMARY KEY,
		document   JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_wishlists_customer_id ON wishlists ((document->>'customer_id'))`,
	`CREATE INDEX IF NOT EXISTS ix_wishlists_name ON wishlists ((document->>'name'))`,
}

// EnsureSchema deja listas las tablas del backend Postgres.
func EnsureSchema(ctx context.Context, database DBTX) error {
	for _, statement := range schema {
		if _, err := database.Exec(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}
