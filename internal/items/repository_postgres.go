package items

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Development-Team-8/wishlists/internal/db"
)

// PostgresRepository guarda items como documentos JSONB.
// Contiene SQL y mapeo DB → modelo.
type PostgresRepository struct {
	database db.DBTX
}

// NewPostgresRepository crea un repositorio de items sobre Postgres.
func NewPostgresRepository(database db.DBTX) *PostgresRepository {
	return &PostgresRepository{database: database}
}

// Insert crea el item y devuelve el documento persistido.
func (repository *PostgresRepository) Insert(ctx context.Context, item Item) (Item, error) {
	const query = `
		INSERT INTO items (item_id, document)
		VALUES ($1, $2)
		RETURNING document;
	`

	document, err := json.Marshal(item)
	if err != nil {
		return Item{}, err
	}

	var stored []byte
	err = repository.database.QueryRow(ctx, query, item.ItemID, document).Scan(&stored)
	if err != nil {
		// Postgres: unique_violation = 23505
		var postgresError *pgconn.PgError
		if errors.As(err, &postgresError) && postgresError.Code == "23505" {
			return Item{}, ErrorDuplicateID
		}
		return Item{}, err
	}

	return decodeItem(stored)
}

// GetByID busca un item por su clave.
func (repository *PostgresRepository) GetByID(ctx context.Context, id int64) (Item, error) {
	const query = `SELECT document FROM items WHERE item_id = $1;`

	var stored []byte
	if err := repository.database.QueryRow(ctx, query, id).Scan(&stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}

	return decodeItem(stored)
}

// List devuelve todos los items ordenados por item_id.
func (repository *PostgresRepository) List(ctx context.Context) ([]Item, error) {
	const query = `SELECT document FROM items ORDER BY item_id;`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var stored []byte
		if err := rows.Scan(&stored); err != nil {
			return nil, err
		}
		item, err := decodeItem(stored)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Delete borra sin importar si la fila existía.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM items WHERE item_id = $1;`

	_, err := repository.database.Exec(ctx, query, id)
	return err
}

func decodeItem(document []byte) (Item, error) {
	var item Item
	if err := json.Unmarshal(document, &item); err != nil {
		return Item{}, fmt.Errorf("decode item document: %w", err)
	}
	return item, nil
}
