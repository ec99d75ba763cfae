package wishlists

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Development-Team-8/wishlists/internal/db"
)

// PostgresRepository guarda wishlists como documentos JSONB con id UUID.
type PostgresRepository struct {
	database db.DBTX
}

// NewPostgresRepository crea un repositorio de wishlists sobre Postgres.
func NewPostgresRepository(database db.DBTX) *PostgresRepository {
	return &PostgresRepository{database: database}
}

// Insert genera el UUID y persiste la wishlist.
func (repository *PostgresRepository) Insert(ctx context.Context, wishlist Wishlist) (Wishlist, error) {
	const query = `
		INSERT INTO wishlists (id, document)
		VALUES ($1, $2)
		RETURNING id::text, document;
	`

	id := uuid.New()
	wishlist = wishlist.normalized()
	wishlist.ID = id.String()

	document, err := json.Marshal(wishlist)
	if err != nil {
		return Wishlist{}, err
	}

	return scanWishlist(repository.database.QueryRow(ctx, query, id, document))
}

// GetByID busca por id. Un UUID inválido es "no existe".
func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (Wishlist, error) {
	const query = `SELECT id::text, document FROM wishlists WHERE id = $1;`

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Wishlist{}, ErrorWishlistNotFound
	}

	wishlist, err := scanWishlist(repository.database.QueryRow(ctx, query, parsed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wishlist{}, ErrorWishlistNotFound
		}
		return Wishlist{}, err
	}
	return wishlist, nil
}

// List aplica a lo sumo un filtro de igualdad, en orden de creación.
func (repository *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Wishlist, error) {
	query := `SELECT id::text, document FROM wishlists`
	args := []any{}

	switch {
	case filter.CustomerID != "":
		query += ` WHERE document->>'customer_id' = $1`
		args = append(args, filter.CustomerID)
	case filter.Name != "":
		query += ` WHERE document->>'name' = $1`
		args = append(args, filter.Name)
	}
	query += ` ORDER BY created_at, id;`

	rows, err := repository.database.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wishlists := []Wishlist{}
	for rows.Next() {
		wishlist, err := scanWishlist(rows)
		if err != nil {
			return nil, err
		}
		wishlists = append(wishlists, wishlist)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return wishlists, nil
}

// Replace pisa el documento completo. Sin fila devuelve ErrorWishlistNotFound.
func (repository *PostgresRepository) Replace(ctx context.Context, wishlist Wishlist) (Wishlist, error) {
	const query = `
		UPDATE wishlists
		SET document = $2
		WHERE id = $1
		RETURNING id::text, document;
	`

	parsed, err := uuid.Parse(wishlist.ID)
	if err != nil {
		return Wishlist{}, ErrorWishlistNotFound
	}

	wishlist = wishlist.normalized()
	document, err := json.Marshal(wishlist)
	if err != nil {
		return Wishlist{}, err
	}

	updated, err := scanWishlist(repository.database.QueryRow(ctx, query, parsed, document))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wishlist{}, ErrorWishlistNotFound
		}
		return Wishlist{}, err
	}
	return updated, nil
}

// Delete borra sin importar si la fila existía.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM wishlists WHERE id = $1;`

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	_, err = repository.database.Exec(ctx, query, parsed)
	return err
}

// scanWishlist lee (id, document). La columna id manda sobre el _id del documento.
func scanWishlist(row pgx.Row) (Wishlist, error) {
	var (
		id       string
		document []byte
	)
	if err := row.Scan(&id, &document); err != nil {
		return Wishlist{}, err
	}

	var wishlist Wishlist
	if err := json.Unmarshal(document, &wishlist); err != nil {
		return Wishlist{}, fmt.Errorf("decode wishlist document: %w", err)
	}
	wishlist.ID = id
	return wishlist.normalized(), nil
}
