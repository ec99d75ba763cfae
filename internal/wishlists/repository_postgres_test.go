package wishlists

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Development-Team-8/wishlists/internal/db/dbtest"
	"github.com/Development-Team-8/wishlists/internal/items"
)

const wishlistID = "0f8fad5b-d9cb-469f-a165-70867728950e"

func TestPostgresRepository_Insert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		database.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			id := args[0].(uuid.UUID)
			return &dbtest.FakeRow{Values: []any{id.String(), args[1].([]byte)}}
		}

		created, err := repository.Insert(context.Background(), Wishlist{Name: "gifts", CustomerID: "c1"})

		require.NoError(t, err)
		require.Contains(t, dbtest.NormalizeSQL(database.LastQuery), "INSERT INTO wishlists (id, document)")
		_, parseErr := uuid.Parse(created.ID)
		require.NoError(t, parseErr)
		require.Equal(t, "gifts", created.Name)
		require.NotNil(t, created.Items)

		document := string(database.LastArgs[1].([]byte))
		require.Contains(t, document, `"items":[]`)
		require.Contains(t, document, `"customer_id":"c1"`)
	})

	t.Run("database error", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		dbErr := errors.New("db down")
		database.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &dbtest.FakeRow{Err: dbErr}
		}

		_, err := repository.Insert(context.Background(), Wishlist{Name: "gifts", CustomerID: "c1"})

		require.True(t, err == dbErr, "expected same error instance")
	})
}

func TestPostgresRepository_GetByID(t *testing.T) {
	t.Run("success uses the id column", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		database.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &dbtest.FakeRow{Values: []any{wishlistID, []byte(`{"_id":"stale","name":"gifts","customer_id":"c1","isPublic":true,"items":null}`)}}
		}

		wishlist, err := repository.GetByID(context.Background(), wishlistID)

		require.NoError(t, err)
		require.Equal(t, Wishlist{ID: wishlistID, Name: "gifts", CustomerID: "c1", IsPublic: true, Items: []items.Item{}}, wishlist)
		require.Equal(t, []any{uuid.MustParse(wishlistID)}, database.LastArgs)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		_, err := repository.GetByID(context.Background(), "not-a-uuid")

		require.ErrorIs(t, err, ErrorWishlistNotFound)
		require.False(t, database.QueryRowCalled)
	})

	t.Run("missing row", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		database.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &dbtest.FakeRow{Err: pgx.ErrNoRows}
		}

		_, err := repository.GetByID(context.Background(), wishlistID)

		require.ErrorIs(t, err, ErrorWishlistNotFound)
	})

	t.Run("corrupt document", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		database.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &dbtest.FakeRow{Values: []any{wishlistID, []byte(`[]`)}}
		}

		_, err := repository.GetByID(context.Background(), wishlistID)

		require.ErrorContains(t, err, "decode wishlist document")
	})
}

func TestPostgresRepository_List(t *testing.T) {
	document := []byte(`{"name":"gifts","customer_id":"c1","isPublic":false,"items":[]}`)

	tests := []struct {
		name      string
		filter    ListFilter
		wantWhere string
		wantArgs  []any
	}{
		{name: "all", filter: ListFilter{}, wantArgs: []any{}},
		{name: "by customer", filter: ListFilter{CustomerID: "c1"}, wantWhere: "WHERE document->>'customer_id' = $1", wantArgs: []any{"c1"}},
		{name: "by name", filter: ListFilter{Name: "gifts"}, wantWhere: "WHERE document->>'name' = $1", wantArgs: []any{"gifts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := &dbtest.FakeDB{}
			repository := NewPostgresRepository(database)

			rows := &dbtest.FakeRows{Rows: [][]any{{wishlistID, document}}}
			database.QueryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
				return rows, nil
			}

			wishlists, err := repository.List(context.Background(), tt.filter)

			require.NoError(t, err)
			require.Len(t, wishlists, 1)
			require.Equal(t, wishlistID, wishlists[0].ID)
			query := dbtest.NormalizeSQL(database.LastQuery)
			if tt.wantWhere == "" {
				require.NotContains(t, query, "WHERE")
			} else {
				require.Contains(t, query, tt.wantWhere)
			}
			require.Contains(t, query, "ORDER BY created_at, id")
			require.Equal(t, tt.wantArgs, database.LastArgs)
			require.True(t, rows.Closed())
		})
	}

	t.Run("query error", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		queryErr := errors.New("query failed")
		database.QueryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, queryErr
		}

		wishlists, err := repository.List(context.Background(), ListFilter{})

		require.ErrorIs(t, err, queryErr)
		require.Nil(t, wishlists)
	})

	t.Run("scan error", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		scanErr := errors.New("scan")
		database.QueryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &dbtest.FakeRows{Rows: [][]any{{wishlistID, document}}, ScanErr: scanErr}, nil
		}

		_, err := repository.List(context.Background(), ListFilter{})

		require.ErrorIs(t, err, scanErr)
	})
}

func TestPostgresRepository_Replace(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		database.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &dbtest.FakeRow{Values: []any{wishlistID, args[1].([]byte)}}
		}

		updated, err := repository.Replace(context.Background(), Wishlist{ID: wishlistID, Name: "foo 3", CustomerID: "c1"})

		require.NoError(t, err)
		require.Equal(t, "foo 3", updated.Name)
		require.Contains(t, dbtest.NormalizeSQL(database.LastQuery), "UPDATE wishlists SET document = $2 WHERE id = $1")
		require.Equal(t, uuid.MustParse(wishlistID), database.LastArgs[0])
	})

	t.Run("missing row", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		database.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
			return &dbtest.FakeRow{Err: pgx.ErrNoRows}
		}

		_, err := repository.Replace(context.Background(), Wishlist{ID: wishlistID})

		require.ErrorIs(t, err, ErrorWishlistNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		_, err := repository.Replace(context.Background(), Wishlist{ID: "w1"})

		require.ErrorIs(t, err, ErrorWishlistNotFound)
		require.False(t, database.QueryRowCalled)
	})
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		database.ExecFn = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return dbtest.Tag("DELETE 0"), nil
		}

		require.NoError(t, repository.Delete(context.Background(), wishlistID))
		require.Equal(t, []any{uuid.MustParse(wishlistID)}, database.LastArgs)
	})

	t.Run("malformed id is a no-op", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		require.NoError(t, repository.Delete(context.Background(), "nope"))
		require.False(t, database.ExecCalled)
	})

	t.Run("error is returned", func(t *testing.T) {
		database := &dbtest.FakeDB{}
		repository := NewPostgresRepository(database)

		dbErr := errors.New("db failed")
		database.ExecFn = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, dbErr
		}

		require.ErrorIs(t, repository.Delete(context.Background(), wishlistID), dbErr)
	})
}
