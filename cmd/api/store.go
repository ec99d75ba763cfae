package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Development-Team-8/wishlists/internal/db"
	"github.com/Development-Team-8/wishlists/internal/items"
	"github.com/Development-Team-8/wishlists/internal/wishlists"
)

// appStore es el handle de datos del proceso: se abre una vez y se pasa explícito.
type appStore interface {
	Items() items.RepositoryAPI
	Wishlists() wishlists.RepositoryAPI
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (db.Stats, error)
	Close(ctx context.Context) error
}

// openStore elige Mongo o Postgres según el esquema de DATABASE_URI.
func openStore(ctx context.Context, uri string) (appStore, error) {
	backend, err := db.BackendFor(uri)
	if err != nil {
		return nil, err
	}

	switch backend {
	case db.BackendPostgres:
		return openPostgresStore(ctx, uri)
	default:
		return openMongoStore(ctx, uri)
	}
}

type mongoStore struct {
	client    *mongo.Client
	items     *items.MongoRepository
	wishlists *wishlists.MongoRepository
}

func openMongoStore(ctx context.Context, uri string) (*mongoStore, error) {
	name, err := db.MongoDatabaseName(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongodb uri: %w", err)
	}

	client, err := db.NewMongoClient(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	database := client.Database(name)

	indexCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.EnsureMongoIndexes(indexCtx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure mongodb indexes: %w", err)
	}

	return &mongoStore{
		client:    client,
		items:     items.NewMongoRepository(database.Collection(db.ItemsCollection)),
		wishlists: wishlists.NewMongoRepository(database.Collection(db.WishlistsCollection)),
	}, nil
}

func (store *mongoStore) Items() items.RepositoryAPI         { return store.items }
func (store *mongoStore) Wishlists() wishlists.RepositoryAPI { return store.wishlists }

func (store *mongoStore) Ping(ctx context.Context) error {
	return store.client.Ping(ctx, readpref.Primary())
}

func (store *mongoStore) Stats(ctx context.Context) (db.Stats, error) {
	return db.MongoStats(ctx, store.client)
}

func (store *mongoStore) Close(ctx context.Context) error {
	return store.client.Disconnect(ctx)
}

type postgresStore struct {
	pool      *pgxpool.Pool
	items     *items.PostgresRepository
	wishlists *wishlists.PostgresRepository
}

func openPostgresStore(ctx context.Context, uri string) (*postgresStore, error) {
	pool, err := db.NewPool(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	schemaCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.EnsureSchema(schemaCtx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure postgres schema: %w", err)
	}

	return &postgresStore{
		pool:      pool,
		items:     items.NewPostgresRepository(pool),
		wishlists: wishlists.NewPostgresRepository(pool),
	}, nil
}

func (store *postgresStore) Items() items.RepositoryAPI         { return store.items }
func (store *postgresStore) Wishlists() wishlists.RepositoryAPI { return store.wishlists }

func (store *postgresStore) Ping(ctx context.Context) error {
	return store.pool.Ping(ctx)
}

func (store *postgresStore) Stats(ctx context.Context) (db.Stats, error) {
	return db.PostgresStats(ctx, store.pool)
}

func (store *postgresStore) Close(ctx context.Context) error {
	store.pool.Close()
	return nil
}
