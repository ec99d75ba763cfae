package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase se usa cuando la URI no trae path.
const DefaultMongoDatabase = "wishlists"

// Nombres de colecciones.
const (
	ItemsCollection     = "items"
	WishlistsCollection = "wishlists"
)

type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

var (
	connectMongo = func(ctx context.Context, uri string) (*mongo.Client, error) {
		return mongo.Connect(ctx, options.Client().ApplyURI(uri))
	}
	pingMongo = func(ctx context.Context, client mongoPinger) error {
		return client.Ping(ctx, readpref.Primary())
	}
	disconnectMongo = func(ctx context.Context, client mongoPinger) error {
		return client.Disconnect(ctx)
	}
)

// NewMongoClient conecta y hace ping con el mismo timeout corto que el pool de Postgres.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := connectMongo(ctx, uri)
	if err != nil {
		return nil, err
	}

	if err := pingMongo(ctx, client); err != nil {
		_ = disconnectMongo(ctx, client)
		return nil, err
	}

	return client, nil
}

// MongoDatabaseName saca el nombre de la base del path de la URI.
func MongoDatabaseName(uri string) (string, error) {
	parsed, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", err
	}
	if parsed.Database == "" {
		return DefaultMongoDatabase, nil
	}
	return parsed.Database, nil
}

// EnsureMongoIndexes crea los índices de los filtros de listado.
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(WishlistsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}
