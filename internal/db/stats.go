package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stats es el resumen del servidor que expone /db/stats.
type Stats struct {
	Backend Backend `json:"backend"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime"` // segundos
}

// MongoStats corre serverStatus contra la base admin.
func MongoStats(ctx context.Context, client *mongo.Client) (Stats, error) {
	var status struct {
		Version string  `bson:"version"`
		Uptime  float64 `bson:"uptime"`
	}
	err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "serverStatus", Value: 1}}).Decode(&status)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Backend: BackendMongo, Version: status.Version, Uptime: status.Uptime}, nil
}

// PostgresStats lee versión y uptime del postmaster.
func PostgresStats(ctx context.Context, database DBTX) (Stats, error) {
	const query = `
		SELECT current_setting('server_version'),
		       EXTRACT(EPOCH FROM now() - pg_postmaster_start_time())::float8;
	`

	stats := Stats{Backend: BackendPostgres}
	if err := database.QueryRow(ctx, query).Scan(&stats.Version, &stats.Uptime); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
