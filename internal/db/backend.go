package db

import (
	"fmt"
	"strings"
)

// Backend identifica el motor de documentos detrás de DATABASE_URI.
type Backend string

const (
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
)

// BackendFor elige el backend según el esquema de la URI.
func BackendFor(uri string) (Backend, error) {
	scheme, _, found := strings.Cut(strings.TrimSpace(uri), "://")
	if !found {
		return "", fmt.Errorf("database uri without scheme")
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}
