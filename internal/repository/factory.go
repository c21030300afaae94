package repository

import (
	"context"
	"fmt"

	"github.com/film-afisha/backend/internal/database"
)

// Storage driver names accepted by NewStore.
const (
	DriverMongoDB = "mongodb"
	DriverMySQL   = "mysql"
)

// StoreConfig carries everything NewStore needs to open the configured
// backend.  The driver is chosen once at process start; business logic
// never branches on it.
type StoreConfig struct {
	Driver string // DriverMongoDB or DriverMySQL

	// MongoDB settings (Driver == DriverMongoDB).
	MongoURI string
	MongoDB  string

	// MySQL settings (Driver == DriverMySQL).
	MySQLUser string
	MySQLPass string
	MySQLHost string
	MySQLPort string
	MySQLName string
}

// NewStore opens the backend named by cfg.Driver and returns the adapter
// together with a close function for shutdown.  An unknown driver is a
// configuration error.
func NewStore(cfg StoreConfig) (FilmRepository, func(), error) {
	switch cfg.Driver {
	case DriverMongoDB:
		client, err := database.OpenMongo(cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongodb: %w", err)
		}
		closer := func() { _ = client.Disconnect(context.Background()) }
		return NewMongoFilmRepo(client.Database(cfg.MongoDB)), closer, nil
	case DriverMySQL:
		db, err := database.OpenMySQL(cfg.MySQLUser, cfg.MySQLPass, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLName)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		closer := func() { _ = db.Close() }
		return NewMySQLFilmRepo(db), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
