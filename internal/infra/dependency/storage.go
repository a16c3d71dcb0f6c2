package dependency

import (
	"fmt"
	"log/slog"

	"github.com/finance-tracker/companion/config"
	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/infra/cache"
	"github.com/finance-tracker/companion/internal/infra/db"
	"github.com/finance-tracker/companion/internal/integration/persistence"
	"github.com/finance-tracker/companion/internal/integration/persistence/model"
)

// SessionStorage is the durable key-value storage behind the session store.
type SessionStorage struct {
	Driver      string
	Store       adapter.KeyValueStore
	HealthCheck func() bool
	close       func() error
}

// Close releases the underlying connection.
func (s *SessionStorage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenSessionStorage connects the storage selected by cfg.Session.Driver.
func OpenSessionStorage(cfg *config.Config) (*SessionStorage, error) {
	switch cfg.Session.Driver {
	case config.SessionDriverSQLite:
		database, err := db.NewSQLiteConnection(cfg.Session.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlStorage(cfg.Session.Driver, database)

	case config.SessionDriverPostgres:
		database, err := db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return sqlStorage(cfg.Session.Driver, database)

	case config.SessionDriverRedis:
		client, err := cache.NewRedisConnection(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &SessionStorage{
			Driver:      cfg.Session.Driver,
			Store:       persistence.NewRedisStore(client.Client(), cfg.Redis.KeyPrefix),
			HealthCheck: client.HealthCheck,
			close:       client.Close,
		}, nil

	case config.SessionDriverMemory:
		slog.Warn("Session storage is in memory, logins will not survive a restart")
		return &SessionStorage{
			Driver:      cfg.Session.Driver,
			Store:       persistence.NewMemoryStore(),
			HealthCheck: func() bool { return true },
		}, nil
	}

	return nil, fmt.Errorf("unknown session store driver %q", cfg.Session.Driver)
}

func sqlStorage(driver string, database *db.Database) (*SessionStorage, error) {
	if err := database.AutoMigrate(&model.SessionEntryModel{}); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to migrate session storage: %w", err)
	}
	slog.Info("Session storage migrations completed", "driver", driver)

	return &SessionStorage{
		Driver:      driver,
		Store:       persistence.NewSessionEntryRepository(database.DB()),
		HealthCheck: database.HealthCheck,
		close:       database.Close,
	}, nil
}
