package db

import (
	"errors"

	"backend-gigboard/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate applies pending schema migrations from cfg.MigrationsDir.
// A database already at the latest version is not an error.
func Migrate(cfg config.Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsDir, cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
