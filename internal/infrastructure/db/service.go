package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
	"github.com/webcash/walletd/internal/core/domain"
	"github.com/webcash/walletd/internal/core/ports"
	sqlitedb "github.com/webcash/walletd/internal/infrastructure/db/sqlite"
)

//go:embed sqlite/migration/*.sql
var migrations embed.FS

type service struct {
	termsStore  domain.TermsRepository
	secretStore domain.SecretRepository
	outputStore domain.OutputRepository
	hdStore     domain.HDRepository

	close func()
}

// NewService opens the wallet database, applies schema migrations
// idempotently and wires the repositories behind a single manager.
func NewService(dbPath string) (ports.RepoManager, error) {
	db, err := sqlitedb.OpenDb(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet database: %w", err)
	}

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	source, err := iofs.New(migrations, "sqlite/migration")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &service{
		termsStore:  sqlitedb.NewTermsRepository(db),
		secretStore: sqlitedb.NewSecretRepository(db),
		outputStore: sqlitedb.NewOutputRepository(db),
		hdStore:     sqlitedb.NewHDRepository(db),
		close: func() {
			// An error here may indicate data loss worth surfacing.
			if err := db.Close(); err != nil {
				log.WithError(err).Warn("failed to close wallet database")
			}
		},
	}, nil
}

func (s *service) Terms() domain.TermsRepository {
	return s.termsStore
}

func (s *service) Secrets() domain.SecretRepository {
	return s.secretStore
}

func (s *service) Outputs() domain.OutputRepository {
	return s.outputStore
}

func (s *service) HD() domain.HDRepository {
	return s.hdStore
}

func (s *service) Close() {
	s.termsStore.Close()
	s.secretStore.Close()
	s.outputStore.Close()
	s.hdStore.Close()
	s.close()
}
