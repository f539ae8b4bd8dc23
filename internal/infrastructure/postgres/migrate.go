package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/config"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica las migraciones SQL embebidas con golang-migrate (driver pgx5).
type Migrator struct {
	m   *migrate.Migrate
	log *logger.Logger
}

// NewMigrator abre el origen embebido y la conexión de migración.
func NewMigrator(cfg config.DBConfig, log *logger.Logger) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("origen de migraciones: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.MigrationURL())
	if err != nil {
		return nil, fmt.Errorf("inicializar migraciones: %w", err)
	}
	return &Migrator{m: m, log: log.Component("migrate")}, nil
}

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	mg.logVersion("migraciones aplicadas")
	return nil
}

// Down revierte la última migración aplicada.
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revertir migración: %w", err)
	}
	mg.logVersion("migración revertida")
	return nil
}

// Version devuelve la versión actual y si quedó en estado dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close libera origen y conexión.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.Version()
	if err != nil {
		mg.log.Warn().Err(err).Msg("no se pudo leer la versión de migración")
		return
	}
	mg.log.Info().Uint("version", version).Bool("dirty", dirty).Msg(msg)
}

// Migrate aplica las migraciones pendientes y cierra el migrador.
func Migrate(cfg config.DBConfig, log *logger.Logger) error {
	mg, err := NewMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = mg.Close() }()
	return mg.Up()
}
