package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// SchemaStatus describes the development schema after ApplySchema.
type SchemaStatus struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Schema applies the bundled quiz schema (responses, personality_types,
// reviews) for local development. Hosted deployments own their schema and
// never run it.
type Schema struct {
	m *migrate.Migrate
}

func OpenSchema(dsn, migrationsPath string) (*Schema, error) {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening schema migrations: %w", err)
	}
	return &Schema{m: m}, nil
}

// Up applies pending migrations. A schema that is already current is not an
// error; Changed reports whether anything ran.
func (s *Schema) Up() (SchemaStatus, error) {
	changed := true
	if err := s.m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return SchemaStatus{}, fmt.Errorf("applying schema: %w", err)
		}
		changed = false
	}
	return s.status(changed)
}

func (s *Schema) status(changed bool) (SchemaStatus, error) {
	version, dirty, err := s.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return SchemaStatus{}, fmt.Errorf("reading schema version: %w", err)
	}
	return SchemaStatus{Version: version, Dirty: dirty, Changed: changed}, nil
}

func (s *Schema) Close() error {
	srcErr, dbErr := s.m.Close()
	return errors.Join(srcErr, dbErr)
}

// ApplySchema opens the migrations at migrationsPath, applies them and closes.
func ApplySchema(dsn, migrationsPath string) (SchemaStatus, error) {
	schema, err := OpenSchema(dsn, migrationsPath)
	if err != nil {
		return SchemaStatus{}, err
	}
	status, err := schema.Up()
	if closeErr := schema.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing schema migrations: %w", closeErr)
	}
	return status, err
}
