package application

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/sirupsen/logrus"
)

var ErrNoDatabase = errors.New("migrations: no database pool configured")

type schema struct {
	name string
	fsys fs.FS
}

type migrationManager struct {
	pool    *pgxpool.Pool
	log     logrus.FieldLogger
	schemas []schema
}

func NewMigrationManager(pool *pgxpool.Pool, log *logrus.Logger) MigrationManager {
	m := &migrationManager{pool: pool}
	if log != nil {
		m.log = log.WithField("component", "migrations")
	}
	return m
}

// RegisterSchema adds a goose migration directory. Each schema keeps its own
// version table, so modules number their migrations independently.
func (m *migrationManager) RegisterSchema(name string, fsys fs.FS) {
	m.schemas = append(m.schemas, schema{name: name, fsys: fsys})
}

func (m *migrationManager) Schemas() []string {
	names := make([]string, len(m.schemas))
	for i, s := range m.schemas {
		names[i] = s.name
	}
	return names
}

func (m *migrationManager) Run(ctx context.Context) error {
	if len(m.schemas) == 0 {
		return nil
	}
	if m.pool == nil {
		return ErrNoDatabase
	}
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	for _, s := range m.schemas {
		store, err := database.NewStore(database.DialectPostgres, s.name+"_goose_version")
		if err != nil {
			return fmt.Errorf("migrations %s: %w", s.name, err)
		}
		provider, err := goose.NewProvider("", db, s.fsys, goose.WithStore(store))
		if err != nil {
			return fmt.Errorf("migrations %s: %w", s.name, err)
		}
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrations %s: %w", s.name, err)
		}
		if m.log != nil {
			m.log.WithFields(logrus.Fields{"schema": s.name, "applied": len(results)}).Info("migrations applied")
		}
	}
	return nil
}
