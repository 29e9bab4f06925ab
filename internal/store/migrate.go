package store

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/voidshard/citylots/internal/store/migrations"
)

// Migrate runs the embedded goose migrations against `dsn`.
func Migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return errors.Wrap(err, "opening sql connection for migrations")
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errors.Wrap(err, "running migrations")
	}
	return nil
}
