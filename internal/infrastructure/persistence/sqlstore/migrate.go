package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations
var migrations embed.FS

// goose guarda dialeto e FS em variáveis globais
var gooseMu sync.Mutex

func gooseDialect(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func prepareGoose(driver string) (fs.FS, error) {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}

	sub, err := fs.Sub(migrations, "migrations/"+driver)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(sub)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return nil, err
	}
	return sub, nil
}

// Migrate aplica as migrations pendentes do driver informado
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := prepareGoose(driver); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrationVersion devolve a versão atual do schema
func MigrationVersion(ctx context.Context, db *gorm.DB, driver string) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := prepareGoose(driver); err != nil {
		return 0, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	return goose.GetDBVersionContext(ctx, sqlDB)
}
