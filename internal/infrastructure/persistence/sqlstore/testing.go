package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/ladino-web/internal/infrastructure/config"
	"github.com/rafabene/ladino-web/internal/infrastructure/logging"
)

// OpenInMemory abre um sqlite em memória isolado, já migrado. Usado pelos testes.
func OpenInMemory(ctx context.Context) (*gorm.DB, error) {
	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}

	db, err := NewDatabaseConnection(cfg, "error", logging.NewNopLogger())
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, db, cfg.Driver); err != nil {
		return nil, err
	}
	return db, nil
}
