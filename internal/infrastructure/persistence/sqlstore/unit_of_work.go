package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafabene/ladino-web/internal/domain/ports"
)

type txContextKey struct{}

// UnitOfWork guarda a transação do gorm no contexto para os repositórios deste pacote
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) ports.UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithTransaction abre uma transação, ou participa da que já está em ctx.
// gorm faz rollback quando fn devolve erro ou entra em pânico.
func (uow *UnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	return uow.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}

// dbFrom devolve a transação de ctx ou db ligado a ctx
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return db.WithContext(ctx)
}
