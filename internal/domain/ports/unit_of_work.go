package ports

import "context"

// UnitOfWork executa fn numa transação; o ctx recebido por fn carrega a transação
// e deve ser repassado aos repositórios. Erro de fn desfaz tudo.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
