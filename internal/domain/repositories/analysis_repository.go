package repositories

import (
	"context"

	"github.com/rafabene/ladino-web/internal/domain/entities"
)

// AnalysisRepository define a interface para persistência de análises
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *entities.Analysis) error
	FindByID(ctx context.Context, id int64) (*entities.Analysis, error)
	Update(ctx context.Context, analysis *entities.Analysis) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, filters AnalysisFilters) ([]*entities.Analysis, error)
	Count(ctx context.Context, filters AnalysisFilters) (int64, error)
	ListAssetCounts(ctx context.Context) ([]AssetCount, error)
}

// AnalysisFilters contém filtros para listagem de análises ativas
type AnalysisFilters struct {
	OwnerID  *int64
	Asset    string
	Page     int // Página (começa em 1)
	PageSize int // Itens por página; 0 lista tudo
}

// AssetCount é a quantidade de análises ativas de um ativo
type AssetCount struct {
	Asset string
	Count int64
}
