package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

const analysisSelect = "analise.*, usuario.nome AS usuario_nome"
const analysisJoin = "INNER JOIN usuario ON usuario.id = analise.id_usuario"

// AnalysisRepository implementa repositories.AnalysisRepository
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository cria um novo AnalysisRepository
func NewAnalysisRepository(db *gorm.DB) repositories.AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(ctx context.Context, analysis *entities.Analysis) error {
	model := r.toModel(analysis)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}

	analysis.ID = model.ID
	return nil
}

// FindByID busca a análise com o nome do dono, em qualquer situação
func (r *AnalysisRepository) FindByID(ctx context.Context, id int64) (*entities.Analysis, error) {
	var model AnalysisModel

	err := r.joined(ctx).Where("analise.id = ?", id).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// Update grava todos os campos editáveis; os blobs só mudam quando vierem preenchidos
func (r *AnalysisRepository) Update(ctx context.Context, analysis *entities.Analysis) error {
	model := r.toModel(analysis)

	fields := map[string]interface{}{
		"id_usuario":            model.OwnerID,
		"descricao":             model.Description,
		"data_inicio":           model.StartDate,
		"data_termino":          model.EndDate,
		"ativo":                 model.Asset,
		"deposito_inicial":      model.InitialDeposit,
		"ganho_total":           model.TotalGain,
		"negociacao_quantidade": model.TradeCount,
		"volume_maximo":         model.MaxVolume,
		"cod_situacao":          model.Status,
	}
	if model.CapitalImage != "" {
		fields["imagem_capital"] = model.CapitalImage
	}
	if model.ConfigData != "" {
		fields["dados_configuracao"] = model.ConfigData
	}
	if model.ReportHTML != "" {
		fields["dados_analise"] = model.ReportHTML
	}

	return r.getDB(ctx).Model(&AnalysisModel{}).
		Where("id = ?", analysis.ID).
		Updates(fields).Error
}

func (r *AnalysisRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.getDB(ctx).Model(&AnalysisModel{}).
		Where("id = ?", id).
		Update("cod_situacao", int(entities.StatusInactive)).Error
}

// List devolve as análises ativas em ordem de id, opcionalmente paginadas
func (r *AnalysisRepository) List(ctx context.Context, filters repositories.AnalysisFilters) ([]*entities.Analysis, error) {
	var models []*AnalysisModel

	query := r.applyFilters(r.joined(ctx), filters).Order("analise.id ASC")

	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filters.PageSize).Offset((page - 1) * filters.PageSize)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	analyses := make([]*entities.Analysis, 0, len(models))
	for _, model := range models {
		analyses = append(analyses, r.toEntity(model))
	}
	return analyses, nil
}

func (r *AnalysisRepository) Count(ctx context.Context, filters repositories.AnalysisFilters) (int64, error) {
	var count int64

	query := r.applyFilters(r.getDB(ctx).Model(&AnalysisModel{}).Joins(analysisJoin), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAssetCounts agrupa as análises ativas por ativo, do menos para o mais frequente
func (r *AnalysisRepository) ListAssetCounts(ctx context.Context) ([]repositories.AssetCount, error) {
	var rows []struct {
		Asset string `gorm:"column:ativo"`
		Total int64  `gorm:"column:total"`
	}

	err := r.getDB(ctx).Model(&AnalysisModel{}).
		Select("ativo, COUNT(id) AS total").
		Where("cod_situacao = ?", int(entities.StatusActive)).
		Group("ativo").
		Order("COUNT(id) ASC, ativo ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]repositories.AssetCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, repositories.AssetCount{Asset: row.Asset, Count: row.Total})
	}
	return counts, nil
}

func (r *AnalysisRepository) joined(ctx context.Context) *gorm.DB {
	return r.getDB(ctx).Model(&AnalysisModel{}).Select(analysisSelect).Joins(analysisJoin)
}

func (r *AnalysisRepository) applyFilters(query *gorm.DB, filters repositories.AnalysisFilters) *gorm.DB {
	query = query.Where("analise.cod_situacao = ?", int(entities.StatusActive))

	if filters.OwnerID != nil {
		query = query.Where("analise.id_usuario = ?", *filters.OwnerID)
	}
	if filters.Asset != "" {
		query = query.Where("analise.ativo = ?", filters.Asset)
	}
	return query
}

func (r *AnalysisRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}

// Conversores
func (r *AnalysisRepository) toModel(a *entities.Analysis) *AnalysisModel {
	return &AnalysisModel{
		ID:             a.ID,
		OwnerID:        a.OwnerID,
		Description:    a.Description,
		StartDate:      datePtr(a.StartDate),
		EndDate:        datePtr(a.EndDate),
		Asset:          a.Asset,
		CapitalImage:   a.CapitalImage,
		ConfigData:     a.ConfigData,
		ReportHTML:     a.ReportHTML,
		InitialDeposit: valueobjects.CanonicalNumber(a.InitialDeposit),
		TotalGain:      valueobjects.CanonicalNumber(a.TotalGain),
		TradeCount:     valueobjects.CanonicalNumber(a.TradeCount),
		MaxVolume:      valueobjects.CanonicalNumber(a.MaxVolume),
		Status:         int(a.Status),
	}
}

func (r *AnalysisRepository) toEntity(m *AnalysisModel) *entities.Analysis {
	return &entities.Analysis{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		OwnerName:      m.OwnerName,
		Description:    m.Description,
		StartDate:      dateValue(m.StartDate),
		EndDate:        dateValue(m.EndDate),
		Asset:          m.Asset,
		InitialDeposit: storedNumber(m.InitialDeposit),
		TotalGain:      storedNumber(m.TotalGain),
		TradeCount:     storedNumber(m.TradeCount),
		MaxVolume:      storedNumber(m.MaxVolume),
		Status:         entities.Status(m.Status),
		CapitalImage:   m.CapitalImage,
		ConfigData:     m.ConfigData,
		ReportHTML:     m.ReportHTML,
	}
}

func datePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func dateValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// storedNumber lê a codificação canônica; valores ilegíveis viram zero
func storedNumber(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
