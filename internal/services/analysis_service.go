package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/ports"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/session"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// AnalysisService contém a lógica de negócio para análises
type AnalysisService struct {
	analysisRepo repositories.AnalysisRepository
	uow          ports.UnitOfWork
	logger       ports.Logger
}

// NewAnalysisService cria um novo AnalysisService
func NewAnalysisService(
	analysisRepo repositories.AnalysisRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *AnalysisService {
	return &AnalysisService{
		analysisRepo: analysisRepo,
		uow:          uow,
		logger:       logger,
	}
}

// AnalysisInput são os campos de texto reconhecidos do formulário.
// Campo nil significa que não veio no POST e o valor atual é mantido.
type AnalysisInput struct {
	Description    *string `form:"descricao"`
	StartDate      *string `form:"data_inicio"`
	EndDate        *string `form:"data_termino"`
	Asset          *string `form:"ativo"`
	InitialDeposit *string `form:"deposito_inicial"`
	TotalGain      *string `form:"ganho_total"`
	TradeCount     *string `form:"negociacao_quantidade"`
	MaxVolume      *string `form:"volume_maximo"`
	Status         *string `form:"cod_situacao"`
}

// AnalysisUploads traz o conteúdo dos arquivos enviados; nil quando o arquivo não veio
type AnalysisUploads struct {
	SetFile      []byte
	ReportHTML   []byte
	CapitalImage []byte
}

// AnalysisPage é uma página da listagem
type AnalysisPage struct {
	Items    []*entities.AnalysisView
	Total    int64
	Page     int
	PageSize int
}

// Pages é a quantidade de páginas da listagem: ceil(Total/PageSize), no mínimo 1
func (p *AnalysisPage) Pages() int {
	return pageCount(p.Total, p.PageSize)
}

// FromSubmittedForm aplica os campos enviados sobre existing (ou sobre uma análise nova)
func (s *AnalysisService) FromSubmittedForm(existing *entities.Analysis, input AnalysisInput, uploads AnalysisUploads) (*entities.Analysis, error) {
	a := &entities.Analysis{Status: entities.StatusActive}
	if existing != nil {
		copied := *existing
		a = &copied
	}

	if input.Description != nil {
		a.Description = strings.TrimSpace(*input.Description)
	}
	if input.Asset != nil {
		a.Asset = strings.ToUpper(strings.TrimSpace(*input.Asset))
	}

	dates := []struct {
		field string
		value *string
		dest  *time.Time
	}{
		{"data_inicio", input.StartDate, &a.StartDate},
		{"data_termino", input.EndDate, &a.EndDate},
	}
	for _, d := range dates {
		if d.value == nil {
			continue
		}
		t, err := valueobjects.ParseDate(*d.value)
		if err != nil {
			return nil, errors.NewValidationError(d.field, errors.KeyMalformedDate, err)
		}
		*d.dest = t
	}

	numbers := []struct {
		field string
		value *string
		dest  *decimal.Decimal
	}{
		{"deposito_inicial", input.InitialDeposit, &a.InitialDeposit},
		{"ganho_total", input.TotalGain, &a.TotalGain},
		{"negociacao_quantidade", input.TradeCount, &a.TradeCount},
		{"volume_maximo", input.MaxVolume, &a.MaxVolume},
	}
	for _, n := range numbers {
		if n.value == nil {
			continue
		}
		d, err := valueobjects.ParseNumber(*n.value)
		if err != nil {
			return nil, errors.NewValidationError(n.field, errors.KeyMalformedNumber, err)
		}
		*n.dest = d
	}

	if input.Status != nil {
		status, err := entities.ParseStatus(strings.TrimSpace(*input.Status))
		if err != nil {
			return nil, errors.NewValidationError("cod_situacao", errors.KeyInvalidStatus, err)
		}
		a.Status = status
	}

	// Arquivos só substituem o valor atual quando foram enviados
	if uploads.SetFile != nil {
		a.ConfigData = valueobjects.DecodeStrategyFile(uploads.SetFile)
	}
	if uploads.ReportHTML != nil {
		a.ReportHTML = string(uploads.ReportHTML)
	}
	if uploads.CapitalImage != nil {
		a.CapitalImage = valueobjects.EncodeCapitalImage(uploads.CapitalImage)
	}

	return a, nil
}

// ValidateOwnership exige um usuário logado e o grava como dono da análise
func (s *AnalysisService) ValidateOwnership(ctx context.Context, a *entities.Analysis) error {
	userID, ok := session.UserID(ctx)
	if !ok {
		return errors.ErrAuthRequired
	}
	a.OwnerID = userID
	return nil
}

// Create publica uma nova análise do usuário logado
func (s *AnalysisService) Create(ctx context.Context, a *entities.Analysis) (int64, error) {
	if err := s.ValidateOwnership(ctx, a); err != nil {
		return 0, err
	}

	a.ID = 0
	a.Status = entities.StatusActive

	s.logger.Info("creating analysis", "owner_id", a.OwnerID, "asset", a.Asset)

	if err := s.analysisRepo.Create(ctx, a); err != nil {
		return 0, err
	}

	s.logger.Info("analysis created", "analysis_id", a.ID)
	return a.ID, nil
}

// Update regrava a análise; apenas o dono pode alterá-la
func (s *AnalysisService) Update(ctx context.Context, a *entities.Analysis) error {
	if a.ID == 0 {
		return errors.ErrAnalysisIDRequired
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkOwner(txCtx, a.ID); err != nil {
			return err
		}
		if err := s.ValidateOwnership(txCtx, a); err != nil {
			return err
		}

		s.logger.Info("updating analysis", "analysis_id", a.ID, "owner_id", a.OwnerID)
		return s.analysisRepo.Update(txCtx, a)
	})
}

// SoftDelete desativa uma análise do usuário logado
func (s *AnalysisService) SoftDelete(ctx context.Context, id int64) error {
	if id == 0 {
		return errors.ErrAnalysisIDRequired
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.checkOwner(txCtx, id); err != nil {
			return err
		}

		s.logger.Info("deactivating analysis", "analysis_id", id)
		return s.analysisRepo.SoftDelete(txCtx, id)
	})
}

// Deactivate desativa qualquer análise (uso administrativo, sem sessão)
func (s *AnalysisService) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	s.logger.Info("deactivating analysis", "analysis_id", id, "admin", true)
	return s.analysisRepo.SoftDelete(ctx, id)
}

func (s *AnalysisService) checkOwner(ctx context.Context, id int64) error {
	userID, ok := session.UserID(ctx)
	if !ok {
		return errors.ErrAuthRequired
	}

	stored, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if stored == nil {
		return errors.ErrAnalysisNotFound
	}
	if !stored.IsOwnedBy(userID) {
		return errors.ErrForbidden
	}
	return nil
}

// Get busca uma análise (em qualquer situação) com os campos calculados
func (s *AnalysisService) Get(ctx context.Context, id int64) (*entities.AnalysisView, error) {
	a, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.ErrAnalysisNotFound
	}
	return entities.NewAnalysisView(a), nil
}

// List lista as análises ativas com os campos calculados
func (s *AnalysisService) List(ctx context.Context, filters repositories.AnalysisFilters) ([]*entities.AnalysisView, error) {
	analyses, err := s.analysisRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	return toViews(analyses), nil
}

// ListPage devolve uma página da listagem; página fora do intervalo volta para a primeira
func (s *AnalysisService) ListPage(ctx context.Context, filters repositories.AnalysisFilters, page, size int) (*AnalysisPage, error) {
	total, err := s.analysisRepo.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	if page < 1 || page > pageCount(total, size) {
		page = 1
	}

	filters.Page = page
	filters.PageSize = size
	analyses, err := s.analysisRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &AnalysisPage{
		Items:    toViews(analyses),
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// ListAssetCounts lista os ativos com análises ativas, do menos para o mais frequente
func (s *AnalysisService) ListAssetCounts(ctx context.Context) ([]repositories.AssetCount, error) {
	return s.analysisRepo.ListAssetCounts(ctx)
}

func toViews(analyses []*entities.Analysis) []*entities.AnalysisView {
	views := make([]*entities.AnalysisView, 0, len(analyses))
	for _, a := range analyses {
		views = append(views, entities.NewAnalysisView(a))
	}
	return views
}

func pageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}
