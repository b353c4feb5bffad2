package view

import (
	"strconv"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// AnalysesData alimenta a página de listagem
type AnalysesData struct {
	Items   []*entities.AnalysisView
	Assets  []repositories.AssetCount
	Asset   string // ativo selecionado no menu lateral
	OwnerID int64
	Pager   Pager
}

// AnalysisFormData são os valores exibidos no formulário de análise, já formatados
type AnalysisFormData struct {
	ID             int64
	Description    string
	Asset          string
	StartDate      string
	EndDate        string
	InitialDeposit string
	TotalGain      string
	TradeCount     string
	MaxVolume      string
	Status         string
}

// NewAnalysisFormData preenche o formulário com a análise gravada
func NewAnalysisFormData(a *entities.Analysis) AnalysisFormData {
	if a == nil {
		return AnalysisFormData{Status: strconv.Itoa(int(entities.StatusActive))}
	}
	return AnalysisFormData{
		ID:             a.ID,
		Description:    a.Description,
		Asset:          a.Asset,
		StartDate:      valueobjects.FormatDate(a.StartDate),
		EndDate:        valueobjects.FormatDate(a.EndDate),
		InitialDeposit: valueobjects.FormatNumber(a.InitialDeposit, 2),
		TotalGain:      valueobjects.FormatNumber(a.TotalGain, 2),
		TradeCount:     formatNumber(a.TradeCount),
		MaxVolume:      formatNumber(a.MaxVolume),
		Status:         strconv.Itoa(int(a.Status)),
	}
}

// UserFormData alimenta os formulários de cadastro e alteração de usuário
type UserFormData struct {
	Edit  bool
	Name  string
	Email string
}
