package dto

import (
	"github.com/shopspring/decimal"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// AnalysisResponse é a análise publicada com os campos calculados.
// Valores monetários seguem a codificação canônica ("1234.56"); campos desconhecidos vêm null.
type AnalysisResponse struct {
	ID             int64             `json:"id"`
	Owner          OwnerResponse     `json:"owner"`
	Description    string            `json:"description"`
	Asset          string            `json:"asset"`
	StartDate      string            `json:"start_date,omitempty"`
	EndDate        string            `json:"end_date,omitempty"`
	InitialDeposit string            `json:"initial_deposit"`
	TotalGain      string            `json:"total_gain"`
	TradeCount     string            `json:"trade_count"`
	MaxVolume      string            `json:"max_volume"`
	BrokerageFee   *string           `json:"brokerage_fee"`
	BrokerageTotal *string           `json:"brokerage_total"`
	NetResult      *string           `json:"net_result"`
	Status         string            `json:"status"`
	SetFileName    string            `json:"set_file_name"`
	Parameters     map[string]string `json:"parameters,omitempty"`
}

// AnalysisListResponse é uma página da listagem
type AnalysisListResponse struct {
	Items    []AnalysisResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Pages    int                `json:"pages"`
}

// AssetCountResponse é a quantidade de análises ativas de um ativo
type AssetCountResponse struct {
	Asset string `json:"asset"`
	Count int64  `json:"count"`
}

// ToAnalysisResponse converte a view calculada; withParameters inclui o mapa do .set
func ToAnalysisResponse(v *entities.AnalysisView, withParameters bool) AnalysisResponse {
	response := AnalysisResponse{
		ID:             v.ID,
		Owner:          OwnerResponse{ID: v.OwnerID, Name: v.OwnerName},
		Description:    v.Description,
		Asset:          v.Asset,
		StartDate:      isoDate(v.StartDate.IsZero(), v.StartDate.Format("2006-01-02")),
		EndDate:        isoDate(v.EndDate.IsZero(), v.EndDate.Format("2006-01-02")),
		InitialDeposit: valueobjects.CanonicalNumber(v.InitialDeposit),
		TotalGain:      valueobjects.CanonicalNumber(v.TotalGain),
		TradeCount:     valueobjects.CanonicalNumber(v.TradeCount),
		MaxVolume:      valueobjects.CanonicalNumber(v.MaxVolume),
		BrokerageFee:   nullableNumber(v.BrokerageFee),
		BrokerageTotal: nullableNumber(v.BrokerageTotal),
		NetResult:      nullableNumber(v.NetResult),
		Status:         v.Status.String(),
		SetFileName:    v.SetFileName(),
	}
	if withParameters {
		response.Parameters = v.Config
	}
	return response
}

// ToAnalysisResponses converte uma lista de views
func ToAnalysisResponses(views []*entities.AnalysisView) []AnalysisResponse {
	responses := make([]AnalysisResponse, len(views))
	for i, v := range views {
		responses[i] = ToAnalysisResponse(v, false)
	}
	return responses
}

// ToAssetCountResponses converte a contagem por ativo
func ToAssetCountResponses(counts []repositories.AssetCount) []AssetCountResponse {
	responses := make([]AssetCountResponse, len(counts))
	for i, c := range counts {
		responses[i] = AssetCountResponse{Asset: c.Asset, Count: c.Count}
	}
	return responses
}

func nullableNumber(n decimal.NullDecimal) *string {
	if !n.Valid {
		return nil
	}
	s := valueobjects.CanonicalNumber(n.Decimal)
	return &s
}

func isoDate(zero bool, formatted string) string {
	if zero {
		return ""
	}
	return formatted
}
