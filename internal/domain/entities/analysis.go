package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
)

// Analysis representa o resultado de um backtest publicado por um usuário
type Analysis struct {
	ID             int64
	OwnerID        int64
	OwnerName      string // preenchido apenas em leituras (join com usuario)
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	Asset          string
	InitialDeposit decimal.Decimal
	TotalGain      decimal.Decimal
	TradeCount     decimal.Decimal
	MaxVolume      decimal.Decimal
	Status         Status
	CapitalImage   string // base64 em linhas de 76 colunas
	ConfigData     string // conteúdo do arquivo .set
	ReportHTML     string // relatório HTML do testador de estratégia
}

// IsOwnedBy verifica se a análise pertence ao usuário
func (a *Analysis) IsOwnedBy(userID int64) bool {
	return a.OwnerID != 0 && a.OwnerID == userID
}

// SetFileName é o nome sugerido para download do .set
func (a *Analysis) SetFileName() string {
	return valueobjects.SetFileName(a.Asset, a.Description)
}

// AnalysisView é a análise com os campos calculados a cada leitura.
// Sem a chave "corretagem" no .set, os campos financeiros ficam inválidos (desconhecidos).
type AnalysisView struct {
	Analysis
	Config         valueobjects.StrategyConfig
	BrokerageFee   decimal.NullDecimal
	BrokerageTotal decimal.NullDecimal
	NetResult      decimal.NullDecimal
}

// NewAnalysisView calcula corretagem e resultado líquido a partir do .set
func NewAnalysisView(a *Analysis) *AnalysisView {
	view := &AnalysisView{
		Analysis: *a,
		Config:   valueobjects.ParseStrategyConfig(a.ConfigData),
	}

	fee, ok := view.Config.Decimal(valueobjects.BrokerageKey)
	if !ok {
		return view
	}

	total := fee.Mul(a.TradeCount)
	view.BrokerageFee = decimal.NewNullDecimal(fee)
	view.BrokerageTotal = decimal.NewNullDecimal(total)
	view.NetResult = decimal.NewNullDecimal(a.TotalGain.Sub(total))
	return view
}

// IsProfit indica resultado líquido conhecido e não negativo
func (v *AnalysisView) IsProfit() bool {
	return v.NetResult.Valid && !v.NetResult.Decimal.IsNegative()
}
