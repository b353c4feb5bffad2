package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewAnalysisView(t *testing.T) {
	base := Analysis{
		ID:         1,
		OwnerID:    7,
		Asset:      "WIN",
		TotalGain:  decimal.RequireFromString("1000"),
		TradeCount: decimal.RequireFromString("40"),
	}

	tests := []struct {
		name     string
		config   string
		fee      string
		total    string
		net      string
		known    bool
		isProfit bool
	}{
		{
			name:     "corretagem informada",
			config:   "corretagem=0.50\r\nlote=1",
			fee:      "0.5",
			total:    "20",
			net:      "980",
			known:    true,
			isProfit: true,
		},
		{
			name:     "corretagem maior que o ganho",
			config:   "corretagem=30",
			fee:      "30",
			total:    "1200",
			net:      "-200",
			known:    true,
			isProfit: false,
		},
		{
			name:   "sem corretagem os valores ficam desconhecidos",
			config: "lote=1",
			known:  false,
		},
		{
			name:   "corretagem ilegível",
			config: "corretagem=abc",
			known:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			a.ConfigData = tt.config

			view := NewAnalysisView(&a)

			if view.NetResult.Valid != tt.known || view.BrokerageFee.Valid != tt.known || view.BrokerageTotal.Valid != tt.known {
				t.Fatalf("validade esperada %v", tt.known)
			}
			if view.IsProfit() != tt.isProfit {
				t.Errorf("IsProfit esperado %v", tt.isProfit)
			}
			if !tt.known {
				return
			}
			if view.BrokerageFee.Decimal.String() != tt.fee {
				t.Errorf("corretagem: esperava %s, obteve %s", tt.fee, view.BrokerageFee.Decimal)
			}
			if view.BrokerageTotal.Decimal.String() != tt.total {
				t.Errorf("total: esperava %s, obteve %s", tt.total, view.BrokerageTotal.Decimal)
			}
			if view.NetResult.Decimal.String() != tt.net {
				t.Errorf("líquido: esperava %s, obteve %s", tt.net, view.NetResult.Decimal)
			}
		})
	}
}

func TestAnalysis_IsOwnedBy(t *testing.T) {
	a := &Analysis{OwnerID: 7}

	if !a.IsOwnedBy(7) {
		t.Error("dono deveria ser reconhecido")
	}
	if a.IsOwnedBy(8) {
		t.Error("outro usuário não é dono")
	}
	if (&Analysis{}).IsOwnedBy(0) {
		t.Error("análise sem dono não pertence a ninguém")
	}
}
