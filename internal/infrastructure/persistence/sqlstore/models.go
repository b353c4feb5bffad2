package sqlstore

import "time"

// UserModel é o model GORM da tabela usuario
type UserModel struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:nome;type:varchar(255);not null"`
	Email    string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Password string `gorm:"column:senha;type:varchar(255);not null"`
	Status   int    `gorm:"column:cod_situacao;not null;default:1"`
}

func (UserModel) TableName() string {
	return "usuario"
}

// AnalysisModel é o model GORM da tabela analise.
// Valores numéricos trafegam como string na codificação canônica ("1234.56").
type AnalysisModel struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID        int64      `gorm:"column:id_usuario;not null;index"`
	OwnerName      string     `gorm:"column:usuario_nome;->;-:migration"` // join com usuario
	Description    string     `gorm:"column:descricao;type:varchar(255);not null"`
	StartDate      *time.Time `gorm:"column:data_inicio;type:date"`
	EndDate        *time.Time `gorm:"column:data_termino;type:date"`
	Asset          string     `gorm:"column:ativo;type:varchar(32);not null;index"`
	CapitalImage   string     `gorm:"column:imagem_capital"`
	ConfigData     string     `gorm:"column:dados_configuracao"`
	ReportHTML     string     `gorm:"column:dados_analise"`
	InitialDeposit string     `gorm:"column:deposito_inicial;type:decimal(15,2);not null"`
	TotalGain      string     `gorm:"column:ganho_total;type:decimal(15,2);not null"`
	TradeCount     string     `gorm:"column:negociacao_quantidade;type:decimal(15,2);not null"`
	MaxVolume      string     `gorm:"column:volume_maximo;type:decimal(15,2);not null"`
	Status         int        `gorm:"column:cod_situacao;not null;default:1;index"`
}

func (AnalysisModel) TableName() string {
	return "analise"
}
