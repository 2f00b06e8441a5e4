package entities

import "time"

// Colecao guarda uma coleção inteira serializada em JSON (backend SQL Server)
type Colecao struct {
	Nome         string    `gorm:"column:Nome;type:nvarchar(50);primaryKey"`
	Conteudo     string    `gorm:"column:Conteudo;type:nvarchar(max);not null"`
	AtualizadoEm time.Time `gorm:"column:AtualizadoEm;type:datetime2;not null"`
}

// TableName especifica o nome da tabela no banco
func (Colecao) TableName() string {
	return "dbo.Colecoes"
}
