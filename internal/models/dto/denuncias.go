package dto

import (
	"encoding/json"
	"portalseguranca/internal/models/entities"
)

// DenunciaRequest é o corpo de criação e atualização de denúncias.
// No multipart o mesmo JSON vem no campo "dados".
type DenunciaRequest struct {
	Titulo          string        `json:"titulo" binding:"required,max=200" example:"Iluminação apagada na praça"`
	Descricao       string        `json:"descricao" binding:"required,max=5000" example:"Postes sem luz há uma semana"`
	TipoOcorrencia  string        `json:"tipoOcorrencia" binding:"max=100" example:"Iluminação"`
	Prioridade      string        `json:"prioridade" binding:"omitempty,oneof=alta media média baixa" example:"media" enums:"alta,media,baixa"`
	Urgente         entities.Flag `json:"urgente" swaggertype:"boolean" example:"false"`
	DataOcorrencia  string        `json:"dataOcorrencia" example:"2025-10-16"`
	HoraOcorrencia  string        `json:"horaOcorrencia" example:"21:30"`
	Endereco        string        `json:"endereco" example:"Praça Central, 100"`
	Bairro          string        `json:"bairro" example:"Centro"`
	Latitude        *float64      `json:"latitude,omitempty" example:"-23.5505"`
	Longitude       *float64      `json:"longitude,omitempty" example:"-46.6333"`
	Anonimo         bool          `json:"anonimo" example:"true"`
	NomeDenunciante string        `json:"nomeDenunciante,omitempty"`
	Contato         string        `json:"contato,omitempty"`
	Observacoes     string        `json:"observacoes,omitempty"`
}

// StatusRequest altera apenas o status de uma denúncia
type StatusRequest struct {
	Status      string `json:"status" binding:"required" example:"em andamento"`
	Observacoes string `json:"observacoes,omitempty"`
}

// DenunciaFilter são os filtros da listagem
type DenunciaFilter struct {
	Status     string `form:"status"`
	Prioridade string `form:"prioridade"`
	Tipo       string `form:"tipo"`
}

// SearchParams são os parâmetros da busca textual
type SearchParams struct {
	Query    string `form:"q" binding:"required"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Normalize aplica os limites de paginação
func (p *SearchParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

// Offset retorna o deslocamento da página atual
func (p SearchParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ESResponse é o trecho da resposta de _search que interessa à API
type ESResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Score  float64         `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
