package entities

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Denuncia representa uma denúncia registrada por um cidadão ou pela equipe
type Denuncia struct {
	Id              int      `json:"id"`
	Titulo          string   `json:"titulo,omitempty"`
	Descricao       string   `json:"descricao,omitempty"`
	TipoOcorrencia  string   `json:"tipoOcorrencia,omitempty"`
	Prioridade      string   `json:"prioridade,omitempty"`
	Urgente         Flag     `json:"urgente,omitempty"`
	Status          string   `json:"status,omitempty"`
	DataOcorrencia  string   `json:"dataOcorrencia,omitempty"`
	HoraOcorrencia  string   `json:"horaOcorrencia,omitempty"`
	Endereco        string   `json:"endereco,omitempty"`
	Bairro          string   `json:"bairro,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Anonimo         bool     `json:"anonimo,omitempty"`
	NomeDenunciante string   `json:"nomeDenunciante,omitempty"`
	Contato         string   `json:"contato,omitempty"`
	Anexos          []string `json:"anexos,omitempty"`
	Observacoes     string   `json:"observacoes,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// GetId implementa store.Identifiable
func (d Denuncia) GetId() int { return d.Id }

// Valores padrão aplicados quando o campo está ausente
const (
	CategoriaPadrao = "Outro"
	HoraPadrao      = "00:00"
)

// DataEfetiva retorna createdAt quando presente, senão dataOcorrencia
func (d Denuncia) DataEfetiva() string {
	if d.CreatedAt != "" {
		return d.CreatedAt
	}
	return d.DataOcorrencia
}

// Categoria retorna o tipo de ocorrência ou "Outro"
func (d Denuncia) Categoria() string {
	if d.TipoOcorrencia == "" {
		return CategoriaPadrao
	}
	return d.TipoOcorrencia
}

// Hora retorna a hora da ocorrência ou "00:00"
func (d Denuncia) Hora() string {
	if d.HoraOcorrencia == "" {
		return HoraPadrao
	}
	return d.HoraOcorrencia
}

// Flag é um booleano tolerante: aceita true/false ou as strings "true"/"false".
// Qualquer outro valor é lido como false.
type Flag bool

// UnmarshalJSON implementa json.Unmarshaler
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Flag(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}

	*f = false
	return nil
}
