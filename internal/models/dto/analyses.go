package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"portalseguranca/internal/models/entities"
)

// StatsSnapshot representa a resposta de /api/analyses/stats
type StatsSnapshot struct {
	Denuncias         DenunciasStats `json:"denuncias"`
	Graficos          Graficos       `json:"graficos"`
	Cameras           CamerasStats   `json:"cameras"`
	UltimaAtualizacao string         `json:"ultimaAtualizacao" example:"2025-10-16T10:30:00Z"`
	DadosBrutos       DadosBrutos    `json:"dadosBrutos"`
}

// DenunciasStats agrupa as contagens de denúncias
type DenunciasStats struct {
	Total          int           `json:"total" example:"120"`
	Hoje           int           `json:"hoje" example:"3"`
	Semana         int           `json:"semana" example:"17"`
	Mes            int           `json:"mes" example:"41"`
	Trimestre      int           `json:"trimestre" example:"98"`
	Ano            int           `json:"ano" example:"120"`
	PorPrioridade  PorPrioridade `json:"porPrioridade"`
	PorStatus      PorStatus     `json:"porStatus"`
	TaxaResolucao  int           `json:"taxaResolucao" example:"35"`
	VariacaoMensal int           `json:"variacaoMensal" example:"-12"`
	TempoResposta  string        `json:"tempoResposta" example:"6min"`
}

// PorPrioridade não é uma partição: uma denúncia urgente de prioridade baixa conta nas duas
type PorPrioridade struct {
	Alta  int `json:"alta"`
	Media int `json:"media"`
	Baixa int `json:"baixa"`
}

// PorStatus conta somente os status reconhecidos
type PorStatus struct {
	Pendente    int `json:"pendente"`
	EmAndamento int `json:"emAndamento"`
	Resolvida   int `json:"resolvida"`
}

// Graficos reúne as séries usadas pelo dashboard
type Graficos struct {
	Ultimos12Meses   SerieMensal      `json:"ultimos12Meses"`
	PorCategoria     Histogram        `json:"porCategoria" swaggertype:"object,integer"`
	PorHorario       PorHorario       `json:"porHorario"`
	ComparativoAnual ComparativoAnual `json:"comparativoAnual"`
}

// SerieMensal tem sempre 12 posições
type SerieMensal struct {
	Labels  []string `json:"labels"`
	Valores []int    `json:"valores"`
}

// PorHorario agrupa as denúncias em faixas de 6 horas
type PorHorario struct {
	Madrugada int `json:"madrugada"`
	Manha     int `json:"manha"`
	Tarde     int `json:"tarde"`
	Noite     int `json:"noite"`
}

// ComparativoAnual indexado pelo mês (0 = janeiro)
type ComparativoAnual struct {
	AnoAtual    [12]int `json:"anoAtual"`
	AnoAnterior [12]int `json:"anoAnterior"`
}

// CamerasStats agrupa as contagens de câmeras
type CamerasStats struct {
	Total               int       `json:"total"`
	Online              int       `json:"online"`
	Offline             int       `json:"offline"`
	Manutencao          int       `json:"manutencao"`
	TaxaDisponibilidade int       `json:"taxaDisponibilidade" example:"67"`
	PorTipo             Histogram `json:"porTipo" swaggertype:"object,integer"`
	PorResolucao        Histogram `json:"porResolucao" swaggertype:"object,integer"`
}

// DadosBrutos são cópias das coleções usadas no cálculo
type DadosBrutos struct {
	Denuncias []entities.Denuncia `json:"denuncias"`
	Cameras   []entities.Camera   `json:"cameras"`
}

// HistogramEntry é um par nome/contagem
type HistogramEntry struct {
	Name  string
	Value int
}

// Histogram conta ocorrências por nome mantendo a ordem em que cada nome apareceu.
// É serializado como objeto JSON nessa mesma ordem.
type Histogram struct {
	entries []HistogramEntry
	index   map[string]int
}

// NewHistogram cria um histograma vazio
func NewHistogram() Histogram {
	return Histogram{index: make(map[string]int)}
}

// Inc soma um ao nome informado
func (h *Histogram) Inc(name string) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	if i, ok := h.index[name]; ok {
		h.entries[i].Value++
		return
	}
	h.index[name] = len(h.entries)
	h.entries = append(h.entries, HistogramEntry{Name: name, Value: 1})
}

// Get retorna a contagem de um nome
func (h Histogram) Get(name string) int {
	if i, ok := h.index[name]; ok {
		return h.entries[i].Value
	}
	return 0
}

// Len retorna a quantidade de nomes distintos
func (h Histogram) Len() int {
	return len(h.entries)
}

// Entries retorna uma cópia dos pares na ordem de inserção
func (h Histogram) Entries() []HistogramEntry {
	out := make([]HistogramEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// MarshalJSON implementa json.Marshaler
func (h Histogram) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range h.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implementa json.Unmarshaler preservando a ordem das chaves
func (h *Histogram) UnmarshalJSON(data []byte) error {
	*h = NewHistogram()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("histogram must be a JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v int
		if err := dec.Decode(&v); err != nil {
			return err
		}
		h.index[key] = len(h.entries)
		h.entries = append(h.entries, HistogramEntry{Name: key, Value: v})
	}
	_, err = dec.Token()
	return err
}
