package analyses_test

import (
	"encoding/json"
	"testing"
	"time"

	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/service/analyses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

// sábado, 15 de março de 2025, 14h em Brasília
var agora = time.Date(2025, time.March, 15, 14, 0, 0, 0, brt)

func TestComputeStats_EmptyInput(t *testing.T) {
	snap := analyses.ComputeStats(nil, nil, agora)

	d := snap.Denuncias
	assert.Zero(t, d.Total)
	assert.Zero(t, d.Hoje+d.Semana+d.Mes+d.Trimestre+d.Ano)
	assert.Zero(t, d.PorPrioridade.Alta+d.PorPrioridade.Media+d.PorPrioridade.Baixa)
	assert.Zero(t, d.PorStatus.Pendente+d.PorStatus.EmAndamento+d.PorStatus.Resolvida)
	assert.Zero(t, d.TaxaResolucao)
	assert.Zero(t, d.VariacaoMensal)
	assert.Equal(t, "6min", d.TempoResposta)

	assert.Len(t, snap.Graficos.Ultimos12Meses.Valores, 12)
	assert.Equal(t, make([]int, 12), snap.Graficos.Ultimos12Meses.Valores)
	assert.Zero(t, snap.Graficos.PorCategoria.Len())
	assert.Equal(t, [12]int{}, snap.Graficos.ComparativoAnual.AnoAtual)

	assert.Zero(t, snap.Cameras.Total)
	assert.Zero(t, snap.Cameras.TaxaDisponibilidade)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	graficos := generic["graficos"].(map[string]any)
	assert.Equal(t, map[string]any{}, graficos["porCategoria"])
	cameras := generic["cameras"].(map[string]any)
	assert.Equal(t, map[string]any{}, cameras["porTipo"])
	assert.Equal(t, map[string]any{}, cameras["porResolucao"])
	brutos := generic["dadosBrutos"].(map[string]any)
	assert.Equal(t, []any{}, brutos["denuncias"])
	assert.Equal(t, []any{}, brutos["cameras"])
}

func TestComputeStats_RecencyWindows(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1, CreatedAt: "2025-03-15T09:30:00-03:00"},
		{Id: 2, DataOcorrencia: "2025-03-10"},
		{Id: 3, CreatedAt: "2025-03-01T08:00:00Z"},
		{Id: 4, CreatedAt: "2024-12-20T12:00:00-03:00"},
		{Id: 5, CreatedAt: "data inválida", DataOcorrencia: "2025-03-15"},
		{Id: 6, CreatedAt: "2023-03-15"},
	}

	d := analyses.ComputeStats(denuncias, nil, agora).Denuncias

	assert.Equal(t, 6, d.Total)
	assert.Equal(t, 1, d.Hoje)
	assert.Equal(t, 2, d.Semana)
	assert.Equal(t, 3, d.Mes)
	assert.Equal(t, 4, d.Trimestre)
	assert.Equal(t, 3, d.Ano)
}

func TestComputeStats_CreatedAtWinsOverDataOcorrencia(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1, CreatedAt: "2024-01-10T10:00:00-03:00", DataOcorrencia: "2025-03-15"},
	}

	d := analyses.ComputeStats(denuncias, nil, agora).Denuncias

	assert.Zero(t, d.Hoje)
	assert.Zero(t, d.Ano)
}

func TestComputeStats_ResolutionRate(t *testing.T) {
	tests := []struct {
		name     string
		status   []string
		expected int
	}{
		{"one of three", []string{"resolvida", "pendente", ""}, 33},
		{"two of three", []string{"resolvido", "concluído", "em andamento"}, 67},
		{"all resolved", []string{"resolvida", "resolvida"}, 100},
		{"half rounds up", []string{"resolvida", "pendente", "cancelada", "pendente", "resolvida", "resolvida", "pendente", "pendente"}, 38},
		{"unknown status is not resolved", []string{"cancelada"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var denuncias []entities.Denuncia
			for i, s := range tt.status {
				denuncias = append(denuncias, entities.Denuncia{Id: i + 1, Status: s})
			}

			d := analyses.ComputeStats(denuncias, nil, agora).Denuncias

			assert.Equal(t, tt.expected, d.TaxaResolucao)
			assert.GreaterOrEqual(t, d.TaxaResolucao, 0)
			assert.LessOrEqual(t, d.TaxaResolucao, 100)
		})
	}
}

func TestComputeStats_PriorityIsNotAPartition(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1, Urgente: true, Prioridade: "baixa"},
		{Id: 2, Prioridade: "média"},
		{Id: 3, Prioridade: "media"},
		{Id: 4, Prioridade: "alta"},
		{Id: 5, Prioridade: "critica"},
		{Id: 6},
	}

	p := analyses.ComputeStats(denuncias, nil, agora).Denuncias.PorPrioridade

	assert.Equal(t, 2, p.Alta)
	assert.Equal(t, 2, p.Media)
	assert.Equal(t, 1, p.Baixa)
}

func TestComputeStats_StatusBuckets(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1},
		{Id: 2, Status: "pendente"},
		{Id: 3, Status: "em andamento"},
		{Id: 4, Status: "emAndamento"},
		{Id: 5, Status: "resolvida"},
		{Id: 6, Status: "cancelada"},
	}

	s := analyses.ComputeStats(denuncias, nil, agora).Denuncias.PorStatus

	assert.Equal(t, 2, s.Pendente)
	assert.Equal(t, 2, s.EmAndamento)
	assert.Equal(t, 1, s.Resolvida)
	assert.Equal(t, 5, s.Pendente+s.EmAndamento+s.Resolvida, "cancelada falls in no bucket")
}

func TestComputeStats_MonthOverMonth(t *testing.T) {
	t.Run("no previous month is zero", func(t *testing.T) {
		denuncias := []entities.Denuncia{
			{Id: 1, CreatedAt: "2025-03-02"},
			{Id: 2, CreatedAt: "2025-03-03"},
		}
		assert.Zero(t, analyses.ComputeStats(denuncias, nil, agora).Denuncias.VariacaoMensal)
	})

	t.Run("growth", func(t *testing.T) {
		denuncias := []entities.Denuncia{
			{Id: 1, CreatedAt: "2025-02-02"},
			{Id: 2, CreatedAt: "2025-02-20"},
			{Id: 3, CreatedAt: "2025-03-01"},
			{Id: 4, CreatedAt: "2025-03-02"},
			{Id: 5, CreatedAt: "2025-03-03"},
		}
		assert.Equal(t, 50, analyses.ComputeStats(denuncias, nil, agora).Denuncias.VariacaoMensal)
	})

	t.Run("month index ignores the year", func(t *testing.T) {
		denuncias := []entities.Denuncia{
			{Id: 1, CreatedAt: "2024-02-10"},
			{Id: 2, CreatedAt: "2025-02-10"},
			{Id: 3, CreatedAt: "2025-03-10"},
		}
		assert.Equal(t, -50, analyses.ComputeStats(denuncias, nil, agora).Denuncias.VariacaoMensal)
	})

	t.Run("january compares with december", func(t *testing.T) {
		janeiro := time.Date(2025, time.January, 20, 12, 0, 0, 0, brt)
		denuncias := []entities.Denuncia{
			{Id: 1, CreatedAt: "2024-12-10"},
			{Id: 2, CreatedAt: "2024-12-11"},
			{Id: 3, CreatedAt: "2024-12-12"},
			{Id: 4, CreatedAt: "2025-01-05"},
		}
		assert.Equal(t, -67, analyses.ComputeStats(denuncias, nil, janeiro).Denuncias.VariacaoMensal)
	})
}

func TestComputeStats_ResponseTimeLabel(t *testing.T) {
	var denuncias []entities.Denuncia
	for i := 1; i <= 5; i++ {
		denuncias = append(denuncias, entities.Denuncia{Id: i, Urgente: true})
	}
	assert.Equal(t, "6min", analyses.ComputeStats(denuncias, nil, agora).Denuncias.TempoResposta)

	denuncias = append(denuncias, entities.Denuncia{Id: 6, Prioridade: "alta"})
	assert.Equal(t, "3min", analyses.ComputeStats(denuncias, nil, agora).Denuncias.TempoResposta)
}

func TestComputeStats_TrailingSeries(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1, CreatedAt: "2025-01-05"},
		{Id: 2, CreatedAt: "2025-03-05"},
		{Id: 3, CreatedAt: "2025-03-06"},
		{Id: 4, CreatedAt: "2024-12-10"},
	}

	serie := analyses.ComputeStats(denuncias, nil, agora).Graficos.Ultimos12Meses

	assert.Equal(t, []string{"Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez", "Jan", "Fev", "Mar"}, serie.Labels)
	// dezembro de 2024 aparece no rótulo mas só o ano corrente é contado
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 2}, serie.Valores)
}

func TestComputeStats_YearOverYear(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1, CreatedAt: "2025-01-05"},
		{Id: 2, CreatedAt: "2024-01-05"},
		{Id: 3, CreatedAt: "2024-07-05"},
		{Id: 4, CreatedAt: "2023-07-05"},
	}

	cmp := analyses.ComputeStats(denuncias, nil, agora).Graficos.ComparativoAnual

	assert.Equal(t, [12]int{1}, cmp.AnoAtual)
	assert.Equal(t, [12]int{1, 0, 0, 0, 0, 0, 1}, cmp.AnoAnterior)
}

func TestComputeStats_CategoryHistogramKeepsFirstSeenOrder(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1, TipoOcorrencia: "Vandalismo"},
		{Id: 2},
		{Id: 3, TipoOcorrencia: "Furto"},
		{Id: 4, TipoOcorrencia: "Vandalismo"},
	}

	h := analyses.ComputeStats(denuncias, nil, agora).Graficos.PorCategoria

	raw, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `{"Vandalismo":2,"Outro":1,"Furto":1}`, string(raw))
	assert.Equal(t, 2, h.Get("Vandalismo"))
}

func TestComputeStats_HourBuckets(t *testing.T) {
	tests := []struct {
		hora     string
		expected string
	}{
		{"", "madrugada"},
		{"00:00", "madrugada"},
		{"05:59", "madrugada"},
		{"06:00", "manha"},
		{"11:59", "manha"},
		{"12:00", "tarde"},
		{"17:30", "tarde"},
		{"18:00", "noite"},
		{"23:59", "noite"},
		{"7h", "manha"},
		{"24:00", ""},
		{"abc", ""},
		{":30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.hora, func(t *testing.T) {
			h := analyses.ComputeStats([]entities.Denuncia{{Id: 1, HoraOcorrencia: tt.hora}}, nil, agora).Graficos.PorHorario

			got := map[string]int{"madrugada": h.Madrugada, "manha": h.Manha, "tarde": h.Tarde, "noite": h.Noite}
			for bucket, n := range got {
				if bucket == tt.expected {
					assert.Equal(t, 1, n, bucket)
				} else {
					assert.Zero(t, n, bucket)
				}
			}
		})
	}
}

func TestComputeStats_Cameras(t *testing.T) {
	cameras := []entities.Camera{
		{Id: 1, Status: "online", Type: "PTZ", Resolution: "4K"},
		{Id: 2, Status: "offline"},
		{Id: 3, Status: "online", Type: "PTZ", Resolution: "1080p"},
		{Id: 4, Status: "manutencao", Type: "Fixa"},
		{Id: 5, Status: "maintenance"},
		{Id: 6, Status: "Online"},
	}

	c := analyses.ComputeStats(nil, cameras[:3], agora).Cameras
	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 2, c.Online)
	assert.Equal(t, 1, c.Offline)
	assert.Equal(t, 67, c.TaxaDisponibilidade)

	c = analyses.ComputeStats(nil, cameras, agora).Cameras
	assert.Equal(t, 6, c.Total)
	assert.Equal(t, 2, c.Online, "status match is exact")
	assert.Equal(t, 2, c.Manutencao)
	assert.Equal(t, 33, c.TaxaDisponibilidade)

	tipos, err := json.Marshal(c.PorTipo)
	require.NoError(t, err)
	assert.Equal(t, `{"PTZ":2,"Desconhecido":3,"Fixa":1}`, string(tipos))

	resolucoes, err := json.Marshal(c.PorResolucao)
	require.NoError(t, err)
	assert.Equal(t, `{"4K":1,"Desconhecida":4,"1080p":1}`, string(resolucoes))
}

func TestComputeStats_Deterministic(t *testing.T) {
	denuncias := []entities.Denuncia{
		{Id: 1, CreatedAt: "2025-03-15T09:30:00-03:00", TipoOcorrencia: "Furto", Prioridade: "alta"},
		{Id: 2, DataOcorrencia: "2025-02-10", TipoOcorrencia: "Roubo", HoraOcorrencia: "22:10", Status: "resolvida"},
		{Id: 3, TipoOcorrencia: "Ameaça", Urgente: true},
	}
	cameras := []entities.Camera{{Id: 1, Status: "online"}, {Id: 2, Status: "offline", Type: "Fixa"}}

	first, err := json.Marshal(analyses.ComputeStats(denuncias, cameras, agora))
	require.NoError(t, err)
	second, err := json.Marshal(analyses.ComputeStats(denuncias, cameras, agora))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestComputeStats_DoesNotMutateInputs(t *testing.T) {
	denuncias := []entities.Denuncia{{Id: 1, Anexos: []string{"a.pdf"}}}
	cameras := []entities.Camera{{Id: 1}}

	snap := analyses.ComputeStats(denuncias, cameras, agora)

	assert.Equal(t, []entities.Denuncia{{Id: 1, Anexos: []string{"a.pdf"}}}, denuncias)
	assert.Equal(t, []entities.Camera{{Id: 1}}, cameras)
	assert.Equal(t, denuncias, snap.DadosBrutos.Denuncias)

	snap.DadosBrutos.Cameras[0].Status = "offline"
	assert.Empty(t, cameras[0].Status)
}

func TestComputeStats_FreshnessTimestamp(t *testing.T) {
	snap := analyses.ComputeStats(nil, nil, agora)
	assert.Equal(t, "2025-03-15T17:00:00.000Z", snap.UltimaAtualizacao)
}

func TestParseHour(t *testing.T) {
	h, ok := analyses.ParseHour(" 09:15")
	assert.True(t, ok)
	assert.Equal(t, 9, h)

	_, ok = analyses.ParseHour("noite")
	assert.False(t, ok)

	h, ok = analyses.ParseHour("-1:00")
	assert.True(t, ok)
	assert.Equal(t, -1, h)
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := analyses.ParseTimestamp("2025-03-10", brt)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, brt), ts)

	ts, ok = analyses.ParseTimestamp("2025-03-10T23:30:00.123Z", brt)
	require.True(t, ok)
	assert.Equal(t, 10, ts.Day())
	assert.Equal(t, 20, ts.Hour())

	_, ok = analyses.ParseTimestamp("10/03/2025", brt)
	assert.False(t, ok)
}
