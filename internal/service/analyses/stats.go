package analyses

import (
	"math"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/utils"
	"strings"
	"time"
)

// MesesAbreviados são os rótulos dos meses usados nas séries do dashboard
var MesesAbreviados = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// Acima deste número de denúncias de prioridade alta o tempo de resposta anunciado cai
const limiteAltaPrioridade = 5

const (
	tempoRespostaRapido = "3min"
	tempoRespostaPadrao = "6min"
)

// ISOMillis é o formato de ultimaAtualizacao
const ISOMillis = utils.ISOMillis

// layouts aceitos para datas sem fuso, lidas no fuso de now
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ComputeStats monta o snapshot de estatísticas do dashboard.
// É uma função pura de (denuncias, cameras, now): não altera as entradas e nunca falha.
// Datas inválidas simplesmente não entram em nenhuma janela de tempo.
func ComputeStats(denuncias []entities.Denuncia, cameras []entities.Camera, now time.Time) dto.StatsSnapshot {
	loc := now.Location()
	anoAtual, mes, dia := now.Date()
	mesAtual := int(mes) - 1
	mesAnterior := (mesAtual - 1 + 12) % 12
	inicioSemana := now.Add(-7 * 24 * time.Hour)
	inicioTrimestre := now.Add(-90 * 24 * time.Hour)

	var stats dto.DenunciasStats
	var porHorario dto.PorHorario
	var comparativo dto.ComparativoAnual
	var porMesTodosAnos [12]int
	porCategoria := dto.NewHistogram()
	resolvidas := 0

	stats.Total = len(denuncias)

	for _, d := range denuncias {
		if ts, ok := ParseTimestamp(d.DataEfetiva(), loc); ok {
			y, m, dd := ts.Date()
			mi := int(m) - 1

			if y == anoAtual && m == mes && dd == dia {
				stats.Hoje++
			}
			if !ts.Before(inicioSemana) {
				stats.Semana++
			}
			if y == anoAtual && m == mes {
				stats.Mes++
			}
			if !ts.Before(inicioTrimestre) {
				stats.Trimestre++
			}
			if y == anoAtual {
				stats.Ano++
				comparativo.AnoAtual[mi]++
			}
			if y == anoAtual-1 {
				comparativo.AnoAnterior[mi]++
			}
			porMesTodosAnos[mi]++
		}

		if d.Prioridade == "alta" || bool(d.Urgente) {
			stats.PorPrioridade.Alta++
		}
		switch d.Prioridade {
		case "media", "média":
			stats.PorPrioridade.Media++
		case "baixa":
			stats.PorPrioridade.Baixa++
		}

		switch d.Status {
		case "", "pendente":
			stats.PorStatus.Pendente++
		case "em andamento", "emAndamento":
			stats.PorStatus.EmAndamento++
		case "resolvida", "resolvido", "concluído":
			stats.PorStatus.Resolvida++
			resolvidas++
		}

		porCategoria.Inc(d.Categoria())

		if hora, ok := ParseHour(d.Hora()); ok {
			switch {
			case hora >= 0 && hora < 6:
				porHorario.Madrugada++
			case hora >= 6 && hora < 12:
				porHorario.Manha++
			case hora >= 12 && hora < 18:
				porHorario.Tarde++
			case hora >= 18 && hora < 24:
				porHorario.Noite++
			}
		}
	}

	stats.TaxaResolucao = percentual(resolvidas, stats.Total)

	// a variação compara apenas o índice do mês, sem filtrar o ano
	atual, anterior := porMesTodosAnos[mesAtual], porMesTodosAnos[mesAnterior]
	if anterior > 0 {
		stats.VariacaoMensal = roundHalfUp(100 * float64(atual-anterior) / float64(anterior))
	}

	stats.TempoResposta = tempoRespostaPadrao
	if stats.PorPrioridade.Alta > limiteAltaPrioridade {
		stats.TempoResposta = tempoRespostaRapido
	}

	serie := dto.SerieMensal{
		Labels:  make([]string, 12),
		Valores: make([]int, 12),
	}
	for i := 0; i < 12; i++ {
		idx := (mesAtual - (11 - i) + 12) % 12
		serie.Labels[i] = MesesAbreviados[idx]
		serie.Valores[i] = comparativo.AnoAtual[idx]
	}

	return dto.StatsSnapshot{
		Denuncias: stats,
		Graficos: dto.Graficos{
			Ultimos12Meses:   serie,
			PorCategoria:     porCategoria,
			PorHorario:       porHorario,
			ComparativoAnual: comparativo,
		},
		Cameras:           computeCameraStats(cameras),
		UltimaAtualizacao: utils.Timestamp(now),
		DadosBrutos: dto.DadosBrutos{
			Denuncias: append(make([]entities.Denuncia, 0, len(denuncias)), denuncias...),
			Cameras:   append(make([]entities.Camera, 0, len(cameras)), cameras...),
		},
	}
}

func computeCameraStats(cameras []entities.Camera) dto.CamerasStats {
	out := dto.CamerasStats{
		Total:        len(cameras),
		PorTipo:      dto.NewHistogram(),
		PorResolucao: dto.NewHistogram(),
	}
	for _, c := range cameras {
		switch c.Status {
		case entities.CameraOnline:
			out.Online++
		case entities.CameraOffline:
			out.Offline++
		case entities.CameraMaintenance, entities.CameraManutencao:
			out.Manutencao++
		}
		out.PorTipo.Inc(c.Tipo())
		out.PorResolucao.Inc(c.Resolucao())
	}
	out.TaxaDisponibilidade = percentual(out.Online, out.Total)
	return out
}

// ParseTimestamp interpreta as datas gravadas nas denúncias.
// Valores sem fuso são lidos em loc. O segundo retorno é false para datas inválidas.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts.In(loc), true
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseHour lê o inteiro no início do texto antes de ':' (como "06" em "06:30").
// Espaços iniciais e um sinal são aceitos; sem dígitos o resultado é inválido.
func ParseHour(hora string) (int, bool) {
	campo := hora
	if i := strings.IndexByte(hora, ':'); i >= 0 {
		campo = hora[:i]
	}
	campo = strings.TrimLeft(campo, " \t\r\n")

	sinal := 1
	if strings.HasPrefix(campo, "-") {
		sinal = -1
		campo = campo[1:]
	} else if strings.HasPrefix(campo, "+") {
		campo = campo[1:]
	}

	n, digitos := 0, 0
	for digitos < len(campo) && campo[digitos] >= '0' && campo[digitos] <= '9' {
		if n < 1_000_000 {
			n = n*10 + int(campo[digitos]-'0')
		}
		digitos++
	}
	if digitos == 0 {
		return 0, false
	}
	return sinal * n, true
}

func percentual(parte, total int) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(100 * float64(parte) / float64(total))
}

// roundHalfUp arredonda .5 para cima, inclusive em negativos (-2.5 vira -2)
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
