package analyses

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

const (
	larguraRotulo = 120.0
	larguraValor  = 60.0
	alturaLinha   = 7.0
)

// GetRelatorio handles GET /api/analyses/relatorio
// @Summary      Relatório em PDF
// @Description  Gera o relatório consolidado das estatísticas em PDF
// @Tags         analyses
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      401  {object}  dto.AuthErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /analyses/relatorio [get]
func GetRelatorio(cfg *config.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		now := cfg.Now()
		snapshot, err := LoadSnapshot(ctx, cfg.Store, now)
		if err != nil {
			cfg.Logger.Error("Error loading stats for report", err)
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", "Erro ao gerar relatório", err.Error()))
			return
		}

		var buf bytes.Buffer
		if err := RenderReport(&buf, snapshot, now); err != nil {
			cfg.Logger.Error("Error rendering report", err)
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(c, http.StatusInternalServerError, "Internal Server Error", "Erro ao gerar relatório", err.Error()))
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=relatorio-%s.pdf", now.Format("20060102")))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

// RenderReport escreve o snapshot como PDF em w
func RenderReport(w io.Writer, s dto.StatsSnapshot, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Relatório de Segurança Pública", true)
	pdf.SetCreator("Portal de Segurança Pública", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Segurança Pública"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Gerado em "+now.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	d := s.Denuncias
	section(pdf, tr, "Denúncias", [][2]string{
		{"Total", strconv.Itoa(d.Total)},
		{"Hoje", strconv.Itoa(d.Hoje)},
		{"Últimos 7 dias", strconv.Itoa(d.Semana)},
		{"Mês atual", strconv.Itoa(d.Mes)},
		{"Últimos 90 dias", strconv.Itoa(d.Trimestre)},
		{"Ano atual", strconv.Itoa(d.Ano)},
		{"Taxa de resolução", fmt.Sprintf("%d%%", d.TaxaResolucao)},
		{"Variação mensal", fmt.Sprintf("%d%%", d.VariacaoMensal)},
		{"Tempo de resposta", d.TempoResposta},
	})

	section(pdf, tr, "Prioridade", [][2]string{
		{"Alta (inclui urgentes)", strconv.Itoa(d.PorPrioridade.Alta)},
		{"Média", strconv.Itoa(d.PorPrioridade.Media)},
		{"Baixa", strconv.Itoa(d.PorPrioridade.Baixa)},
	})

	section(pdf, tr, "Status", [][2]string{
		{"Pendente", strconv.Itoa(d.PorStatus.Pendente)},
		{"Em andamento", strconv.Itoa(d.PorStatus.EmAndamento)},
		{"Resolvida", strconv.Itoa(d.PorStatus.Resolvida)},
	})

	section(pdf, tr, "Por categoria", histogramRows(s.Graficos.PorCategoria))

	h := s.Graficos.PorHorario
	section(pdf, tr, "Por horário", [][2]string{
		{"Madrugada (00h-06h)", strconv.Itoa(h.Madrugada)},
		{"Manhã (06h-12h)", strconv.Itoa(h.Manha)},
		{"Tarde (12h-18h)", strconv.Itoa(h.Tarde)},
		{"Noite (18h-24h)", strconv.Itoa(h.Noite)},
	})

	serie := make([][2]string, 0, len(s.Graficos.Ultimos12Meses.Labels))
	for i, label := range s.Graficos.Ultimos12Meses.Labels {
		serie = append(serie, [2]string{label, strconv.Itoa(s.Graficos.Ultimos12Meses.Valores[i])})
	}
	section(pdf, tr, "Últimos 12 meses", serie)

	cam := s.Cameras
	section(pdf, tr, "Câmeras", [][2]string{
		{"Total", strconv.Itoa(cam.Total)},
		{"Online", strconv.Itoa(cam.Online)},
		{"Offline", strconv.Itoa(cam.Offline)},
		{"Manutenção", strconv.Itoa(cam.Manutencao)},
		{"Disponibilidade", fmt.Sprintf("%d%%", cam.TaxaDisponibilidade)},
	})
	section(pdf, tr, "Câmeras por tipo", histogramRows(cam.PorTipo))
	section(pdf, tr, "Câmeras por resolução", histogramRows(cam.PorResolucao))

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	return pdf.Output(w)
}

func histogramRows(h dto.Histogram) [][2]string {
	rows := make([][2]string, 0, h.Len())
	for _, e := range h.Entries() {
		rows = append(rows, [2]string{e.Name, strconv.Itoa(e.Value)})
	}
	return rows
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows [][2]string) {
	// título e primeira linha ficam na mesma página
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+3*alturaLinha > pageH-bottom-15 {
		pdf.AddPage()
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(230, 236, 245)
	pdf.CellFormat(larguraRotulo+larguraValor, alturaLinha+1, tr(title), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(larguraRotulo+larguraValor, alturaLinha, tr("Sem dados"), "B", 1, "L", false, 0, "")
	}
	for _, row := range rows {
		pdf.CellFormat(larguraRotulo, alturaLinha, tr(row[0]), "B", 0, "L", false, 0, "")
		pdf.CellFormat(larguraValor, alturaLinha, tr(row[1]), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
