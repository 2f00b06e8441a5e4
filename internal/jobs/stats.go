// Package jobs agenda as tarefas periódicas da API
package jobs

import (
	"context"
	"fmt"
	"portalseguranca/internal/config"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/service/analyses"
	"portalseguranca/internal/telemetry"
	"time"

	"github.com/robfig/cron/v3"
)

// StatsJob recalcula as estatísticas e publica os gauges do Prometheus
type StatsJob struct {
	cfg     *config.App
	timeout time.Duration
}

// NewStatsJob cria o job
func NewStatsJob(cfg *config.App) *StatsJob {
	return &StatsJob{cfg: cfg, timeout: 30 * time.Second}
}

// Run executa uma vez; erros são registrados e nunca interrompem o agendador
func (j *StatsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	snapshot, err := analyses.LoadSnapshot(ctx, j.cfg.Store, j.cfg.Now())
	if err != nil {
		telemetry.StatsJobRuns.WithLabelValues("error").Inc()
		j.cfg.Logger.Error("stats job failed", err)
		return
	}

	Publish(snapshot)
	telemetry.StatsJobRuns.WithLabelValues("ok").Inc()

	j.cfg.Logger.Info(fmt.Sprintf("stats job: %d denuncias, %d%% resolvidas, %d/%d cameras online",
		snapshot.Denuncias.Total,
		snapshot.Denuncias.TaxaResolucao,
		snapshot.Cameras.Online,
		snapshot.Cameras.Total,
	))
}

// Publish atualiza os gauges a partir do snapshot
func Publish(s dto.StatsSnapshot) {
	d := s.Denuncias
	telemetry.DenunciasPorStatus.WithLabelValues("pendente").Set(float64(d.PorStatus.Pendente))
	telemetry.DenunciasPorStatus.WithLabelValues("em_andamento").Set(float64(d.PorStatus.EmAndamento))
	telemetry.DenunciasPorStatus.WithLabelValues("resolvida").Set(float64(d.PorStatus.Resolvida))

	telemetry.DenunciasPorPrioridade.WithLabelValues("alta").Set(float64(d.PorPrioridade.Alta))
	telemetry.DenunciasPorPrioridade.WithLabelValues("media").Set(float64(d.PorPrioridade.Media))
	telemetry.DenunciasPorPrioridade.WithLabelValues("baixa").Set(float64(d.PorPrioridade.Baixa))

	c := s.Cameras
	telemetry.CamerasPorStatus.WithLabelValues("online").Set(float64(c.Online))
	telemetry.CamerasPorStatus.WithLabelValues("offline").Set(float64(c.Offline))
	telemetry.CamerasPorStatus.WithLabelValues("manutencao").Set(float64(c.Manutencao))
	telemetry.CamerasDisponibilidade.Set(float64(c.TaxaDisponibilidade))
}

// Start agenda o StatsJob em STATS_CRON, roda uma vez na subida e retorna o cron já iniciado
func Start(cfg *config.App) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(cfg.Location), cron.WithChain(cron.Recover(cronLogger{cfg})))

	job := NewStatsJob(cfg)
	if _, err := c.AddJob(cfg.Settings.StatsCron, job); err != nil {
		return nil, fmt.Errorf("invalid STATS_CRON %q: %w", cfg.Settings.StatsCron, err)
	}

	go job.Run()
	c.Start()
	cfg.Logger.Info("stats job scheduled", map[string]interface{}{"spec": cfg.Settings.StatsCron})
	return c, nil
}

// cronLogger adapta o logger da API à interface cron.Logger
type cronLogger struct {
	cfg *config.App
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.cfg.Logger.Debug("cron: "+msg, kv(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.cfg.Logger.Error("cron: "+msg, err, kv(keysAndValues))
}

func kv(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
