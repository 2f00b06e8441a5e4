// Package telemetry expõe as métricas Prometheus da API
package telemetry

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portal_seguranca"

var (
	// HTTPRequests conta as requisições por rota e status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP atendidas",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration mede a latência por rota
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latência das requisições HTTP",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// DenunciasPorStatus é atualizado pelo job de estatísticas
	DenunciasPorStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "denuncias",
			Help:      "Denúncias por status",
		},
		[]string{"status"},
	)

	// DenunciasPorPrioridade é atualizado pelo job de estatísticas
	DenunciasPorPrioridade = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "denuncias_prioridade",
			Help:      "Denúncias por prioridade (alta inclui as urgentes)",
		},
		[]string{"prioridade"},
	)

	// CamerasPorStatus é atualizado pelo job de estatísticas
	CamerasPorStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cameras",
			Help:      "Câmeras por status",
		},
		[]string{"status"},
	)

	// CamerasDisponibilidade em percentual
	CamerasDisponibilidade = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cameras_disponibilidade_percent",
			Help:      "Percentual de câmeras online",
		},
	)

	// StatsJobRuns conta execuções do job por resultado
	StatsJobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_job_runs_total",
			Help:      "Execuções do job de estatísticas",
		},
		[]string{"result"},
	)

	once sync.Once
)

// InitMetrics registra as métricas no registry padrão; pode ser chamada mais de uma vez
func InitMetrics() {
	once.Do(func() {
		for _, c := range []prometheus.Collector{
			HTTPRequests,
			HTTPDuration,
			DenunciasPorStatus,
			DenunciasPorPrioridade,
			CamerasPorStatus,
			CamerasDisponibilidade,
			StatsJobRuns,
		} {
			_ = prometheus.DefaultRegisterer.Register(c)
		}
	})
}

// ObserveRequest registra uma requisição atendida
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
