package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/todoapp/backend/internal/infrastructure/storage"
)

const namespace = "todo"

// PoolStatsSource 连接池统计来源
type PoolStatsSource interface {
	Stats() storage.PoolStats
}

// ClientCounter 在线 WebSocket 客户端计数
type ClientCounter interface {
	ClientCount() int
}

// Metrics 服务的 Prometheus 指标
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewRegistry 创建独立的 Registry，附带 Go 运行时与进程指标
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics 注册 HTTP 指标与连接池、WebSocket 的采样指标
// pool 与 clients 可为 nil，此时不注册对应指标
func NewMetrics(reg *prometheus.Registry, pool PoolStatsSource, clients ClientCounter) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	if pool != nil {
		poolGauge := func(name, help string, value func(storage.PoolStats) float64) {
			factory.NewGaugeFunc(
				prometheus.GaugeOpts{Namespace: namespace, Subsystem: "db_pool", Name: name, Help: help},
				func() float64 { return value(pool.Stats()) },
			)
		}
		poolGauge("acquired_conns", "Number of connections currently borrowed from the pool",
			func(s storage.PoolStats) float64 { return float64(s.Acquired) })
		poolGauge("idle_conns", "Number of idle connections in the pool",
			func(s storage.PoolStats) float64 { return float64(s.Idle) })
		poolGauge("total_conns", "Total number of connections held by the pool",
			func(s storage.PoolStats) float64 { return float64(s.Total) })
		poolGauge("max_conns", "Maximum size of the pool",
			func(s storage.PoolStats) float64 { return float64(s.Max) })
		poolGauge("available", "1 if the database pool was established at startup",
			func(s storage.PoolStats) float64 {
				if s.Available {
					return 1
				}
				return 0
			})
	}

	if clients != nil {
		factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ws_clients",
				Help:      "Number of connected live-update clients",
			},
			func() float64 { return float64(clients.ClientCount()) },
		)
	}

	return m
}

// ObserveHTTP 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
