package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portops_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portops_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portops_import_rows_total",
			Help: "Import rows processed, by outcome (merged, skipped)",
		},
		[]string{"outcome"},
	)

	TallyApprovalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portops_tally_approvals_total",
			Help: "Tally report approvals",
		},
	)

	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portops_ws_clients",
			Help: "Currently connected websocket clients",
		},
	)
)
