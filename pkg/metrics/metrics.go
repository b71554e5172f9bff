package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storelake_etl_build_info",
			Help: "Build information of the storelake ETL",
		},
		[]string{"version", "commit", "date"},
	)

	RecordsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storelake_etl_records_extracted_total",
			Help: "Total number of raw records extracted from the source, by collection",
		},
		[]string{"collection"},
	)

	OrdersSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storelake_etl_orders_skipped_total",
			Help: "Total number of orders dropped during fact construction, by reason",
		},
		[]string{"reason"},
	)

	ItemsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storelake_etl_order_items_skipped_total",
			Help: "Total number of order items dropped during fact construction, by reason",
		},
		[]string{"reason"},
	)

	LocationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storelake_etl_location_fallbacks_total",
			Help: "Total number of fact rows that fell back to the default location row",
		},
	)

	RowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storelake_etl_rows_loaded_total",
			Help: "Total number of rows loaded into the warehouse, by table",
		},
		[]string{"table"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storelake_etl_run_duration_seconds",
			Help:    "Duration of complete ETL runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
