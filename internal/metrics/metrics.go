package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"badtakes/internal/db"
)

var (
	submissionStatusDesc = prometheus.NewDesc(
		"badtakes_submissions",
		"Number of submissions by moderation status",
		[]string{"status"},
		nil,
	)

	intakeOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badtakes_intake_outcomes_total",
			Help: "Total intake requests by disposition",
		},
		[]string{"disposition"},
	)

	priceLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badtakes_price_lookups_total",
			Help: "Total Bitcoin price lookups by source",
		},
		[]string{"source"},
	)
)

// StatusCollector is a custom Prometheus collector that reads submission
// counts from the database on each scrape.
type StatusCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *StatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- submissionStatusDesc
}

// Collect queries the database for per-status counts and emits them as gauges.
func (c *StatusCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.CountByStatus(context.Background())
	if err != nil {
		slog.Error("failed to collect submission status metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			submissionStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			string(status),
		)
	}
}

var initOnce sync.Once

// Init registers all collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&StatusCollector{db: database})
		prometheus.MustRegister(intakeOutcomes, priceLookups)
	})
}

// RecordIntake counts one intake request by its disposition.
func RecordIntake(disposition string) {
	intakeOutcomes.WithLabelValues(disposition).Inc()
}

// RecordPriceLookup counts one price lookup. Source is "cache" or "oracle".
func RecordPriceLookup(source string) {
	priceLookups.WithLabelValues(source).Inc()
}
