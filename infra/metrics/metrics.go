package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

var (
	DeltasAppliedTotal     = prometheus.NewCounter(prometheus.CounterOpts{Name: "book_deltas_applied_total", Help: "Deltas applied to the book"})
	BatchesAppliedTotal    = prometheus.NewCounter(prometheus.CounterOpts{Name: "book_batches_applied_total", Help: "Delta batches closed by an F_LAST flag"})
	SnapshotsAppliedTotal  = prometheus.NewCounter(prometheus.CounterOpts{Name: "book_snapshots_applied_total", Help: "Depth-10 snapshots applied"})
	QuotesAppliedTotal     = prometheus.NewCounter(prometheus.CounterOpts{Name: "book_quotes_applied_total", Help: "Quotes lifted into L1 books"})
	TradesAppliedTotal     = prometheus.NewCounter(prometheus.CounterOpts{Name: "book_trades_applied_total", Help: "Trades lifted into L1 books"})
	ImplicitDeletesTotal   = prometheus.NewCounter(prometheus.CounterOpts{Name: "book_implicit_deletes_total", Help: "Zero-size updates treated as deletes"})
	RecordsRejectedTotal   = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "book_records_rejected_total", Help: "Records rejected by reason"}, []string{"reason"})
	IntegrityFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{Name: "book_integrity_failures_total", Help: "Failed on-demand integrity checks"})
	BookDepthLevels        = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "book_depth_levels", Help: "Price levels per side"}, []string{"side"})
)

// Init registers all collectors on a fresh registry. Exposition is the
// embedding application's concern; the engine performs no network I/O.
func Init(logger zerolog.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		DeltasAppliedTotal, BatchesAppliedTotal, SnapshotsAppliedTotal,
		QuotesAppliedTotal, TradesAppliedTotal, ImplicitDeletesTotal,
		RecordsRejectedTotal, IntegrityFailuresTotal, BookDepthLevels,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = reg.Register(c)
	}
	logger.Info().Msg("metrics registry initialized")
	return reg
}
