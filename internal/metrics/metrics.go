// Package metrics holds the Prometheus instruments of the theme layer.  All
// collectors are registered with the global registry, so importing this
// package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Asset lookup outcomes used as the "result" label.
const (
	AssetHit    = "hit"
	AssetParent = "parent"
	AssetMiss   = "miss"
)

var (
	InstalledThemes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "theme_installed",
			Help: "Number of themes with a manifest found by the last scan.",
		})

	ScanTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "theme_scan_total",
			Help: "Cumulative number of theme directory scans.",
		})

	ActivationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "theme_activation_total",
			Help: "Theme activations by theme name.",
		}, []string{"theme"})

	ActivationErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "theme_activation_errors_total",
			Help: "Cumulative number of failed theme activations.",
		})

	AssetLookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "theme_asset_lookup_total",
			Help: "Asset path resolutions by outcome.",
		}, []string{"result"})

	GeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "theme_generated_total",
			Help: "Cumulative number of scaffolded themes.",
		})
)

func init() {
	prometheus.MustRegister(
		InstalledThemes,
		ScanTotal,
		ActivationTotal,
		ActivationErrorsTotal,
		AssetLookupTotal,
		GeneratedTotal,
	)
}
