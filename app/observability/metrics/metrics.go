package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	TourRequestsTotal     metric.Int64Counter
	TourDurationSeconds   metric.Float64Histogram
	OracleCallsTotal      metric.Int64Counter
	CacheHitsTotal        metric.Int64Counter
	CacheMissesTotal      metric.Int64Counter
	ChaptersRejectedTotal metric.Int64Counter
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() { // Ensure this only runs once
		meter := otel.GetMeterProvider().Meter("GoTourChapters") // Get meter from global provider
		var err error
		m := &AppMetrics{}

		m.TourRequestsTotal, err = meter.Int64Counter(
			"tour_requests_total",
			metric.WithDescription("Total number of tour generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tour_requests_total: %v", err)
		}

		m.TourDurationSeconds, err = meter.Float64Histogram(
			"tour_duration_seconds",
			metric.WithDescription("Duration of tour generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tour_duration_seconds: %v", err)
		}

		m.OracleCallsTotal, err = meter.Int64Counter(
			"oracle_calls_total",
			metric.WithDescription("Total number of external oracle calls"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create oracle_calls_total: %v", err)
		}

		m.CacheHitsTotal, err = meter.Int64Counter(
			"cache_hits_total",
			metric.WithDescription("Total number of tour cache hits"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create cache_hits_total: %v", err)
		}

		m.CacheMissesTotal, err = meter.Int64Counter(
			"cache_misses_total",
			metric.WithDescription("Total number of tour cache misses"),
			metric.WithUnit("{miss}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create cache_misses_total: %v", err)
		}

		m.ChaptersRejectedTotal, err = meter.Int64Counter(
			"chapters_rejected_total",
			metric.WithDescription("Total number of chapters rejected by reality verification"),
			metric.WithUnit("{chapter}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create chapters_rejected_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m // Assign to global variable
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		// This indicates a programming error - InitAppMetrics must be called at startup.
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
