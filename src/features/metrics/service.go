package metrics

import (
	"github.com/contre95/rattlesnake/src/music"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Service exposes validation activity as Prometheus metrics. Scan totals
// accumulate for the lifetime of the process; the per-run gauges always
// describe the most recently completed scan.
type Service struct {
	registry *prometheus.Registry

	scansTotal    prometheus.Counter
	scanDuration  prometheus.Gauge
	filesScanned  prometheus.Gauge
	filesIssues   prometheus.Gauge
	filesErrors   prometheus.Gauge
	missingFields *prometheus.GaugeVec
}

// NewService creates the metrics service with its own registry.
func NewService() *Service {
	s := &Service{
		registry: prometheus.NewRegistry(),
		scansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rattlesnake",
			Name:      "scans_total",
			Help:      "Completed validation scans since startup.",
		}),
		scanDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rattlesnake",
			Name:      "scan_duration_seconds",
			Help:      "Wall time of the latest scan.",
		}),
		filesScanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rattlesnake",
			Name:      "files_scanned",
			Help:      "Files checked by the latest scan.",
		}),
		filesIssues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rattlesnake",
			Name:      "files_with_issues",
			Help:      "Files in the latest scan missing at least one metadata field.",
		}),
		filesErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rattlesnake",
			Name:      "files_with_errors",
			Help:      "Files in the latest scan that could not be read.",
		}),
		missingFields: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rattlesnake",
			Name:      "files_missing_metadata",
			Help:      "Files in the latest scan missing a metadata field, by field.",
		}, []string{"field"}),
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.scansTotal,
		s.scanDuration,
		s.filesScanned,
		s.filesIssues,
		s.filesErrors,
		s.missingFields,
	)
	return s
}

// Registry returns the registry backing the /metrics endpoint.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Observe records a completed scan. Every gauge is set on each call so a
// field that recovered drops back to zero instead of going stale.
func (s *Service) Observe(run *music.ScanRun) {
	if run == nil {
		return
	}

	var art, album, artist, track int
	for _, r := range run.Results {
		if r.MissingAlbumArt {
			art++
		}
		if r.MissingAlbum {
			album++
		}
		if r.MissingArtist {
			artist++
		}
		if r.MissingTrackNumber {
			track++
		}
	}

	s.scansTotal.Inc()
	s.scanDuration.Set(run.Duration.Seconds())
	s.filesScanned.Set(float64(run.TotalFiles()))
	s.filesIssues.Set(float64(run.FilesWithIssues()))
	s.filesErrors.Set(float64(run.FilesWithErrors()))
	s.missingFields.WithLabelValues("album_art").Set(float64(art))
	s.missingFields.WithLabelValues("album").Set(float64(album))
	s.missingFields.WithLabelValues("artist").Set(float64(artist))
	s.missingFields.WithLabelValues("track_number").Set(float64(track))
}
