package export

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
)

// Metrics holds the Prometheus metrics recorded by an Exporter. Every metric
// is labelled by artifact name.
type Metrics struct {
	Artifacts     *prometheus.CounterVec
	Rows          *prometheus.CounterVec
	Bytes         *prometheus.CounterVec
	Failures      *prometheus.CounterVec
	WriteDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	artifacts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spatialout_artifacts_written_total",
		Help: "Total artifacts written",
	}, []string{"artifact"})

	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spatialout_rows_written_total",
		Help: "Total table rows or GeoJSON features written",
	}, []string{"artifact"})

	bytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spatialout_bytes_written_total",
		Help: "Total bytes written to artifact files",
	}, []string{"artifact"})

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "spatialout_artifact_failures_total",
		Help: "Total artifacts that failed to write",
	}, []string{"artifact"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spatialout_write_duration_seconds",
		Help:    "Time spent assembling and writing an artifact",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"artifact"})

	reg.MustRegister(artifacts, rows, bytes, failures, duration)

	return &Metrics{
		Artifacts:     artifacts,
		Rows:          rows,
		Bytes:         bytes,
		Failures:      failures,
		WriteDuration: duration,
	}
}

func (m *Metrics) observe(a *Artifact) {
	if m == nil {
		return
	}
	m.WriteDuration.WithLabelValues(a.Name).Observe(a.Duration.Seconds())
	if a.Error != "" {
		m.Failures.WithLabelValues(a.Name).Inc()
		return
	}
	m.Artifacts.WithLabelValues(a.Name).Inc()
	m.Rows.WithLabelValues(a.Name).Add(float64(a.Rows))
	m.Bytes.WithLabelValues(a.Name).Add(float64(a.Bytes))
}

// WriteTextfile writes everything g gathers to path on fsys in the text
// exposition format, for node exporter's textfile collector. The file is
// written under a temporary name and renamed into place.
func WriteTextfile(fsys afero.Fs, path string, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fsys, tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}
