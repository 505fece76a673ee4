package export_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/spatialout/export"
)

func TestMetrics_Registration(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := export.NewMetrics(reg)
	require.NotNil(t, m)

	// Vec families are only gathered once a child exists.
	m.Artifacts.WithLabelValues("counts").Add(0)
	m.Rows.WithLabelValues("counts").Add(0)
	m.Bytes.WithLabelValues("counts").Add(0)
	m.Failures.WithLabelValues("counts").Add(0)
	m.WriteDuration.WithLabelValues("counts").Observe(0)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, metricFamilies, 5)

	names := make(map[string]bool)
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}
	require.True(t, names["spatialout_artifacts_written_total"])
	require.True(t, names["spatialout_rows_written_total"])
	require.True(t, names["spatialout_bytes_written_total"])
	require.True(t, names["spatialout_artifact_failures_total"])
	require.True(t, names["spatialout_write_duration_seconds"])
}

func TestMetrics_Export(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := export.NewMetrics(reg)
	exp, err := export.New(
		export.Config{Voxels: export.Output{Path: "voxels.csv"}},
		export.WithFs(afero.NewMemMapFs()),
		export.WithMetrics(m),
	)
	require.NoError(t, err)

	a, err := exp.WriteVoxels(sampleResults().Voxels)
	require.NoError(t, err)

	require.Equal(t, float64(1), testutil.ToFloat64(m.Artifacts.WithLabelValues("voxels")))
	require.Equal(t, float64(2), testutil.ToFloat64(m.Rows.WithLabelValues("voxels")))
	require.Equal(t, float64(a.Bytes), testutil.ToFloat64(m.Bytes.WithLabelValues("voxels")))
	require.Equal(t, 1, testutil.CollectAndCount(m.WriteDuration))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := export.NewMetrics(reg)
	m.Rows.WithLabelValues("counts").Add(42)

	fs := afero.NewMemMapFs()
	require.NoError(t, export.WriteTextfile(fs, "spatialout.prom", reg))

	data, err := afero.ReadFile(fs, "spatialout.prom")
	require.NoError(t, err)
	require.Contains(t, string(data), `spatialout_rows_written_total{artifact="counts"} 42`)

	exists, err := afero.Exists(fs, "spatialout.prom.tmp")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestWriteTextfileReadOnly(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	export.NewMetrics(reg)

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	require.Error(t, export.WriteTextfile(fs, "spatialout.prom", reg))
}
