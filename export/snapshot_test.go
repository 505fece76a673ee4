package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/spatialout/export"
)

func sampleSnapshot() *export.Snapshot {
	r := sampleResults()
	return &export.Snapshot{
		GeneNames:           r.GeneNames,
		FOVNames:            r.FOVNames,
		Counts:              r.Counts,
		ExpectedCounts:      [][]float64{{0.5, 0, 1.5}, {0.25, 2, 3}},
		Rates:               [][]float64{{1, 2, 3}, {4, 5, 6}},
		Shape:               [][]float64{{0.5, 1}, {2, 4}, {8, 16}},
		Phi:                 [][]float64{{0, 1}, {2, 3}, {0, 0}},
		BackgroundRates:     [][]float64{{0.1, 0.2}, {0.3, 0.4}},
		TotalGeneCounts:     r.Params.TotalGeneCounts,
		Clusters:            r.Params.Clusters,
		CellVolume:          r.Params.CellVolume,
		CellPopulation:      r.Params.CellPopulation,
		CellCentroids:       r.CellCentroids,
		Transcripts:         r.Transcripts,
		TranscriptPositions: r.TranscriptPositions,
		Assignments:         r.Assignments,
		States:              r.States,
		Voxels:              r.Voxels,
		CellPolygons:        r.CellPolygons,
		CellLayeredPolygons: r.CellLayeredPolygons,
	}
}

func TestReadSnapshot(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(sampleSnapshot())
	require.NoError(t, err)

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "results.json", data, 0o644))
	require.NoError(t, afero.WriteFile(fs, "results.json.gz", gz.Bytes(), 0o644))

	for _, path := range []string{"results.json", "results.json.gz"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			snap, err := export.ReadSnapshot(fs, path)
			require.NoError(t, err)
			assert.Equal(t, sampleSnapshot(), snap)
		})
	}
}

func TestSnapshotResults(t *testing.T) {
	t.Parallel()
	r, err := sampleSnapshot().Results()
	require.NoError(t, err)
	want := sampleResults()

	assert.Equal(t, want.GeneNames, r.GeneNames)
	assert.Equal(t, 3, r.Params.NumComponents())
	assert.Equal(t, 3, r.Params.NumCells())
	assert.InDelta(t, 6, r.Params.Rates.At(1, 2), 0)
	assert.InDelta(t, 0.4, r.Params.BackgroundRates.At(1, 1), 0)
	assert.InDelta(t, 3, r.ExpectedCounts.At(1, 2), 0)

	// The converted results export like the hand-built ones.
	got, err := export.GeneMetadataTable(r.Params, r.GeneNames, r.ExpectedCounts)
	require.NoError(t, err)
	expected, err := export.GeneMetadataTable(want.Params, want.GeneNames, want.ExpectedCounts)
	require.NoError(t, err)
	assert.Equal(t, expected.Schema, got.Schema)
	assert.Equal(t, texts(column(t, expected, "λ_1")), texts(column(t, got, "λ_1")))
}

func TestSnapshotResultsNoCells(t *testing.T) {
	t.Parallel()
	snap := &export.Snapshot{
		GeneNames:       []string{"Actb", "Gapdh"},
		Counts:          [][]uint32{{}, {}},
		ExpectedCounts:  [][]float64{{}, {}},
		Rates:           [][]float64{{}, {}},
		TotalGeneCounts: [][]uint32{{}, {}},
	}
	r, err := snap.Results()
	require.NoError(t, err)

	rows, cols := r.Params.Rates.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 0, cols)

	tbl, err := export.ExpectedCountsTable(r.GeneNames, r.ExpectedCounts)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())

	tbl, err = export.GeneMetadataTable(r.Params, r.GeneNames, r.ExpectedCounts)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
}

func TestSnapshotResultsRagged(t *testing.T) {
	t.Parallel()
	snap := sampleSnapshot()
	snap.Rates = [][]float64{{1, 2, 3}, {4, 5}}
	_, err := snap.Results()
	require.ErrorIs(t, err, export.ErrDimension)
}

func TestDecodeSnapshotRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, err := export.DecodeSnapshot(strings.NewReader(`{"gene_names": ["a"], "genes": 1}`))
	require.Error(t, err)
}

func TestTranscriptStateJSON(t *testing.T) {
	t.Parallel()
	states := []export.TranscriptState{export.StateForeground, export.StateBackground, export.StateConfusion}
	data, err := json.Marshal(states)
	require.NoError(t, err)
	assert.JSONEq(t, `["foreground", "background", "confusion"]`, string(data))

	var got []export.TranscriptState
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, states, got)

	require.Error(t, json.Unmarshal([]byte(`["unknown"]`), &got))
}
