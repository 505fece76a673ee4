package export_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bjaus/spatialout"
	"github.com/bjaus/spatialout/export"
)

// sampleResults has 2 genes, 3 cells in 3 components (the last one empty),
// 2 layers, 2 fields of view and 4 transcripts.
func sampleResults() *export.Results {
	bg := spatialout.BackgroundCell
	return &export.Results{
		GeneNames: []string{"Actb", "Gapdh"},
		FOVNames:  []string{"fov_a", "fov_b"},
		Params: &export.Params{
			Rates:           mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
			Shape:           mat.NewDense(3, 2, []float64{0.5, 1, 2, 4, 8, 16}),
			Phi:             mat.NewDense(3, 2, []float64{0, 1, 2, 3, 0, 0}),
			BackgroundRates: mat.NewDense(2, 2, []float64{0.1, 0.2, 0.3, 0.4}),
			TotalGeneCounts: [][]uint32{{1, 2}, {3, 4}},
			Clusters:        []uint32{0, 0, 1},
			CellVolume:      []float32{1, 2, 3},
			CellPopulation:  []uint32{10, 20, 30},
		},
		Counts:         [][]uint32{{1, 0, 2}, {0, 3, 4}},
		ExpectedCounts: mat.NewDense(2, 3, []float64{0.5, 0, 1.5, 0.25, 2, 3}),
		CellCentroids:  []export.Position{{X: 1, Y: 1, Z: 0}, {X: 5, Y: 5, Z: 1}, {X: 9, Y: 9, Z: 2}},
		Transcripts: []export.Transcript{
			{ID: 100, X: 1, Y: 1, Z: 0, Gene: 0, FOV: 1},
			{ID: 101, X: 1.5, Y: 1, Z: 0, Gene: 1, FOV: 1},
			{ID: 102, X: 5, Y: 5, Z: 1, Gene: 1, FOV: 0},
			{ID: 103, X: 20, Y: 20, Z: 2, Gene: 0, FOV: 0},
		},
		TranscriptPositions: []export.Position{{X: 1.1, Y: 1}, {X: 1.4, Y: 1}, {X: 5, Y: 5.1, Z: 1}, {X: 20, Y: 20, Z: 2}},
		Assignments: []export.Assignment{
			{Cell: 0, Probability: 0.9},
			{Cell: 0, Probability: 0.8},
			{Cell: 1, Probability: 0.5},
			{Cell: bg, Probability: 0},
		},
		States: []export.TranscriptState{
			export.StateForeground, export.StateBackground, export.StateConfusion, export.StateBackground,
		},
		Voxels: []export.Voxel{
			{Cell: 0, X0: 0, Y0: 0, Z0: 0, X1: 1, Y1: 1, Z1: 1},
			{Cell: 2, X0: 8, Y0: 8, Z0: 2, X1: 9, Y1: 9, Z1: 3},
		},
		CellPolygons: []orb.MultiPolygon{
			{{{{0, 0}, {2, 0}, {2, 2}, {0, 0}}}},
			{{{{4, 4}, {6, 4}, {6, 6}, {4, 4}}}},
			nil,
		},
		CellLayeredPolygons: [][]spatialout.LayerPolygon{
			{{Layer: 0, Geometry: orb.MultiPolygon{{{{0, 0}, {2, 0}, {2, 2}, {0, 0}}}}}},
			{{Layer: 1, Geometry: orb.MultiPolygon{{{{4, 4}, {6, 4}, {6, 6}, {4, 4}}}}}},
			nil,
		},
	}
}

// column returns the column of tbl named name.
func column(t *testing.T, tbl *spatialout.Table, name string) spatialout.Column {
	t.Helper()
	for i, f := range tbl.Schema {
		if f.Name == name {
			return tbl.Columns[i]
		}
	}
	require.Failf(t, "missing column", "no column %q in %v", name, tbl.Schema.Names())
	return nil
}

// texts renders every row of col, with "<null>" for nulls.
func texts(col spatialout.Column) []string {
	out := make([]string, col.Len())
	for i := range out {
		s, ok := spatialout.Text(col, i)
		if !ok {
			s = "<null>"
		}
		out[i] = s
	}
	return out
}
