package export

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/bjaus/spatialout"
)

// GeneMetadataTable writes one row per gene: total observed count, expected
// assigned count, then per component the dispersion and the mean rate over
// the cells in that component, then the background rate of every layer.
//
// A component without cells has a NaN mean rate.
func GeneMetadataTable(p *Params, genes []string, expected mat.Matrix) (*spatialout.Table, error) {
	ngenes := len(genes)
	if err := checkLen("total gene counts", len(p.TotalGeneCounts), ngenes); err != nil {
		return nil, err
	}
	if r, _ := dims(expected); r != ngenes {
		return nil, fmt.Errorf("%w: expected counts has %d rows, want %d", ErrDimension, r, ngenes)
	}
	ncomponents, sc := dims(p.Shape)
	if sc != ngenes && ncomponents > 0 {
		return nil, fmt.Errorf("%w: shape has %d columns, want %d", ErrDimension, sc, ngenes)
	}
	rr, rc := dims(p.Rates)
	if rr != ngenes || rc != p.NumCells() {
		return nil, fmt.Errorf("%w: rates is %dx%d, want %dx%d", ErrDimension, rr, rc, ngenes, p.NumCells())
	}
	br, nlayers := dims(p.BackgroundRates)
	if br != ngenes && nlayers > 0 {
		return nil, fmt.Errorf("%w: background rates has %d rows, want %d", ErrDimension, br, ngenes)
	}

	total := make(spatialout.Uint64s, ngenes)
	for g, layers := range p.TotalGeneCounts {
		for _, n := range layers {
			total[g] += uint64(n)
		}
	}
	assigned := make(spatialout.Float32s, ngenes)
	for g := range assigned {
		assigned[g] = float32(floats.Sum(mat.Row(nil, g, expected)))
	}

	schema := spatialout.Schema{
		{Name: "gene", Type: spatialout.Utf8},
		{Name: "total_count", Type: spatialout.Uint64},
		{Name: "expected_assigned_count", Type: spatialout.Float32},
	}
	cols := []spatialout.Column{spatialout.Strings(genes), total, assigned}

	for i := range ncomponents {
		schema = append(schema, spatialout.Field{Name: fmt.Sprintf("dispersion_%d", i), Type: spatialout.Float32})
		cols = append(cols, rowFloat32(p.Shape, i))
	}

	for i := range ncomponents {
		schema = append(schema, spatialout.Field{Name: fmt.Sprintf("λ_%d", i), Type: spatialout.Float32})
		cols = append(cols, componentMeanRate(p, i))
	}

	for i := range nlayers {
		schema = append(schema, spatialout.Field{Name: fmt.Sprintf("λ_bg_%d", i), Type: spatialout.Float32})
		cols = append(cols, colFloat32(p.BackgroundRates, i))
	}

	return spatialout.NewTable(schema, cols...)
}

// componentMeanRate averages the rate vectors of the cells in component.
func componentMeanRate(p *Params, component int) spatialout.Float32s {
	ngenes, _ := dims(p.Rates)
	sum := make([]float64, ngenes)
	col := make([]float64, ngenes)
	count := 0
	for cell, z := range p.Clusters {
		if int(z) != component {
			continue
		}
		floats.Add(sum, mat.Col(col, cell, p.Rates))
		count++
	}
	floats.Scale(1/float64(count), sum)
	out := make(spatialout.Float32s, ngenes)
	for g, v := range sum {
		out[g] = float32(v)
	}
	return out
}
