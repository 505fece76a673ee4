package export

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bjaus/spatialout"
)

// ComponentParamsTable writes one row per gene: the gene name, then for each
// mixture component i the shape α_i (r) and β_i = exp(−φ_i).
func ComponentParamsTable(genes []string, shape, phi mat.Matrix) (*spatialout.Table, error) {
	ncomponents, ngenes := dims(shape)
	if pr, pc := dims(phi); pr != ncomponents || pc != ngenes {
		return nil, fmt.Errorf("%w: shape is %dx%d, phi is %dx%d", ErrDimension, ncomponents, ngenes, pr, pc)
	}
	if err := checkLen("genes", len(genes), ngenes); err != nil {
		return nil, err
	}

	schema := spatialout.Schema{{Name: "gene", Type: spatialout.Utf8}}
	cols := []spatialout.Column{spatialout.Strings(genes)}
	for i := range ncomponents {
		beta := make(spatialout.Float32s, ngenes)
		for j := range beta {
			beta[j] = float32(math.Exp(-phi.At(i, j)))
		}
		schema = append(schema,
			spatialout.Field{Name: fmt.Sprintf("α_%d", i), Type: spatialout.Float32},
			spatialout.Field{Name: fmt.Sprintf("β_%d", i), Type: spatialout.Float32},
		)
		cols = append(cols, rowFloat32(shape, i), beta)
	}
	return spatialout.NewTable(schema, cols...)
}
