package export

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bjaus/spatialout"
)

// CountsTable lays out a genes × cells count matrix as one uint32 column per
// gene and one row per cell.
func CountsTable(genes []string, counts [][]uint32) (*spatialout.Table, error) {
	if err := checkLen("counts", len(counts), len(genes)); err != nil {
		return nil, err
	}
	schema := make(spatialout.Schema, len(genes))
	cols := make([]spatialout.Column, len(genes))
	for i, gene := range genes {
		schema[i] = spatialout.Field{Name: gene, Type: spatialout.Uint32}
		cols[i] = spatialout.Uint32s(counts[i])
	}
	return spatialout.NewTable(schema, cols...)
}

// ExpectedCountsTable lays out a genes × cells matrix of expected counts like
// CountsTable, with float32 columns.
func ExpectedCountsTable(genes []string, expected mat.Matrix) (*spatialout.Table, error) {
	return geneColumnsTable(genes, expected)
}

// RatesTable lays out the fitted per-cell expression rates λ (genes × cells)
// with one float32 column per gene.
func RatesTable(genes []string, rates mat.Matrix) (*spatialout.Table, error) {
	return geneColumnsTable(genes, rates)
}

func geneColumnsTable(genes []string, m mat.Matrix) (*spatialout.Table, error) {
	ngenes, _ := dims(m)
	if err := checkLen("matrix rows", ngenes, len(genes)); err != nil {
		return nil, err
	}
	schema := make(spatialout.Schema, len(genes))
	cols := make([]spatialout.Column, len(genes))
	for i, gene := range genes {
		schema[i] = spatialout.Field{Name: gene, Type: spatialout.Float32}
		cols[i] = rowFloat32(m, i)
	}
	return spatialout.NewTable(schema, cols...)
}
