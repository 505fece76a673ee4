package export

import (
	"fmt"
	"math"

	"github.com/bjaus/spatialout"
)

// CellMetadataTable writes one row per cell: its id, centroid, voted field of
// view (null when no transcript voted), cluster, volume and population.
// cellFOVs comes from spatialout.VoteFOV.
func CellMetadataTable(p *Params, centroids []Position, cellFOVs []uint32, fovNames []string) (*spatialout.Table, error) {
	ncells := p.NumCells()
	for _, c := range []struct {
		name string
		n    int
	}{
		{"centroids", len(centroids)},
		{"cell fovs", len(cellFOVs)},
		{"cell volumes", len(p.CellVolume)},
		{"cell populations", len(p.CellPopulation)},
	} {
		if err := checkLen(c.name, c.n, ncells); err != nil {
			return nil, err
		}
	}

	ids := make(spatialout.Uint32s, ncells)
	for i := range ids {
		ids[i] = uint32(i)
	}

	fovs := make(spatialout.Strings, ncells)
	valid := make([]bool, ncells)
	for i, fov := range cellFOVs {
		if fov == spatialout.NoFOV {
			continue
		}
		if int(fov) >= len(fovNames) {
			return nil, fmt.Errorf("%w: cell %d voted fov %d of %d", spatialout.ErrOutOfRange, i, fov, len(fovNames))
		}
		fovs[i], valid[i] = fovNames[fov], true
	}

	clusters := make(spatialout.Uint16s, ncells)
	for i, z := range p.Clusters {
		if z > math.MaxUint16 {
			return nil, fmt.Errorf("%w: cell %d has cluster %d", spatialout.ErrOutOfRange, i, z)
		}
		clusters[i] = uint16(z)
	}

	return spatialout.NewTable(
		spatialout.Schema{
			{Name: "cell", Type: spatialout.Uint32},
			{Name: "centroid_x", Type: spatialout.Float32},
			{Name: "centroid_y", Type: spatialout.Float32},
			{Name: "centroid_z", Type: spatialout.Float32},
			{Name: "fov", Type: spatialout.Utf8, Nullable: true},
			{Name: "cluster", Type: spatialout.Uint16},
			{Name: "volume", Type: spatialout.Float32},
			{Name: "population", Type: spatialout.Uint64},
		},
		ids,
		spatialout.Float32s(project(centroids, func(c Position) float32 { return c.X })),
		spatialout.Float32s(project(centroids, func(c Position) float32 { return c.Y })),
		spatialout.Float32s(project(centroids, func(c Position) float32 { return c.Z })),
		spatialout.WithValidity(fovs, valid),
		clusters,
		spatialout.Float32s(p.CellVolume),
		spatialout.Uint64s(project(p.CellPopulation, func(n uint32) uint64 { return uint64(n) })),
	)
}

// CellFOVs runs the field of view vote for the cells of r.
func CellFOVs(r *Results) ([]uint32, error) {
	if err := checkLen("transcript assignments", len(r.Assignments), len(r.Transcripts)); err != nil {
		return nil, err
	}
	cells := project(r.Assignments, func(a Assignment) uint32 { return a.Cell })
	fovs := project(r.Transcripts, func(t Transcript) uint32 { return t.FOV })
	return spatialout.VoteFOV(len(r.CellCentroids), len(r.FOVNames), cells, fovs)
}
