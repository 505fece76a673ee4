package export

import "github.com/bjaus/spatialout"

// VoxelTable writes one row per voxel: the owning cell and the voxel's
// minimum and maximum corners.
func VoxelTable(voxels []Voxel) (*spatialout.Table, error) {
	coord := func(fn func(Voxel) float32) spatialout.Float32s {
		return project(voxels, fn)
	}
	return spatialout.NewTable(
		spatialout.Schema{
			{Name: "cell", Type: spatialout.Uint32},
			{Name: "x0", Type: spatialout.Float32},
			{Name: "y0", Type: spatialout.Float32},
			{Name: "z0", Type: spatialout.Float32},
			{Name: "x1", Type: spatialout.Float32},
			{Name: "y1", Type: spatialout.Float32},
			{Name: "z1", Type: spatialout.Float32},
		},
		spatialout.Uint32s(project(voxels, func(v Voxel) uint32 { return v.Cell })),
		coord(func(v Voxel) float32 { return v.X0 }),
		coord(func(v Voxel) float32 { return v.Y0 }),
		coord(func(v Voxel) float32 { return v.Z0 }),
		coord(func(v Voxel) float32 { return v.X1 }),
		coord(func(v Voxel) float32 { return v.Y1 }),
		coord(func(v Voxel) float32 { return v.Z1 }),
	)
}
