// Package spatialout writes spatial-omics analysis results to files.
//
// It has two halves: a format-polymorphic table writer and a streaming
// GeoJSON encoder for cell footprints. Both write through an [afero.Fs] so
// callers and tests choose where files land.
//
// # Tables
//
// A [Table] pairs a [Schema] (ordered name, [Type], nullability) with one
// [Column] per field. Columns are plain typed slices:
//
//	t, err := spatialout.NewTable(
//		spatialout.Schema{
//			{Name: "cell", Type: spatialout.Uint32},
//			{Name: "volume", Type: spatialout.Float32},
//		},
//		spatialout.Uint32s{0, 1, 2},
//		spatialout.Float32s{1.5, 2.25, 3},
//	)
//
// Use [WithValidity] to mark null rows in a nullable field.
//
// # Formats
//
// [Write] encodes a table as one of:
//
//   - [CSV]: header line plus one line per row
//   - [CSVGzip]: the same bytes in a single gzip member
//   - [CSVZstd]: the same bytes in a zstd frame
//   - [Parquet]: one row group, statistics on, zstd pages, PLAIN encoding
//
// [Infer] picks the format from the file name in [WriteFile]:
//
//	sum, err := spatialout.WriteFile(afero.NewOsFs(), "cells.csv.gz", spatialout.Infer, t)
//
// Suffixes are matched in the order ".csv.gz", ".csv.zst", ".csv",
// ".parquet". Anything else fails with [ErrCannotInfer] before a file is
// created.
//
// # GeoJSON
//
// [WriteFeatures] streams a FeatureCollection with one MultiPolygon feature
// per cell (or per cell and layer) in a single forward pass. Only the feature
// being written is held in memory. [WriteGeoJSONFile] adds a gzip sink.
//
// # Fields of view
//
// [VoteFOV] assigns each cell the field of view most of its transcripts
// were imaged in.
//
// # Errors
//
//   - [ErrUnsupportedFormat]: unknown format name
//   - [ErrCannotInfer]: file name has no known suffix
//   - [ErrSchemaMismatch]: schema and columns disagree
//   - [ErrNonFinite]: NaN or infinite coordinate in a geometry
//   - [ErrOutOfRange]: cell or fov index outside the declared counts
package spatialout
