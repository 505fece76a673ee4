// Package export turns final analysis results into the canonical output
// files: count and rate matrices, component parameters, cell, transcript and
// gene metadata, voxel extents, and cell polygons.
//
// Each artifact has a pure assembler (CountsTable, CellMetadataTable, ...)
// that flattens an in-memory structure into a [spatialout.Table], and a
// method on [Exporter] that writes it to the path configured for it. An
// artifact without a path is skipped without error.
//
// [Exporter.Export] writes every configured artifact from a [Results] value
// and returns a [Report]. It stops at the first failure unless
// Config.ContinueOnError is set.
package export
