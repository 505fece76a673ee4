package spatialout

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/spf13/afero"
)

// Feature is one cell footprint in a FeatureCollection. Layer is only
// written when HasLayer is set.
type Feature struct {
	Cell     uint32
	Layer    int32
	HasLayer bool
	Geometry orb.MultiPolygon
}

// LayerPolygon is the footprint of a cell within one z-layer.
type LayerPolygon struct {
	Layer    int32            `json:"layer"`
	Geometry orb.MultiPolygon `json:"geometry"`
}

// CellFeatures yields one feature per cell. The cell id is the slice index.
func CellFeatures(polygons []orb.MultiPolygon) iter.Seq[Feature] {
	return func(yield func(Feature) bool) {
		for cell, mp := range polygons {
			if !yield(Feature{Cell: uint32(cell), Geometry: mp}) {
				return
			}
		}
	}
}

// LayeredCellFeatures yields one feature per (cell, layer) pair, cells in
// index order and layers in the order given.
func LayeredCellFeatures(polygons [][]LayerPolygon) iter.Seq[Feature] {
	return func(yield func(Feature) bool) {
		for cell, layers := range polygons {
			for _, lp := range layers {
				f := Feature{Cell: uint32(cell), Layer: lp.Layer, HasLayer: true, Geometry: lp.Geometry}
				if !yield(f) {
					return
				}
			}
		}
	}
}

// WriteCellPolygons writes a FeatureCollection with one MultiPolygon feature
// per cell.
func WriteCellPolygons(w io.Writer, polygons []orb.MultiPolygon) error {
	return WriteFeatures(w, CellFeatures(polygons))
}

// WriteLayeredCellPolygons writes a FeatureCollection with one MultiPolygon
// feature per cell and layer.
func WriteLayeredCellPolygons(w io.Writer, polygons [][]LayerPolygon) error {
	return WriteFeatures(w, LayeredCellFeatures(polygons))
}

// WriteFeatures streams a GeoJSON FeatureCollection to w in a single pass
// over features. Only exterior rings are written; holes are dropped.
func WriteFeatures(w io.Writer, features iter.Seq[Feature]) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("{\n  \"type\": \"FeatureCollection\",\n  \"features\": "); err != nil {
		return err
	}
	if err := writeArray(bw, "  ", features, writeFeature); err != nil {
		return err
	}
	if _, err := bw.WriteString("\n}\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteGeoJSONFile creates path on fsys and streams the FeatureCollection
// through gzip into it. Summary.Rows counts features; Summary.Format is empty.
func WriteGeoJSONFile(fsys afero.Fs, path string, features iter.Seq[Feature]) (Summary, error) {
	sum := Summary{Path: path}
	counted := func(yield func(Feature) bool) {
		for f := range features {
			sum.Rows++
			if !yield(f) {
				return
			}
		}
	}
	var err error
	sum.Bytes, err = createFile(fsys, path, func(w io.Writer) error {
		gz := newGzipWriter(w)
		if err := WriteFeatures(gz, counted); err != nil {
			_ = gz.Close()
			return err
		}
		return gz.Close()
	})
	if err != nil {
		return sum, fmt.Errorf("write geojson file %s: %w", path, err)
	}
	return sum, nil
}

func writeFeature(w *bufio.Writer, f Feature) error {
	var props string
	if f.HasLayer {
		props = fmt.Sprintf("        \"cell\": %d,\n        \"layer\": %d\n", f.Cell, f.Layer)
	} else {
		props = fmt.Sprintf("        \"cell\": %d\n", f.Cell)
	}
	head := "    {\n" +
		"      \"type\": \"Feature\",\n" +
		"      \"properties\": {\n" +
		props +
		"      },\n" +
		"      \"geometry\": {\n" +
		"        \"type\": \"MultiPolygon\",\n" +
		"        \"coordinates\": "
	if _, err := w.WriteString(head); err != nil {
		return err
	}
	if err := writeArray(w, "        ", slices.Values(f.Geometry), writePolygon); err != nil {
		return fmt.Errorf("cell %d: %w", f.Cell, err)
	}
	_, err := w.WriteString("\n      }\n    }")
	return err
}

// writePolygon writes p as a single-ring polygon holding its exterior.
func writePolygon(w *bufio.Writer, p orb.Polygon) error {
	if _, err := w.WriteString("          "); err != nil {
		return err
	}
	var exterior orb.Ring
	if len(p) > 0 {
		exterior = p[0]
	}
	rings := func(yield func(orb.Ring) bool) { yield(exterior) }
	return writeArray(w, "          ", rings, writeRing)
}

func writeRing(w *bufio.Writer, r orb.Ring) error {
	if _, err := w.WriteString("            "); err != nil {
		return err
	}
	return writeArray(w, "            ", slices.Values(r), writePoint)
}

func writePoint(w *bufio.Writer, p orb.Point) error {
	if !finite(p[0]) || !finite(p[1]) {
		return fmt.Errorf("%w: [%v, %v]", ErrNonFinite, p[0], p[1])
	}
	var buf [64]byte
	b := append(buf[:0], "              ["...)
	b = strconv.AppendFloat(b, p[0], 'f', -1, 64)
	b = append(b, ", "...)
	b = strconv.AppendFloat(b, p[1], 'f', -1, 64)
	b = append(b, ']')
	_, err := w.Write(b)
	return err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
