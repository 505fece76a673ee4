package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/mat"

	"github.com/bjaus/spatialout"
)

// Snapshot is the JSON form of Results read by the command line tool.
// Matrices are row-major nested arrays with the shapes documented on Params
// and Results.
type Snapshot struct {
	GeneNames []string `json:"gene_names"`
	FOVNames  []string `json:"fov_names"`

	Counts         [][]uint32  `json:"counts"`
	ExpectedCounts [][]float64 `json:"expected_counts"`

	Rates           [][]float64 `json:"rates"`
	Shape           [][]float64 `json:"shape"`
	Phi             [][]float64 `json:"phi"`
	BackgroundRates [][]float64 `json:"background_rates"`
	TotalGeneCounts [][]uint32  `json:"total_gene_counts"`
	Clusters        []uint32    `json:"clusters"`
	CellVolume      []float32   `json:"cell_volume"`
	CellPopulation  []uint32    `json:"cell_population"`

	CellCentroids       []Position        `json:"cell_centroids"`
	Transcripts         []Transcript      `json:"transcripts"`
	TranscriptPositions []Position        `json:"transcript_positions"`
	Assignments         []Assignment      `json:"assignments"`
	States              []TranscriptState `json:"states"`
	Voxels              []Voxel           `json:"voxels"`

	CellPolygons        []orb.MultiPolygon          `json:"cell_polygons"`
	CellLayeredPolygons [][]spatialout.LayerPolygon `json:"cell_layered_polygons"`
}

// ReadSnapshot decodes a snapshot from path. Paths ending in .gz are
// gunzipped first.
func ReadSnapshot(fsys afero.Fs, path string) (*Snapshot, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	return DecodeSnapshot(r)
}

// DecodeSnapshot decodes a single JSON snapshot from r.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// Results converts s into the form Exporter.Export consumes.
func (s *Snapshot) Results() (*Results, error) {
	var err error
	matrix := func(name string, rows [][]float64, width int) mat.Matrix {
		if err != nil {
			return nil
		}
		var m mat.Matrix
		m, err = dense(name, rows, width)
		return m
	}
	ncells := len(s.Clusters)
	p := &Params{
		Rates:           matrix("rates", s.Rates, ncells),
		Shape:           matrix("shape", s.Shape, len(s.GeneNames)),
		Phi:             matrix("phi", s.Phi, len(s.GeneNames)),
		BackgroundRates: matrix("background rates", s.BackgroundRates, -1),
		TotalGeneCounts: s.TotalGeneCounts,
		Clusters:        s.Clusters,
		CellVolume:      s.CellVolume,
		CellPopulation:  s.CellPopulation,
	}
	expected := matrix("expected counts", s.ExpectedCounts, ncells)
	if err != nil {
		return nil, err
	}
	return &Results{
		GeneNames:           s.GeneNames,
		FOVNames:            s.FOVNames,
		Params:              p,
		Counts:              s.Counts,
		ExpectedCounts:      expected,
		CellCentroids:       s.CellCentroids,
		Transcripts:         s.Transcripts,
		TranscriptPositions: s.TranscriptPositions,
		Assignments:         s.Assignments,
		States:              s.States,
		Voxels:              s.Voxels,
		CellPolygons:        s.CellPolygons,
		CellLayeredPolygons: s.CellLayeredPolygons,
	}, nil
}

// dense packs rows into a matrix. A width of -1 takes the width of the first
// row. Rows of zero width give an all-empty matrix, which mat.Dense cannot
// represent.
func dense(name string, rows [][]float64, width int) (mat.Matrix, error) {
	if width < 0 {
		width = 0
		if len(rows) > 0 {
			width = len(rows[0])
		}
	}
	if len(rows) == 0 {
		return emptyMatrix{cols: width}, nil
	}
	if width == 0 {
		for i, row := range rows {
			if len(row) != 0 {
				return nil, fmt.Errorf("%w: %s row %d has %d entries, want 0", ErrDimension, name, i, len(row))
			}
		}
		return emptyMatrix{rows: len(rows)}, nil
	}
	data := make([]float64, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: %s row %d has %d entries, want %d", ErrDimension, name, i, len(row), width)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), width, data), nil
}

// emptyMatrix is an r×0 or 0×c matrix.
type emptyMatrix struct{ rows, cols int }

func (m emptyMatrix) Dims() (int, int) { return m.rows, m.cols }

func (m emptyMatrix) At(i, j int) float64 { panic(mat.ErrIndexOutOfRange) }

func (m emptyMatrix) T() mat.Matrix { return emptyMatrix{rows: m.cols, cols: m.rows} }
