package export

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/mat"

	"github.com/bjaus/spatialout"
)

var (
	// ErrDimension reports inputs whose shapes do not line up.
	ErrDimension = errors.New("dimension mismatch")
	// ErrMissingInput reports an enabled artifact whose inputs are absent.
	ErrMissingInput = errors.New("missing input")
)

// Position is a point in sample coordinates.
type Position struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Transcript is an observed transcript: its id, observed position, gene
// index and field of view index.
type Transcript struct {
	ID   uint64  `json:"id"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Z    float32 `json:"z"`
	Gene uint32  `json:"gene"`
	FOV  uint32  `json:"fov"`
}

// Assignment is the cell a transcript was assigned to and the posterior
// probability of that assignment. Cell is spatialout.BackgroundCell for
// unassigned transcripts.
type Assignment struct {
	Cell        uint32  `json:"cell"`
	Probability float32 `json:"probability"`
}

// TranscriptState is the discrete state of a transcript in the model.
type TranscriptState uint8

const (
	StateForeground TranscriptState = iota
	StateBackground
	StateConfusion
)

var stateNames = []string{"foreground", "background", "confusion"}

func (s TranscriptState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("TranscriptState(%d)", uint8(s))
}

// MarshalText encodes s by name, so snapshots carry "background" rather
// than a number.
func (s TranscriptState) MarshalText() ([]byte, error) {
	if int(s) >= len(stateNames) {
		return nil, fmt.Errorf("unknown transcript state %d", uint8(s))
	}
	return []byte(stateNames[s]), nil
}

func (s *TranscriptState) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = TranscriptState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown transcript state %q", text)
}

// Voxel is the axis-aligned extent of a voxel and the cell that owns it.
type Voxel struct {
	Cell uint32  `json:"cell"`
	X0   float32 `json:"x0"`
	Y0   float32 `json:"y0"`
	Z0   float32 `json:"z0"`
	X1   float32 `json:"x1"`
	Y1   float32 `json:"y1"`
	Z1   float32 `json:"z1"`
}

// Params holds the fitted model parameters that are exported.
type Params struct {
	// Rates is λ, genes × cells.
	Rates mat.Matrix
	// Shape is r, the per-component dispersion, components × genes.
	Shape mat.Matrix
	// Phi is φ, components × genes. The exported β is exp(−φ).
	Phi mat.Matrix
	// BackgroundRates is λ_bg, genes × layers.
	BackgroundRates mat.Matrix
	// TotalGeneCounts is genes × layers.
	TotalGeneCounts [][]uint32
	// Clusters is the component of each cell.
	Clusters       []uint32
	CellVolume     []float32
	CellPopulation []uint32
}

// NumCells returns the number of cells.
func (p *Params) NumCells() int { return len(p.Clusters) }

// NumComponents returns the number of mixture components.
func (p *Params) NumComponents() int {
	r, _ := dims(p.Shape)
	return r
}

// Results is everything Exporter.Export writes. Fields for disabled
// artifacts may be left empty.
type Results struct {
	GeneNames []string
	FOVNames  []string
	Params    *Params

	// Counts is genes × cells.
	Counts [][]uint32
	// ExpectedCounts is genes × cells.
	ExpectedCounts mat.Matrix

	CellCentroids       []Position
	Transcripts         []Transcript
	TranscriptPositions []Position
	Assignments         []Assignment
	States              []TranscriptState
	Voxels              []Voxel

	CellPolygons        []orb.MultiPolygon
	CellLayeredPolygons [][]spatialout.LayerPolygon
}

func dims(m mat.Matrix) (r, c int) {
	if m == nil {
		return 0, 0
	}
	return m.Dims()
}

func checkLen(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrDimension, name, got, want)
	}
	return nil
}

// rowFloat32 returns row i of m.
func rowFloat32(m mat.Matrix, i int) spatialout.Float32s {
	_, c := m.Dims()
	out := make(spatialout.Float32s, c)
	for j := range out {
		out[j] = float32(m.At(i, j))
	}
	return out
}

// colFloat32 returns column j of m.
func colFloat32(m mat.Matrix, j int) spatialout.Float32s {
	r, _ := m.Dims()
	out := make(spatialout.Float32s, r)
	for i := range out {
		out[i] = float32(m.At(i, j))
	}
	return out
}

// project maps every element of src through fn.
func project[S, T any](src []S, fn func(S) T) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = fn(v)
	}
	return out
}
