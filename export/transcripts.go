package export

import (
	"fmt"

	"github.com/bjaus/spatialout"
)

// TranscriptMetadataTable writes one row per transcript: its id, corrected
// and observed positions, gene and fov names, assigned cell and probability,
// and 0/1 flags for the background and confusion states.
func TranscriptMetadataTable(
	transcripts []Transcript,
	positions []Position,
	genes []string,
	fovNames []string,
	assignments []Assignment,
	states []TranscriptState,
) (*spatialout.Table, error) {
	n := len(transcripts)
	for _, c := range []struct {
		name string
		n    int
	}{
		{"transcript positions", len(positions)},
		{"transcript assignments", len(assignments)},
		{"transcript states", len(states)},
	} {
		if err := checkLen(c.name, c.n, n); err != nil {
			return nil, err
		}
	}

	geneCol := make(spatialout.Strings, n)
	fovCol := make(spatialout.Strings, n)
	for i, t := range transcripts {
		if int(t.Gene) >= len(genes) {
			return nil, fmt.Errorf("%w: transcript %d has gene %d of %d", spatialout.ErrOutOfRange, i, t.Gene, len(genes))
		}
		if int(t.FOV) >= len(fovNames) {
			return nil, fmt.Errorf("%w: transcript %d has fov %d of %d", spatialout.ErrOutOfRange, i, t.FOV, len(fovNames))
		}
		geneCol[i] = genes[t.Gene]
		fovCol[i] = fovNames[t.FOV]
	}

	flag := func(want TranscriptState) spatialout.Uint8s {
		return project(states, func(s TranscriptState) uint8 {
			if s == want {
				return 1
			}
			return 0
		})
	}

	return spatialout.NewTable(
		spatialout.Schema{
			{Name: "transcript_id", Type: spatialout.Uint64},
			{Name: "x", Type: spatialout.Float32},
			{Name: "y", Type: spatialout.Float32},
			{Name: "z", Type: spatialout.Float32},
			{Name: "observed_x", Type: spatialout.Float32},
			{Name: "observed_y", Type: spatialout.Float32},
			{Name: "observed_z", Type: spatialout.Float32},
			{Name: "gene", Type: spatialout.Utf8},
			{Name: "fov", Type: spatialout.Utf8},
			{Name: "assignment", Type: spatialout.Uint32},
			{Name: "probability", Type: spatialout.Float32},
			{Name: "background", Type: spatialout.Uint8},
			{Name: "confusion", Type: spatialout.Uint8},
		},
		spatialout.Uint64s(project(transcripts, func(t Transcript) uint64 { return t.ID })),
		spatialout.Float32s(project(positions, func(p Position) float32 { return p.X })),
		spatialout.Float32s(project(positions, func(p Position) float32 { return p.Y })),
		spatialout.Float32s(project(positions, func(p Position) float32 { return p.Z })),
		spatialout.Float32s(project(transcripts, func(t Transcript) float32 { return t.X })),
		spatialout.Float32s(project(transcripts, func(t Transcript) float32 { return t.Y })),
		spatialout.Float32s(project(transcripts, func(t Transcript) float32 { return t.Z })),
		geneCol,
		fovCol,
		spatialout.Uint32s(project(assignments, func(a Assignment) uint32 { return a.Cell })),
		spatialout.Float32s(project(assignments, func(a Assignment) float32 { return a.Probability })),
		flag(StateBackground),
		flag(StateConfusion),
	)
}
