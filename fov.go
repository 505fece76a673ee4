package spatialout

import (
	"fmt"
	"math"
)

const (
	// BackgroundCell is the cell assignment of a transcript that belongs to
	// no cell.
	BackgroundCell uint32 = math.MaxUint32

	// NoFOV is the vote result for a cell with no assigned transcripts.
	NoFOV uint32 = math.MaxUint32
)

// VoteFOV assigns each cell the field of view most of its transcripts were
// imaged in. cells[i] and fovs[i] are the cell assignment and FOV of
// transcript i; background transcripts do not vote.
//
// Ties go to the lowest FOV index. The rule is arbitrary but deterministic.
// Cells without votes get NoFOV.
func VoteFOV(ncells, nfovs int, cells, fovs []uint32) ([]uint32, error) {
	if ncells < 0 || nfovs < 0 {
		return nil, fmt.Errorf("%w: %d cells, %d fovs", ErrOutOfRange, ncells, nfovs)
	}
	if len(cells) != len(fovs) {
		return nil, fmt.Errorf("%w: %d cell assignments, %d transcript fovs", ErrOutOfRange, len(cells), len(fovs))
	}

	votes := make([]uint32, ncells*nfovs)
	for i, cell := range cells {
		if cell == BackgroundCell {
			continue
		}
		fov := fovs[i]
		if int64(cell) >= int64(ncells) {
			return nil, fmt.Errorf("%w: transcript %d assigned to cell %d of %d", ErrOutOfRange, i, cell, ncells)
		}
		if int64(fov) >= int64(nfovs) {
			return nil, fmt.Errorf("%w: transcript %d in fov %d of %d", ErrOutOfRange, i, fov, nfovs)
		}
		votes[int(cell)*nfovs+int(fov)]++
	}

	winners := make([]uint32, ncells)
	for cell := range winners {
		winner, best := NoFOV, uint32(0)
		for fov, count := range votes[cell*nfovs : (cell+1)*nfovs] {
			if count > best {
				winner, best = uint32(fov), count
			}
		}
		winners[cell] = winner
	}
	return winners, nil
}
