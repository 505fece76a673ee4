package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/paulmach/orb"
	"github.com/spf13/afero"
	"gonum.org/v1/gonum/mat"

	"github.com/bjaus/spatialout"
)

// Exporter writes the configured artifacts. Each Write method is a no-op
// returning a nil Artifact when its output path is empty.
type Exporter struct {
	cfg     Config
	fs      afero.Fs
	logger  log.Logger
	metrics *Metrics
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFs sets the filesystem artifacts are written to. The default is the
// OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(e *Exporter) { e.fs = fs }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithMetrics records every artifact in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

// New validates cfg and returns an Exporter for it.
func New(cfg Config, opts ...Option) (*Exporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e := &Exporter{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Export writes every enabled artifact from r. It stops at the first failure
// unless the config sets ContinueOnError, in which case all failures are
// joined. The report lists every artifact that was attempted.
func (e *Exporter) Export(r *Results) (*Report, error) {
	report := newReport()
	level.Debug(e.logger).Log("msg", "starting export", "run_id", report.RunID)

	steps := []func() (*Artifact, error){
		func() (*Artifact, error) { return e.WriteCounts(r.GeneNames, r.Counts) },
		func() (*Artifact, error) { return e.WriteExpectedCounts(r.GeneNames, r.ExpectedCounts) },
		func() (*Artifact, error) {
			if !e.cfg.Rates.Enabled() {
				return nil, nil
			}
			p, err := params(r)
			if err != nil {
				return e.failed("rates", e.cfg.Rates, err)
			}
			return e.WriteRates(r.GeneNames, p.Rates)
		},
		func() (*Artifact, error) {
			if !e.cfg.ComponentParams.Enabled() {
				return nil, nil
			}
			p, err := params(r)
			if err != nil {
				return e.failed("component_params", e.cfg.ComponentParams, err)
			}
			return e.WriteComponentParams(r.GeneNames, p.Shape, p.Phi)
		},
		func() (*Artifact, error) {
			if !e.cfg.CellMetadata.Enabled() {
				return nil, nil
			}
			p, err := params(r)
			if err != nil {
				return e.failed("cell_metadata", e.cfg.CellMetadata, err)
			}
			fovs, err := CellFOVs(r)
			if err != nil {
				return e.failed("cell_metadata", e.cfg.CellMetadata, err)
			}
			return e.WriteCellMetadata(p, r.CellCentroids, fovs, r.FOVNames)
		},
		func() (*Artifact, error) {
			return e.WriteTranscriptMetadata(r.Transcripts, r.TranscriptPositions, r.GeneNames, r.FOVNames, r.Assignments, r.States)
		},
		func() (*Artifact, error) {
			if !e.cfg.GeneMetadata.Enabled() {
				return nil, nil
			}
			p, err := params(r)
			if err != nil {
				return e.failed("gene_metadata", e.cfg.GeneMetadata, err)
			}
			return e.WriteGeneMetadata(p, r.GeneNames, r.ExpectedCounts)
		},
		func() (*Artifact, error) { return e.WriteVoxels(r.Voxels) },
		func() (*Artifact, error) { return e.WriteCellPolygons(r.CellPolygons) },
		func() (*Artifact, error) { return e.WriteCellPolygonLayers(r.CellLayeredPolygons) },
	}

	var errs []error
	for _, step := range steps {
		a, err := step()
		if a != nil {
			report.Artifacts = append(report.Artifacts, a)
		}
		if err == nil {
			continue
		}
		errs = append(errs, err)
		if !e.cfg.ContinueOnError {
			break
		}
	}
	report.Finished = time.Now()
	return report, errors.Join(errs...)
}

func params(r *Results) (*Params, error) {
	if r.Params == nil {
		return nil, fmt.Errorf("%w: results have no params", ErrMissingInput)
	}
	return r.Params, nil
}

// WriteCounts writes the observed count matrix.
func (e *Exporter) WriteCounts(genes []string, counts [][]uint32) (*Artifact, error) {
	return e.writeTable("counts", e.cfg.Counts, func() (*spatialout.Table, error) {
		return CountsTable(genes, counts)
	})
}

// WriteExpectedCounts writes the expected count matrix.
func (e *Exporter) WriteExpectedCounts(genes []string, expected mat.Matrix) (*Artifact, error) {
	return e.writeTable("expected_counts", e.cfg.ExpectedCounts, func() (*spatialout.Table, error) {
		return ExpectedCountsTable(genes, expected)
	})
}

// WriteRates writes the per-cell expression rates.
func (e *Exporter) WriteRates(genes []string, rates mat.Matrix) (*Artifact, error) {
	return e.writeTable("rates", e.cfg.Rates, func() (*spatialout.Table, error) {
		return RatesTable(genes, rates)
	})
}

// WriteComponentParams writes the per-component α and β of every gene.
func (e *Exporter) WriteComponentParams(genes []string, shape, phi mat.Matrix) (*Artifact, error) {
	return e.writeTable("component_params", e.cfg.ComponentParams, func() (*spatialout.Table, error) {
		return ComponentParamsTable(genes, shape, phi)
	})
}

// WriteCellMetadata writes one row per cell.
func (e *Exporter) WriteCellMetadata(p *Params, centroids []Position, cellFOVs []uint32, fovNames []string) (*Artifact, error) {
	return e.writeTable("cell_metadata", e.cfg.CellMetadata, func() (*spatialout.Table, error) {
		return CellMetadataTable(p, centroids, cellFOVs, fovNames)
	})
}

// WriteTranscriptMetadata writes one row per transcript.
func (e *Exporter) WriteTranscriptMetadata(
	transcripts []Transcript,
	positions []Position,
	genes, fovNames []string,
	assignments []Assignment,
	states []TranscriptState,
) (*Artifact, error) {
	return e.writeTable("transcript_metadata", e.cfg.TranscriptMetadata, func() (*spatialout.Table, error) {
		return TranscriptMetadataTable(transcripts, positions, genes, fovNames, assignments, states)
	})
}

// WriteGeneMetadata writes one row per gene.
func (e *Exporter) WriteGeneMetadata(p *Params, genes []string, expected mat.Matrix) (*Artifact, error) {
	return e.writeTable("gene_metadata", e.cfg.GeneMetadata, func() (*spatialout.Table, error) {
		return GeneMetadataTable(p, genes, expected)
	})
}

// WriteVoxels writes one row per voxel.
func (e *Exporter) WriteVoxels(voxels []Voxel) (*Artifact, error) {
	return e.writeTable("voxels", e.cfg.Voxels, func() (*spatialout.Table, error) {
		return VoxelTable(voxels)
	})
}

// WriteCellPolygons writes the flattened cell footprints as gzipped GeoJSON.
func (e *Exporter) WriteCellPolygons(polygons []orb.MultiPolygon) (*Artifact, error) {
	if e.cfg.CellPolygons == "" {
		return nil, nil
	}
	return e.record("cell_polygons", func() (spatialout.Summary, error) {
		path := e.cfg.resolvePath(e.cfg.CellPolygons)
		if err := e.mkdir(path); err != nil {
			return spatialout.Summary{Path: path}, err
		}
		return spatialout.WriteGeoJSONFile(e.fs, path, spatialout.CellFeatures(polygons))
	})
}

// WriteCellPolygonLayers writes the per-layer cell footprints as gzipped
// GeoJSON.
func (e *Exporter) WriteCellPolygonLayers(polygons [][]spatialout.LayerPolygon) (*Artifact, error) {
	if e.cfg.CellPolygonLayers == "" {
		return nil, nil
	}
	return e.record("cell_polygon_layers", func() (spatialout.Summary, error) {
		path := e.cfg.resolvePath(e.cfg.CellPolygonLayers)
		if err := e.mkdir(path); err != nil {
			return spatialout.Summary{Path: path}, err
		}
		return spatialout.WriteGeoJSONFile(e.fs, path, spatialout.LayeredCellFeatures(polygons))
	})
}

func (e *Exporter) writeTable(name string, out Output, build func() (*spatialout.Table, error)) (*Artifact, error) {
	if !out.Enabled() {
		return nil, nil
	}
	path := e.cfg.resolvePath(out.Path)
	return e.record(name, func() (spatialout.Summary, error) {
		t, err := build()
		if err != nil {
			return spatialout.Summary{Path: path, Format: out.Format}, fmt.Errorf("assemble %s: %w", path, err)
		}
		if err := e.mkdir(path); err != nil {
			return spatialout.Summary{Path: path, Format: out.Format}, err
		}
		return spatialout.WriteFile(e.fs, path, out.Format, t)
	})
}

// mkdir creates the parent directory of path.
func (e *Exporter) mkdir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// failed records an artifact that could not be attempted.
func (e *Exporter) failed(name string, out Output, err error) (*Artifact, error) {
	path := e.cfg.resolvePath(out.Path)
	return e.record(name, func() (spatialout.Summary, error) {
		return spatialout.Summary{Path: path, Format: out.Format}, fmt.Errorf("assemble %s: %w", path, err)
	})
}

// record runs write, then logs and counts the outcome.
func (e *Exporter) record(name string, write func() (spatialout.Summary, error)) (*Artifact, error) {
	start := time.Now()
	sum, err := write()
	a := &Artifact{
		Name:     name,
		Path:     sum.Path,
		Format:   sum.Format,
		Rows:     sum.Rows,
		Bytes:    sum.Bytes,
		Duration: time.Since(start),
	}
	if err != nil {
		a.Error = err.Error()
	}
	e.metrics.observe(a)
	if err != nil {
		level.Error(e.logger).Log("msg", "failed to write artifact", "artifact", name, "path", a.Path, "err", err)
		return a, fmt.Errorf("%s: %w", name, err)
	}
	level.Info(e.logger).Log(
		"msg", "wrote artifact",
		"artifact", name,
		"path", a.Path,
		"format", a.Format,
		"rows", a.Rows,
		"bytes", a.Bytes,
	)
	return a, nil
}
