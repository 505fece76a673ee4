package export

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/bjaus/spatialout"
)

// Output names a table file and its format. An empty Path disables the
// artifact; an empty Format infers it from Path.
type Output struct {
	Path   string            `mapstructure:"path" yaml:"path"`
	Format spatialout.Format `mapstructure:"format" yaml:"format,omitempty"`
}

// Enabled reports whether the output should be written.
func (o Output) Enabled() bool { return o.Path != "" }

// Config selects which artifacts are written and where.
type Config struct {
	// Dir is prepended to every relative path.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`

	Counts             Output `mapstructure:"counts" yaml:"counts"`
	ExpectedCounts     Output `mapstructure:"expected_counts" yaml:"expected_counts"`
	Rates              Output `mapstructure:"rates" yaml:"rates"`
	ComponentParams    Output `mapstructure:"component_params" yaml:"component_params"`
	CellMetadata       Output `mapstructure:"cell_metadata" yaml:"cell_metadata"`
	TranscriptMetadata Output `mapstructure:"transcript_metadata" yaml:"transcript_metadata"`
	GeneMetadata       Output `mapstructure:"gene_metadata" yaml:"gene_metadata"`
	Voxels             Output `mapstructure:"voxels" yaml:"voxels"`

	// CellPolygons and CellPolygonLayers are gzipped GeoJSON paths.
	CellPolygons      string `mapstructure:"cell_polygons" yaml:"cell_polygons,omitempty"`
	CellPolygonLayers string `mapstructure:"cell_polygon_layers" yaml:"cell_polygon_layers,omitempty"`

	// ContinueOnError makes Export attempt every artifact and join the
	// failures instead of stopping at the first one.
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error"`
}

// EnvPrefix prefixes the environment variables LoadConfig reads, e.g.
// SPATIALOUT_COUNTS_PATH.
const EnvPrefix = "SPATIALOUT"

var outputKeys = []string{
	"counts",
	"expected_counts",
	"rates",
	"component_params",
	"cell_metadata",
	"transcript_metadata",
	"gene_metadata",
	"voxels",
}

// LoadConfig reads a YAML config from path, overlaid with SPATIALOUT_*
// environment variables. An empty path reads the environment only.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return unmarshalConfig(v)
}

// ParseConfig is LoadConfig for a YAML document already in memory.
func ParseConfig(data []byte) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return unmarshalConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("dir", "")
	for _, key := range outputKeys {
		v.SetDefault(key+".path", "")
		v.SetDefault(key+".format", "")
	}
	v.SetDefault("cell_polygons", "")
	v.SetDefault("cell_polygon_layers", "")
	v.SetDefault("continue_on_error", false)
	return v
}

func unmarshalConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// outputs pairs every table artifact name with its output.
func (c *Config) outputs() []namedOutput {
	return []namedOutput{
		{"counts", c.Counts},
		{"expected_counts", c.ExpectedCounts},
		{"rates", c.Rates},
		{"component_params", c.ComponentParams},
		{"cell_metadata", c.CellMetadata},
		{"transcript_metadata", c.TranscriptMetadata},
		{"gene_metadata", c.GeneMetadata},
		{"voxels", c.Voxels},
	}
}

type namedOutput struct {
	name string
	Output
}

// Validate resolves the format of every enabled output so that a bad suffix
// or format name is reported before anything is written.
func (c *Config) Validate() error {
	var errs []error
	for _, o := range c.outputs() {
		if !o.Enabled() {
			continue
		}
		if _, err := spatialout.Resolve(o.Format, o.Path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.name, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) resolvePath(path string) string {
	if path == "" || c.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}
