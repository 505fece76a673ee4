package export

import (
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/spatialout"
)

// Report records what one Export run wrote.
type Report struct {
	RunID     uuid.UUID   `yaml:"run_id"`
	Started   time.Time   `yaml:"started"`
	Finished  time.Time   `yaml:"finished"`
	Artifacts []*Artifact `yaml:"artifacts"`
}

// Artifact is the outcome of writing one output file.
type Artifact struct {
	Name     string            `yaml:"name"`
	Path     string            `yaml:"path"`
	Format   spatialout.Format `yaml:"format,omitempty"`
	Rows     int               `yaml:"rows"`
	Bytes    int64             `yaml:"bytes"`
	Duration time.Duration     `yaml:"duration"`
	Error    string            `yaml:"error,omitempty"`
}

func newReport() *Report {
	return &Report{RunID: uuid.New(), Started: time.Now()}
}

// Failed returns the artifacts that did not write.
func (r *Report) Failed() []*Artifact {
	var out []*Artifact
	for _, a := range r.Artifacts {
		if a.Error != "" {
			out = append(out, a)
		}
	}
	return out
}

// WriteYAML encodes r as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
