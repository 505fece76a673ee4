// Package cli implements the spatialout command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bjaus/spatialout/export"
)

// app holds what the commands share.
type app struct {
	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
	cfgFile  string
	logLevel string
	logger   log.Logger
}

// NewRootCommand builds the command tree. Files are read from and written
// to fs.
func NewRootCommand(fs afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	a := &app{fs: fs, stdout: stdout, stderr: stderr, logger: log.NewNopLogger()}

	root := &cobra.Command{
		Use:   "spatialout",
		Short: "Write and inspect spatial transcriptomics result tables",
		Long: `Write and inspect spatial transcriptomics result tables:
  spatialout export --results results.json.gz
  spatialout inspect cells.parquet
  `,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.stderr, a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.spatialout/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newExportCommand(a),
		newInferCommand(a),
		newFormatsCommand(a),
		newInspectCommand(a),
	)
	return root
}

// Execute runs the tool against the OS filesystem and returns the process
// exit code.
func Execute() int {
	cmd := NewRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, allow), nil
}

// loadConfig reads the --config file, or the default file when it exists.
// Without either the config comes from the environment alone.
func (a *app) loadConfig() (*export.Config, error) {
	path := a.cfgFile
	if path == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		path = filepath.Join(home, ".spatialout", "config.yaml")
		if _, err := a.fs.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	if path != "" {
		level.Debug(a.logger).Log("msg", "using config file", "path", path)
		data, err := afero.ReadFile(a.fs, path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return export.ParseConfig(data)
	}
	return export.LoadConfig("")
}
