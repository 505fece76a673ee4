package cli

import (
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bjaus/spatialout/export"
)

func newExportCommand(a *app) *cobra.Command {
	var resultsPath, reportPath, metricsPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured artifacts from a results snapshot",
		Long: `Write the configured artifacts from a results snapshot:
  spatialout export --results results.json.gz
  spatialout export --results results.json --report report.yaml --metrics spatialout.prom
  `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			snap, err := export.ReadSnapshot(a.fs, resultsPath)
			if err != nil {
				return err
			}
			results, err := snap.Results()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			exp, err := export.New(*cfg,
				export.WithFs(a.fs),
				export.WithLogger(a.logger),
				export.WithMetrics(export.NewMetrics(reg)),
			)
			if err != nil {
				return err
			}

			report, exportErr := exp.Export(results)
			level.Info(a.logger).Log(
				"msg", "export finished",
				"run_id", report.RunID,
				"artifacts", len(report.Artifacts),
				"failed", len(report.Failed()),
			)

			if reportPath != "" {
				if err := writeReport(a, reportPath, report); err != nil {
					return err
				}
			}
			if metricsPath != "" {
				if err := export.WriteTextfile(a.fs, metricsPath, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			return exportErr
		},
	}

	cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "results snapshot (JSON, optionally gzipped)")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a YAML run report here (- for stdout)")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "write Prometheus metrics in textfile format here")
	_ = cmd.MarkFlagRequired("results")
	return cmd
}

func writeReport(a *app, path string, report *export.Report) error {
	if path == "-" {
		return report.WriteYAML(a.stdout)
	}
	f, err := a.fs.Create(path)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := report.WriteYAML(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
