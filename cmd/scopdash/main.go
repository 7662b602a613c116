package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scopdash/internal/bootstrap"
	"scopdash/internal/platform/config"
	"scopdash/internal/platform/form"
	"scopdash/internal/platform/logging"
	"scopdash/internal/platform/money"
)

type globalOptions struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "scopdash",
		Short:         "SCOP buyout reporting dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newResetCmd(opts))
	return root
}

func loadApp(opts *globalOptions, mode bootstrap.Mode) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	build := logging.New
	if mode == bootstrap.ModeTUI {
		build = logging.ForTUI
	}
	logger, err := build(cfg.Log.Level, cfg.Log.Path, opts.verbose)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, logger, mode)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

// loadFrom imports a backup into the fresh in-memory store when path is set.
func loadFrom(ctx context.Context, app *bootstrap.App, path string) error {
	if path == "" {
		return nil
	}
	if err := app.TransferCLI.ImportFile(ctx, path); err != nil {
		return err
	}
	app.Logger.Debug("backup loaded", zap.String("path", path))
	return nil
}

// exportTo writes a backup to out, to stdout for "-", or to the default file
// name in the export directory when out is empty.
func exportTo(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, out string) error {
	if out == "-" {
		payload, err := app.TransferCLI.Export(ctx)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(payload)
		return err
	}
	if out == "" {
		out = app.TransferCLI.DefaultPath(app.Config.ExportDir)
	}
	res, err := app.TransferCLI.ExportToFile(ctx, out)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%d bytes)\n", res.Path, res.Bytes)
	return nil
}

func newTUICmd(opts *globalOptions) *cobra.Command {
	var from string
	var watch bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the dashboard terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch && from == "" {
				return fmt.Errorf("--watch needs --from")
			}
			app, err := loadApp(opts, bootstrap.ModeTUI)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := loadFrom(ctx, app, from); err != nil {
				return err
			}
			watchPath := ""
			if watch {
				watchPath = from
			}
			return bootstrap.RunTUI(ctx, app, watchPath)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "backup file to load at startup")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-import --from whenever it changes")
	return cmd
}

func newShowCmd(opts *globalOptions) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the dashboard summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			if err := loadFrom(ctx, app, from); err != nil {
				return err
			}
			return printSummary(ctx, cmd, app)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "backup file to load first")
	return cmd
}

func printSummary(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
	d, err := app.ProjectCLI.Snapshot(ctx)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "project: %s\neditor: %s\ndate: %s\nrecipients: %s\n",
		d.Project.Name, d.Project.Editor, d.Project.Date.Format(time.DateOnly), d.Project.Recipients)
	_, _ = fmt.Fprintf(w, "engagement: %s\nfinancing: %s / %s (%s)\nsteps: %d/%d\n",
		money.Percent(float64(d.Metrics.EmployeeEngagement)),
		money.Euros(d.Metrics.SecuredFinancing), money.Euros(d.Metrics.TotalFinancing),
		money.Percent(d.Metrics.FinancingPercent),
		d.Metrics.StepsCompleted, d.Metrics.TotalSteps)
	for _, doc := range d.Documents {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", doc.ID, doc.StatusLabel, doc.Title)
	}
	return nil
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var from, decision, conditions, out string
	var sections, hide []string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the printable Markdown report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			if err := loadFrom(ctx, app, from); err != nil {
				return err
			}
			if err := app.ReportCLI.Configure(ctx, sections, hide, decision, conditions); err != nil {
				return err
			}
			if out == "" {
				rendered, err := app.ReportCLI.Render(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered.Markdown)
				return nil
			}
			if info, err := os.Stat(out); err == nil && info.IsDir() {
				rendered, err := app.ReportCLI.Render(ctx)
				if err != nil {
					return err
				}
				out = filepath.Join(out, rendered.FileName)
			}
			res, err := app.ReportCLI.Write(ctx, out)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report written: %s sections=%s\n", res.Path, strings.Join(res.Sections, ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "backup file to report on")
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "sections to include (default all)")
	cmd.Flags().StringSliceVar(&hide, "hide", nil, "sections to leave out")
	cmd.Flags().StringVar(&decision, "decision", "", "recommendation: go|no_go|conditional_go")
	cmd.Flags().StringVar(&conditions, "conditions", "", "conditions for a conditional go")
	cmd.Flags().StringVar(&out, "out", "", "output file or directory (default stdout)")
	return cmd
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var from, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of the dashboard data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			if err := loadFrom(ctx, app, from); err != nil {
				return err
			}
			return exportTo(ctx, cmd, app, out)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "backup file to load first")
	cmd.Flags().StringVar(&out, "out", "", `output file, "-" for stdout (default: dated file in export dir)`)
	return cmd
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a backup file without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			res, err := app.TransferCLI.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version=%s timestamp=%s sections=%s\n",
				res.Version, res.Timestamp.Format(time.RFC3339), strings.Join(res.Sections, ","))
			return nil
		},
	}
}

func newEditCmd(opts *globalOptions) *cobra.Command {
	var from, out string
	var assignments []string
	cmd := &cobra.Command{
		Use:   "edit <project|metrics|analysis|next-steps|document:<id>>",
		Short: "Edit one section headless through its form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(assignments) == 0 {
				return fmt.Errorf("at least one --set key=value is required")
			}
			app, err := loadApp(opts, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			if err := loadFrom(ctx, app, from); err != nil {
				return err
			}
			if err := app.ProjectCLI.Edit(ctx, app.Workflow, args[0], assignments); err != nil {
				if verr, ok := form.IsValidation(err); ok {
					for _, key := range slices.Sorted(maps.Keys(verr.Fields)) {
						_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", key, verr.Fields[key])
					}
					return errors.New("edit rejected")
				}
				return err
			}
			if out != "" {
				return exportTo(ctx, cmd, app, out)
			}
			return printSummary(ctx, cmd, app)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "backup file to edit")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, `field assignment key=value, "\n" separates lines`)
	cmd.Flags().StringVar(&out, "out", "", `write the result as a backup, "-" for stdout`)
	return cmd
}

func newResetCmd(opts *globalOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Write a backup holding the default data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			if err := app.ProjectCLI.Reset(ctx); err != nil {
				return err
			}
			return exportTo(ctx, cmd, app, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", `output file, "-" for stdout (default: dated file in export dir)`)
	return cmd
}
