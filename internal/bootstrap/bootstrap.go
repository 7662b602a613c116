package bootstrap

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	projectinadapter "scopdash/internal/modules/project/adapter/in"
	projectoutadapter "scopdash/internal/modules/project/adapter/out"
	projectdomain "scopdash/internal/modules/project/domain"
	projectservice "scopdash/internal/modules/project/service"
	projectusecase "scopdash/internal/modules/project/usecase"
	reportinadapter "scopdash/internal/modules/report/adapter/in"
	reportoutadapter "scopdash/internal/modules/report/adapter/out"
	reportusecase "scopdash/internal/modules/report/usecase"
	transferinadapter "scopdash/internal/modules/transfer/adapter/in"
	transferoutadapter "scopdash/internal/modules/transfer/adapter/out"
	transferusecase "scopdash/internal/modules/transfer/usecase"
	"scopdash/internal/platform/clock"
	"scopdash/internal/platform/config"
	"scopdash/internal/platform/eventbus"
	"scopdash/internal/platform/form"
	"scopdash/internal/platform/id"
	uiapp "scopdash/internal/ui/app"
)

// watchQuiet is how long a backup file must stay unchanged before it is
// re-imported.
const watchQuiet = 200 * time.Millisecond

// Mode picks the bus scheduler. Headless commands have no subscribers and
// drain explicitly; the TUI delivers on timers.
type Mode int

const (
	ModeCLI Mode = iota
	ModeTUI
)

type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Bus      *eventbus.Bus
	Workflow *form.Workflow

	ProjectCLI  projectinadapter.CLIHandler
	ProjectTUI  projectinadapter.TUIHandler
	TransferCLI transferinadapter.CLIHandler
	ReportCLI   reportinadapter.CLIHandler
	ReportTUI   reportinadapter.TUIHandler

	ids id.Generator
}

func New(cfg config.Config, logger *zap.Logger, mode Mode) (*App, error) {
	clk := clock.SystemClock{}

	var sched eventbus.Scheduler = eventbus.NewManualScheduler()
	if mode == ModeTUI {
		sched = eventbus.NewTimerScheduler(cfg.Bus.Debounce)
	}
	bus := eventbus.New(sched, logger.Named("bus"))

	projectSvc := projectservice.NewProjectService(
		projectdomain.Seed(clk.Now()),
		projectoutadapter.NewBusNotifier(bus),
		logger.Named("project"),
	)
	projectUC := projectusecase.NewInteractor(projectSvc)

	transferUC := transferusecase.NewInteractor(
		projectUC,
		transferoutadapter.NewLocalFileStore(),
		transferoutadapter.NewFSNotifyWatcher(watchQuiet, logger.Named("watcher")),
		clk,
		logger.Named("transfer"),
	)

	reportUC, err := reportusecase.NewInteractor(
		projectUC,
		reportoutadapter.NewMarkdownFileWriter(),
		clk,
		logger.Named("report"),
		cfg.Report.HiddenSections,
	)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("new report usecase: %w", err)
	}

	return &App{
		Config:      cfg,
		Logger:      logger,
		Bus:         bus,
		Workflow:    form.NewWorkflow(clk, cfg.Editor.SuccessDelay),
		ProjectCLI:  projectinadapter.NewCLIHandler(projectUC),
		ProjectTUI:  projectinadapter.NewTUIHandler(projectUC),
		TransferCLI: transferinadapter.NewCLIHandler(transferUC),
		ReportCLI:   reportinadapter.NewCLIHandler(reportUC),
		ReportTUI:   reportinadapter.NewTUIHandler(reportUC),
		ids:         id.UUID{},
	}, nil
}

// Close cancels any open form, stops the bus and flushes the logger.
func (a *App) Close() {
	a.Workflow.Cancel()
	a.Bus.Close()
	_ = a.Logger.Sync()
}

// RunTUI blocks until the program exits or ctx is done. A non-empty watchPath
// is re-imported every time it changes on disk.
func RunTUI(ctx context.Context, app *App, watchPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := uiapp.NewModel(
		app.Config.ExportDir,
		app.ProjectTUI,
		app.ReportTUI,
		app.TransferCLI,
		app.Workflow,
		app.Config.Editor.SuccessDelay,
	)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	unbridge := uiapp.BridgeBus(app.Bus, app.ids, program.Send)
	defer unbridge()

	done := make(chan struct{})
	if watchPath != "" {
		go func() {
			defer close(done)
			if err := app.TransferCLI.Watch(ctx, watchPath); err != nil {
				app.Logger.Warn("watch stopped", zap.String("path", watchPath), zap.Error(err))
			}
		}()
	} else {
		close(done)
	}

	_, err := program.Run()
	cancel()
	<-done
	return err
}
