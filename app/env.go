package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tasktimer/internal/config"
	"github.com/ayoisaiah/tasktimer/internal/logger"
	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/internal/osutil"
	"github.com/ayoisaiah/tasktimer/internal/pathutil"
	"github.com/ayoisaiah/tasktimer/notify"
	"github.com/ayoisaiah/tasktimer/store"
	"github.com/ayoisaiah/tasktimer/store/sqlite"
	"github.com/ayoisaiah/tasktimer/timer"
)

var (
	errNoActiveTimer = errors.New(
		"no active timer: pass --task to choose one",
	)
	errAmbiguousTask = errors.New(
		"more than one timer is active: pass --task to choose one",
	)
)

// env holds the resources shared by a single command invocation.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	db      *store.Client
	entries store.EntryStore
	out     io.Writer
	closers []io.Closer
}

// setup loads the configuration and opens the logger and the stores.
func setup(ctx *cli.Context) (*env, error) {
	opts := []config.Option{}

	// first-run prompts need an interactive terminal
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		opts = append(opts, config.WithPromptConfig(pathutil.ConfigFilePath()))
	}

	opts = append(opts,
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	applyTheme(cfg)

	log, logCloser, err := logger.New(logger.Options{
		Path:       pathutil.LogFilePath(),
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:     cfg,
		log:     log,
		out:     config.Stdout,
		closers: []io.Closer{logCloser},
	}

	log.DebugContext(ctx.Context, "configuration loaded",
		slog.String("config", cfg.String()),
		slog.String("path", cfg.System.ConfigPath),
	)

	if err := e.openStores(); err != nil {
		_ = e.Close()
		return nil, err
	}

	return e, nil
}

func (e *env) openStores() error {
	boltPath := pathutil.DBFilePath()
	if e.cfg.Storage.Driver == config.DriverBolt && e.cfg.Storage.Path != "" {
		boltPath = e.cfg.Storage.Path
	}

	err := os.MkdirAll(filepath.Dir(boltPath), osutil.DirPermission)
	if err != nil {
		return err
	}

	db, err := store.Open(boltPath)
	if err != nil {
		return err
	}

	e.db = db
	e.entries = db
	e.closers = append(e.closers, db)

	if e.cfg.Storage.Driver != config.DriverSQLite {
		return nil
	}

	sqlitePath := e.cfg.Storage.Path
	if sqlitePath == "" {
		sqlitePath = pathutil.StripExtension(pathutil.DBFilePath()) + ".sqlite"
	}

	repo, err := sqlite.Open(sqlitePath)
	if err != nil {
		return err
	}

	e.entries = repo
	e.closers = append(e.closers, repo)

	return nil
}

// Close releases every resource in reverse order of acquisition.
func (e *env) Close() error {
	var errs []error

	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}

	return errors.Join(errs...)
}

// notifier combines local with the sinks enabled in the configuration.
func (e *env) notifier(local notify.Notifier) notify.Notifier {
	sinks := notify.Multi{
		local,
		notify.NotifierFunc(func(title, body string) {
			e.log.Debug("notification",
				slog.String("title", title),
				slog.String("body", body),
			)
		}),
	}

	if !e.cfg.Notifications.Enabled {
		return sinks
	}

	if e.cfg.Notifications.Desktop {
		sinks = append(sinks, notify.NewDesktop(pathutil.IconFilePath(), e.log))
	}

	if e.cfg.Notifications.Sound != "" {
		sinks = append(sinks, notify.NewSound(
			e.cfg.Notifications.Sound,
			e.log,
			timer.TitleReminder,
			timer.TitleBreakOver,
		))
	}

	cmd, err := notify.NewCommand(e.cfg.Settings.Cmd, e.log, timer.TitleStopped)
	if err != nil {
		e.log.Warn("ignoring settings.cmd", slog.Any("error", err))
	} else {
		sinks = append(sinks, cmd)
	}

	return sinks
}

// consoleNotifier prints the notifications a command does not report itself.
func (e *env) consoleNotifier() notify.Notifier {
	return notify.Filter{
		Next: notify.NewConsole(e.out),
		Drop: map[string]bool{
			timer.TitleStarted:    true,
			timer.TitleStopped:    true,
			timer.TitleBreakStart: true,
		},
	}
}

// engine returns a new engine wired to the stores and local.
func (e *env) engine(local notify.Notifier) *timer.Engine {
	return timer.New(
		timer.WithPersister(e.db),
		timer.WithRepository(e.entries),
		timer.WithNotifier(e.notifier(local)),
		timer.WithLogger(e.log),
	)
}

// load restores the timer for taskID and catches up on reminders and break
// deadlines that passed while no process was running.
func (e *env) load(
	ctx context.Context,
	taskID string,
	local notify.Notifier,
) (*timer.Engine, error) {
	eng := e.engine(local)

	if err := eng.Restore(ctx, taskID); err != nil {
		return nil, err
	}

	if _, err := eng.Tick(ctx); err != nil {
		e.warn(err)
	}

	return eng, nil
}

// resolveTask returns explicit if set, or the ID of the only active timer.
func (e *env) resolveTask(ctx context.Context, explicit string) (string, error) {
	if id := strings.TrimSpace(explicit); id != "" {
		return id, nil
	}

	snaps, err := e.activeTimers(ctx)
	if err != nil {
		return "", err
	}

	switch len(snaps) {
	case 0:
		return "", errNoActiveTimer
	case 1:
		return snaps[0].TaskID, nil
	}

	return "", errAmbiguousTask
}

// activeTimers lists persisted timers naturally ordered by task ID.
func (e *env) activeTimers(ctx context.Context) ([]models.Snapshot, error) {
	snaps, err := e.db.ListTimers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timers: %w", err)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		return natural.Less(snaps[i].TaskID, snaps[j].TaskID)
	})

	return snaps, nil
}

// warn reports a non-fatal error.
func (e *env) warn(err error) {
	if err == nil {
		return
	}

	e.log.Warn("operation completed with errors", slog.Any("error", err))
	printWarning(err)
}
