package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskboard/internal/client"
	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/model"
	"taskboard/internal/view"
)

type viewOptions struct {
	API      string
	Tab      string
	Assignee string
	Month    string
	Date     string
	Watch    bool
	Interval time.Duration
}

// TaskSource is the subset of the API client the terminal view reads from.
type TaskSource interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	Stats(ctx context.Context) (*model.TaskStats, error)
}

func newViewCmd(app *App) *cobra.Command {
	opts := viewOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render a dashboard tab from a running service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("api") {
				opts.API = cfg.Client.APIURL
			}
			if !cmd.Flags().Changed("interval") {
				opts.Interval = cfg.Client.RefreshInterval
			}

			log, err := logger.New("warn")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runView(ctx, cmd.OutOrStdout(), client.New(opts.API, 0, log), opts, cfg.Server.Location(), log)
		},
	}

	cmd.Flags().StringVar(&opts.API, "api", "", "Base URL of the taskboard API (default from config)")
	cmd.Flags().StringVar(&opts.Tab, "tab", string(view.TabAll), "Tab: all|today|past|upcoming|completed|urgent|assignee|calendar")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Assignee for the assignee tab (empty lists every assignee)")
	cmd.Flags().StringVar(&opts.Month, "month", "", "Calendar month, YYYY-MM (default current month)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "Treat this YYYY-MM-DD as today")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload and re-render on every interval")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 30*time.Second, "Reload interval for --watch")
	_ = cmd.Flags().MarkHidden("date")

	return cmd
}

func (o viewOptions) state(today time.Time) (view.State, error) {
	tab, err := view.ParseTab(o.Tab)
	if err != nil {
		return view.State{}, err
	}
	if !tab.IsTaskView() {
		return view.State{}, fmt.Errorf("%w: %s", view.ErrNotTaskView, tab)
	}

	state := view.NewState(today)
	state.Tab = tab
	state.Assignee = o.Assignee
	if o.Month != "" {
		year, month, err := view.ParseMonth(o.Month)
		if err != nil {
			return view.State{}, fmt.Errorf("invalid --month %q: %w", o.Month, err)
		}
		state.Year, state.Month = year, month
	}
	return state, nil
}

func (o viewOptions) today(loc *time.Location) (time.Time, error) {
	if o.Date == "" {
		return view.CurrentDate(time.Now(), loc), nil
	}
	d, err := time.Parse("2006-01-02", o.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", o.Date, err)
	}
	return view.Day(d), nil
}

func runView(ctx context.Context, out io.Writer, src TaskSource, opts viewOptions, loc *time.Location, log *zap.Logger) error {
	today, err := opts.today(loc)
	if err != nil {
		return err
	}
	state, err := opts.state(today)
	if err != nil {
		return err
	}

	store := view.NewStore(state)
	r := newRenderer(out)

	if err := reload(ctx, src, store); err != nil {
		return err
	}
	if err := draw(out, r, store, today, opts.Watch); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if opts.Date == "" {
				today = view.CurrentDate(time.Now(), loc)
			}
			if err := reload(ctx, src, store); err != nil {
				// Keep showing the last good collection.
				log.Warn("Reload failed", zap.Error(err))
				continue
			}
			if err := draw(out, r, store, today, true); err != nil {
				return err
			}
		}
	}
}

// reload fetches a fresh collection and replaces the stored one wholesale.
func reload(ctx context.Context, src TaskSource, store *view.Store) error {
	tasks, err := src.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	stats, err := src.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	store.Replace(tasks, stats, time.Now())
	return nil
}

func draw(out io.Writer, r *renderer, store *view.Store, today time.Time, clearScreen bool) error {
	result, err := store.Current(today)
	if err != nil {
		return err
	}
	if clearScreen {
		fmt.Fprint(out, "\033[H\033[2J")
	}
	_, err = fmt.Fprintln(out, r.render(result, store.Stats(), today, store.LoadedAt()))
	return err
}
