package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"respira/internal/audio"
	"respira/internal/core/cue"
	"respira/internal/core/model"
	"respira/internal/core/session"
	"respira/internal/core/timekeeper"
	"respira/internal/history"
	"respira/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a breathing session in the terminal",
	Long: `Run a breathing session in the terminal.

Flags override the saved settings for this session only. When stdout is not a
terminal, or with --plain, the session prints one line per event instead.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runPattern   patternFlags
	runPlain     bool
	runBell      bool
	runNoHistory bool
	runLogFile   string
	runInterval  time.Duration
)

func init() {
	rootCmd.AddCommand(runCmd)
	flags := runCmd.Flags()
	addPatternFlags(flags, &runPattern)
	flags.BoolVar(&runPlain, "plain", false, "print events as lines instead of the interactive screen")
	flags.BoolVar(&runBell, "bell", true, "ring the terminal bell for cues")
	flags.BoolVar(&runNoHistory, "no-history", false, "do not record the session")
	flags.StringVar(&runLogFile, "log-file", "", "write logs to this file while the interactive screen is shown")
	flags.DurationVar(&runInterval, "interval", time.Second, "tick interval")
	_ = flags.MarkHidden("interval")
}

func runRun(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	interactive := !runPlain && term.IsTerminal(int(os.Stdout.Fd()))
	logger := env.logger
	if interactive {
		logger, err = screenLogger(runLogFile)
		if err != nil {
			return err
		}
	}

	config, err := runPattern.apply(cmd, env.config, env.presets, model.DefaultLimits())
	if err != nil {
		return err
	}
	store := session.NewStore(config, session.WithLogger(logger))

	if !runNoHistory {
		journal, err := env.openJournal()
		if err != nil {
			logger.Warn("history disabled", "error", err)
		} else {
			defer journal.Close()
			unsubscribe := history.NewRecorder(journal, logger).Attach(store)
			defer unsubscribe()
		}
	}

	var backend audio.Backend = audio.LogBackend{Logger: logger}
	if runBell && interactive {
		backend = audio.NewBellBackend(cmd.OutOrStdout())
	}
	queue := audio.NewQueue(backend, audio.QueueConfig{Logger: logger})
	defer queue.Close()

	keeper := timekeeper.New(store, cue.NewDispatcher(queue), timekeeper.Config{
		Interval: runInterval,
		Logger:   logger,
	})
	defer keeper.Close()

	if interactive {
		return runScreen(keeper)
	}
	return runPlainSession(cmd.Context(), keeper, cmd.OutOrStdout())
}

func runScreen(keeper *timekeeper.TimeKeeper) error {
	feed := tui.NewFeed()
	defer feed.Close()
	unsubscribe := keeper.Store().Subscribe(feed.Publish)
	defer unsubscribe()

	program := tea.NewProgram(
		tui.New(keeper, feed, tui.Options{ExitOnFinish: true, Autostart: true}),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run session screen: %w", err)
	}
	return nil
}

func runPlainSession(ctx context.Context, keeper *timekeeper.TimeKeeper, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	finished := make(chan struct{})
	printer := &linePrinter{out: out}
	unsubscribe := keeper.Store().Subscribe(func(snapshot session.Snapshot) {
		printer.print(snapshot)
		if snapshot.Session.Status == session.StatusFinished {
			select {
			case <-finished:
			default:
				close(finished)
			}
		}
	})
	defer unsubscribe()

	keeper.Play()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		keeper.Reset()
		fmt.Fprintln(out, "Session stopped")
		return nil
	}
}

func screenLogger(path string) (*slog.Logger, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})), nil
}
