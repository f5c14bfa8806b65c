// Package main implements the respira CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"respira/internal/platform"
)

const appName = "respira"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "respira",
	Short:             "Respira - guided breathing sessions",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

var (
	configDirFlag string
	logLevelFlag  string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDirFlag, "config-dir", "", "directory holding settings, presets and history")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error (env RESPIRA_LOG_LEVEL)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := parseLogLevel(logLevelFlag, os.Getenv("RESPIRA_LOG_LEVEL"))
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), level))
	return nil
}

func parseLogLevel(flagValue, envValue string) (slog.Level, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		value = strings.TrimSpace(envValue)
	}
	if value == "" {
		return slog.LevelWarn, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelWarn, fmt.Errorf("parse log level %q: %w", value, err)
	}
	return level, nil
}

func newLogger(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// appPaths resolves the files the commands read and write.
func appPaths() (platform.Paths, error) {
	if configDirFlag != "" {
		return platform.PathsIn(configDirFlag), nil
	}
	return platform.AppPaths(appName)
}
