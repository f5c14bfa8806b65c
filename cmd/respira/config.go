package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"respira/internal/core/model"
	"respira/internal/core/session"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the saved settings",
	Long: `Change the saved settings.

Only the flags that are given are changed. Values outside the allowed range
are clamped.`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

var configPattern patternFlags

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
	addPatternFlags(configSetCmd.Flags(), &configPattern)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "file: %s\n", env.paths.Settings)
	printConfig(cmd.OutOrStdout(), env.config)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if !patternFlagsChanged(cmd) {
		return fmt.Errorf("nothing to change, see respira config set --help")
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	store := session.NewStore(env.config, session.WithPersister(env.settings), session.WithLogger(env.logger))
	updated, err := configPattern.apply(cmd, env.config, env.presets, store.Limits())
	if err != nil {
		return err
	}
	store.UpdateConfig(func(config *model.Config) {
		*config = updated
	})

	// The store only logs save failures, so check the file directly.
	saved, err := env.settings.Load()
	if err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	if saved != store.State().Config {
		return fmt.Errorf("save settings to %s failed", env.paths.Settings)
	}
	printConfig(cmd.OutOrStdout(), saved)
	return nil
}

func printConfig(out io.Writer, config model.Config) {
	fmt.Fprintf(out, "preset: %s\n", config.PresetName)
	fmt.Fprintf(out, "pattern: %s\n", config.Pattern())
	fmt.Fprintf(out, "preparation: %ds\n", config.Preparation)
	fmt.Fprintf(out, "session: %s\n", clock(config.Session))

	audio := config.Audio
	fmt.Fprintf(out, "sound: %s, volume %d/10\n", onOff(audio.Enabled), model.StepFromVolume(audio.Volume))
	fmt.Fprintf(out, "  countdown: %s, volume %d/10\n", onOff(audio.Countdown.Enabled), model.StepFromVolume(audio.Countdown.Volume))
	fmt.Fprintf(out, "  phases: %s", onOff(audio.Phases.Enabled))
	for _, phase := range model.Phases {
		fmt.Fprintf(out, ", %s %d", phase, model.StepFromVolume(audio.Phases.Volume(phase)))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  session end: %s, volume %d/10\n", onOff(audio.SessionEnd.Enabled), model.StepFromVolume(audio.SessionEnd.Volume))
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
