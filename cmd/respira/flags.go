package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"respira/internal/core/model"
)

// patternFlags override the persisted pattern for one command.
type patternFlags struct {
	preset  string
	inhale  int
	holdIn  int
	exhale  int
	holdOut int
	prep    int
	minutes int
	volume  int
	mute    bool
}

var patternFlagAliases = map[string]string{
	"hold-after-inhale": "hold-in",
	"hold-after-exhale": "hold-out",
	"preparation":       "prep",
}

func addPatternFlags(flags *pflag.FlagSet, target *patternFlags) {
	flags.StringVar(&target.preset, "preset", "", "start from a preset, see respira presets")
	flags.IntVar(&target.inhale, "inhale", 0, "inhale seconds")
	flags.IntVar(&target.holdIn, "hold-in", 0, "hold seconds after inhaling, 0 skips the phase")
	flags.IntVar(&target.exhale, "exhale", 0, "exhale seconds")
	flags.IntVar(&target.holdOut, "hold-out", 0, "hold seconds after exhaling, 0 skips the phase")
	flags.IntVar(&target.prep, "prep", 0, "preparation countdown seconds")
	flags.IntVar(&target.minutes, "minutes", 0, "session length in minutes")
	flags.IntVar(&target.volume, "volume", 0, "global volume step, 0 to 10")
	flags.BoolVar(&target.mute, "mute", false, "disable all sound cues")
	setFlagAliases(flags, patternFlagAliases)
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

// apply returns config with every flag the user set written into it.
func (flags *patternFlags) apply(cmd *cobra.Command, config model.Config, book *model.PresetBook, limits model.Limits) (model.Config, error) {
	if hasChangedFlags(cmd, "preset") {
		preset, err := book.Lookup(flags.preset)
		if err != nil {
			return config, err
		}
		config = preset.Apply(config, limits)
	}

	pattern := config.Pattern()
	durations := []struct {
		name  string
		value int
		phase model.Phase
	}{
		{"inhale", flags.inhale, model.PhaseInhale},
		{"hold-in", flags.holdIn, model.PhaseHoldAfterInhale},
		{"exhale", flags.exhale, model.PhaseExhale},
		{"hold-out", flags.holdOut, model.PhaseHoldAfterExhale},
	}
	for _, duration := range durations {
		if hasChangedFlags(cmd, duration.name) {
			config.SetDuration(duration.phase, duration.value)
		}
	}
	if hasChangedFlags(cmd, "prep") {
		config.Preparation = flags.prep
	}
	if hasChangedFlags(cmd, "minutes") {
		config.Session = flags.minutes * 60
	}
	if hasChangedFlags(cmd, "volume") {
		if flags.volume < 0 || flags.volume > 10 {
			return config, fmt.Errorf("volume must be between 0 and 10, got %d", flags.volume)
		}
		config.Audio.Volume = model.VolumeStep(flags.volume)
	}
	if hasChangedFlags(cmd, "mute") {
		config.Audio.Enabled = !flags.mute
	}

	config = config.Clamp(limits)
	if config.Pattern() != pattern {
		config.PresetName = model.CustomPresetName
	}
	return config, nil
}

func patternFlagsChanged(cmd *cobra.Command) bool {
	return hasChangedFlags(cmd, "preset", "inhale", "hold-in", "exhale", "hold-out", "prep", "minutes", "volume", "mute")
}
