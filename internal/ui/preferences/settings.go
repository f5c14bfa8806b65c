package preferences

import (
	"strconv"
	"strings"

	"respira/internal/core/model"
)

// Fields holds the raw text of the duration entries.
type Fields struct {
	Inhale          string
	HoldAfterInhale string
	Exhale          string
	HoldAfterExhale string
	Preparation     string
	Minutes         string
}

// FieldsFromConfig formats config for the entries.
func FieldsFromConfig(config model.Config) Fields {
	return Fields{
		Inhale:          strconv.Itoa(config.Inhale),
		HoldAfterInhale: strconv.Itoa(config.HoldAfterInhale),
		Exhale:          strconv.Itoa(config.Exhale),
		HoldAfterExhale: strconv.Itoa(config.HoldAfterExhale),
		Preparation:     strconv.Itoa(config.Preparation),
		Minutes:         strconv.Itoa(config.Session / 60),
	}
}

// Apply writes the parsed fields into config. Entries that are not
// non-negative integers keep the current value. When the breathing pattern
// changes the preset label becomes Custom.
func (fields Fields) Apply(config model.Config) model.Config {
	before := config.Pattern()

	setField(&config.Inhale, fields.Inhale)
	setField(&config.HoldAfterInhale, fields.HoldAfterInhale)
	setField(&config.Exhale, fields.Exhale)
	setField(&config.HoldAfterExhale, fields.HoldAfterExhale)
	setField(&config.Preparation, fields.Preparation)

	var minutes int
	if parseNonNegativeInt(fields.Minutes, &minutes) {
		config.Session = minutes * 60
	}

	if config.Pattern() != before {
		config.PresetName = model.CustomPresetName
	}
	return config
}

func setField(target *int, value string) {
	var parsed int
	if parseNonNegativeInt(value, &parsed) {
		*target = parsed
	}
}

func parseNonNegativeInt(value string, target *int) bool {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return false
	}
	*target = parsed
	return true
}
