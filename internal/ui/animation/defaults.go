package animation

import "time"

// DefaultConfig returns values tuned for a 60 Hz display.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		MinScale:      0.45,
		MaxScale:      1,
	}
}
