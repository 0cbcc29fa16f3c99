package engine

import "time"

// Config holds the timing and camera constants of the engine.
type Config struct {
	// SettleDelay is the wait after the first non-zero viewport before the
	// first layout runs.
	SettleDelay    time.Duration `toml:"settle_delay"`
	ResizeDebounce time.Duration `toml:"resize_debounce"`
	FitDuration    time.Duration `toml:"fit_duration"`
	FitPadding     float64       `toml:"fit_padding"`
	CenterDuration time.Duration `toml:"center_duration"`
	// FrameInterval is the tick period used by [Driver].
	FrameInterval time.Duration `toml:"frame_interval"`
	MinZoom       float64       `toml:"min_zoom"`
	MaxZoom       float64       `toml:"max_zoom"`
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		SettleDelay:    time.Second,
		ResizeDebounce: 100 * time.Millisecond,
		FitDuration:    400 * time.Millisecond,
		FitPadding:     50,
		CenterDuration: time.Second,
		FrameInterval:  16 * time.Millisecond,
		MinZoom:        0.01,
		MaxZoom:        8,
	}
}

// SetDefaults fills zero fields with their default values.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.SettleDelay == 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.ResizeDebounce == 0 {
		c.ResizeDebounce = d.ResizeDebounce
	}
	if c.FitDuration == 0 {
		c.FitDuration = d.FitDuration
	}
	if c.FitPadding == 0 {
		c.FitPadding = d.FitPadding
	}
	if c.CenterDuration == 0 {
		c.CenterDuration = d.CenterDuration
	}
	if c.FrameInterval == 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.MinZoom == 0 {
		c.MinZoom = d.MinZoom
	}
	if c.MaxZoom == 0 {
		c.MaxZoom = d.MaxZoom
	}
}
