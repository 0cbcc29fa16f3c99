package layout

// Config holds the tunable constants of the initial placement.
// Zero fields are replaced by their defaults in [Config.SetDefaults].
type Config struct {
	// NodeRadius is the base node radius used to size component circles.
	NodeRadius float64 `toml:"node_radius"`

	// RingFraction of min(width, height) is the radius of the category ring.
	RingFraction float64 `toml:"ring_fraction"`
	// SubRingFraction of the ring radius is the radius of each category's sub-circle.
	SubRingFraction float64 `toml:"sub_ring_fraction"`
	// SpreadFactor pushes leaf nodes further out on their sub-circle.
	SpreadFactor float64 `toml:"spread_factor"`
	// OffsetStep is the deterministic per-node jitter step for non-leaf nodes.
	OffsetStep float64 `toml:"offset_step"`

	// RadiusPadding scales a component's measured radius.
	RadiusPadding float64 `toml:"radius_padding"`
	// PairGap separates two components placed side by side.
	PairGap float64 `toml:"pair_gap"`
	// UsableWidth is the fraction of the viewport width a row of components may span.
	UsableWidth float64 `toml:"usable_width"`
	// MaxSpacingFactor caps component spacing at this multiple of the average radius.
	MaxSpacingFactor float64 `toml:"max_spacing_factor"`
	// MinPadding is the minimum gap between two component circles.
	MinPadding float64 `toml:"min_padding"`
	// OverlapPasses bounds the overlap resolution loop.
	OverlapPasses int `toml:"overlap_passes"`
	// BoundsPadding is the horizontal margin kept when re-centering.
	BoundsPadding float64 `toml:"bounds_padding"`
}

// DefaultConfig returns the standard placement constants.
func DefaultConfig() Config {
	return Config{
		NodeRadius:       40,
		RingFraction:     0.35,
		SubRingFraction:  0.5,
		SpreadFactor:     1.5,
		OffsetStep:       3,
		RadiusPadding:    1.7,
		PairGap:          80,
		UsableWidth:      0.8,
		MaxSpacingFactor: 2.5,
		MinPadding:       50,
		OverlapPasses:    5,
		BoundsPadding:    40,
	}
}

// SetDefaults fills zero fields with their default values.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.NodeRadius == 0 {
		c.NodeRadius = d.NodeRadius
	}
	if c.RingFraction == 0 {
		c.RingFraction = d.RingFraction
	}
	if c.SubRingFraction == 0 {
		c.SubRingFraction = d.SubRingFraction
	}
	if c.SpreadFactor == 0 {
		c.SpreadFactor = d.SpreadFactor
	}
	if c.OffsetStep == 0 {
		c.OffsetStep = d.OffsetStep
	}
	if c.RadiusPadding == 0 {
		c.RadiusPadding = d.RadiusPadding
	}
	if c.PairGap == 0 {
		c.PairGap = d.PairGap
	}
	if c.UsableWidth == 0 {
		c.UsableWidth = d.UsableWidth
	}
	if c.MaxSpacingFactor == 0 {
		c.MaxSpacingFactor = d.MaxSpacingFactor
	}
	if c.MinPadding == 0 {
		c.MinPadding = d.MinPadding
	}
	if c.OverlapPasses == 0 {
		c.OverlapPasses = d.OverlapPasses
	}
	if c.BoundsPadding == 0 {
		c.BoundsPadding = d.BoundsPadding
	}
}
