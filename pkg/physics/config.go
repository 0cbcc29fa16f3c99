package physics

import "math"

// Config holds the force and integration constants.
// Zero fields are replaced by their defaults in [Config.SetDefaults], so a
// strength cannot be switched off by setting it to zero; use the Disable
// flags instead.
type Config struct {
	NodeRadius float64 `toml:"node_radius"`

	// Link distance grows linearly from MinLinkDistance at LinkMinNodes
	// nodes to MaxLinkDistance at the reference (catalog) node count.
	MinLinkDistance float64 `toml:"min_link_distance"`
	MaxLinkDistance float64 `toml:"max_link_distance"`
	LinkMinNodes    int     `toml:"link_min_nodes"`
	LinkStrength    float64 `toml:"link_strength"`

	ChargeStrength    float64 `toml:"charge_strength"`
	ChargeDistanceMin float64 `toml:"charge_distance_min"`
	ChargeDistanceMax float64 `toml:"charge_distance_max"`

	CenterStrength float64 `toml:"center_strength"`

	CollisionStrength     float64 `toml:"collision_strength"`
	CollisionRadiusOffset float64 `toml:"collision_radius_offset"`
	LeafRepulsion         float64 `toml:"leaf_repulsion"`

	CrossingStrength float64 `toml:"crossing_strength"`
	MaxCrossingPairs int     `toml:"max_crossing_pairs"`
	DisableCrossing  bool    `toml:"disable_crossing"`

	// VelocityDecay is the fraction of velocity lost per tick.
	VelocityDecay float64 `toml:"velocity_decay"`
	AlphaMin      float64 `toml:"alpha_min"`
	AlphaDecay    float64 `toml:"alpha_decay"`
	AlphaTarget   float64 `toml:"alpha_target"`

	// CooldownTicks caps the ticks between a reheat and the settle signal.
	CooldownTicks int `toml:"cooldown_ticks"`
	// WarmupTicks run off-screen after every relayout.
	WarmupTicks int `toml:"warmup_ticks"`
}

// DefaultConfig returns the standard simulation constants.
func DefaultConfig() Config {
	return Config{
		NodeRadius:            40,
		MinLinkDistance:       160,
		MaxLinkDistance:       260,
		LinkMinNodes:          5,
		LinkStrength:          0.7,
		ChargeStrength:        -450,
		ChargeDistanceMin:     1,
		ChargeDistanceMax:     120,
		CenterStrength:        0.05,
		CollisionStrength:     1.5,
		CollisionRadiusOffset: 2.5,
		LeafRepulsion:         1.2,
		CrossingStrength:      0.02,
		MaxCrossingPairs:      1000,
		VelocityDecay:         0.2,
		AlphaMin:              0.001,
		AlphaDecay:            1 - math.Pow(0.001, 1.0/300),
		CooldownTicks:         100,
		WarmupTicks:           50,
	}
}

// SetDefaults fills zero fields with their default values.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	setF := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setI := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	setF(&c.NodeRadius, d.NodeRadius)
	setF(&c.MinLinkDistance, d.MinLinkDistance)
	setF(&c.MaxLinkDistance, d.MaxLinkDistance)
	setI(&c.LinkMinNodes, d.LinkMinNodes)
	setF(&c.LinkStrength, d.LinkStrength)
	setF(&c.ChargeStrength, d.ChargeStrength)
	setF(&c.ChargeDistanceMin, d.ChargeDistanceMin)
	setF(&c.ChargeDistanceMax, d.ChargeDistanceMax)
	setF(&c.CenterStrength, d.CenterStrength)
	setF(&c.CollisionStrength, d.CollisionStrength)
	setF(&c.CollisionRadiusOffset, d.CollisionRadiusOffset)
	setF(&c.LeafRepulsion, d.LeafRepulsion)
	setF(&c.CrossingStrength, d.CrossingStrength)
	setI(&c.MaxCrossingPairs, d.MaxCrossingPairs)
	setF(&c.VelocityDecay, d.VelocityDecay)
	setF(&c.AlphaMin, d.AlphaMin)
	setF(&c.AlphaDecay, d.AlphaDecay)
	setI(&c.CooldownTicks, d.CooldownTicks)
	setI(&c.WarmupTicks, d.WarmupTicks)
}

// LinkDistance returns the target link length for a graph of nodeCount
// nodes, given the node count of the full catalog.
func (c Config) LinkDistance(nodeCount, reference int) float64 {
	lo, hi := c.LinkMinNodes, reference
	if hi <= lo {
		return c.MinLinkDistance
	}
	n := min(max(nodeCount, lo), hi)
	t := float64(n-lo) / float64(hi-lo)
	return c.MinLinkDistance + t*(c.MaxLinkDistance-c.MinLinkDistance)
}

// CollisionRadius returns the collision radius of a node.
func (c Config) CollisionRadius(leaf bool) float64 {
	r := c.NodeRadius * (1 + c.CollisionRadiusOffset)
	if leaf {
		r *= c.LeafRepulsion
	}
	return r
}
