package render

// Config holds the sizing constants for nodes and labels.
type Config struct {
	NodeRadius  float64 `toml:"node_radius"`
	FontSize    float64 `toml:"font_size"`
	MinFontSize float64 `toml:"min_font_size"`
	// MaxWords is the word count above which the font shrinks.
	MaxWords int `toml:"max_words"`
	// LongWord is the word length above which the font shrinks.
	LongWord int `toml:"long_word"`
	// LongLabel is the total label length above which the font shrinks again.
	LongLabel   int     `toml:"long_label"`
	LineGap     float64 `toml:"line_gap"`
	StrokeWidth float64 `toml:"stroke_width"`
	EdgeWidth   float64 `toml:"edge_width"`
	FontFamily  string  `toml:"font_family"`
}

// DefaultConfig returns the standard sizes.
func DefaultConfig() Config {
	return Config{
		NodeRadius:  40,
		FontSize:    12,
		MinFontSize: 9,
		MaxWords:    4,
		LongWord:    10,
		LongLabel:   20,
		LineGap:     2,
		StrokeWidth: 2,
		EdgeWidth:   2,
		FontFamily:  "Inter, system-ui, sans-serif",
	}
}

// SetDefaults fills zero fields with their default values.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.NodeRadius == 0 {
		c.NodeRadius = d.NodeRadius
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.MinFontSize == 0 {
		c.MinFontSize = d.MinFontSize
	}
	if c.MaxWords == 0 {
		c.MaxWords = d.MaxWords
	}
	if c.LongWord == 0 {
		c.LongWord = d.LongWord
	}
	if c.LongLabel == 0 {
		c.LongLabel = d.LongLabel
	}
	if c.LineGap == 0 {
		c.LineGap = d.LineGap
	}
	if c.StrokeWidth == 0 {
		c.StrokeWidth = d.StrokeWidth
	}
	if c.EdgeWidth == 0 {
		c.EdgeWidth = d.EdgeWidth
	}
	if c.FontFamily == "" {
		c.FontFamily = d.FontFamily
	}
}
