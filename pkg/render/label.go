package render

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Text is a laid out node label. Lines are centered on the node, one per
// word for multi-word names.
type Text struct {
	Size       float64
	LineHeight float64
	Lines      []string
}

// Height returns the height of the whole text block.
func (t Text) Height() float64 { return t.LineHeight * float64(len(t.Lines)) }

// Radius returns the drawn radius of a node with the given level. Levels
// outside 0..100 are clamped.
func Radius(level int, cfg Config) float64 {
	l := float64(min(max(level, 0), 100))
	return cfg.NodeRadius * (0.8 + 0.4*l/100)
}

// Label lays out name inside a circle of radius r.
func Label(name string, r float64, cfg Config) Text {
	words := strings.Fields(name)
	if len(words) == 0 {
		return Text{Size: cfg.FontSize, LineHeight: cfg.FontSize + cfg.LineGap}
	}

	longest := 0
	for _, w := range words {
		longest = max(longest, utf8.RuneCountInString(w))
	}

	size := cfg.FontSize
	if longest > cfg.LongWord || len(words) > cfg.MaxWords {
		size = math.Max(cfg.MinFontSize, size-2)
	}
	if utf8.RuneCountInString(name) > cfg.LongLabel {
		size = math.Max(cfg.MinFontSize, size-1)
	}

	t := Text{Size: size, LineHeight: size + cfg.LineGap}
	if len(words) == 1 {
		t.Lines = []string{truncate(words[0], int(math.Floor(r*1.8)))}
		return t
	}
	limit := int(math.Floor(r * 1.5))
	t.Lines = make([]string, len(words))
	for i, w := range words {
		t.Lines[i] = truncate(w, limit)
	}
	return t
}

// truncate shortens s to limit-2 runes followed by "..", when s has more
// than limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := max(limit-2, 0)
	return string([]rune(s)[:keep]) + ".."
}
