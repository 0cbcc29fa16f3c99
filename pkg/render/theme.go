package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

// Theme selects the color scheme.
type Theme int

const (
	Light Theme = iota
	Dark
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("unknown theme %q", s)
}

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Outline colors circle borders and edges. It is a translucent white on
// dark backgrounds and a translucent black on light ones.
func (t Theme) Outline() string {
	if t == Dark {
		return "rgba(255,255,255,0.2)"
	}
	return "rgba(0,0,0,0.2)"
}

// Background is the page color a sink paints behind the graph.
func (t Theme) Background() string {
	if t == Dark {
		return "#000000"
	}
	return "#ffffff"
}

// LabelColor is used for all label text, independent of the theme.
const LabelColor = "#000000"

// FallbackColor fills nodes whose category has no palette entry.
const FallbackColor = "#cccccc"

var palette = map[graph.Category]string{
	graph.CategoryLanguages:  "#FF6B6B",
	graph.CategoryFrameworks: "#4ECDC4",
	graph.CategoryDatabase:   "#FFEEAD",
	graph.CategoryDev:        "#96CEB4",
	graph.CategoryTest:       "#D4A5A5",
	graph.CategoryCloud:      "#88D8B0",
	graph.CategoryKnowledge:  "#9FA8DA",
}

// CategoryColor returns the fill color of a category.
func CategoryColor(c graph.Category) string {
	if col, ok := palette[c]; ok {
		return col
	}
	return FallbackColor
}
