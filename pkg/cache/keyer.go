package cache

import "time"

// Default TTLs per entry kind.
const (
	ArtifactTTL = 7 * 24 * time.Hour
	SnapshotTTL = 7 * 24 * time.Hour
)

// Keyer builds cache keys. Keys must change whenever anything that affects
// the cached bytes changes.
type Keyer interface {
	// SnapshotKey identifies a settled layout of a graph.
	SnapshotKey(graphHash string, opts SnapshotKeyOpts) string

	// ArtifactKey identifies one rendered output format of a settled layout.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// SnapshotKeyOpts are the inputs that determine a settled layout.
type SnapshotKeyOpts struct {
	Category   string  `json:"category"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	TuningHash string  `json:"tuning"` // hash of the layout and physics config
}

// ArtifactKeyOpts are the inputs that determine one rendered file.
type ArtifactKeyOpts struct {
	SnapshotKeyOpts
	Format     string `json:"format"`
	Theme      string `json:"theme"`
	RenderHash string `json:"render"` // hash of the render config
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SnapshotKey implements [Keyer].
func (DefaultKeyer) SnapshotKey(graphHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", graphHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
