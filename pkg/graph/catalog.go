package graph

import (
	_ "embed"
	"sync"
)

//go:embed catalog.json
var catalogJSON []byte

var (
	catalogOnce sync.Once
	catalog     Graph
)

// Catalog returns a fresh copy of the built-in skill catalog.
//
// The catalog carries a few duplicate and reverse-duplicate links (for
// example python→flask and flask→python). They are kept as-is: each one
// counts towards degree and link force.
func Catalog() Graph {
	catalogOnce.Do(func() {
		g, err := UnmarshalGraph(catalogJSON)
		if err != nil {
			panic("graph: embedded catalog is invalid: " + err.Error())
		}
		catalog = g
	})
	return catalog.Clone()
}
