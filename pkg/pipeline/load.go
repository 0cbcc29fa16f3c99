package pipeline

import (
	"os"

	"github.com/matzehuels/skillgraph/pkg/errors"
	"github.com/matzehuels/skillgraph/pkg/graph"
)

// Load returns the graph to render: opts.Graph, the file at
// opts.InputPath, or the embedded catalog, in that order of preference.
func Load(opts Options) (graph.Graph, error) {
	var g graph.Graph
	switch {
	case opts.Graph != nil:
		g = opts.Graph.Clone()
	case opts.InputPath != "":
		var err error
		g, err = graph.ReadGraphFile(opts.InputPath)
		if os.IsNotExist(err) {
			return graph.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file not found: %s", opts.InputPath)
		}
		if err != nil {
			return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read graph %s", opts.InputPath)
		}
	default:
		return graph.Catalog(), nil
	}

	if err := g.Validate(); err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid graph")
	}
	return g, nil
}
