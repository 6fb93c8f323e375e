package campaign

import (
	"fmt"

	"github.com/peterkuimelis/solorun/internal/game"
)

// LoadContent loads the card catalog and map. Empty paths select the
// built-in defaults.
func LoadContent(catalogPath, mapPath string) (*game.Catalog, *Graph, error) {
	catalog := game.DefaultCatalog()
	if catalogPath != "" {
		c, err := game.LoadCatalogFile(catalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog %s: %w", catalogPath, err)
		}
		catalog = c
	}
	graph := DefaultGraph()
	if mapPath != "" {
		g, err := LoadGraphFile(mapPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load map %s: %w", mapPath, err)
		}
		graph = g
	}
	return catalog, graph, nil
}
