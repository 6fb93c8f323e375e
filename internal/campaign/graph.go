package campaign

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Graph is the immutable campaign map: a DAG from a single Start node to a
// single Boss node.
type Graph struct {
	nodes map[int]Node
	ids   []int
	start int
	boss  int
}

// NewGraph validates nodes and builds a graph.
func NewGraph(nodes []Node) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("map has no nodes")
	}
	g := &Graph{nodes: make(map[int]Node, len(nodes))}
	for _, n := range nodes {
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %d", n.ID)
		}
		n.Connections = append([]int(nil), n.Connections...)
		g.nodes[n.ID] = n
		g.ids = append(g.ids, n.ID)
	}
	sort.Ints(g.ids)

	indeg := make(map[int]int, len(nodes))
	for _, id := range g.ids {
		n := g.nodes[id]
		for _, to := range n.Connections {
			if _, ok := g.nodes[to]; !ok {
				return nil, fmt.Errorf("node %d connects to unknown node %d", id, to)
			}
			if to == id {
				return nil, fmt.Errorf("node %d connects to itself", id)
			}
			indeg[to]++
		}
	}

	var sources, sinks []int
	for _, id := range g.ids {
		if indeg[id] == 0 {
			sources = append(sources, id)
		}
		if len(g.nodes[id].Connections) == 0 {
			sinks = append(sinks, id)
		}
	}
	if len(sources) != 1 || g.nodes[sources[0]].Type != NodeStart {
		return nil, fmt.Errorf("map needs exactly one entry node of type Start, found %v", sources)
	}
	if len(sinks) != 1 || g.nodes[sinks[0]].Type != NodeBoss {
		return nil, fmt.Errorf("map needs exactly one final node of type Boss, found %v", sinks)
	}
	g.start, g.boss = sources[0], sinks[0]

	// Kahn's algorithm: every node is visited iff the graph is acyclic. With
	// a single source that also proves every node is reachable from Start.
	queue := []int{g.start}
	seen := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		seen++
		for _, to := range g.nodes[id].Connections {
			indeg[to]--
			if indeg[to] == 0 {
				queue = append(queue, to)
			}
		}
	}
	if seen != len(g.ids) {
		return nil, fmt.Errorf("map has a cycle or nodes unreachable from Start")
	}
	return g, nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by id.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.ids))
	for i, id := range g.ids {
		out[i] = g.nodes[id]
	}
	return out
}

// Successors returns the ids a node connects to.
func (g *Graph) Successors(id int) []int {
	return g.nodes[id].Connections
}

func (g *Graph) Start() Node { return g.nodes[g.start] }
func (g *Graph) Boss() Node  { return g.nodes[g.boss] }

// Reachable reports whether target may be selected from current: it is a
// direct successor, the current node itself, or an already visited node.
func (g *Graph) Reachable(current int, visited map[int]bool, target int) bool {
	if target == current || visited[target] {
		return true
	}
	for _, to := range g.nodes[current].Connections {
		if to == target {
			return true
		}
	}
	return false
}

// --- YAML map files ---

// GraphFile represents the top-level YAML structure of a map.
type GraphFile struct {
	Nodes []NodeEntry `yaml:"nodes"`
}

// NodeEntry represents a single node in the YAML file.
type NodeEntry struct {
	ID          int         `yaml:"id"`
	Type        string      `yaml:"type"`
	Label       string      `yaml:"label"`
	X           int         `yaml:"x"`
	Y           int         `yaml:"y"`
	Connections []int       `yaml:"connections"`
	Enemy       *EnemyStats `yaml:"enemy"`
}

// LoadGraphFile reads a YAML map from disk.
func LoadGraphFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGraph(data)
}

// ParseGraph parses YAML map data.
func ParseGraph(data []byte) (*Graph, error) {
	var gf GraphFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, fmt.Errorf("parse map YAML: %w", err)
	}
	nodes := make([]Node, 0, len(gf.Nodes))
	for _, e := range gf.Nodes {
		t, err := ParseNodeType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", e.ID, err)
		}
		nodes = append(nodes, Node{
			ID:          e.ID,
			Type:        t,
			Label:       e.Label,
			X:           e.X,
			Y:           e.Y,
			Connections: e.Connections,
			Enemy:       e.Enemy,
		})
	}
	return NewGraph(nodes)
}
