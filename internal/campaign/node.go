package campaign

import (
	"fmt"
	"strings"
)

type NodeType int

const (
	NodeStart NodeType = iota
	NodeCombat
	NodeEvent
	NodeResource
	NodeRest
	NodeBoss
)

func (t NodeType) String() string {
	switch t {
	case NodeStart:
		return "Start"
	case NodeCombat:
		return "Combat"
	case NodeEvent:
		return "Event"
	case NodeResource:
		return "Resource"
	case NodeRest:
		return "Rest"
	case NodeBoss:
		return "Boss"
	default:
		return "Unknown"
	}
}

// ParseNodeType parses a node type name (case-insensitive).
func ParseNodeType(s string) (NodeType, error) {
	for t := NodeStart; t <= NodeBoss; t++ {
		if strings.EqualFold(t.String(), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", s)
}

func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *NodeType) UnmarshalText(b []byte) error {
	v, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// IsCombat reports whether visiting the node opens a battle.
func (t NodeType) IsCombat() bool {
	return t == NodeCombat || t == NodeBoss
}

// Default enemy stats when a node does not override them.
const (
	DefaultEnemyHP     = 14
	DefaultEnemyDamage = 4
	BossEnemyHP        = 26
	BossEnemyDamage    = 5
)

// EnemyStats overrides the default enemy of a combat node.
type EnemyStats struct {
	HP     int `json:"hp" yaml:"hp"`
	Damage int `json:"damage" yaml:"damage"`
}

// Node is one encounter location on the campaign map.
type Node struct {
	ID          int         `json:"id"`
	Type        NodeType    `json:"type"`
	Label       string      `json:"label"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Connections []int       `json:"connections"`
	Enemy       *EnemyStats `json:"enemy,omitempty"`
}

// EnemyFor returns the enemy a combat node fields.
func (n Node) EnemyFor() EnemyStats {
	if n.Enemy != nil {
		return *n.Enemy
	}
	if n.Type == NodeBoss {
		return EnemyStats{HP: BossEnemyHP, Damage: BossEnemyDamage}
	}
	return EnemyStats{HP: DefaultEnemyHP, Damage: DefaultEnemyDamage}
}
