package campaign

import (
	"context"
	"slices"
)

// MaxLogLines bounds the progress log kept with the campaign.
const MaxLogLines = 10

// Progress is the persisted state of one hero's campaign.
type Progress struct {
	CurrentNodeID  int      `json:"current_node_id"`
	Visited        []int    `json:"visited"`
	Log            []string `json:"log"`
	BossDefeated   bool     `json:"boss_defeated"`
	HeroHP         int      `json:"hero_hp"`
	Resources      int      `json:"resources"`
	UnlockSignaled bool     `json:"unlock_signaled"`
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	p.Visited = slices.Clone(p.Visited)
	p.Log = slices.Clone(p.Log)
	return p
}

// IsVisited reports whether the node has been visited.
func (p Progress) IsVisited(id int) bool {
	return slices.Contains(p.Visited, id)
}

// VisitedSet returns the visited ids as a set.
func (p Progress) VisitedSet() map[int]bool {
	set := make(map[int]bool, len(p.Visited))
	for _, id := range p.Visited {
		set[id] = true
	}
	return set
}

func (p *Progress) markVisited(id int) {
	if !p.IsVisited(id) {
		p.Visited = append(p.Visited, id)
	}
}

func (p *Progress) addLog(line string) {
	p.Log = append(p.Log, line)
	if over := len(p.Log) - MaxLogLines; over > 0 {
		p.Log = slices.Clone(p.Log[over:])
	}
}

// ProgressStore persists campaign progress per hero. Load is consulted once
// when a campaign starts and returns nil when nothing is stored. Save is
// best-effort and must not block gameplay.
type ProgressStore interface {
	Load(ctx context.Context, heroID string) (*Progress, error)
	Save(heroID string, p Progress)
}
