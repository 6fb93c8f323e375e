package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/peterkuimelis/solorun/internal/campaign"
)

var heroKey = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Local is the synchronous progress cache. With a directory it also keeps
// one JSON file per hero so progress survives restarts.
type Local struct {
	mu   sync.RWMutex
	dir  string
	data map[string]campaign.Progress
}

// NewLocal creates a cache. An empty dir keeps everything in memory.
func NewLocal(dir string) (*Local, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create progress dir: %w", err)
		}
	}
	return &Local{dir: dir, data: make(map[string]campaign.Progress)}, nil
}

func (l *Local) path(heroID string) (string, error) {
	if !heroKey.MatchString(heroID) {
		return "", fmt.Errorf("invalid hero id %q", heroID)
	}
	return filepath.Join(l.dir, heroID+".json"), nil
}

// Get returns the cached progress, or nil if none.
func (l *Local) Get(heroID string) (*campaign.Progress, error) {
	l.mu.RLock()
	p, ok := l.data[heroID]
	l.mu.RUnlock()
	if ok {
		c := p.Clone()
		return &c, nil
	}
	if l.dir == "" {
		return nil, nil
	}

	path, err := l.path(heroID)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	var stored campaign.Progress
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode progress %s: %w", path, err)
	}

	l.mu.Lock()
	l.data[heroID] = stored.Clone()
	l.mu.Unlock()
	return &stored, nil
}

// Put stores progress in memory and, with a directory, on disk.
func (l *Local) Put(heroID string, p campaign.Progress) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[heroID] = p.Clone()
	if l.dir == "" {
		return nil
	}

	path, err := l.path(heroID)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}
