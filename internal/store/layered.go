// Package store persists campaign progress. A Layered store keeps a local
// cache that is always written synchronously and mirrors saves to an
// optional remote backend from a background worker.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/peterkuimelis/solorun/internal/campaign"
)

// Remote is a durable progress backend mirrored by Layered.
type Remote interface {
	// Load returns nil, nil when nothing is stored for the hero.
	Load(ctx context.Context, heroID string) (*campaign.Progress, error)
	Save(ctx context.Context, heroID string, p campaign.Progress) error
	Close() error
}

// ErrClosed is returned by Load after Close.
var ErrClosed = errors.New("store closed")

// LayeredConfig configures a Layered store.
type LayeredConfig struct {
	Local     *Local
	Remote    Remote // optional
	Logger    *zap.Logger
	Timeout   time.Duration
	QueueSize int
}

type saveJob struct {
	heroID   string
	progress campaign.Progress
}

// Layered implements campaign.ProgressStore.
type Layered struct {
	local   *Local
	remote  Remote
	logger  *zap.Logger
	timeout time.Duration

	loads singleflight.Group

	mu     sync.RWMutex
	closed bool
	queue  chan saveJob
	done   chan struct{}
}

var _ campaign.ProgressStore = (*Layered)(nil)

// NewLayered creates the store and starts its mirror worker when a remote
// is configured.
func NewLayered(cfg LayeredConfig) *Layered {
	if cfg.Local == nil {
		cfg.Local, _ = NewLocal("")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	s := &Layered{
		local:   cfg.Local,
		remote:  cfg.Remote,
		logger:  cfg.Logger,
		timeout: cfg.Timeout,
		done:    make(chan struct{}),
	}
	if s.remote == nil {
		close(s.done)
		return s
	}
	s.queue = make(chan saveJob, cfg.QueueSize)
	go s.run()
	return s
}

// Load returns the hero's progress. The remote copy wins when present and
// is written back to the local cache. Remote failures are logged and the
// local copy is used.
func (s *Layered) Load(ctx context.Context, heroID string) (*campaign.Progress, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	local, err := s.local.Get(heroID)
	if err != nil {
		s.logger.Warn("read local progress", zap.String("hero", heroID), zap.Error(err))
		local = nil
	}
	if s.remote == nil {
		return local, nil
	}

	ch := s.loads.DoChan(heroID, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.remote.Load(rctx, heroID)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		s.logger.Warn("remote progress load abandoned", zap.String("hero", heroID), zap.Error(ctx.Err()))
		return local, nil
	}
	if res.Err != nil {
		s.logger.Warn("remote progress load failed", zap.String("hero", heroID), zap.Error(res.Err))
		return local, nil
	}
	remote, _ := res.Val.(*campaign.Progress)
	if remote == nil {
		return local, nil
	}

	p := remote.Clone()
	if err := s.local.Put(heroID, p); err != nil {
		s.logger.Warn("write back remote progress", zap.String("hero", heroID), zap.Error(err))
	}
	return &p, nil
}

// Save writes the local cache synchronously and queues a remote mirror
// write. A full queue drops the mirror write.
func (s *Layered) Save(heroID string, p campaign.Progress) {
	if err := s.local.Put(heroID, p); err != nil {
		s.logger.Warn("save local progress", zap.String("hero", heroID), zap.Error(err))
	}
	if s.remote == nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.logger.Warn("progress save after close", zap.String("hero", heroID))
		return
	}
	select {
	case s.queue <- saveJob{heroID: heroID, progress: p.Clone()}:
	default:
		s.logger.Warn("progress mirror queue full, dropping save", zap.String("hero", heroID))
	}
}

func (s *Layered) run() {
	defer close(s.done)
	for job := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err := s.remote.Save(ctx, job.heroID, job.progress)
		cancel()
		if err != nil {
			s.logger.Warn("remote progress save failed", zap.String("hero", job.heroID), zap.Error(err))
			continue
		}
		s.logger.Debug("progress mirrored", zap.String("hero", job.heroID), zap.Int("node", job.progress.CurrentNodeID))
	}
}

// Close drains pending mirror writes and closes the remote.
func (s *Layered) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.queue != nil {
		close(s.queue)
	}
	s.mu.Unlock()

	<-s.done
	if s.remote != nil {
		return s.remote.Close()
	}
	return nil
}
