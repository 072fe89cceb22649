package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/web3-frozen/perp-vault-dashboard/internal/metrics"
)

// FetchFunc returns the raw JSON body for one source key.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Entry is the latest known state of one key. A zero Entry means no fetch has
// completed yet.
type Entry struct {
	Data      []byte    `json:"-"`
	Err       error     `json:"-"`
	Loaded    bool      `json:"loaded"`
	InFlight  bool      `json:"in_flight"`
	UpdatedAt time.Time `json:"updated_at"`
}

type keyState struct {
	entry    Entry
	started  uint64 // sequence number of the newest fetch
	inFlight int
}

// Poller keeps the latest snapshot per source key and refreshes all keys
// concurrently. Results of a fetch that was overtaken by a newer one are
// dropped when they arrive.
type Poller struct {
	logger   *slog.Logger
	interval time.Duration
	keys     []string
	fetchers map[string]FetchFunc

	mu     sync.RWMutex
	states map[string]*keyState
}

func NewPoller(logger *slog.Logger, interval time.Duration) *Poller {
	return &Poller{
		logger:   logger,
		interval: interval,
		fetchers: make(map[string]FetchFunc),
		states:   make(map[string]*keyState),
	}
}

// Register adds a source key. Registration must happen before Run.
func (p *Poller) Register(key string, fn FetchFunc) {
	if _, ok := p.fetchers[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.fetchers[key] = fn
	p.states[key] = &keyState{}
	p.logger.Info("registered poll key", "key", key)
}

// Keys returns registered keys in registration order.
func (p *Poller) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Run refreshes immediately and then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh fetches every key concurrently and returns when all have resolved.
// A failing key never cancels the others.
func (p *Poller) Refresh(ctx context.Context) {
	var g errgroup.Group
	for _, key := range p.keys {
		key := key
		g.Go(func() error {
			p.fetch(ctx, key)
			return nil
		})
	}
	_ = g.Wait()
}

// RefreshKey fetches a single key.
func (p *Poller) RefreshKey(ctx context.Context, key string) {
	if _, ok := p.fetchers[key]; !ok {
		return
	}
	p.fetch(ctx, key)
}

func (p *Poller) fetch(ctx context.Context, key string) {
	p.mu.Lock()
	st := p.states[key]
	st.started++
	seq := st.started
	st.inFlight++
	p.mu.Unlock()

	data, err := p.fetchers[key](ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	st.inFlight--
	if seq != st.started {
		metrics.PollSuperseded.WithLabelValues(key).Inc()
		p.logger.Debug("dropping superseded poll result", "key", key)
		return
	}

	now := time.Now()
	if err != nil {
		metrics.PollTotal.WithLabelValues(key, "error").Inc()
		p.logger.Error("poll failed", "key", key, "error", err)
		st.entry = Entry{Err: err, Loaded: true, UpdatedAt: now}
		return
	}
	metrics.PollTotal.WithLabelValues(key, "success").Inc()
	metrics.PollLastSuccess.WithLabelValues(key).Set(float64(now.Unix()))
	st.entry = Entry{Data: data, Loaded: true, UpdatedAt: now}
}

// Snapshot returns a copy of every key's latest entry.
func (p *Poller) Snapshot() map[string]Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]Entry, len(p.states))
	for key, st := range p.states {
		e := st.entry
		e.InFlight = st.inFlight > 0
		out[key] = e
	}
	return out
}
