package usecase

import (
	"context"
	"sync"

	"network-watchdog/internal/domain"
)

// scriptedController returns preconfigured results and counts every call,
// so tests can assert exactly which adapter operations ran.
type scriptedController struct {
	mu sync.Mutex

	radioErr   error
	adapterErr error
	saved      []string
	savedErr   error
	visible    []string
	visibleErr error
	connectErr map[string]error

	radioCalls   int
	adapterCalls int
	visibleCalls int
	connectCalls []string
}

func (c *scriptedController) EnableRadio(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radioCalls++
	return c.radioErr
}

func (c *scriptedController) EnableAdapter(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adapterCalls++
	return c.adapterErr
}

func (c *scriptedController) SavedProfiles(ctx context.Context) ([]string, error) {
	return c.saved, c.savedErr
}

func (c *scriptedController) VisibleNetworks(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visibleCalls++
	return c.visible, c.visibleErr
}

func (c *scriptedController) Connect(ctx context.Context, profile string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connectCalls = append(c.connectCalls, profile)
	if c.connectErr == nil {
		return nil
	}
	return c.connectErr[profile]
}

func (c *scriptedController) connected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.connectCalls...)
}

func (c *scriptedController) calls() (radio, adapter int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radioCalls, c.adapterCalls
}

// scriptedProber replays a sequence of results; the last one repeats.
type scriptedProber struct {
	mu      sync.Mutex
	results []domain.ProbeResult
	calls   int
}

func reachable() domain.ProbeResult {
	return domain.ProbeResult{Reachable: true}
}

func unreachable() domain.ProbeResult {
	return domain.ProbeResult{Reason: domain.ReasonTimeout}
}

func (p *scriptedProber) Probe(ctx context.Context) domain.ProbeResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := p.calls
	p.calls++
	if idx >= len(p.results) {
		idx = len(p.results) - 1
	}
	return p.results[idx]
}
