package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"network-watchdog/internal/domain"
	"network-watchdog/internal/logging"
)

// Driver owns the probe → recover → sleep loop. Cycles never overlap: the
// loop and any web-triggered check are serialized through a single lock so
// every remediation observes the effect of its own prior action.
type Driver struct {
	cfg     domain.Config
	prober  domain.Prober
	orch    *Orchestrator
	service *domain.WatchService
	clock   clock.Clock

	runMu sync.Mutex // serializes cycle execution

	mu    sync.RWMutex // guards state
	state domain.WatchState
}

// NewDriver validates the configuration and prepares the driver.
// Dependencies are injected (secondary ports).
func NewDriver(cfg domain.Config, prober domain.Prober, controller domain.AdapterController, clk clock.Clock) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if prober == nil || controller == nil {
		return nil, fmt.Errorf("prober and controller are required")
	}
	if clk == nil {
		clk = clock.New()
	}
	service := domain.NewWatchService()
	return &Driver{
		cfg:     cfg,
		prober:  prober,
		orch:    NewOrchestrator(controller, prober, clk),
		service: service,
		clock:   clk,
		state:   service.Started(clk.Now()),
	}, nil
}

// Config returns a copy of the run configuration.
func (d *Driver) Config() domain.Config {
	return d.cfg
}

// Snapshot returns the current watch state for external consumption.
func (d *Driver) Snapshot() domain.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return domain.Snapshot{Config: d.cfg, State: d.state}
}

// Run drives cycles until ctx is cancelled. In once mode exactly one cycle
// runs and a non-restored outcome is returned as an error so the caller can
// exit non-zero. In continuous mode no cycle outcome is fatal; the driver
// sleeps the full interval after every cycle and tries again.
func (d *Driver) Run(ctx context.Context) error {
	if d.cfg.RunOnce {
		outcome := d.runCycle(ctx)
		if !outcome.Restored() {
			return fmt.Errorf("%w (%s)", domain.ErrRecoveryFailed, outcome.Final)
		}
		return nil
	}

	logging.Infof("checking network every %s", d.cfg.Interval)
	for {
		d.runCycle(ctx)

		timer := d.clock.Timer(d.cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			logging.Infof("watch loop stopped: %v", ctx.Err())
			return nil
		case <-timer.C:
		}
	}
}

// CheckNow runs one cycle outside the schedule, serialized with the loop.
func (d *Driver) CheckNow(ctx context.Context) domain.CycleOutcome {
	return d.runCycle(ctx)
}

func (d *Driver) runCycle(ctx context.Context) domain.CycleOutcome {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	d.state = d.service.CycleStarted(d.state)
	d.mu.Unlock()

	triggeredAt := d.clock.Now()
	logging.Infof("checking network...")
	res := d.prober.Probe(ctx)
	observeProbe(res)

	var outcome domain.CycleOutcome
	if res.Reachable {
		logging.Infof("network OK (%s)", res.Latency.Round(time.Millisecond))
		outcome = domain.CycleOutcome{
			TriggeredAt: triggeredAt,
			Final:       domain.RestoredWithoutAction,
		}
	} else {
		logging.Warnf("network unreachable (%s), attempting Wi-Fi recovery", res.Reason)
		outcome = d.orch.Recover(ctx, d.cfg, triggeredAt)
		if !outcome.Restored() {
			logging.Warnf("recovery failed this round: %s", outcome.Final)
		}
	}
	observeCycle(outcome)

	d.mu.Lock()
	d.state = d.service.CycleFinished(d.state, outcome, d.clock.Now(), d.cfg.Interval)
	d.mu.Unlock()
	return outcome
}
