package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"network-watchdog/internal/domain"
	"network-watchdog/internal/logging"
)

// Orchestrator runs one recovery pass after a failed probe. It sequences
// radio enable, adapter enable and profile connects, re-probing after every
// connect, and records one AttemptRecord per profile tried.
type Orchestrator struct {
	controller domain.AdapterController
	prober     domain.Prober
	clock      clock.Clock
}

// NewOrchestrator creates an orchestrator over the injected secondary ports.
func NewOrchestrator(controller domain.AdapterController, prober domain.Prober, clk clock.Clock) *Orchestrator {
	if clk == nil {
		clk = clock.New()
	}
	return &Orchestrator{controller: controller, prober: prober, clock: clk}
}

// Recover drives the recovery state machine for one cycle. A radio or
// adapter failure is terminal for the cycle and is retried only on the next
// scheduled cycle; the interval itself acts as the backoff. The first
// candidate whose post-connect probe succeeds stops the sequence.
func (o *Orchestrator) Recover(ctx context.Context, cfg domain.Config, triggeredAt time.Time) domain.CycleOutcome {
	outcome := domain.CycleOutcome{
		TriggeredAt:    triggeredAt,
		WasUnreachable: true,
	}

	logging.Infof("step 1/2: turning on Wi-Fi radio")
	if err := o.controller.EnableRadio(ctx); err != nil {
		outcome.Final = domain.AdapterControlFailed
		outcome.Err = fmt.Errorf("enable radio: %w", err)
		logging.Warnf("enable radio failed: %v", err)
		return outcome
	}

	if err := o.controller.EnableAdapter(ctx); err != nil {
		outcome.Final = domain.AdapterControlFailed
		outcome.Err = fmt.Errorf("enable adapter: %w", err)
		logging.Warnf("enable adapter failed: %v", err)
		return outcome
	}

	logging.Infof("step 2/2: enumerating saved Wi-Fi profiles")
	saved, err := o.controller.SavedProfiles(ctx)
	if err != nil {
		outcome.Final = domain.AdapterControlFailed
		outcome.Err = fmt.Errorf("list saved profiles: %w", err)
		logging.Warnf("list saved profiles failed: %v", err)
		return outcome
	}
	logging.Debugf("%d saved profile(s)", len(saved))

	var visible []string
	if cfg.Mode == domain.ModeVisibleOnly {
		visible, err = o.controller.VisibleNetworks(ctx)
		if err != nil {
			outcome.Final = domain.AdapterControlFailed
			outcome.Err = fmt.Errorf("list visible networks: %w", err)
			logging.Warnf("list visible networks failed: %v", err)
			return outcome
		}
		logging.Debugf("%d visible network(s): %v", len(visible), visible)
	}

	candidates := domain.SelectCandidates(cfg.Mode, cfg.Profiles, saved, visible)
	if len(candidates) == 0 {
		logging.Infof("no profiles to try after filter (mode: %s)", cfg.Mode)
		outcome.Final = domain.ExhaustedAllProfiles
		return outcome
	}

	for i, profile := range candidates {
		// Cancellation is honored between attempts, never mid call. An
		// aborted cycle is not exhaustion: candidates remain untried.
		if err := ctx.Err(); err != nil {
			logging.Infof("recovery abandoned after %d of %d profile(s): %v",
				len(outcome.Attempts), len(candidates), err)
			outcome.Final = domain.RecoveryAborted
			outcome.Err = err
			return outcome
		}

		record := domain.AttemptRecord{Profile: profile, StartedAt: o.clock.Now()}
		logging.Infof("[%d/%d] connecting: %q", i+1, len(candidates), profile)

		if err := o.controller.Connect(ctx, profile); err != nil {
			logging.Infof("connect %q failed: %v", profile, err)
			record.Outcome = domain.AttemptConnectFailed
			outcome.Attempts = append(outcome.Attempts, record)
			continue
		}

		res := o.prober.Probe(ctx)
		observeProbe(res)
		if res.Reachable {
			record.Outcome = domain.AttemptConnected
			outcome.Attempts = append(outcome.Attempts, record)
			outcome.Final = domain.RestoredByProfile
			outcome.RestoredBy = profile
			logging.Infof("network restored via %q", profile)
			return outcome
		}

		logging.Infof("%q connected but probe failed (%s), trying next", profile, res.Reason)
		record.Outcome = domain.AttemptStillUnreachable
		outcome.Attempts = append(outcome.Attempts, record)
	}

	logging.Warnf("tried %d profile(s), none restored network", len(outcome.Attempts))
	outcome.Final = domain.ExhaustedAllProfiles
	return outcome
}
