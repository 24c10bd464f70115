package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"network-watchdog/internal/domain"
)

func allModeConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Mode = domain.ModeAll
	return cfg
}

func TestRecover_RadioFailureIsTerminal(t *testing.T) {
	controller := &scriptedController{
		radioErr: assert.AnError,
		saved:    []string{"Home"},
	}
	prober := &scriptedProber{results: []domain.ProbeResult{unreachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	outcome := orch.Recover(context.Background(), allModeConfig(), time.Now())

	assert.Equal(t, domain.AdapterControlFailed, outcome.Final)
	assert.ErrorIs(t, outcome.Err, assert.AnError)
	// No connect call is ever issued when radio enable fails.
	assert.Empty(t, controller.connected())
	assert.Empty(t, outcome.Attempts)
}

func TestRecover_AdapterFailureIsTerminal(t *testing.T) {
	controller := &scriptedController{
		adapterErr: assert.AnError,
		saved:      []string{"Home"},
	}
	prober := &scriptedProber{results: []domain.ProbeResult{unreachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	outcome := orch.Recover(context.Background(), allModeConfig(), time.Now())

	assert.Equal(t, domain.AdapterControlFailed, outcome.Final)
	assert.Empty(t, controller.connected())
}

func TestRecover_FirstSuccessStopsSequence(t *testing.T) {
	controller := &scriptedController{
		saved: []string{"Home", "Office", "Cafe"},
	}
	prober := &scriptedProber{results: []domain.ProbeResult{reachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	outcome := orch.Recover(context.Background(), allModeConfig(), time.Now())

	assert.Equal(t, domain.RestoredByProfile, outcome.Final)
	assert.Equal(t, "Home", outcome.RestoredBy)
	// Candidates #2 and #3 see zero calls.
	assert.Equal(t, []string{"Home"}, controller.connected())
	require.Len(t, outcome.Attempts, 1)
	assert.Equal(t, domain.AttemptConnected, outcome.Attempts[0].Outcome)
}

func TestRecover_ConnectFailureAdvancesToNext(t *testing.T) {
	controller := &scriptedController{
		saved:      []string{"Home", "Office"},
		connectErr: map[string]error{"Home": assert.AnError},
	}
	prober := &scriptedProber{results: []domain.ProbeResult{reachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	outcome := orch.Recover(context.Background(), allModeConfig(), time.Now())

	assert.Equal(t, domain.RestoredByProfile, outcome.Final)
	assert.Equal(t, "Office", outcome.RestoredBy)
	assert.Equal(t, []string{"Home", "Office"}, controller.connected())
	require.Len(t, outcome.Attempts, 2)
	assert.Equal(t, domain.AttemptConnectFailed, outcome.Attempts[0].Outcome)
	assert.Equal(t, domain.AttemptConnected, outcome.Attempts[1].Outcome)
}

func TestRecover_ExhaustsWhenEveryCandidateFails(t *testing.T) {
	controller := &scriptedController{
		saved: []string{"Home", "Office", "Cafe"},
	}
	// Every post-connect probe still fails.
	prober := &scriptedProber{results: []domain.ProbeResult{unreachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	outcome := orch.Recover(context.Background(), allModeConfig(), time.Now())

	assert.Equal(t, domain.ExhaustedAllProfiles, outcome.Final)
	// One AttemptRecord per candidate.
	require.Len(t, outcome.Attempts, 3)
	for _, attempt := range outcome.Attempts {
		assert.Equal(t, domain.AttemptStillUnreachable, attempt.Outcome)
	}
}

func TestRecover_EmptyCandidateListSkipsConnects(t *testing.T) {
	controller := &scriptedController{
		saved:   []string{"Home", "Office"},
		visible: nil, // nothing in range
	}
	prober := &scriptedProber{results: []domain.ProbeResult{unreachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	cfg := domain.DefaultConfig() // visible-only
	outcome := orch.Recover(context.Background(), cfg, time.Now())

	assert.Equal(t, domain.ExhaustedAllProfiles, outcome.Final)
	assert.Empty(t, outcome.Attempts)
	assert.Empty(t, controller.connected())
}

func TestRecover_ExplicitModeSkipsVisibilityScan(t *testing.T) {
	controller := &scriptedController{
		saved:      []string{"Home", "Office"},
		visibleErr: assert.AnError, // would fail the cycle if called
	}
	prober := &scriptedProber{results: []domain.ProbeResult{reachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	cfg := domain.DefaultConfig()
	cfg.Mode = domain.ModeExplicit
	cfg.Profiles = []string{"Office"}
	outcome := orch.Recover(context.Background(), cfg, time.Now())

	assert.Equal(t, domain.RestoredByProfile, outcome.Final)
	assert.Equal(t, "Office", outcome.RestoredBy)
	assert.Zero(t, controller.visibleCalls)
}

func TestRecover_EnumerationFailureIsAdapterControlFailure(t *testing.T) {
	controller := &scriptedController{savedErr: assert.AnError}
	prober := &scriptedProber{results: []domain.ProbeResult{unreachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	outcome := orch.Recover(context.Background(), allModeConfig(), time.Now())

	assert.Equal(t, domain.AdapterControlFailed, outcome.Final)
	assert.Empty(t, controller.connected())
}

func TestRecover_CancelledBetweenAttempts(t *testing.T) {
	controller := &scriptedController{
		saved: []string{"Home", "Office"},
	}
	prober := &scriptedProber{results: []domain.ProbeResult{unreachable()}}
	orch := NewOrchestrator(controller, prober, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome := orch.Recover(ctx, allModeConfig(), time.Now())

	// Already-cancelled context stops before the first connect. The cycle is
	// aborted, not exhausted: candidates were left untried.
	assert.Empty(t, controller.connected())
	assert.Equal(t, domain.RecoveryAborted, outcome.Final)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
	assert.False(t, outcome.Restored())
	assert.Empty(t, outcome.Attempts)
}
