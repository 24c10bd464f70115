package domain

import "time"

// WatchService provides pure state transitions for the watch loop.
// This service has no side effects and no dependencies on external concerns.
type WatchService struct{}

// NewWatchService creates a new watch service.
func NewWatchService() *WatchService {
	return &WatchService{}
}

// Started returns the initial state when the loop begins.
func (s *WatchService) Started(now time.Time) WatchState {
	return WatchState{StartedAt: now}
}

// CycleStarted marks the state as currently probing or recovering.
func (s *WatchService) CycleStarted(state WatchState) WatchState {
	state.Checking = true
	return state
}

// CycleFinished records a completed cycle and schedules the next check.
// The full interval is waited after the cycle ends; remediation time is
// extra delay on top, never subtracted.
func (s *WatchService) CycleFinished(state WatchState, outcome CycleOutcome, now time.Time, interval time.Duration) WatchState {
	state.Checking = false
	state.CyclesRun++
	state.LastCycle = &outcome
	state.NextCheck = now.Add(interval)
	return state
}
