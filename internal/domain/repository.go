package domain

import "context"

// ConfigRepository is a secondary port that defines how to persist
// configuration defaults. Only configuration is stored; cycle outcomes are
// never persisted, the watchdog is stateless across invocations.
type ConfigRepository interface {
	Load() (Config, error)
	Save(Config) error
}

// Prober is a secondary port performing one bounded reachability check.
// Implementations must return within the configured probe timeout; a timeout
// is reported as an unreachable verdict, not an error.
type Prober interface {
	Probe(ctx context.Context) ProbeResult
}

// AdapterController is a secondary port over the platform's wireless control
// surface. Calls are assumed to bound their own durations; callers never
// force-kill an in-flight call.
type AdapterController interface {
	EnableRadio(ctx context.Context) error
	EnableAdapter(ctx context.Context) error
	SavedProfiles(ctx context.Context) ([]string, error)
	VisibleNetworks(ctx context.Context) ([]string, error)
	Connect(ctx context.Context, profile string) error
}
