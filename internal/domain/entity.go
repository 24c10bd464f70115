package domain

import "time"

// ProfileMode decides which saved profiles become connect candidates.
type ProfileMode int

const (
	// ModeVisibleOnly keeps a saved profile only when its name matches a
	// currently visible network.
	ModeVisibleOnly ProfileMode = iota
	// ModeAll keeps every saved profile, ignoring visibility.
	ModeAll
	// ModeExplicit keeps only the names listed in Config.Profiles.
	ModeExplicit
)

func (m ProfileMode) String() string {
	switch m {
	case ModeVisibleOnly:
		return "visible-only"
	case ModeAll:
		return "all"
	case ModeExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Config represents the watchdog configuration in the domain.
// It is built once before the loop starts and never mutated.
type Config struct {
	Interval     time.Duration
	ProbeURL     string
	ProbeTimeout time.Duration
	Mode         ProfileMode
	Profiles     []string // explicit profile names, used when Mode == ModeExplicit
	RunOnce      bool
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Interval < time.Second {
		return ErrInvalidInterval
	}
	if c.ProbeURL == "" {
		return ErrEmptyProbeURL
	}
	if c.ProbeTimeout < time.Second {
		return ErrInvalidTimeout
	}
	if c.Mode == ModeExplicit && len(c.Profiles) == 0 {
		return ErrNoProfileNames
	}
	return nil
}

// DefaultProbeURL is the Windows NCSI endpoint.
const DefaultProbeURL = "http://www.msftconnecttest.com/connecttest.txt"

// DefaultConfig returns the default configuration values.
func DefaultConfig() Config {
	return Config{
		Interval:     60 * time.Second,
		ProbeURL:     DefaultProbeURL,
		ProbeTimeout: 5 * time.Second,
		Mode:         ModeVisibleOnly,
	}
}

// UnreachableReason classifies a failed probe. Callers collapse every reason
// to "unreachable"; the distinction exists for diagnostics only.
type UnreachableReason int

const (
	ReasonNone UnreachableReason = iota
	ReasonTimeout
	ReasonTransportError
	ReasonNonSuccessStatus
)

func (r UnreachableReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTimeout:
		return "timeout"
	case ReasonTransportError:
		return "transport-error"
	case ReasonNonSuccessStatus:
		return "non-success-status"
	default:
		return "unknown"
	}
}

// ProbeResult captures the outcome of a single reachability check.
type ProbeResult struct {
	Reachable bool
	Reason    UnreachableReason
	Latency   time.Duration
	Err       error
}

// AttemptOutcome represents the result of trying one profile.
type AttemptOutcome int

const (
	AttemptConnected AttemptOutcome = iota
	AttemptConnectFailed
	AttemptStillUnreachable
)

func (o AttemptOutcome) String() string {
	switch o {
	case AttemptConnected:
		return "connected"
	case AttemptConnectFailed:
		return "connect-failed"
	case AttemptStillUnreachable:
		return "still-unreachable"
	default:
		return "unknown"
	}
}

// AttemptRecord describes one profile tried within a cycle. Records are held
// only for the duration of the cycle, for logging and decisions.
type AttemptRecord struct {
	Profile   string
	StartedAt time.Time
	Outcome   AttemptOutcome
}

// FinalState is the terminal state of one watch cycle.
type FinalState int

const (
	RestoredWithoutAction FinalState = iota
	RestoredByProfile
	ExhaustedAllProfiles
	AdapterControlFailed
	// RecoveryAborted marks a cycle cancelled between connect attempts, with
	// candidates left untried. Exhaustion implies every candidate was tried.
	RecoveryAborted
)

func (s FinalState) String() string {
	switch s {
	case RestoredWithoutAction:
		return "restored-without-action"
	case RestoredByProfile:
		return "restored-by-profile"
	case ExhaustedAllProfiles:
		return "exhausted-all-profiles"
	case AdapterControlFailed:
		return "adapter-control-failed"
	case RecoveryAborted:
		return "recovery-aborted"
	default:
		return "unknown"
	}
}

// CycleOutcome is produced once per watch cycle and discarded after
// logging / exit-code handling.
type CycleOutcome struct {
	TriggeredAt    time.Time
	WasUnreachable bool
	Attempts       []AttemptRecord
	Final          FinalState
	RestoredBy     string // profile name when Final == RestoredByProfile
	Err            error  // detail for AdapterControlFailed / RecoveryAborted
}

// Restored reports whether the cycle ended with working connectivity.
func (c CycleOutcome) Restored() bool {
	return c.Final == RestoredWithoutAction || c.Final == RestoredByProfile
}

// WatchState represents the current state of the watch loop.
type WatchState struct {
	StartedAt time.Time
	NextCheck time.Time
	CyclesRun int
	Checking  bool
	LastCycle *CycleOutcome
}

// Snapshot represents a complete view of the system state.
type Snapshot struct {
	Config Config
	State  WatchState
}
