package wlan

import (
	"context"

	"network-watchdog/internal/domain"
)

// NoopController implements domain.AdapterController with no-op behavior.
// Useful for dry runs and non-Windows environments.
type NoopController struct{}

// NewNoopController creates a new no-op wireless controller.
func NewNoopController() domain.AdapterController {
	return &NoopController{}
}

// EnableRadio does nothing and always succeeds.
func (n *NoopController) EnableRadio(ctx context.Context) error { return nil }

// EnableAdapter does nothing and always succeeds.
func (n *NoopController) EnableAdapter(ctx context.Context) error { return nil }

// SavedProfiles returns an empty inventory.
func (n *NoopController) SavedProfiles(ctx context.Context) ([]string, error) { return nil, nil }

// VisibleNetworks returns an empty inventory.
func (n *NoopController) VisibleNetworks(ctx context.Context) ([]string, error) { return nil, nil }

// Connect does nothing and always succeeds.
func (n *NoopController) Connect(ctx context.Context, profile string) error { return nil }
