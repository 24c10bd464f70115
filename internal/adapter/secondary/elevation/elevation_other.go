//go:build !windows

package elevation

// EnsureElevated is a no-op outside Windows; radio and adapter control are
// only wired up there.
func EnsureElevated() error {
	return nil
}
