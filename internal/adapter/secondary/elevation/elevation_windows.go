//go:build windows

package elevation

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/windows"

	"network-watchdog/internal/logging"
)

// EnsureElevated re-launches the process through gsudo when it lacks
// administrator rights, keeping output in the current terminal, and exits
// with the elevated child's status. When already elevated it returns nil.
//
// Requires gsudo installed (e.g. `winget install gsudo`).
func EnsureElevated() error {
	if windows.GetCurrentProcessToken().IsElevated() {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	logging.Infof("administrator rights required, elevating via gsudo")
	cmd := exec.Command("gsudo", append([]string{exe}, os.Args[1:]...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("gsudo not found or failed: %w (install gsudo, e.g. winget install gsudo, or run as administrator)", err)
	}

	os.Exit(0)
	return nil
}
