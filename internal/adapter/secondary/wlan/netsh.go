package wlan

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"network-watchdog/internal/domain"
	"network-watchdog/internal/logging"
)

// NetworkInterfaceType.Wireless80211 (IEEE 802.11).
// https://learn.microsoft.com/en-us/dotnet/api/system.net.networkinformation.networkinterfacetype
const interfaceTypeWireless80211 = 71

// Common WLAN interface names used as a netsh fallback when the PowerShell
// Enable-NetAdapter route does not succeed.
var fallbackInterfaceNames = []string{"Wi-Fi", "WLAN", "Wireless", "Wireless Network Connection"}

// enableRadioScript turns the Wi-Fi radio on through the WinRT radio API.
// WinRT async results have to be awaited via AsTask from PowerShell.
const enableRadioScript = `Add-Type -AssemblyName System.Runtime.WindowsRuntime
$asTaskGeneric = ([System.WindowsRuntimeSystemExtensions].GetMethods() | Where-Object { $_.Name -eq 'AsTask' -and $_.GetParameters().Count -eq 1 -and $_.GetParameters()[0].ParameterType.Name -eq 'IAsyncOperation` + "`" + `1' })[0]
Function Await($WinRtTask, $ResultType) {
  $asTask = $asTaskGeneric.MakeGenericMethod($ResultType)
  $netTask = $asTask.Invoke($null, @($WinRtTask))
  $netTask.Wait(-1) | Out-Null
  $netTask.Result
}
$null = [Windows.Devices.Radios.Radio,Windows.System.Devices,ContentType=WindowsRuntime]
$radios = Await ([Windows.Devices.Radios.Radio]::GetRadiosAsync()) ([System.Collections.Generic.IReadOnlyList[Windows.Devices.Radios.Radio]])
foreach ($radio in $radios) {
  if ($radio.Kind -eq 'WiFi' -and $radio.State -ne 'On') {
    Await ($radio.SetStateAsync('On')) ([Windows.Devices.Radios.RadioAccessStatus]) | Out-Null
  }
}`

// NetshController implements domain.AdapterController by shelling out to
// PowerShell and netsh, the same control surface Windows exposes to scripts.
// This is a secondary adapter.
type NetshController struct {
	timeout        time.Duration
	connectTimeout time.Duration
	pollInterval   time.Duration
	execCommand    func(ctx context.Context, name string, args ...string) (string, error)
}

// NewNetshController creates the Windows wireless controller.
func NewNetshController() domain.AdapterController {
	c := &NetshController{
		timeout:        30 * time.Second,
		connectTimeout: 30 * time.Second,
		pollInterval:   2 * time.Second,
	}
	c.execCommand = c.runExec
	return c
}

func (c *NetshController) run(ctx context.Context, name string, args ...string) (string, error) {
	return c.execCommand(ctx, name, args...)
}

func (c *NetshController) runExec(ctx context.Context, name string, args ...string) (string, error) {
	// An in-flight platform call is allowed to complete on shutdown; only the
	// per-call timeout bounds it. Cancellation is honored between calls.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%s failed: %w, output: %s", name, err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

func (c *NetshController) powershell(ctx context.Context, script string) (string, error) {
	return c.run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
}

// EnableRadio turns the Wi-Fi radio on if it is currently off.
func (c *NetshController) EnableRadio(ctx context.Context) error {
	logging.Debugf("enabling Wi-Fi radio via PowerShell")
	if _, err := c.powershell(ctx, enableRadioScript); err != nil {
		return err
	}
	return nil
}

// EnableAdapter software-enables the wireless adapter. It first asks
// PowerShell to enable adapters with InterfaceType Wireless80211, then falls
// back to netsh with common interface names.
func (c *NetshController) EnableAdapter(ctx context.Context) error {
	script := fmt.Sprintf(
		"Get-NetAdapter -ErrorAction SilentlyContinue | Where-Object { $_.InterfaceType -eq %d } | Enable-NetAdapter -Confirm:$false -ErrorAction SilentlyContinue",
		interfaceTypeWireless80211,
	)
	logging.Debugf("enabling WLAN adapter via PowerShell (InterfaceType=%d)", interfaceTypeWireless80211)
	if _, err := c.powershell(ctx, script); err == nil {
		return nil
	} else {
		logging.Debugf("PowerShell Enable-NetAdapter failed: %v", err)
	}

	var lastErr error
	for _, name := range fallbackInterfaceNames {
		logging.Debugf("trying netsh enable for interface %q", name)
		_, err := c.run(ctx, "netsh", "interface", "set", "interface",
			fmt.Sprintf("name=%q", name), "admin=enable")
		if err == nil {
			logging.Debugf("enabled interface %q", name)
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("no WLAN interface could be enabled: %w", lastErr)
}

// SavedProfiles lists the names of all saved Wi-Fi profiles.
func (c *NetshController) SavedProfiles(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "netsh", "wlan", "show", "profiles")
	if err != nil {
		return nil, err
	}
	return parseProfiles(output), nil
}

// VisibleNetworks lists the SSIDs currently in range.
func (c *NetshController) VisibleNetworks(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "netsh", "wlan", "show", "networks")
	if err != nil {
		return nil, err
	}
	return parseNetworks(output), nil
}

// Connect asks the platform to associate with a saved profile and waits for
// the interface to report a connected state. Association is asynchronous on
// Windows; netsh returns before the link is up, so returning immediately
// would make the caller's follow-up probe race the association.
func (c *NetshController) Connect(ctx context.Context, profile string) error {
	if _, err := c.run(ctx, "netsh", "wlan", "connect", "name="+profile); err != nil {
		return err
	}
	return c.waitForAssociation(ctx, profile)
}

// waitForAssociation polls `netsh wlan show interfaces` until the WLAN
// interface reports State connected, or the connect timeout elapses.
func (c *NetshController) waitForAssociation(ctx context.Context, profile string) error {
	deadline := time.Now().Add(c.connectTimeout)
	for {
		output, err := c.run(ctx, "netsh", "wlan", "show", "interfaces")
		if err == nil && interfaceConnected(output) {
			logging.Debugf("%q reached connected state", profile)
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("profile %q did not reach connected state within %s", profile, c.connectTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// parseProfiles extracts profile names from `netsh wlan show profiles`.
// netsh output is locale dependent; the English labels are matched.
func parseProfiles(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok || !strings.Contains(label, "Profile") {
			continue
		}
		if name := strings.TrimSpace(value); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// interfaceConnected reports whether `netsh wlan show interfaces` lists an
// interface in the connected state. The State value is compared whole since
// "disconnected" contains "connected" as a substring.
func interfaceConnected(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(label) != "State" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(value), "connected") {
			return true
		}
	}
	return false
}

// parseNetworks extracts SSIDs from `netsh wlan show networks`.
func parseNetworks(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok || !strings.HasPrefix(strings.TrimSpace(label), "SSID") {
			continue
		}
		if name := strings.TrimSpace(value); name != "" {
			names = append(names, name)
		}
	}
	return names
}
