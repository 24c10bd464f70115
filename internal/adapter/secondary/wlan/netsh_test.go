package wlan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showProfilesOutput = `
Profiles on interface Wi-Fi:

Group policy profiles (read only)
---------------------------------
    <None>

User profiles
-------------
    All User Profile     : Home
    All User Profile     : Office Wi-Fi
    Current User Profile : Cafe Hotspot
`

const showNetworksOutput = `
Interface name : Wi-Fi
There are 2 networks currently visible.

SSID 1 : Home
    Network type            : Infrastructure
    Authentication          : WPA2-Personal
    Encryption              : CCMP

SSID 2 : Cafe Hotspot
    Network type            : Infrastructure
    Authentication          : Open
    Encryption              : None
`

func TestParseProfiles(t *testing.T) {
	got := parseProfiles(showProfilesOutput)
	assert.Equal(t, []string{"Home", "Office Wi-Fi", "Cafe Hotspot"}, got)
}

func TestParseProfiles_EmptyOutput(t *testing.T) {
	assert.Empty(t, parseProfiles(""))
}

func TestParseNetworks(t *testing.T) {
	got := parseNetworks(showNetworksOutput)
	assert.Equal(t, []string{"Home", "Cafe Hotspot"}, got)
}

func TestParseNetworks_SkipsUnrelatedLines(t *testing.T) {
	assert.Empty(t, parseNetworks("Interface name : Wi-Fi\nAuthentication : Open\n"))
}

const showInterfacesConnected = `
There is 1 interface on the system:

    Name                   : Wi-Fi
    Description            : Intel(R) Wi-Fi 6 AX201 160MHz
    GUID                   : 1234abcd-12ab-34cd-56ef-1234567890ab
    Physical address       : 00:11:22:33:44:55
    State                  : connected
    SSID                   : Home
    Profile                : Home
`

const showInterfacesDisconnected = `
There is 1 interface on the system:

    Name                   : Wi-Fi
    State                  : disconnected
    Radio status           : Hardware On
                             Software On
`

func TestInterfaceConnected(t *testing.T) {
	assert.True(t, interfaceConnected(showInterfacesConnected))
	assert.False(t, interfaceConnected(showInterfacesDisconnected))
	assert.False(t, interfaceConnected(""))
}

// pollingController returns a NetshController whose platform calls are served
// by fake, with timeouts shrunk so association tests run in milliseconds.
func pollingController(fake func(ctx context.Context, name string, args ...string) (string, error)) *NetshController {
	c := &NetshController{
		timeout:        time.Second,
		connectTimeout: 50 * time.Millisecond,
		pollInterval:   time.Millisecond,
	}
	c.execCommand = fake
	return c
}

func TestConnect_WaitsUntilInterfaceAssociates(t *testing.T) {
	var statusCalls int
	c := pollingController(func(ctx context.Context, name string, args ...string) (string, error) {
		if strings.Contains(strings.Join(args, " "), "show interfaces") {
			statusCalls++
			if statusCalls < 3 {
				return showInterfacesDisconnected, nil
			}
			return showInterfacesConnected, nil
		}
		return "", nil
	})

	require.NoError(t, c.Connect(context.Background(), "Home"))
	assert.Equal(t, 3, statusCalls)
}

func TestConnect_TimesOutWhenNeverAssociated(t *testing.T) {
	c := pollingController(func(ctx context.Context, name string, args ...string) (string, error) {
		return showInterfacesDisconnected, nil
	})

	err := c.Connect(context.Background(), "Home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not reach connected state")
}

func TestConnect_CommandFailureSkipsPolling(t *testing.T) {
	var statusCalls int
	c := pollingController(func(ctx context.Context, name string, args ...string) (string, error) {
		if strings.Contains(strings.Join(args, " "), "show interfaces") {
			statusCalls++
		}
		return "", errors.New("boom")
	})

	assert.Error(t, c.Connect(context.Background(), "Home"))
	assert.Zero(t, statusCalls)
}

func TestNoopController(t *testing.T) {
	ctx := context.Background()
	c := NewNoopController()

	assert.NoError(t, c.EnableRadio(ctx))
	assert.NoError(t, c.EnableAdapter(ctx))
	assert.NoError(t, c.Connect(ctx, "Home"))

	saved, err := c.SavedProfiles(ctx)
	assert.NoError(t, err)
	assert.Empty(t, saved)

	visible, err := c.VisibleNetworks(ctx)
	assert.NoError(t, err)
	assert.Empty(t, visible)
}
