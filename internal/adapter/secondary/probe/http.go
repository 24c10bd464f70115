package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"network-watchdog/internal/domain"
	"network-watchdog/internal/logging"
)

// HTTPProber implements domain.Prober with a single bounded GET against an
// NCSI-style endpoint. Any 2xx answer counts as reachable; a timeout is a
// normal unreachable verdict, never an escalated error.
// This is a secondary adapter.
type HTTPProber struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPProber creates a prober for the given endpoint and timeout.
func NewHTTPProber(url string, timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		url:     url,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Probe performs the reachability check. It never blocks past the timeout.
func (p *HTTPProber) Probe(ctx context.Context) domain.ProbeResult {
	logging.Debugf("requesting %s (timeout %s)", p.url, p.timeout)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return domain.ProbeResult{Reason: domain.ReasonTransportError, Err: err}
	}

	resp, err := p.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		reason := domain.ReasonTransportError
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			reason = domain.ReasonTimeout
		}
		logging.Debugf("probe failed: %v", err)
		return domain.ProbeResult{Reason: reason, Latency: latency, Err: err}
	}
	defer resp.Body.Close()

	// Drain the small NCSI payload so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Debugf("probe got status %d", resp.StatusCode)
		return domain.ProbeResult{
			Reason:  domain.ReasonNonSuccessStatus,
			Latency: latency,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	logging.Debugf("probe OK in %s", latency.Round(time.Millisecond))
	return domain.ProbeResult{Reachable: true, Latency: latency}
}
