package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"network-watchdog/internal/domain"
	"network-watchdog/internal/logging"
	"network-watchdog/internal/usecase"
)

// Server is a primary adapter that exposes the watchdog status over HTTP:
// a mini UI, a JSON API and prometheus metrics.
type Server struct {
	driver *usecase.Driver
	server *http.Server
}

// NewServer creates the HTTP server bound to addr.
func NewServer(driver *usecase.Driver, addr string) *Server {
	mux := http.NewServeMux()
	srv := &Server{driver: driver}
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/check", srv.handleCheck)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", srv.handleRoot)

	srv.server = &http.Server{
		Addr:    addr,
		Handler: loggingMiddleware(mux),
	}
	return srv
}

// Start blocks and serves HTTP traffic until Shutdown. A graceful shutdown
// is reported as success, not as the ErrServerClosed sentinel, so callers
// can return it straight from a command.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Network Watchdog</title>
    <style>
        body { font-family: sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0; }
        button { background: #007bff; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; }
        button:hover { background: #0056b3; }
        ul { margin: 5px 0; }
    </style>
</head>
<body>
    <h1>Network Watchdog</h1>
    <div class="info" id="status">Loading...</div>
    <div class="info" id="lastCycle"></div>
    <div style="margin-top: 20px;">
        <button onclick="checkNow()">Check Now</button>
    </div>
    <script>
        async function loadStatus() {
            const res = await fetch('/api/status');
            const data = await res.json();
            let status = 'Mode: ' + data.config.mode +
                ' / interval: ' + data.config.intervalSeconds + 's' +
                ' / cycles: ' + data.cyclesRun;
            if (data.nextCheck) {
                status += '<br>Next check: ' + new Date(data.nextCheck).toLocaleString();
            }
            if (data.checking) {
                status += '<br><b>Checking now...</b>';
            }
            document.getElementById('status').innerHTML = status;

            let last = 'No cycle yet';
            if (data.lastCycle) {
                last = 'Last cycle: ' + data.lastCycle.finalState;
                if (data.lastCycle.restoredBy) {
                    last += ' via "' + data.lastCycle.restoredBy + '"';
                }
                if (data.lastCycle.attempts && data.lastCycle.attempts.length) {
                    last += '<ul>' + data.lastCycle.attempts.map(a =>
                        '<li>' + a.profile + ': ' + a.outcome + '</li>').join('') + '</ul>';
                }
            }
            document.getElementById('lastCycle').innerHTML = last;
        }

        async function checkNow() {
            await fetch('/api/check', {method: 'POST'});
            await loadStatus();
        }

        loadStatus();
        setInterval(loadStatus, 3000);
    </script>
</body>
</html>`))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	respondJSON(w, http.StatusOK, snapshotToView(s.driver.Snapshot()))
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	outcome := s.driver.CheckNow(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"outcome":  cycleToView(outcome),
		"restored": outcome.Restored(),
	})
}

func snapshotToView(snap domain.Snapshot) map[string]any {
	cfg := map[string]any{
		"intervalSeconds":    snap.Config.Interval.Seconds(),
		"ncsiUrl":            snap.Config.ProbeURL,
		"ncsiTimeoutSeconds": snap.Config.ProbeTimeout.Seconds(),
		"mode":               snap.Config.Mode.String(),
	}
	if len(snap.Config.Profiles) > 0 {
		cfg["profiles"] = snap.Config.Profiles
	}

	view := map[string]any{
		"config":    cfg,
		"startedAt": snap.State.StartedAt,
		"cyclesRun": snap.State.CyclesRun,
		"checking":  snap.State.Checking,
	}
	if !snap.State.NextCheck.IsZero() {
		view["nextCheck"] = snap.State.NextCheck
	}
	if snap.State.LastCycle != nil {
		view["lastCycle"] = cycleToView(*snap.State.LastCycle)
	}
	return view
}

func cycleToView(outcome domain.CycleOutcome) map[string]any {
	attempts := make([]map[string]any, 0, len(outcome.Attempts))
	for _, a := range outcome.Attempts {
		attempts = append(attempts, map[string]any{
			"profile":   a.Profile,
			"startedAt": a.StartedAt,
			"outcome":   a.Outcome.String(),
		})
	}

	view := map[string]any{
		"triggeredAt":    outcome.TriggeredAt,
		"wasUnreachable": outcome.WasUnreachable,
		"finalState":     outcome.Final.String(),
		"attempts":       attempts,
	}
	if outcome.RestoredBy != "" {
		view["restoredBy"] = outcome.RestoredBy
	}
	if outcome.Err != nil {
		view["error"] = outcome.Err.Error()
	}
	return view
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("encode JSON: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debugf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
