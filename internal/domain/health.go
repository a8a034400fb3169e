package domain

// ConnectionState classifies the last connectivity probe against the
// upstream API host.
type ConnectionState string

const (
	StateConnecting          ConnectionState = "connecting"
	StateConnected           ConnectionState = "connected"
	StateDisconnectedTimeout ConnectionState = "disconnected_timeout"
	StateDisconnectedError   ConnectionState = "disconnected_error"
)

// ConnectionStatus is the snapshot the monitor exposes to the UI and to
// GET /healthz.
type ConnectionStatus struct {
	State       ConnectionState `json:"state"`
	Message     string          `json:"message"`
	Warning     string          `json:"warning,omitempty"` // cold-start hint on timeout
	LatencyMs   int64           `json:"latencyMs"`
	LastChecked string          `json:"lastChecked"`
}

// PanelStats is the operational snapshot served alongside the connection
// status on /healthz, gathered from the prometheus counters.
type PanelStats struct {
	UpstreamRequests float64 `json:"upstreamRequests"`
	UpstreamErrors   float64 `json:"upstreamErrors"`
	HealthProbes     float64 `json:"healthProbes"`
	CacheHitRate     float64 `json:"cacheHitRate"`
}

// Flash is a one-shot banner notification surfaced on the next rendered
// page and then discarded. Level matches the alert styles: success,
// danger, warning.
type Flash struct {
	Level   string
	Message string
}
