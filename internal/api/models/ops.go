package models

// Health is the body for GET /api/health.
type Health struct {
	Status string `json:"status"`
}

// SystemStatus is the body for GET /api/status: overall health plus the
// circuit state of each upstream provider.
type SystemStatus struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Providers []ProviderStatus `json:"providers"`
}

// ProviderStatus reports one provider's circuit health.
type ProviderStatus struct {
	Provider      string  `json:"provider"`
	CircuitState  string  `json:"circuit_state"`
	LastSuccessAt *string `json:"last_success_at,omitempty"`
	LastFailureAt *string `json:"last_failure_at,omitempty"`
	LastError     string  `json:"last_error,omitempty"`
}
