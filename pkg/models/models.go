package models

import (
	"fmt"
	"strings"
)

// State is the severity a check reports to the host.
// Numeric values follow the monitoring-plugin exit code convention.
type State int

const (
	StateOK State = iota
	StateWarn
	StateCrit
	StateUnknown
)

var stateNames = map[State]string{
	StateOK:      "ok",
	StateWarn:    "warn",
	StateCrit:    "crit",
	StateUnknown: "unknown",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the lowercase state names and the common long forms.
func (s *State) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "ok":
		*s = StateOK
	case "warn", "warning":
		*s = StateWarn
	case "crit", "critical":
		*s = StateCrit
	case "unknown":
		*s = StateUnknown
	default:
		return fmt.Errorf("unknown state %q", string(text))
	}
	return nil
}

// Metric represents a single named numeric observation.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CheckResult is what a check function hands back to the host:
// one severity-tagged summary plus details, and zero or more metrics.
type CheckResult struct {
	State   State    `json:"state"`
	Summary string   `json:"summary"`
	Details string   `json:"details,omitempty"`
	Metrics []Metric `json:"metrics,omitempty"`
}

// Metric returns the named metric value and whether it was emitted.
func (r CheckResult) Metric(name string) (float64, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// HostConfig is the host platform's view of a monitored device
type HostConfig struct {
	Name    string `json:"name" validate:"required_without=Address"`
	Address string `json:"address,omitempty" validate:"omitempty,ip|hostname"`
}

// Target returns the address the collector should contact.
func (h HostConfig) Target() string {
	if h.Address != "" {
		return h.Address
	}
	return h.Name
}
