// Package plugin defines the contract between the monitoring host and the fortimon checks.
// The host sends Tasks (JSON array) and receives Results (JSON array).
// Each task carries one collector section, either as the raw rows the host read
// from the agent output or as an already joined JSON payload.
package plugin

import (
	"encoding/json"

	"fortimon/pkg/models"
	"fortimon/pkg/section"
)

// Task is the input for a single check or discovery.
type Task struct {
	MonitorID int64           `json:"monitor_id,omitempty"` // Optional: for tracking results back to a monitor
	Target    string          `json:"target"`               // Host name as known to the platform
	Section   string          `json:"section"`              // fortigate_system | fortigate_firmware
	Rows      [][]string      `json:"rows,omitempty"`       // Raw agent output rows
	Payload   json.RawMessage `json:"payload,omitempty"`    // Alternative to Rows: the section as JSON
	Params    json.RawMessage `json:"params,omitempty"`     // Check ruleset (models.CheckParams)
}

// Parsed returns the task's section. Payload wins over Rows.
func (t Task) Parsed() section.Section {
	if len(t.Payload) > 0 {
		return section.Decode(t.Payload)
	}
	return section.Parse(t.Rows)
}

// Result is the output for a single task.
type Result struct {
	MonitorID  int64           `json:"monitor_id,omitempty"` // Echo back for correlation
	Target     string          `json:"target"`
	Plugin     string          `json:"plugin"`
	Service    string          `json:"service,omitempty"`
	Success    bool            `json:"success"`
	Error      string          `json:"error,omitempty"`
	Discovered bool            `json:"discovered,omitempty"` // Discovery mode
	State      *models.State   `json:"state,omitempty"`      // Check mode
	Summary    string          `json:"summary,omitempty"`
	Details    string          `json:"details,omitempty"`
	Metrics    []models.Metric `json:"metrics,omitempty"`
}

// Metric is re-exported for callers that only deal with plugin results.
type Metric = models.Metric
