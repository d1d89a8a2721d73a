// Package agent assembles the command line of the FortiGate special agent,
// the collector that queries the device's REST API on the host's behalf.
package agent

import (
	"encoding/json"
	"fmt"
	"strconv"

	"fortimon/pkg/models"
)

// ParseParams decodes a special-agent rule.
func ParseParams(raw []byte) (models.AgentParams, error) {
	var params models.AgentParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("%w: %v", models.ErrInvalidParams, err)
	}
	return params, nil
}

// Arguments builds the agent argv for one host. The API key must already be
// decrypted. Port and timeout are passed only when the rule sets them, so the
// agent's own defaults apply otherwise.
func Arguments(params models.AgentParams, host models.HostConfig) ([]string, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := host.Validate(); err != nil {
		return nil, err
	}

	args := []string{
		"--hostname", host.Target(),
		"--api-key", params.APIKey,
	}

	if params.BranchChangeCritical() {
		args = append(args, "--branch-change-critical")
	} else {
		args = append(args, "--no-branch-change-critical")
	}

	if params.Port != 0 {
		args = append(args, "--port", strconv.Itoa(params.Port))
	}
	if params.Timeout != 0 {
		args = append(args, "--timeout", strconv.Itoa(params.Timeout))
	}
	return args, nil
}
