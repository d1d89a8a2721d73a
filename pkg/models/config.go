package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidParams is returned when ruleset parameters fail validation.
var ErrInvalidParams = errors.New("invalid parameters")

var validate = validator.New()

// EvaluationConfig carries the per-device firmware evaluation flags.
type EvaluationConfig struct {
	CriticalOnBranchChange bool `json:"critical_on_branch_change" mapstructure:"CRITICAL_ON_BRANCH_CHANGE"`
}

// DefaultEvaluationConfig treats branch changes as critical candidates.
func DefaultEvaluationConfig() EvaluationConfig {
	return EvaluationConfig{CriticalOnBranchChange: true}
}

// BranchSeverity is the "branch upgrade severity" rule value.
// Rules store it either as a boolean or as one of the choice strings
// "critical" / "warn", so both are accepted when decoding.
type BranchSeverity bool

const (
	BranchCritical BranchSeverity = true
	BranchWarnOnly BranchSeverity = false
)

// ParseBranchSeverity maps a textual rule value to a severity.
// Anything outside the truthy vocabulary means warn only.
func ParseBranchSeverity(text string) BranchSeverity {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "critical", "true", "yes", "on", "1":
		return BranchCritical
	}
	return BranchWarnOnly
}

func (b *BranchSeverity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*b = BranchSeverity(flag)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("branch severity must be a boolean or string: %w", err)
	}
	*b = ParseBranchSeverity(text)
	return nil
}

// CheckParams is the check-parameter ruleset attached to a firmware service.
type CheckParams struct {
	CriticalOnBranchChange *BranchSeverity `json:"critical_on_branch_change,omitempty"`
}

// Apply overlays the rule onto cfg. Unset values keep cfg unchanged.
func (p CheckParams) Apply(cfg EvaluationConfig) EvaluationConfig {
	if p.CriticalOnBranchChange != nil {
		cfg.CriticalOnBranchChange = bool(*p.CriticalOnBranchChange)
	}
	return cfg
}

// AgentParams is the special-agent ruleset: how the collector reaches the device.
type AgentParams struct {
	APIKey                 string          `json:"api_key" validate:"required"`
	CriticalOnBranchChange *BranchSeverity `json:"critical_on_branch_change,omitempty"`
	Port                   int             `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Timeout                int             `json:"timeout,omitempty" validate:"omitempty,min=1"`
}

// BranchChangeCritical resolves the rule value, defaulting to critical.
func (p AgentParams) BranchChangeCritical() bool {
	if p.CriticalOnBranchChange == nil {
		return true
	}
	return bool(*p.CriticalOnBranchChange)
}

// Validate checks the struct tags.
func (p AgentParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// Validate checks that the host has something to connect to.
func (h HostConfig) Validate() error {
	if err := validate.Struct(h); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
