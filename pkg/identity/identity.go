// Package identity checks the FortiGate system identity section.
package identity

import (
	"fmt"
	"strconv"
	"strings"

	"fortimon/pkg/models"
	"fortimon/pkg/section"
)

const (
	MetricVersionNumeric = "version_numeric"
	MetricBuildNumber    = "build_number"
)

// Discover creates a service only for a successful identity query.
func Discover(s section.Section) bool {
	return s.Status("") == section.StatusSuccess
}

// Check classifies the identity section. Connectivity failures are
// inconclusive; any other failure is a finding.
func Check(s section.Section) models.CheckResult {
	if s.Empty() {
		return models.CheckResult{State: models.StateUnknown, Summary: "No data received"}
	}

	if s.IsError() {
		failure := s.Failure("Request failed")
		state := models.StateCrit
		if failure.Inconclusive() {
			state = models.StateUnknown
		}
		return models.CheckResult{State: state, Summary: failure.Message, Details: failure.Detail}
	}

	if s.Status("") != section.StatusSuccess {
		return models.CheckResult{State: models.StateCrit, Summary: "FortiGate API request failed"}
	}

	version := s.String("version", "Unknown")
	build := s.String("build", "Unknown")
	results := s.Map("results")

	result := models.CheckResult{
		State:   models.StateOK,
		Summary: fmt.Sprintf("Version %s Build %s", version, build),
		Details: fmt.Sprintf("Model: %s %s, Hostname: %s, Serial: %s",
			results.String("model_name", "Unknown"),
			results.String("model", "Unknown"),
			results.String("hostname", "Unknown"),
			s.String("serial", "Unknown"),
		),
	}

	if n, ok := VersionNumber(s.String("version", "")); ok {
		result.Metrics = append(result.Metrics, models.Metric{Name: MetricVersionNumeric, Value: float64(n)})
	}
	if n, ok := section.IsInteger(s["build"]); ok {
		result.Metrics = append(result.Metrics, models.Metric{Name: MetricBuildNumber, Value: float64(n)})
	}
	return result
}

// VersionNumber encodes "v7.2.5" as 70205 (major*10000 + minor*100 + patch).
// Major and minor are required; patch defaults to 0.
func VersionNumber(version string) (int, bool) {
	version = strings.TrimLeft(strings.TrimSpace(version), "vV")
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return 0, false
	}

	var nums [3]int
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0, false
		}
		nums[i] = n
	}
	return nums[0]*10000 + nums[1]*100 + nums[2], true
}
