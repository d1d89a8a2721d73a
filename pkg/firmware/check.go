package firmware

import (
	"fortimon/pkg/models"
	"fortimon/pkg/section"
)

const cannotRetrieve = "Cannot retrieve firmware information"

// Discover reports whether a firmware service should exist for the section.
func Discover(s section.Section) bool {
	return !s.Empty()
}

// Check evaluates a firmware section and returns the host result.
func Check(s section.Section, cfg models.EvaluationConfig) models.CheckResult {
	return Inspect(s, cfg).Result()
}

// Inspect guards against missing and error-shaped sections, then evaluates.
// A failed update check is not service impacting, so request failures
// are reported as warn rather than crit.
func Inspect(s section.Section, cfg models.EvaluationConfig) Evaluation {
	if s.Empty() {
		return Evaluation{
			Status:   StatusUnknown,
			Severity: models.StateUnknown,
			Summary:  "No firmware data received",
		}
	}

	if s.IsError() {
		failure := s.Failure(cannotRetrieve)
		severity := models.StateWarn
		if failure.Inconclusive() {
			severity = models.StateUnknown
		}
		return Evaluation{
			Status:   StatusError,
			Severity: severity,
			Summary:  "Cannot check updates: " + failure.Message,
			Details:  failure.Detail,
		}
	}

	if s.Status(section.StatusSuccess) != section.StatusSuccess {
		return Evaluation{
			Status:   StatusError,
			Severity: models.StateWarn,
			Summary:  cannotRetrieve,
		}
	}

	payload := PayloadFromSection(s)
	return Evaluate(payload.Current, payload.Available, cfg)
}

// ConfigFromSection honours a branch-change flag the collector embedded in
// the section. fallback is returned unchanged when there is none.
func ConfigFromSection(s section.Section, fallback models.EvaluationConfig) models.EvaluationConfig {
	raw := s.Map("config")
	if !raw.Has("critical_on_branch_change") {
		return fallback
	}

	switch v := raw["critical_on_branch_change"].(type) {
	case bool:
		fallback.CriticalOnBranchChange = v
	case nil:
	default:
		fallback.CriticalOnBranchChange = bool(models.ParseBranchSeverity(section.ToText(v, "")))
	}
	return fallback
}
