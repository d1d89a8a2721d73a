package firmware

import (
	"fmt"
	"strings"

	"fortimon/pkg/models"
)

func (e *Evaluation) recommendedIsHighest() bool {
	return e.Recommended != nil && e.Recommended == e.Highest
}

func (e *Evaluation) summary(current Record) string {
	parts := []string{fmt.Sprintf("Current: %s build %s", current.VersionText(), current.BuildText())}
	if e.Recommended != nil && !e.recommendedIsHighest() {
		parts = append(parts, fmt.Sprintf("Recommended: %s build %s", e.Recommended.VersionText(), e.Recommended.BuildText()))
	}
	if e.Highest != nil {
		parts = append(parts, "Highest available: "+e.Highest.VersionText())
	}
	return strings.Join(parts, " | ")
}

func describe(r *Record) string {
	return fmt.Sprintf("%s (Build %s, %s, Maturity: %s)", r.VersionText(), r.BuildText(), r.releaseTypeDisplay(), r.maturityDisplay())
}

func skippedLine(skipped int) string {
	return fmt.Sprintf("Ignored %d incompatible images (can_upgrade=false or different platform)", skipped)
}

func (e *Evaluation) details(branchNote bool) string {
	var lines []string
	if e.Recommended != nil {
		lines = append(lines, "Recommended update: "+describe(e.Recommended))
	}
	if e.Highest != nil && !e.recommendedIsHighest() {
		lines = append(lines, "Latest version: "+describe(e.Highest))
	}

	lines = append(lines, fmt.Sprintf("Total %d newer versions available", e.UpdateCount))

	if e.SecurityUpdates > 0 {
		lines = append(lines, fmt.Sprintf("Security/maintenance updates: %d", e.SecurityUpdates))
	}
	if e.SkippedIncompatible > 0 {
		lines = append(lines, skippedLine(e.SkippedIncompatible))
	}
	if len(e.Reasons) > 0 {
		lines = append(lines, "CRITICAL: "+strings.Join(e.Reasons, "; "))
	}
	if branchNote {
		lines = append(lines, "Note: branch change is configured as non-critical")
	}
	return strings.Join(lines, "\n")
}

func (e *Evaluation) metrics(current Record) []models.Metric {
	out := []models.Metric{
		{Name: MetricUpdatesAvailable, Value: float64(e.UpdateCount)},
		{Name: MetricSecurityUpdates, Value: float64(e.SecurityUpdates)},
	}

	if e.Recommended != nil && e.Recommended.Build > current.Build {
		out = append(out, models.Metric{
			Name:  MetricBuildsBehindRecommended,
			Value: float64(e.Recommended.Build - current.Build),
		})
	}

	if e.Highest != nil {
		out = append(out,
			models.Metric{Name: MetricBuildsBehindLatest, Value: float64(e.BuildsBehindLatest)},
			models.Metric{Name: MetricMajorVersionsBehind, Value: float64(e.MajorVersionsBehind)},
			models.Metric{Name: MetricMinorVersionsBehind, Value: float64(e.MinorVersionsBehind)},
		)
	}
	return out
}
