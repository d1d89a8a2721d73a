package firmware

import (
	"fmt"
	"slices"
	"strings"

	"fortimon/pkg/models"
)

// Status is the coarse outcome of one evaluation.
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusError    Status = "error"
	StatusUpToDate Status = "up_to_date"
	StatusOutdated Status = "outdated"
)

// Metric names emitted by the firmware check.
const (
	MetricUpdatesAvailable        = "updates_available"
	MetricSecurityUpdates         = "security_updates"
	MetricBuildsBehindRecommended = "builds_behind_recommended"
	MetricBuildsBehindLatest      = "builds_behind_latest"
	MetricMajorVersionsBehind     = "major_versions_behind"
	MetricMinorVersionsBehind     = "minor_versions_behind"
)

// Critical trigger thresholds.
const (
	critUpdateCount      = 30
	critMajorBehind      = 2
	critBuildsBehind     = 150
	critSecurityUpdates  = 8
	critDeprecatedCount  = 20
	critMinorBehind      = 4
	warnSignificantCount = 15
	warnMultipleCount    = 8
	warnSecurityUpdates  = 3
)

// Evaluation is the result of one firmware evaluation.
type Evaluation struct {
	Status   Status
	Severity models.State
	Reasons  []string
	Summary  string
	Details  string
	Metrics  []models.Metric

	// Recommended is the next image on the current branch, Highest the newest
	// image overall. Both are nil when nothing newer is available; they are the
	// same pointer when the next same-branch image is also the newest.
	Recommended *Record
	Highest     *Record

	UpdateCount           int
	SecurityUpdates       int
	SkippedIncompatible   int
	BuildsBehindLatest    int
	MajorVersionsBehind   int
	MinorVersionsBehind   int
	BranchChangeAvailable bool
}

// Result converts the evaluation to the host result shape.
func (e Evaluation) Result() models.CheckResult {
	return models.CheckResult{
		State:   e.Severity,
		Summary: e.Summary,
		Details: e.Details,
		Metrics: e.Metrics,
	}
}

// Evaluate classifies current against the available catalog. It never fails
// and does not modify its inputs.
func Evaluate(current Record, available []Record, cfg models.EvaluationConfig) Evaluation {
	candidates, skipped := compatible(current, available)

	slices.SortStableFunc(candidates, func(a, b Record) int {
		return a.Key().Compare(b.Key())
	})

	var newer []Record
	for _, r := range candidates {
		if current.Key().Less(r.Key()) {
			newer = append(newer, r)
		}
	}
	if len(newer) == 0 {
		return upToDate(current, skipped)
	}

	eval := Evaluation{
		Status:              StatusOutdated,
		SkippedIncompatible: skipped,
	}

	var sameBranch []Record
	recommended := -1
	for i, r := range newer {
		if r.Branch() != current.Branch() {
			eval.BranchChangeAvailable = true
			continue
		}
		if recommended < 0 {
			recommended = i
		}
		sameBranch = append(sameBranch, r)
	}
	if recommended >= 0 {
		eval.Recommended = &newer[recommended]
	}
	eval.Highest = &newer[highestIndex(newer)]

	overall := measure(current, newer)
	eval.UpdateCount = overall.count
	eval.SecurityUpdates = overall.security
	eval.BuildsBehindLatest = overall.buildsBehind
	eval.MajorVersionsBehind = overall.majorBehind
	eval.MinorVersionsBehind = overall.minorBehind

	if cfg.CriticalOnBranchChange {
		eval.Reasons = criticalReasons(current, overall, allNewer)
	} else {
		eval.Reasons = criticalReasons(current, measure(current, sameBranch), withinBranch)
		// warn-only mode must never be stricter than the default mode
		if len(eval.Reasons) > 0 && len(criticalReasons(current, overall, allNewer)) == 0 {
			eval.Reasons = nil
		}
	}

	prefix, branchNote := eval.classify(cfg)
	eval.Summary = prefix + " | " + eval.summary(current)
	eval.Details = eval.details(branchNote)
	eval.Metrics = eval.metrics(current)
	return eval
}

// compatible drops images the device refuses or that belong to another platform.
func compatible(current Record, available []Record) ([]Record, int) {
	var kept []Record
	skipped := 0
	for _, r := range available {
		if !r.Upgradable() {
			skipped++
			continue
		}
		if current.PlatformID != "" && r.PlatformID != "" && r.PlatformID != current.PlatformID {
			skipped++
			continue
		}
		kept = append(kept, r)
	}
	return kept, skipped
}

// highestIndex returns the first record holding the largest key.
func highestIndex(records []Record) int {
	best := 0
	for i := 1; i < len(records); i++ {
		if records[best].Key().Less(records[i].Key()) {
			best = i
		}
	}
	return best
}

func isMaintenance(r Record) bool {
	return strings.EqualFold(r.Maturity, MaturityMaintenance)
}

// gap describes how far current trails a set of newer images.
type gap struct {
	count        int
	security     int
	buildsBehind int
	majorBehind  int
	minorBehind  int
}

func measure(current Record, newer []Record) gap {
	g := gap{count: len(newer)}
	if len(newer) == 0 {
		return g
	}
	for _, r := range newer {
		if isMaintenance(r) {
			g.security++
		}
	}

	highest := newer[highestIndex(newer)]
	if highest.Build > current.Build {
		g.buildsBehind = highest.Build - current.Build
	}
	switch {
	case highest.Major > current.Major:
		g.majorBehind = highest.Major - current.Major
	case highest.Major == current.Major && highest.Minor > current.Minor:
		g.minorBehind = highest.Minor - current.Minor
	}
	return g
}

// phrasing words the critical reasons for one candidate scope.
type phrasing struct {
	outdated   string
	majorGap   string
	buildGap   string
	security   string
	deprecated string
	minorGap   string
}

var allNewer = phrasing{
	outdated:   "Extremely outdated (%d versions behind)",
	majorGap:   "Major version gap (%d major versions behind)",
	buildGap:   "Large build gap (%d builds behind)",
	security:   "Multiple security updates missed (%d maintenance releases)",
	deprecated: "Current version deprecated (F-level) with many newer versions",
	minorGap:   "Multiple minor versions behind (%d minor versions)",
}

var withinBranch = phrasing{
	outdated:   "Extremely outdated within branch (%d versions)",
	majorGap:   "Major version gap (%d major versions behind)",
	buildGap:   "Large build gap within branch (%d builds behind)",
	security:   "Multiple security updates missed within branch (%d maintenance releases)",
	deprecated: "Current version deprecated (F-level) with many newer in branch",
	minorGap:   "Multiple minor versions behind within branch (%d minor versions)",
}

// criticalReasons evaluates every trigger independently so several reasons can co-occur.
func criticalReasons(current Record, g gap, words phrasing) []string {
	var reasons []string
	if g.count >= critUpdateCount {
		reasons = append(reasons, fmt.Sprintf(words.outdated, g.count))
	}
	if g.majorBehind >= critMajorBehind {
		reasons = append(reasons, fmt.Sprintf(words.majorGap, g.majorBehind))
	}
	if g.buildsBehind >= critBuildsBehind {
		reasons = append(reasons, fmt.Sprintf(words.buildGap, g.buildsBehind))
	}
	if g.security >= critSecurityUpdates {
		reasons = append(reasons, fmt.Sprintf(words.security, g.security))
	}
	if strings.EqualFold(current.Maturity, MaturityDeprecated) && g.count >= critDeprecatedCount {
		reasons = append(reasons, words.deprecated)
	}
	if g.minorBehind >= critMinorBehind && g.majorBehind == 0 {
		reasons = append(reasons, fmt.Sprintf(words.minorGap, g.minorBehind))
	}
	return reasons
}

// classify sets the severity and returns the summary prefix and whether the
// branch-change note applies.
func (e *Evaluation) classify(cfg models.EvaluationConfig) (string, bool) {
	switch {
	case len(e.Reasons) > 0:
		e.Severity = models.StateCrit
		return "CRITICAL - System dangerously outdated", false
	case !cfg.CriticalOnBranchChange && e.BranchChangeAvailable:
		e.Severity = models.StateWarn
		return "Feature release available (branch change not critical)", true
	}

	e.Severity = models.StateWarn
	switch {
	case e.UpdateCount >= warnSignificantCount:
		return "System significantly outdated", false
	case e.UpdateCount >= warnMultipleCount:
		return "Multiple updates available", false
	case e.SecurityUpdates >= warnSecurityUpdates:
		return "Security updates available", false
	}
	return "Updates available", false
}

func upToDate(current Record, skipped int) Evaluation {
	details := fmt.Sprintf("Current: %s build %s", current.VersionText(), current.BuildText())
	if skipped > 0 {
		details += "\n" + skippedLine(skipped)
	}
	return Evaluation{
		Status:              StatusUpToDate,
		Severity:            models.StateOK,
		Summary:             "System is up to date: " + current.VersionText(),
		Details:             details,
		Metrics:             []models.Metric{{Name: MetricUpdatesAvailable, Value: 0}},
		SkippedIncompatible: skipped,
	}
}
