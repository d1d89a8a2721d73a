// Package firmware evaluates how far a FortiGate lags behind the firmware
// images its update-check endpoint offers.
//
// Payload decoding (RecordFromMap, PayloadFromSection) is the only place that
// deals with loosely typed values; Evaluate works on clean records and is a
// pure function safe for concurrent use.
package firmware

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"fortimon/pkg/section"
)

// Maturity codes assigned by the vendor.
const (
	MaturityMaintenance = "M"
	MaturityDeprecated  = "F"
)

// Key orders firmware images: major, minor, patch, build, compared in that order.
type Key struct {
	Major, Minor, Patch, Build int
}

// Compare returns -1, 0 or +1.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Patch, other.Patch); c != 0 {
		return c
	}
	return cmp.Compare(k.Build, other.Build)
}

func (k Key) Less(other Key) bool {
	return k.Compare(other) < 0
}

func (k Key) String() string {
	return fmt.Sprintf("%d.%d.%d-b%d", k.Major, k.Minor, k.Patch, k.Build)
}

// Branch is a firmware line, identified by major and minor.
type Branch struct {
	Major, Minor int
}

// Record is one firmware image descriptor.
type Record struct {
	Version     string
	Major       int
	Minor       int
	Patch       int
	Build       int
	Maturity    string // upper-cased
	ReleaseType string
	CanUpgrade  *bool
	PlatformID  string

	// raw display values, kept so reports show what the device sent
	buildText    string
	maturityText string
}

func (r Record) Key() Key {
	return Key{Major: r.Major, Minor: r.Minor, Patch: r.Patch, Build: r.Build}
}

func (r Record) Branch() Branch {
	return Branch{Major: r.Major, Minor: r.Minor}
}

// Upgradable is false only when the device explicitly said so.
func (r Record) Upgradable() bool {
	return r.CanUpgrade == nil || *r.CanUpgrade
}

// BuildText is the build as reported, or "Unknown" when the device sent none.
func (r Record) BuildText() string {
	switch {
	case r.buildText != "":
		return r.buildText
	case r.Build != 0:
		return strconv.Itoa(r.Build)
	}
	return "Unknown"
}

// VersionText is the version as reported, or "Unknown".
func (r Record) VersionText() string {
	if r.Version == "" {
		return "Unknown"
	}
	return r.Version
}

func (r Record) maturityDisplay() string {
	switch {
	case r.maturityText != "":
		return r.maturityText
	case r.Maturity != "":
		return r.Maturity
	}
	return "Unknown"
}

func (r Record) releaseTypeDisplay() string {
	if r.ReleaseType == "" {
		return "Unknown"
	}
	return r.ReleaseType
}

var (
	platformKeys    = []string{"platform-id", "platform_id", "platformId"}
	releaseTypeKeys = []string{"release-type", "release_type", "releaseType"}
)

// RecordFromMap builds a Record from one decoded firmware object.
// Numeric fields that fail to coerce are 0; nothing here can fail.
func RecordFromMap(raw section.Section) Record {
	r := Record{
		Version:      raw.String("version", ""),
		Major:        section.ToInt(raw["major"]),
		Minor:        section.ToInt(raw["minor"]),
		Patch:        section.ToInt(raw["patch"]),
		Build:        section.ToInt(raw["build"]),
		maturityText: raw.String("maturity", ""),
		buildText:    raw.String("build", ""),
		ReleaseType:  firstText(raw, releaseTypeKeys),
		PlatformID:   firstText(raw, platformKeys),
	}
	r.Maturity = strings.ToUpper(r.maturityText)

	if flag, ok := raw["can_upgrade"].(bool); ok {
		r.CanUpgrade = &flag
	}
	return r
}

func firstText(raw section.Section, keys []string) string {
	for _, key := range keys {
		if text := raw.String(key, ""); text != "" {
			return text
		}
	}
	return ""
}

// Payload is the normalised firmware section.
type Payload struct {
	Current   Record
	Available []Record
}

// PayloadFromSection reads current and available either from the nested
// "results" object or from the top level of the section.
// Catalog entries that are not objects are dropped.
func PayloadFromSection(s section.Section) Payload {
	results := s.Map("results")
	if results == nil {
		results = section.Section{}
	}

	current := results.Map("current")
	if current == nil {
		current = s.Map("current")
	}

	available := results.List("available")
	if _, nested := results["available"].([]any); !nested {
		available = s.List("available")
	}

	p := Payload{Current: RecordFromMap(current)}
	for _, entry := range available {
		obj := section.AsSection(entry)
		if obj == nil {
			continue
		}
		p.Available = append(p.Available, RecordFromMap(obj))
	}
	return p
}
