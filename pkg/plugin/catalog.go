package plugin

import (
	"fortimon/pkg/firmware"
	"fortimon/pkg/identity"
)

// MetricInfo describes one metric a plugin can emit, for graphing on the host side.
type MetricInfo struct {
	Plugin string `json:"plugin"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Unit   string `json:"unit"`
}

// MetricCatalog lists every metric in emission order.
var MetricCatalog = []MetricInfo{
	{Plugin: SystemPlugin.Name, Name: identity.MetricVersionNumeric, Title: "Firmware version (numeric)", Unit: "count"},
	{Plugin: SystemPlugin.Name, Name: identity.MetricBuildNumber, Title: "Firmware build", Unit: "count"},
	{Plugin: FirmwarePlugin.Name, Name: firmware.MetricUpdatesAvailable, Title: "Newer firmware images", Unit: "count"},
	{Plugin: FirmwarePlugin.Name, Name: firmware.MetricSecurityUpdates, Title: "Maintenance releases missed", Unit: "count"},
	{Plugin: FirmwarePlugin.Name, Name: firmware.MetricBuildsBehindRecommended, Title: "Builds behind recommended", Unit: "count"},
	{Plugin: FirmwarePlugin.Name, Name: firmware.MetricBuildsBehindLatest, Title: "Builds behind latest", Unit: "count"},
	{Plugin: FirmwarePlugin.Name, Name: firmware.MetricMajorVersionsBehind, Title: "Major versions behind", Unit: "count"},
	{Plugin: FirmwarePlugin.Name, Name: firmware.MetricMinorVersionsBehind, Title: "Minor versions behind", Unit: "count"},
}

// MetricsFor returns the catalog entries of one plugin.
func MetricsFor(pluginName string) []MetricInfo {
	var out []MetricInfo
	for _, m := range MetricCatalog {
		if m.Plugin == pluginName {
			out = append(out, m)
		}
	}
	return out
}

// KnownMetric reports whether name is in the catalog.
func KnownMetric(name string) bool {
	for _, m := range MetricCatalog {
		if m.Name == name {
			return true
		}
	}
	return false
}
