package plugin

import (
	"errors"
	"fmt"
	"sort"

	"fortimon/pkg/firmware"
	"fortimon/pkg/identity"
	"fortimon/pkg/models"
	"fortimon/pkg/section"
)

// ErrUnknownPlugin is returned for tasks naming a section no plugin handles.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Registration binds a collector section to its discovery and check functions.
type Registration struct {
	Name        string
	ServiceName string
	Discover    func(section.Section) bool
	Check       func(section.Section, models.EvaluationConfig) models.CheckResult
}

// SystemPlugin checks the FortiGate identity section.
var SystemPlugin = Registration{
	Name:        "fortigate_system",
	ServiceName: "FortiGate System",
	Discover:    identity.Discover,
	Check: func(s section.Section, _ models.EvaluationConfig) models.CheckResult {
		return identity.Check(s)
	},
}

// FirmwarePlugin checks the FortiGate firmware update catalog.
var FirmwarePlugin = Registration{
	Name:        "fortigate_firmware",
	ServiceName: "FortiGate Firmware Updates",
	Discover:    firmware.Discover,
	Check:       firmware.Check,
}

// Registry is a read-only set of registrations; safe for concurrent lookups.
type Registry struct {
	plugins map[string]Registration
}

// NewRegistry builds a registry. A later registration with the same name wins.
func NewRegistry(regs ...Registration) *Registry {
	r := &Registry{plugins: make(map[string]Registration, len(regs))}
	for _, reg := range regs {
		r.plugins[reg.Name] = reg
	}
	return r
}

// DefaultRegistry holds the built-in FortiGate plugins.
func DefaultRegistry() *Registry {
	return NewRegistry(SystemPlugin, FirmwarePlugin)
}

// Lookup returns the registration for a section name.
func (r *Registry) Lookup(name string) (Registration, error) {
	reg, ok := r.plugins[name]
	if !ok {
		return Registration{}, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}
	return reg, nil
}

// List returns all registrations sorted by name.
func (r *Registry) List() []Registration {
	out := make([]Registration, 0, len(r.plugins))
	for _, reg := range r.plugins {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
