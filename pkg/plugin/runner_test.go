package plugin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fortimon/pkg/firmware"
	"fortimon/pkg/identity"
	"fortimon/pkg/models"
)

const crossBranchPayload = `{
	"status": "success",
	"results": {
		"current": {"version": "v7.0.0", "major": 7, "minor": 0, "patch": 0, "build": 1000},
		"available": [{"version": "v7.2.0", "major": 7, "minor": 2, "patch": 0, "build": 5000}]
	}
}`

func TestRunKeepsOrder(t *testing.T) {
	tasks := []Task{
		{MonitorID: 1, Target: "fw01", Section: SystemPlugin.Name, Rows: [][]string{{`{"status":"success","version":"v7.2.5","build":1517}`}}},
		{MonitorID: 2, Target: "fw01", Section: FirmwarePlugin.Name, Payload: json.RawMessage(crossBranchPayload)},
		{MonitorID: 3, Target: "fw02", Section: "fortigate_ha"},
		{MonitorID: 4, Target: "fw03", Section: SystemPlugin.Name},
	}

	results, err := Run(context.Background(), DefaultRegistry(), tasks, Options{Concurrency: 2, Defaults: models.DefaultEvaluationConfig()})
	require.NoError(t, err)
	require.Len(t, results, len(tasks))

	for i, res := range results {
		assert.Equal(t, tasks[i].MonitorID, res.MonitorID)
		assert.Equal(t, tasks[i].Target, res.Target)
	}

	assert.True(t, results[0].Success)
	assert.Equal(t, "FortiGate System", results[0].Service)
	require.NotNil(t, results[0].State)
	assert.Equal(t, models.StateOK, *results[0].State)
	assert.Equal(t, "Version v7.2.5 Build 1517", results[0].Summary)

	require.NotNil(t, results[1].State)
	assert.Equal(t, models.StateCrit, *results[1].State)

	assert.False(t, results[2].Success)
	assert.Contains(t, results[2].Error, "unknown plugin")
	assert.Nil(t, results[2].State)

	require.NotNil(t, results[3].State)
	assert.Equal(t, models.StateUnknown, *results[3].State)
}

func TestExecuteConfigLayers(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		params   string
		defaults bool
		want     models.State
	}{
		{name: "default critical", payload: crossBranchPayload, defaults: true, want: models.StateCrit},
		{name: "default tolerant", payload: crossBranchPayload, defaults: false, want: models.StateWarn},
		{
			name:     "section config overrides default",
			payload:  `{"config": {"critical_on_branch_change": false},` + crossBranchPayload[1:],
			defaults: true,
			want:     models.StateWarn,
		},
		{
			name:     "task rule overrides section config",
			payload:  `{"config": {"critical_on_branch_change": false},` + crossBranchPayload[1:],
			params:   `{"critical_on_branch_change": "critical"}`,
			defaults: true,
			want:     models.StateCrit,
		},
		{name: "task rule warn only", payload: crossBranchPayload, params: `{"critical_on_branch_change": "warn"}`, defaults: true, want: models.StateWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Target: "fw01", Section: FirmwarePlugin.Name, Payload: json.RawMessage(tt.payload)}
			if tt.params != "" {
				task.Params = json.RawMessage(tt.params)
			}

			res := Execute(DefaultRegistry(), task, Options{Defaults: models.EvaluationConfig{CriticalOnBranchChange: tt.defaults}})
			require.True(t, res.Success, res.Error)
			require.NotNil(t, res.State)
			assert.Equal(t, tt.want, *res.State)
		})
	}
}

func TestExecuteInvalidParams(t *testing.T) {
	task := Task{
		Target:  "fw01",
		Section: FirmwarePlugin.Name,
		Payload: json.RawMessage(crossBranchPayload),
		Params:  json.RawMessage(`{"critical_on_branch_change": [1]}`),
	}

	res := Execute(DefaultRegistry(), task, Options{})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, models.ErrInvalidParams.Error())
	assert.Nil(t, res.State)
}

func TestRunDiscovery(t *testing.T) {
	tasks := []Task{
		{Target: "fw01", Section: SystemPlugin.Name, Payload: json.RawMessage(`{"status":"success"}`)},
		{Target: "fw01", Section: FirmwarePlugin.Name, Payload: json.RawMessage(`{"status":"error","error":"HTTP 500"}`)},
		{Target: "fw02", Section: SystemPlugin.Name, Payload: json.RawMessage(`{"error":"timeout"}`)},
		{Target: "fw02", Section: FirmwarePlugin.Name},
	}

	results, err := Run(context.Background(), DefaultRegistry(), tasks, Options{Discovery: true})
	require.NoError(t, err)

	discovered := make([]bool, 0, len(results))
	for _, res := range results {
		assert.True(t, res.Success)
		assert.Nil(t, res.State)
		discovered = append(discovered, res.Discovered)
	}
	assert.Equal(t, []bool{true, true, false, false}, discovered)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, DefaultRegistry(), []Task{{Target: "fw01", Section: SystemPlugin.Name}}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	results, err := Run(context.Background(), DefaultRegistry(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTaskParsed(t *testing.T) {
	withBoth := Task{
		Rows:    [][]string{{`{"status":"error"}`}},
		Payload: json.RawMessage(`{"status":"success"}`),
	}
	assert.Equal(t, "success", withBoth.Parsed().Status(""))

	rowsOnly := Task{Rows: [][]string{{`{"status":`, `"success"}`}}}
	assert.Equal(t, "success", rowsOnly.Parsed().Status(""))

	assert.True(t, Task{}.Parsed().Empty())
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()

	names := []string{}
	for _, r := range reg.List() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"fortigate_firmware", "fortigate_system"}, names)

	_, err := reg.Lookup("fortigate_vpn")
	assert.ErrorIs(t, err, ErrUnknownPlugin)

	custom := NewRegistry(SystemPlugin, Registration{Name: SystemPlugin.Name, ServiceName: "Override"})
	got, err := custom.Lookup(SystemPlugin.Name)
	require.NoError(t, err)
	assert.Equal(t, "Override", got.ServiceName)
}

func TestMetricCatalog(t *testing.T) {
	system := MetricsFor(SystemPlugin.Name)
	require.Len(t, system, 2)
	assert.Equal(t, identity.MetricVersionNumeric, system[0].Name)

	fw := MetricsFor(FirmwarePlugin.Name)
	require.Len(t, fw, 6)
	assert.Equal(t, firmware.MetricUpdatesAvailable, fw[0].Name)

	assert.True(t, KnownMetric(firmware.MetricMinorVersionsBehind))
	assert.False(t, KnownMetric("cpu_usage"))
	assert.Empty(t, MetricsFor("fortigate_ha"))
}
