package section

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want Section
	}{
		{
			name: "no rows",
			rows: nil,
			want: nil,
		},
		{
			name: "single row object",
			rows: [][]string{{`{"status":"success"}`}},
			want: Section{"status": "success"},
		},
		{
			name: "tokens split across rows are joined with spaces",
			rows: [][]string{{`{"version":`, `"v7.2.5",`}, {`"status":`, `"success"}`}},
			want: Section{"version": "v7.2.5", "status": "success"},
		},
		{
			name: "invalid JSON",
			rows: [][]string{{"not", "json"}},
			want: Section{"error": ParseFailedMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.rows))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantFailed bool
	}{
		{name: "object", raw: `{"a":1}`},
		{name: "object with surrounding whitespace", raw: "  {\"a\":1}\n"},
		{name: "array", raw: `[1,2]`, wantFailed: true},
		{name: "null", raw: `null`, wantFailed: true},
		{name: "scalar", raw: `"text"`, wantFailed: true},
		{name: "trailing data", raw: `{"a":1} {"b":2}`, wantFailed: true},
		{name: "truncated", raw: `{"a":`, wantFailed: true},
		{name: "empty", raw: ``, wantFailed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Decode([]byte(tt.raw))
			if tt.wantFailed {
				assert.Equal(t, Section{"error": ParseFailedMessage}, s)
				return
			}
			assert.False(t, s.IsError())
		})
	}
}

func TestDecodeKeepsNumbers(t *testing.T) {
	s := Decode([]byte(`{"build":1575,"nested":{"major":7}}`))

	assert.Equal(t, json.Number("1575"), s["build"])
	assert.Equal(t, 7, ToInt(s.Map("nested")["major"]))
}

func TestSectionAccessors(t *testing.T) {
	s := Decode([]byte(`{
		"status": "success",
		"version": "v7.2.5",
		"empty": "",
		"nothing": null,
		"results": {"hostname": "fw01"},
		"available": [{"build": 1}, 2],
		"scalar": 5
	}`))

	assert.True(t, s.Has("nothing"))
	assert.False(t, s.Has("missing"))

	assert.Equal(t, "v7.2.5", s.String("version", "Unknown"))
	assert.Equal(t, "Unknown", s.String("empty", "Unknown"))
	assert.Equal(t, "Unknown", s.String("nothing", "Unknown"))
	assert.Equal(t, "Unknown", s.String("missing", "Unknown"))
	assert.Equal(t, "5", s.String("scalar", ""))

	assert.Equal(t, "fw01", s.Map("results").String("hostname", ""))
	assert.Nil(t, s.Map("version"))
	assert.Nil(t, s.Map("missing"))

	assert.Len(t, s.List("available"), 2)
	assert.Nil(t, s.List("results"))

	assert.Equal(t, "success", s.Status("fallback"))
	assert.Equal(t, "fallback", Section{}.Status("fallback"))
}

func TestEmpty(t *testing.T) {
	var nilSection Section
	assert.True(t, nilSection.Empty())
	assert.True(t, Section{}.Empty())
	assert.False(t, Section{"status": "success"}.Empty())

	// reads on a nil section are safe
	assert.Equal(t, "x", nilSection.String("version", "x"))
	assert.Nil(t, nilSection.Map("results"))
}
