// Package section turns the collector's raw output rows into structured
// sections and normalises the error records the collector emits.
// Nothing in here fails: malformed input degrades to an error-shaped section.
package section

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ParseFailedMessage is the error text of a section whose payload was not valid JSON.
const ParseFailedMessage = "JSON parse failed"

// StatusSuccess is the collector's success sentinel.
const StatusSuccess = "success"

// Section is one decoded collector payload. Numbers are kept as json.Number
// so that integer coercion happens in one place (see ToInt).
type Section map[string]any

// Parse joins the raw rows with single spaces and decodes the result.
// No rows means no data and yields nil.
func Parse(rows [][]string) Section {
	if len(rows) == 0 {
		return nil
	}

	var words []string
	for _, row := range rows {
		words = append(words, row...)
	}
	return Decode([]byte(strings.Join(words, " ")))
}

// Decode decodes a single JSON object. Anything else, including trailing
// data, becomes an error section.
func Decode(raw []byte) Section {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return parseFailed()
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return parseFailed()
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return parseFailed()
	}
	return Section(obj)
}

func parseFailed() Section {
	return Section{"error": ParseFailedMessage}
}

// Empty reports whether the section carries no data at all.
func (s Section) Empty() bool {
	return len(s) == 0
}

// Has reports whether key is present, even with a null value.
func (s Section) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// String returns the value of key as display text, or fallback when missing or empty.
func (s Section) String(key, fallback string) string {
	return ToText(s[key], fallback)
}

// Map returns the nested object under key, or nil.
func (s Section) Map(key string) Section {
	return AsSection(s[key])
}

// List returns the array under key, or nil when it is absent or not an array.
func (s Section) List(key string) []any {
	list, _ := s[key].([]any)
	return list
}

// Status returns the status field, or fallback when absent.
func (s Section) Status(fallback string) string {
	if !s.Has("status") {
		return fallback
	}
	return ToText(s["status"], "")
}

// AsSection converts an arbitrary decoded value to a Section when it is an object.
func AsSection(value any) Section {
	switch v := value.(type) {
	case Section:
		return v
	case map[string]any:
		return Section(v)
	}
	return nil
}
