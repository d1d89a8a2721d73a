package section

import (
	"strings"

	"golang.org/x/text/cases"
)

// FailureKind classifies why a section carries no usable data.
type FailureKind string

const (
	NoData       FailureKind = "no_data"
	Connectivity FailureKind = "connectivity_failure"
	Request      FailureKind = "request_failure"
	Malformed    FailureKind = "malformed_data"
)

// Failure is the normalised form of an error-shaped section.
type Failure struct {
	Kind    FailureKind
	Message string
	Detail  string
}

// Inconclusive reports whether the failure says nothing about the device itself.
func (f Failure) Inconclusive() bool {
	return f.Kind == Connectivity || f.Kind == NoData
}

// connectivityHints are matched as case-folded substrings of the message and detail.
var connectivityHints = []string{
	"no route to host",
	"failed to connect",
	"failed to establish",
	"dns",
	"resolution",
	"refused",
	"timed out",
	"timeout",
}

// IsError reports whether the collector produced an error record.
func (s Section) IsError() bool {
	return s.Has("error") || s.Status("") == "error"
}

// Failure normalises an error-shaped section. defaultMessage is used when the
// record has neither a message nor an error text.
func (s Section) Failure(defaultMessage string) Failure {
	errText := s.String("error", "")
	message := s.String("message", errText)
	if message == "" {
		message = defaultMessage
	}

	f := Failure{
		Kind:    Request,
		Message: message,
		Detail:  s.String("detail", ""),
	}

	switch {
	case errText == ParseFailedMessage:
		f.Kind = Malformed
	case isConnectivity(errText, f.Message, f.Detail):
		f.Kind = Connectivity
	}
	return f
}

func isConnectivity(errType, message, detail string) bool {
	fold := cases.Fold()
	switch fold.String(errType) {
	case "connection", "timeout":
		return true
	}
	if containsHint(fold.String(message)) {
		return true
	}
	return detail != "" && containsHint(fold.String(detail))
}

func containsHint(text string) bool {
	for _, hint := range connectivityHints {
		if strings.Contains(text, hint) {
			return true
		}
	}
	return false
}
