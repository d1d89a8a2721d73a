package section

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToInt coerces a loosely typed payload value to an int.
// Whole numbers and decimal strings convert; everything else is 0.
func ToInt(value any) int {
	switch v := value.(type) {
	case json.Number:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0
		}
		return int(n)
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// IsInteger reports whether value is an integer or a string of only digits.
func IsInteger(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number, string:
		text := cast.ToString(v)
		if text == "" || strings.TrimLeft(text, "0123456789") != "" {
			return 0, false
		}
		n, err := strconv.Atoi(text)
		return n, err == nil
	case int, int32, int64:
		return cast.ToInt(v), true
	}
	return 0, false
}

// ToText renders a payload value for display, or fallback when it is missing or empty.
func ToText(value any, fallback string) string {
	if value == nil {
		return fallback
	}
	text, err := cast.ToStringE(value)
	if err != nil || text == "" {
		return fallback
	}
	return text
}
