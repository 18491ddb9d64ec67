package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every HTML element and attribute. bluemonday policies
// are safe for concurrent use after creation.
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeString removes executable markup and normalizes whitespace. It runs
// on every string leaf before type validation, unconditionally.
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")
	input = strictPolicy.Sanitize(input)
	// bluemonday escapes ampersands and quotes on the way out; undo the
	// escaping so "João & Maria" is stored as typed, without markup.
	input = html.UnescapeString(input)
	return strings.TrimSpace(input)
}

// SanitizeRecord sanitizes every string leaf of a decoded JSON object,
// descending into nested objects and arrays.
func SanitizeRecord(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = sanitizeValue(value)
	}
	return out
}

func sanitizeValue(value any) any {
	switch v := value.(type) {
	case string:
		return SanitizeString(v)
	case map[string]any:
		return SanitizeRecord(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = sanitizeValue(item)
		}
		return out
	default:
		return value
	}
}
