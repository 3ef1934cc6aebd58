package features

import "strings"

// Sanitization caps for untrusted caller-supplied values.
const (
	maxStringLen = 256
	maxListItems = 20
)

// Sanitize cleans a dynamic value from untrusted context. Strings are
// trimmed of surrounding whitespace and capped at 256 runes, lists are
// capped at 20 items with each item sanitized recursively, numbers and
// booleans pass through, and anything else is dropped (nil).
func Sanitize(v any) any {
	switch val := v.(type) {
	case string:
		return capString(val)
	case []any:
		return sanitizeList(val)
	case []string:
		generic := make([]any, len(val))
		for i, s := range val {
			generic[i] = s
		}
		return sanitizeList(generic)
	case bool, int, int32, int64, float32, float64:
		return val
	default:
		return nil
	}
}

func capString(s string) string {
	trimmed := []rune(strings.TrimSpace(s))
	if len(trimmed) > maxStringLen {
		trimmed = trimmed[:maxStringLen]
	}
	return string(trimmed)
}

func sanitizeList(items []any) any {
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		clean := Sanitize(item)
		if clean == nil {
			continue
		}
		if s, ok := clean.(string); ok && s == "" {
			continue
		}
		out = append(out, clean)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
