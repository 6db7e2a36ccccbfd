package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MetaString extracts a scalar metafield value. Metafields sourced from the
// host platform may arrive either as a bare value or wrapped in an object
// with a "value" key.
func MetaString(raw any) string {
	switch value := raw.(type) {
	case nil:
		return ""
	case string:
		return value
	case map[string]any:
		if inner, ok := value["value"]; ok {
			return MetaString(inner)
		}
		return ""
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

// MetaList parses a metafield that holds a list. Accepted encodings, in
// order: a native list, a JSON array in a string, newline-separated text,
// comma-separated text, a single scalar. Entries are trimmed and blanks
// dropped.
func MetaList(raw any) []string {
	if list, ok := raw.([]any); ok {
		return cleanList(list)
	}
	if list, ok := raw.([]string); ok {
		items := make([]any, len(list))
		for i, entry := range list {
			items[i] = entry
		}
		return cleanList(items)
	}

	s := strings.TrimSpace(MetaString(raw))
	if s == "" {
		return nil
	}

	var parsed []any
	if err := json.Unmarshal([]byte(s), &parsed); err == nil {
		return cleanList(parsed)
	}

	if strings.Contains(s, "\n") {
		return cleanStrings(strings.Split(s, "\n"))
	}
	if strings.Contains(s, ",") {
		return cleanStrings(strings.Split(s, ","))
	}
	return []string{s}
}

func cleanList(items []any) []string {
	values := make([]string, 0, len(items))
	for _, item := range items {
		if value := strings.TrimSpace(MetaString(item)); value != "" {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func cleanStrings(items []string) []string {
	values := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
