package events

import "strings"

// splitTags converts the stored comma-separated tag string into a slice,
// dropping empty entries.
func splitTags(tags string) []string {
	if tags == "" {
		return []string{}
	}

	parts := strings.Split(tags, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
