// Package jsonx pulls a JSON object out of free-form model output.
package jsonx

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Extract returns the first JSON object found in text: the body of a ```json fenced
// block when present, otherwise the span from the first '{' to the last '}'.
// It returns nil when nothing parses.
func Extract(text string) map[string]any {
	candidate := strings.TrimSpace(text)
	if m := fencedJSON.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		candidate = strings.TrimSpace(m[1])
	} else if first, last := strings.Index(text, "{"), strings.LastIndex(text, "}"); first != -1 && last > first {
		candidate = text[first : last+1]
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return nil
	}
	return out
}
