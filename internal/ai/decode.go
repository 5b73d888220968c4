package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeJSON parses a model reply into dst. Replies wrapped in markdown code fences or surrounded
// by prose are accepted as long as they contain one JSON object.
func decodeJSON(raw string, dst interface{}) error {
	text := stripFences(strings.TrimSpace(raw))
	if err := json.Unmarshal([]byte(text), dst); err == nil {
		return nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("%w: no json object in reply", ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// drop the language tag line
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
