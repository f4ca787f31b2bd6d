package llm

import (
	"encoding/json"
	"strings"
)

const maxLoggedContent = 200

// ParseItems extracts the "items" array from the model output.
// It tries the whole text first, then the substring from the first '{' to the last '}'.
func ParseItems(content string) ([]json.RawMessage, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, &ResponseParseError{Reason: "empty content"}
	}

	doc, ok := decodeObject(text)
	if !ok {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start >= 0 && end > start {
			doc, ok = decodeObject(text[start : end+1])
		}
	}
	if !ok {
		return nil, &ResponseParseError{Reason: "content is not a JSON object", Content: truncate(text)}
	}

	rawItems, present := doc["items"]
	if !present {
		return nil, &ResponseParseError{Reason: `missing "items" key`, Content: truncate(text)}
	}

	// null decodes to a nil slice without error, so nil is rejected too
	var items []json.RawMessage
	if err := json.Unmarshal(rawItems, &items); err != nil || items == nil {
		return nil, &ResponseParseError{Reason: `"items" is not an array`, Content: truncate(text)}
	}
	return items, nil
}

func decodeObject(s string) (map[string]json.RawMessage, bool) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}

func truncate(s string) string {
	if len(s) <= maxLoggedContent {
		return s
	}
	return s[:maxLoggedContent] + "..."
}
