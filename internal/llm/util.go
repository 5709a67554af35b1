// Package llm - util.go isolates the JSON payload in a model response.
package llm

import "strings"

// CleanJSONBlock extracts the JSON value from a classification response.
// Gemini wraps verdicts in ```json fences or prepends a short preamble even
// when told to answer with bare JSON, so fences are stripped first and the
// remainder is cut down to its first balanced object or array.
func CleanJSONBlock(text string) string {
	text = stripFence(strings.TrimSpace(text))
	if value := firstJSONValue(text); value != "" {
		return value
	}
	return text
}

// stripFence removes a surrounding markdown code fence, with or without a
// language tag on the opening line.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		tag := strings.TrimSpace(text[:idx])
		if tag == "" || (len(tag) < 20 && !strings.ContainsAny(tag, " {[")) {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// firstJSONValue returns the first balanced JSON object or array in text,
// or "" when there is none. Brackets inside string literals are ignored.
func firstJSONValue(text string) string {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}

	open, close := byte('{'), byte('}')
	if text[start] == '[' {
		open, close = '[', ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
