package ai

import "strings"

// CleanJSON strips the decoration models put around JSON output: markdown
// code fences, leading prose, trailing prose. The result is the substring
// from the first '{' to the last '}' with fences removed.
func CleanJSON(raw string) string {
	clean := strings.TrimSpace(raw)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	clean = strings.TrimSpace(clean)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start != -1 && end != -1 && end > start {
		clean = clean[start : end+1]
	}

	return strings.TrimSpace(clean)
}

// RepairJSON fixes the malformation models produce most often: trailing
// commas before a closing brace or bracket. String contents are preserved.
func RepairJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	inString := false
	escaped := false
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inString {
			out.WriteRune(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out.WriteRune(ch)
		case ',':
			// Look ahead past whitespace for a closing token.
			j := i + 1
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\n' || runes[j] == '\t' || runes[j] == '\r') {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				continue // drop the trailing comma
			}
			out.WriteRune(ch)
		default:
			out.WriteRune(ch)
		}
	}

	return out.String()
}
