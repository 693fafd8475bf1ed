package expand

import "strings"

// parseExpansions extracts queries from a free-text numbered list.
// Leading list numbering ("1. ", "2) ") and surrounding quotes are stripped,
// blank lines discarded. No semantic validation happens here: poor
// expansions degrade recall but must not break the pipeline.
func parseExpansions(text string, limit int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		clean := cleanLine(line)
		if clean == "" {
			continue
		}
		out = append(out, clean)
		if len(out) == limit {
			break
		}
	}
	return out
}

func cleanLine(line string) string {
	clean := strings.TrimSpace(line)

	// Strip list numbering: digits followed by "." or ")".
	i := 0
	for i < len(clean) && clean[i] >= '0' && clean[i] <= '9' {
		i++
	}
	if i > 0 && i < len(clean) && (clean[i] == '.' || clean[i] == ')') {
		clean = strings.TrimSpace(clean[i+1:])
	}

	// Strip one layer of surrounding quotes.
	for _, q := range []string{`"`, `'`} {
		if len(clean) >= 2 && strings.HasPrefix(clean, q) && strings.HasSuffix(clean, q) {
			clean = clean[1 : len(clean)-1]
			break
		}
	}

	return strings.TrimSpace(clean)
}
