package jsonprop

import "strings"

// ParseRequired collects property names from "required" arrays by scanning
// the schema text line by line. A line whose first quoted token is
// "required" starts a list; its quoted tokens are taken, and when the list
// is not closed on that line the following lines are consumed up to the
// closing bracket. Tokens containing spaces are skipped.
//
// The scan is textual, so required lists of nested objects are merged.
func ParseRequired(text string) []string {
	var out []string
	open := false
	for _, line := range strings.Split(text, "\n") {
		tokens := strings.Split(line, `"`)
		if !open {
			if len(tokens) < 2 || tokens[1] != "required" {
				continue
			}
			rest := strings.Join(tokens[2:], `"`)
			// "required": true (draft 3) or a property called required
			if !strings.Contains(rest, "[") {
				continue
			}
			out = appendQuoted(out, tokens[3:])
			open = !closes(tokens[2:])
			continue
		}
		out = appendQuoted(out, tokens[1:])
		open = !closes(tokens)
	}
	return out
}

// appendQuoted adds the quoted tokens of a split line. After splitting on
// quotes, tokens alternate between quoted and unquoted text starting with
// a quoted one.
func appendQuoted(out []string, tokens []string) []string {
	for i := 0; i < len(tokens); i += 2 {
		if closedBefore(tokens, i) {
			break
		}
		tok := tokens[i]
		if tok == "" || strings.Contains(tok, " ") {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// closedBefore reports whether an unquoted token before index i closes the list.
func closedBefore(tokens []string, i int) bool {
	for j := 1; j < i; j += 2 {
		if strings.Contains(tokens[j], "]") {
			return true
		}
	}
	return false
}

// closes reports whether the unquoted parts of a split line contain "]".
// tokens starts with an unquoted part.
func closes(tokens []string) bool {
	for j := 0; j < len(tokens); j += 2 {
		if strings.Contains(tokens[j], "]") {
			return true
		}
	}
	return false
}
