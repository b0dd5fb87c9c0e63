package main

import "strings"

// The grammar here is intentionally narrow: the only structures the
// converters must respect while scanning are single-quoted strings
// (with '' escapes) and balanced parentheses. Everything below is a
// byte-level scan with a quote flag and a depth counter.

// splitTopLevel splits s on sep occurrences that sit outside string
// literals and outside parentheses.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inString = !inString
			cur.WriteByte(c)
		case inString:
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	last := strings.TrimSpace(cur.String())
	if last != "" || len(parts) == 0 {
		parts = append(parts, last)
	}
	return parts
}

// parenGroup extracts the contents of the parenthesized group whose '('
// is the first one at or after from. It returns the inner text, the index
// of the '(', and the index just past the matching ')'. ok is false when
// there is no group or the parentheses are unbalanced.
func parenGroup(s string, from int) (inner string, open, end int, ok bool) {
	depth := 0
	inString := false
	open = -1
	for i := from; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inString = !inString
		case inString:
		case c == '(':
			if open < 0 {
				open = i
			}
			depth++
		case c == ')':
			if open < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[open+1 : i], open, i + 1, true
			}
		}
	}
	return "", -1, 0, false
}

// indexKeyword returns the byte offset of the first whole-word,
// case-insensitive occurrence of kw outside string literals and outside
// parentheses, or -1.
func indexKeyword(s, kw string) int {
	n := len(kw)
	depth := 0
	inString := false
	for i := 0; i+n <= len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
		default:
			if depth == 0 && strings.EqualFold(s[i:i+n], kw) && wordBoundary(s, i, n) {
				return i
			}
		}
	}
	return -1
}

func wordBoundary(s string, i, n int) bool {
	if i > 0 && isWordByte(s[i-1]) {
		return false
	}
	if i+n < len(s) && isWordByte(s[i+n]) {
		return false
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// readIdentToken consumes one identifier from the front of s. Bracketed
// names may contain spaces; bare names end at whitespace or '('.
func readIdentToken(s string) (ident, rest string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if i := strings.IndexByte(s, ']'); i >= 0 {
			return s[:i+1], s[i+1:]
		}
		return s, ""
	}
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '(' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// readWord consumes one whitespace-delimited word from the front of s.
func readWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t\r\n")
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// stripComments removes -- line comments and (nested) /* */ block
// comments, leaving string literals untouched.
func stripComments(s string) string {
	var b strings.Builder
	inString := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case inString:
			b.WriteByte(c)
			if c == '\'' {
				inString = false
			}
			i++
		case c == '\'':
			inString = true
			b.WriteByte(c)
			i++
		case c == '-' && i+1 < len(s) && s[i+1] == '-':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			depth := 1
			i += 2
			for i < len(s) && depth > 0 {
				switch {
				case s[i] == '/' && i+1 < len(s) && s[i+1] == '*':
					depth++
					i += 2
				case s[i] == '*' && i+1 < len(s) && s[i+1] == '/':
					depth--
					i += 2
				default:
					i++
				}
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// firstWords returns the first n whitespace-delimited words of s, for
// log messages about statements that are not converted.
func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
