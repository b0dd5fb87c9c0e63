package main

import (
	"fmt"
	"regexp"
	"strings"
)

// valueKind tags the variants of a VALUES tuple element.
type valueKind int

const (
	valueRaw valueKind = iota
	valueString
	valueNumber
	valueNull
	valueCast
)

// valueToken is one element of a VALUES tuple.
type valueToken struct {
	Kind     valueKind
	Text     string      // literal text for string/number/raw kinds
	Inner    *valueToken // CAST operand
	CastType string      // CAST target type, e.g. "DATETIME" or "DECIMAL(10,2)"
}

var numberRe = regexp.MustCompile(`^[+-]?\d+(\.\d+)?([eE][+-]?\d+)?$`)

// parseValueToken classifies one raw tuple element. String literals keep
// their surrounding quotes but lose the MSSQL wide-string N prefix here.
func parseValueToken(raw string) (valueToken, error) {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		return valueToken{}, fmt.Errorf("%w: empty value", errUnparsableExpression)
	case strings.EqualFold(v, "NULL"):
		return valueToken{Kind: valueNull}, nil
	case numberRe.MatchString(v):
		return valueToken{Kind: valueNumber, Text: v}, nil
	case strings.HasPrefix(v, "N'") || strings.HasPrefix(v, "n'"):
		return parseStringToken(v[1:])
	case strings.HasPrefix(v, "'"):
		return parseStringToken(v)
	case len(v) > 4 && strings.EqualFold(v[:4], "CAST"):
		return parseCastToken(v)
	default:
		return valueToken{Kind: valueRaw, Text: v}, nil
	}
}

func parseStringToken(v string) (valueToken, error) {
	if len(v) < 2 || !strings.HasSuffix(v, "'") {
		return valueToken{}, fmt.Errorf("%w: unterminated string literal %q", errUnparsableExpression, v)
	}
	return valueToken{Kind: valueString, Text: v}, nil
}

func parseCastToken(v string) (valueToken, error) {
	inner, open, end, ok := parenGroup(v, 0)
	if !ok || strings.TrimSpace(v[4:open]) != "" || strings.TrimSpace(v[end:]) != "" {
		return valueToken{}, fmt.Errorf("%w: malformed CAST %q", errUnparsableExpression, v)
	}
	asIdx := indexKeyword(inner, "AS")
	if asIdx < 0 {
		return valueToken{}, fmt.Errorf("%w: CAST without AS in %q", errUnparsableExpression, v)
	}
	operand := strings.TrimSpace(inner[:asIdx])
	typeName := strings.TrimSpace(inner[asIdx+2:])
	if operand == "" || typeName == "" {
		return valueToken{}, fmt.Errorf("%w: malformed CAST %q", errUnparsableExpression, v)
	}
	innerTok, err := parseValueToken(operand)
	if err != nil {
		return valueToken{}, err
	}
	return valueToken{Kind: valueCast, Inner: &innerTok, CastType: typeName}, nil
}

// rewriteValue renders one tuple element in PostgreSQL syntax. CAST
// expressions come out in cast-operator form: value::type.
func rewriteValue(tok valueToken, types typeTable) string {
	switch tok.Kind {
	case valueNull:
		return "NULL"
	case valueCast:
		base, args := splitTypeArgs(tok.CastType)
		return rewriteValue(*tok.Inner, types) + "::" + types.mapType(base, args)
	default:
		return tok.Text
	}
}

// splitTypeArgs separates a type's keyword from its parenthesized
// argument text: "DECIMAL(10, 2)" → ("DECIMAL", "10,2").
func splitTypeArgs(t string) (base, args string) {
	t = strings.TrimSpace(t)
	open := strings.IndexByte(t, '(')
	if open < 0 {
		return t, ""
	}
	close := strings.LastIndexByte(t, ')')
	if close < open {
		return t, ""
	}
	return strings.TrimSpace(t[:open]), canonicalArgs(t[open+1 : close])
}

// canonicalArgs normalizes argument spacing: "10, 2" → "10,2".
func canonicalArgs(args string) string {
	fields := strings.Split(args, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return strings.Join(fields, ",")
}
