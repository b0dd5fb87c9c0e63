package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// convertInsert rewrites one INSERT statement, or a run of INSERTs that
// arrived as a single chunk because the source script omits separators
// between them. Rows that fail validation are dropped individually; the
// statement as a whole is rejected only when nothing survives.
func (c *converter) convertInsert(text string) (string, error) {
	runs := splitInsertRuns(text)
	if len(runs) == 0 {
		c.report.Failed++
		return "", fmt.Errorf("%w: no INSERT found", errInvalidInsert)
	}

	var parts []string
	for _, run := range runs {
		def, err := c.parseInsert(run)
		if err != nil {
			c.log.WithError(err).WithField("insert", firstWords(run, 4)).Warn("dropping INSERT")
			c.report.Failed++
			continue
		}
		parts = append(parts, renderInsert(def, c.types))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no convertible rows", errInvalidInsert)
	}
	return strings.Join(parts, "\n\n"), nil
}

// splitInsertRuns cuts a chunk into individual INSERT statements at lines
// that open with the INSERT keyword. Directive lines before the first
// INSERT (e.g. SET IDENTITY_INSERT) are discarded.
func splitInsertRuns(text string) []string {
	var runs []string
	var cur []string
	started := false
	for _, line := range strings.Split(text, "\n") {
		first, _ := readWord(line)
		if strings.EqualFold(first, "INSERT") {
			if started {
				runs = append(runs, strings.Join(cur, "\n"))
			}
			cur = []string{line}
			started = true
			continue
		}
		if started {
			cur = append(cur, line)
		}
	}
	if started {
		runs = append(runs, strings.Join(cur, "\n"))
	}
	return runs
}

func (c *converter) parseInsert(text string) (insertDef, error) {
	word, rest := readWord(text)
	if !strings.EqualFold(word, "INSERT") {
		return insertDef{}, fmt.Errorf("%w: not an INSERT statement", errInvalidInsert)
	}
	if word, after := readWord(rest); strings.EqualFold(word, "INTO") {
		rest = after
	}

	colsInner, open, end, ok := parenGroup(rest, 0)
	if !ok {
		return insertDef{}, fmt.Errorf("%w: missing column list", errInvalidInsert)
	}
	def := insertDef{Table: normalizeIdent(rest[:open])}
	if def.Table == "" {
		return insertDef{}, fmt.Errorf("%w: missing table name", errInvalidInsert)
	}
	for _, raw := range splitTopLevel(colsInner, ',') {
		if raw == "" {
			return insertDef{}, fmt.Errorf("%w: empty column name", errInvalidInsert)
		}
		def.Columns = append(def.Columns, normalizeIdent(raw))
	}

	tail := rest[end:]
	vIdx := indexKeyword(tail, "VALUES")
	if vIdx < 0 {
		return insertDef{}, fmt.Errorf("%w: missing VALUES clause", errInvalidInsert)
	}

	tuples := strings.TrimSpace(tail[vIdx+len("VALUES"):])
	row := 0
	for tuples != "" {
		if !strings.HasPrefix(tuples, "(") {
			if row == 0 {
				return insertDef{}, fmt.Errorf("%w: malformed VALUES clause", errInvalidInsert)
			}
			// Trailing text after the tuples, e.g. a SET IDENTITY_INSERT
			// OFF line that arrived glued to this statement.
			c.log.WithField("trailing", firstWords(tuples, 3)).Debug("ignoring text after VALUES tuples")
			break
		}
		inner, _, end, ok := parenGroup(tuples, 0)
		if !ok {
			return insertDef{}, fmt.Errorf("%w: unbalanced VALUES tuple", errInvalidInsert)
		}
		row++
		toks, err := parseTuple(inner, len(def.Columns))
		if err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{"table": def.Table, "row": row}).
				Warn("dropping row")
			c.report.RowsDropped++
		} else {
			def.Rows = append(def.Rows, toks)
		}
		tuples = strings.TrimSpace(tuples[end:])
		tuples = strings.TrimSpace(strings.TrimPrefix(tuples, ","))
	}

	if row == 0 {
		return insertDef{}, fmt.Errorf("%w: no VALUES tuples", errInvalidInsert)
	}
	if len(def.Rows) == 0 {
		return insertDef{}, fmt.Errorf("%w: no valid rows", errInvalidInsert)
	}
	return def, nil
}

// parseTuple tokenizes one parenthesized tuple and enforces the arity
// invariant against the declared column list.
func parseTuple(inner string, want int) ([]valueToken, error) {
	parts := splitTopLevel(inner, ',')
	if len(parts) != want {
		return nil, fmt.Errorf("%w: got %d values, want %d", errColumnCountMismatch, len(parts), want)
	}
	toks := make([]valueToken, 0, len(parts))
	for _, p := range parts {
		tok, err := parseValueToken(p)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// renderInsert emits one multi-row PostgreSQL INSERT.
func renderInsert(def insertDef, types typeTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (", pgQualified(def.Table))
	for i, col := range def.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgIdent(col))
	}
	b.WriteString(") VALUES ")
	for i, row := range def.Rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, tok := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(rewriteValue(tok, types))
		}
		b.WriteByte(')')
	}
	b.WriteByte(';')
	return b.String()
}
