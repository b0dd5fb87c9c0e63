package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var notNullRe = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)

// convertCreateTable rewrites one CREATE TABLE statement into PostgreSQL
// syntax. A statement whose column list cannot be balanced is rejected;
// the caller drops it and moves on.
func (c *converter) convertCreateTable(text string) (string, error) {
	def, err := c.parseCreateTable(text)
	if err != nil {
		return "", err
	}
	return renderCreateTable(def, c.types), nil
}

func (c *converter) parseCreateTable(text string) (tableDef, error) {
	tableKw := indexKeyword(text, "TABLE")
	if tableKw < 0 {
		return tableDef{}, fmt.Errorf("%w: missing TABLE keyword", errMalformedTable)
	}
	body, open, end, ok := parenGroup(text, tableKw)
	if !ok {
		return tableDef{}, fmt.Errorf("%w: unbalanced parentheses", errMalformedTable)
	}

	def := tableDef{Name: normalizeIdent(text[tableKw+len("TABLE") : open])}
	if def.Name == "" {
		return tableDef{}, fmt.Errorf("%w: missing table name", errMalformedTable)
	}

	// Engine-placement clauses after the column list (ON [PRIMARY],
	// TEXTIMAGE_ON, ...) have no PostgreSQL meaning.
	if trailing := strings.TrimSpace(text[end:]); trailing != "" {
		c.log.WithFields(logrus.Fields{"table": def.Name, "clause": firstWords(trailing, 2)}).
			Info("dropping storage placement clause")
	}

	for _, item := range splitTopLevel(body, ',') {
		if item == "" {
			continue
		}
		// Classify by the first whole word only; a column named
		// PrimaryContact or WithTax is still a column.
		first, _ := readWord(item)
		switch {
		case strings.EqualFold(first, "PRIMARY"),
			strings.EqualFold(first, "CONSTRAINT") && strings.Contains(strings.ToUpper(item), "PRIMARY KEY"):
			cols, err := parsePrimaryKeyClause(item)
			if err != nil {
				return tableDef{}, err
			}
			def.PrimaryKey = append(def.PrimaryKey, cols...)
		case strings.EqualFold(first, "CONSTRAINT"):
			c.log.WithFields(logrus.Fields{"table": def.Name, "constraint": firstWords(item, 2)}).
				Warn("dropping non-primary-key constraint")
		case strings.EqualFold(first, "FOREIGN"):
			c.log.WithFields(logrus.Fields{"table": def.Name, "clause": firstWords(item, 2)}).
				Warn("dropping inline foreign key")
		case strings.EqualFold(first, "WITH"):
			c.log.WithField("table", def.Name).Info("dropping WITH table options")
		default:
			col, err := c.parseColumnDef(item)
			if err != nil {
				return tableDef{}, err
			}
			def.Columns = append(def.Columns, col)
		}
	}

	if len(def.Columns) == 0 {
		return tableDef{}, fmt.Errorf("%w: no columns", errMalformedTable)
	}
	return def, nil
}

// parsePrimaryKeyClause extracts the column list from a trailing
// PRIMARY KEY [CLUSTERED] (...) or CONSTRAINT ... PRIMARY KEY (...)
// clause, dropping per-column ASC/DESC ordering tokens.
func parsePrimaryKeyClause(item string) ([]string, error) {
	kw := indexKeyword(item, "KEY")
	if kw < 0 {
		return nil, fmt.Errorf("%w: malformed primary key clause", errMalformedTable)
	}
	inner, _, _, ok := parenGroup(item, kw)
	if !ok {
		return nil, fmt.Errorf("%w: primary key without column list", errMalformedTable)
	}
	var cols []string
	for _, raw := range splitTopLevel(inner, ',') {
		raw = strings.TrimSuffix(strings.TrimSpace(raw), ";")
		for _, ord := range []string{"ASC", "DESC"} {
			if i := indexKeyword(raw, ord); i >= 0 {
				raw = strings.TrimSpace(raw[:i])
			}
		}
		if raw == "" {
			return nil, fmt.Errorf("%w: empty primary key column", errMalformedTable)
		}
		cols = append(cols, normalizeIdent(raw))
	}
	return cols, nil
}

// parseColumnDef parses "name TYPE[(args)] [IDENTITY(s,i)] [NOT NULL]".
// Markers it does not recognize are discarded.
func (c *converter) parseColumnDef(item string) (columnDef, error) {
	name, rest := readIdentToken(item)
	if name == "" {
		return columnDef{}, fmt.Errorf("%w: empty column definition", errMalformedTable)
	}
	col := columnDef{Name: normalizeIdent(name), Nullable: true}

	baseType, rest := readTypeToken(rest)
	// Dump scripts bracket type names too: [Name] [nvarchar](100).
	baseType = strings.TrimSuffix(strings.TrimPrefix(baseType, "["), "]")
	if baseType == "" {
		return columnDef{}, fmt.Errorf("%w: column %q has no type", errMalformedTable, col.Name)
	}
	col.BaseType = baseType

	if strings.HasPrefix(strings.TrimSpace(rest), "(") {
		args, _, end, ok := parenGroup(rest, 0)
		if !ok {
			return columnDef{}, fmt.Errorf("%w: unbalanced type arguments for column %q", errMalformedTable, col.Name)
		}
		col.TypeArgs = canonicalArgs(args)
		rest = rest[end:]
	}

	if idx := indexKeyword(rest, "IDENTITY"); idx >= 0 {
		col.IsIdentity = true
		after := rest[idx+len("IDENTITY"):]
		if strings.HasPrefix(strings.TrimSpace(after), "(") {
			if seedStep, _, _, ok := parenGroup(after, 0); ok {
				c.log.WithFields(logrus.Fields{"column": col.Name, "identity": canonicalArgs(seedStep)}).
					Warn("discarding IDENTITY seed/step, emitting serial")
			}
		}
	}
	if notNullRe.MatchString(rest) {
		col.Nullable = false
	}
	return col, nil
}

// readTypeToken consumes the base type keyword, which ends at whitespace
// or at the opening parenthesis of its arguments.
func readTypeToken(s string) (string, string) {
	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '(':
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// renderCreateTable emits the PostgreSQL statement. Identity columns
// become serial regardless of their declared base type.
func renderCreateTable(def tableDef, types typeTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (", pgQualified(def.Name))
	for i, col := range def.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgIdent(col.Name))
		b.WriteByte(' ')
		if col.IsIdentity {
			b.WriteString("serial")
		} else {
			b.WriteString(types.mapType(col.BaseType, col.TypeArgs))
		}
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
	}
	if len(def.PrimaryKey) > 0 {
		b.WriteString(", PRIMARY KEY (")
		for i, pk := range def.PrimaryKey {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(pgIdent(pk))
		}
		b.WriteByte(')')
	}
	b.WriteString(");")
	return b.String()
}
