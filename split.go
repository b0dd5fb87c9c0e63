package main

import "strings"

// statementKind classifies what the converter can do with a statement.
type statementKind int

const (
	stmtCreateTable statementKind = iota
	stmtInsert
	stmtSkippableDirective
	stmtUnsupported
)

// statement is one classified chunk of the input script.
type statement struct {
	Kind statementKind
	Text string
}

// splitScript segments a decoded script into classified statements.
// Batches are separated by GO lines, statements inside a batch by
// semicolons outside string literals. Comments are stripped up front.
func splitScript(script string) []statement {
	var stmts []statement
	for _, batch := range splitBatches(stripComments(script)) {
		for _, text := range splitStatements(batch) {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			stmts = append(stmts, statement{Kind: classifyStatement(text), Text: text})
		}
	}
	return stmts
}

// splitBatches splits on the MSSQL GO batch separator, which only counts
// when it sits on its own line.
func splitBatches(script string) []string {
	var batches []string
	var cur strings.Builder
	for _, line := range strings.Split(script, "\n") {
		t := strings.TrimSpace(line)
		if strings.EqualFold(strings.TrimSuffix(t, ";"), "GO") {
			batches = append(batches, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	batches = append(batches, cur.String())
	return batches
}

// splitStatements splits one batch on semicolons outside string literals.
func splitStatements(batch string) []string {
	var stmts []string
	var cur strings.Builder
	inString := false
	for i := 0; i < len(batch); i++ {
		c := batch[i]
		switch {
		case c == '\'':
			inString = !inString
			cur.WriteByte(c)
		case c == ';' && !inString:
			stmts = append(stmts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	stmts = append(stmts, cur.String())
	return stmts
}

// classifyStatement tags a statement by its opening keyword. A directive
// chunk that still carries INSERT lines (scripts often omit separators
// after SET IDENTITY_INSERT) is handed to the INSERT converter, which
// skips the directive lines itself.
func classifyStatement(text string) statementKind {
	first, rest := readWord(text)
	switch strings.ToUpper(first) {
	case "CREATE":
		second, _ := readWord(rest)
		if strings.EqualFold(second, "TABLE") {
			return stmtCreateTable
		}
		return stmtUnsupported
	case "INSERT":
		return stmtInsert
	case "USE", "SET":
		if hasInsertRun(text) {
			return stmtInsert
		}
		return stmtSkippableDirective
	default:
		return stmtUnsupported
	}
}

// hasInsertRun reports whether any line of text opens with INSERT.
func hasInsertRun(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		first, _ := readWord(line)
		if strings.EqualFold(first, "INSERT") {
			return true
		}
	}
	return false
}
