package main

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// runReport tallies what happened to each statement and row of a run.
type runReport struct {
	Converted   int
	Skipped     int
	Unsupported int
	Failed      int
	RowsDropped int
}

// converter rewrites classified MSSQL statements into PostgreSQL syntax.
// The type table is read-only; the only mutable state is the run report,
// so one converter handles one script at a time.
type converter struct {
	types  typeTable
	log    *logrus.Logger
	report runReport
}

func newConverter(types typeTable, log *logrus.Logger) *converter {
	return &converter{types: types, log: log}
}

// convertScript converts a whole decoded script, statement by statement.
// Statement and row failures are logged and recovered; the returned text
// contains every statement that converted cleanly, in input order.
func (c *converter) convertScript(script string) (string, runReport) {
	c.report = runReport{}
	var b strings.Builder
	for i, stmt := range splitScript(script) {
		logger := c.log.WithField("statement", i+1)
		switch stmt.Kind {
		case stmtCreateTable:
			out, err := c.convertCreateTable(stmt.Text)
			if err != nil {
				logger.WithError(err).Warn("dropping CREATE TABLE")
				c.report.Failed++
				continue
			}
			b.WriteString(out)
			b.WriteString("\n\n")
			c.report.Converted++
		case stmtInsert:
			// convertInsert counts each dropped statement of a glued
			// run itself, so no Failed bump here.
			out, err := c.convertInsert(stmt.Text)
			if err != nil {
				logger.WithError(err).Warn("dropping INSERT")
				continue
			}
			b.WriteString(out)
			b.WriteString("\n\n")
			c.report.Converted++
		case stmtSkippableDirective:
			logger.WithField("directive", firstWords(stmt.Text, 2)).Info("skipping dialect-specific directive")
			c.report.Skipped++
		default:
			logger.WithField("prefix", firstWords(stmt.Text, 2)).Warn("skipping unsupported statement")
			c.report.Unsupported++
		}
	}
	return b.String(), c.report
}
