package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// applyScript executes a converted script against PostgreSQL, one
// statement at a time in script order. The first failing statement
// aborts the apply; the script text is included in the error so the
// offending statement can be fixed by hand.
func applyScript(ctx context.Context, dsn, script string, log *logrus.Logger) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	stmts := executableStatements(script)
	log.WithField("statements", len(stmts)).Info("applying script")
	for i, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply statement %d: %w\nSQL: %s", i+1, err, stmt)
		}
	}
	log.Info("apply completed")
	return nil
}

// executableStatements splits converted output back into individual
// statements for execution.
func executableStatements(script string) []string {
	var out []string
	for _, s := range splitStatements(script) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
