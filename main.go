package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	applyDSN   string
	mssqlDSN   string
	mssqlOwner string
	outPath    string
)

var rootCmd = &cobra.Command{
	Use:   "mssql2psql <input.sql> <output.sql>",
	Short: "MSSQL to PostgreSQL script converter",
	Long: `Converts an MSSQL script (CREATE TABLE and INSERT statements) into an
equivalent PostgreSQL script. Statements and rows that cannot be converted
are logged and dropped; the run still produces a best-effort output file.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var applyCmd = &cobra.Command{
	Use:   "apply <converted.sql>",
	Short: "Execute a converted script against PostgreSQL",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Dump CREATE TABLE statements from a live SQL Server database",
	Args:  cobra.NoArgs,
	RunE:  runIntrospect,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	applyCmd.Flags().StringVar(&applyDSN, "dsn", "", "PostgreSQL DSN (overrides config)")
	introspectCmd.Flags().StringVar(&mssqlDSN, "dsn", "", "SQL Server DSN (overrides config)")
	introspectCmd.Flags().StringVar(&mssqlOwner, "schema", "", "SQL Server schema to introspect (default dbo)")
	introspectCmd.Flags().StringVarP(&outPath, "out", "o", "", "output script path (default stdout)")
	rootCmd.AddCommand(applyCmd, introspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process-wide logger. The core only ever writes to
// it; nothing reads log state back.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func resolveConfig() (*Config, error) {
	if configPath == "" {
		return defaultConfig(), nil
	}
	return loadConfig(configPath)
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	inputPath, outputPath := args[0], args[1]
	start := time.Now()
	log.WithFields(logrus.Fields{"input": inputPath, "output": outputPath}).Info("starting conversion")

	script, err := readScriptFile(inputPath)
	if err != nil {
		return err
	}

	conv := newConverter(defaultTypeTable().withOverrides(cfg.TypeOverrides), log)
	out, report := conv.convertScript(script)

	if err := writeScriptFile(outputPath, out); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"converted":    report.Converted,
		"skipped":      report.Skipped,
		"unsupported":  report.Unsupported,
		"failed":       report.Failed,
		"rows_dropped": report.RowsDropped,
		"elapsed":      time.Since(start).Round(time.Millisecond).String(),
	}).Info("conversion completed")
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	dsn := applyDSN
	if dsn == "" {
		dsn = cfg.Postgres.DSN
	}
	if dsn == "" {
		return fmt.Errorf("postgres DSN required: --dsn flag or [postgres] dsn in config")
	}

	script, err := readScriptFile(args[0])
	if err != nil {
		return err
	}
	return applyScript(context.Background(), dsn, script, log)
}

func runIntrospect(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	dsn := mssqlDSN
	if dsn == "" {
		dsn = cfg.MSSQL.DSN
	}
	if dsn == "" {
		return fmt.Errorf("sqlserver DSN required: --dsn flag or [mssql] dsn in config")
	}
	owner := mssqlOwner
	if owner == "" {
		owner = cfg.MSSQL.Schema
	}

	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return fmt.Errorf("open sqlserver: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping sqlserver: %w", err)
	}

	log.WithField("schema", owner).Info("introspecting SQL Server schema")
	tables, err := introspectMSSQL(db, owner)
	if err != nil {
		return err
	}
	log.WithField("tables", len(tables)).Info("introspection completed")

	script := renderSourceScript(tables)
	if outPath == "" {
		fmt.Print(script)
		return nil
	}
	return writeScriptFile(outPath, script)
}
