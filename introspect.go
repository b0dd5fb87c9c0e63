package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
)

// sourceColumn is one column as reported by SQL Server's catalog views.
type sourceColumn struct {
	Name       string
	DataType   string // bare type keyword, e.g. "nvarchar"
	CharMaxLen sql.NullInt64
	Precision  sql.NullInt64
	Scale      sql.NullInt64
	Nullable   bool
	IsIdentity bool
}

// sourceTable is one introspected SQL Server table.
type sourceTable struct {
	Schema    string
	Name      string
	Columns   []sourceColumn
	PKColumns []string
}

// introspectMSSQL reads table definitions for one schema from a live
// SQL Server database.
func introspectMSSQL(db *sql.DB, schema string) ([]sourceTable, error) {
	names, err := introspectTableNames(db, schema)
	if err != nil {
		return nil, fmt.Errorf("introspect tables: %w", err)
	}

	tables := make([]sourceTable, 0, len(names))
	for _, name := range names {
		t := sourceTable{Schema: schema, Name: name}
		if t.Columns, err = introspectColumns(db, schema, name); err != nil {
			return nil, fmt.Errorf("introspect columns for %s: %w", name, err)
		}
		if t.PKColumns, err = introspectPrimaryKey(db, schema, name); err != nil {
			return nil, fmt.Errorf("introspect primary key for %s: %w", name, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func introspectTableNames(db *sql.DB, schema string) ([]string, error) {
	rows, err := db.Query(`
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`, schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func introspectColumns(db *sql.DB, schema, table string) ([]sourceColumn, error) {
	rows, err := db.Query(`
		SELECT
			c.COLUMN_NAME,
			c.DATA_TYPE,
			c.CHARACTER_MAXIMUM_LENGTH,
			c.NUMERIC_PRECISION,
			c.NUMERIC_SCALE,
			c.IS_NULLABLE,
			COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity')
		FROM INFORMATION_SCHEMA.COLUMNS c
		WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
		ORDER BY c.ORDINAL_POSITION`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []sourceColumn
	for rows.Next() {
		var (
			col        sourceColumn
			isNullable string
			isIdentity sql.NullInt64
		)
		if err := rows.Scan(&col.Name, &col.DataType, &col.CharMaxLen,
			&col.Precision, &col.Scale, &isNullable, &isIdentity); err != nil {
			return nil, err
		}
		col.Nullable = strings.EqualFold(isNullable, "YES")
		col.IsIdentity = isIdentity.Valid && isIdentity.Int64 == 1
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

func introspectPrimaryKey(db *sql.DB, schema, table string) ([]string, error) {
	rows, err := db.Query(`
		SELECT kcu.COLUMN_NAME
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
			ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
			AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
			AND tc.TABLE_NAME = kcu.TABLE_NAME
		WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
			AND tc.TABLE_SCHEMA = @p1 AND tc.TABLE_NAME = @p2
		ORDER BY kcu.ORDINAL_POSITION`, schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// renderSourceScript emits the introspected tables as an MSSQL-dialect
// script, one batch per table, in exactly the shape the converter itself
// accepts.
func renderSourceScript(tables []sourceTable) string {
	var b strings.Builder
	for _, t := range tables {
		b.WriteString(renderSourceTable(t))
		b.WriteString("\nGO\n\n")
	}
	return b.String()
}

func renderSourceTable(t sourceTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE [%s].[%s] (", t.Schema, t.Name)
	for i, col := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "[%s] %s", col.Name, sourceTypeText(col))
		if col.IsIdentity {
			b.WriteString(" IDENTITY(1,1)")
		}
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
	}
	if len(t.PKColumns) > 0 {
		b.WriteString(", PRIMARY KEY (")
		for i, c := range t.PKColumns {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "[%s]", c)
		}
		b.WriteByte(')')
	}
	b.WriteString(");")
	return b.String()
}

// sourceTypeText reconstructs the declared MSSQL type text for a column.
func sourceTypeText(col sourceColumn) string {
	t := strings.ToUpper(col.DataType)
	switch t {
	case "NVARCHAR", "VARCHAR", "NCHAR", "CHAR", "VARBINARY", "BINARY":
		if col.CharMaxLen.Valid {
			if col.CharMaxLen.Int64 < 0 {
				return t + "(MAX)"
			}
			return fmt.Sprintf("%s(%d)", t, col.CharMaxLen.Int64)
		}
	case "DECIMAL", "NUMERIC":
		if col.Precision.Valid && col.Scale.Valid {
			return fmt.Sprintf("%s(%d,%d)", t, col.Precision.Int64, col.Scale.Int64)
		}
	}
	return t
}
