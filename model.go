package main

// columnDef represents a single column parsed from an MSSQL CREATE TABLE.
type columnDef struct {
	Name       string // normalized PostgreSQL name
	BaseType   string // bare MSSQL type keyword, e.g. "NVARCHAR"
	TypeArgs   string // length/precision text, e.g. "100" or "10,2"; empty if none
	IsIdentity bool
	Nullable   bool
}

// tableDef holds the full parsed definition of one MSSQL table.
type tableDef struct {
	Name       string // normalized PostgreSQL name
	Columns    []columnDef
	PrimaryKey []string // normalized column names, declaration order preserved
}

// insertDef holds one parsed MSSQL INSERT statement.
type insertDef struct {
	Table   string   // normalized PostgreSQL name
	Columns []string // normalized column names
	Rows    [][]valueToken
}
