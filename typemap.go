package main

import "strings"

// argPolicy controls what happens to a source type's length/precision
// arguments when the type keyword is rewritten.
type argPolicy int

const (
	argDrop argPolicy = iota
	argPreserve
	argReplace
)

// typeRule describes how one MSSQL type keyword maps to PostgreSQL.
type typeRule struct {
	Target    string
	Policy    argPolicy
	FixedArgs string // used when Policy == argReplace, e.g. "19,4"
}

// typeTable maps upper-cased MSSQL type keywords to conversion rules.
// Types absent from the table are already valid in PostgreSQL (or unknown)
// and pass through unchanged.
type typeTable map[string]typeRule

func defaultTypeTable() typeTable {
	return typeTable{
		"NVARCHAR":         {Target: "varchar", Policy: argPreserve},
		"NTEXT":            {Target: "text"},
		"DATETIME":         {Target: "timestamp"},
		"SMALLDATETIME":    {Target: "timestamp"},
		"UNIQUEIDENTIFIER": {Target: "uuid"},
		"MONEY":            {Target: "decimal", Policy: argReplace, FixedArgs: "19,4"},
		"SMALLMONEY":       {Target: "decimal", Policy: argReplace, FixedArgs: "10,4"},
		"IMAGE":            {Target: "bytea"},
		"BIT":              {Target: "boolean"},
		"TINYINT":          {Target: "smallint"},
		"REAL":             {Target: "real", Policy: argPreserve},
		"FLOAT":            {Target: "double precision"},
		"VARBINARY":        {Target: "bytea"},
		"BINARY":           {Target: "bytea"},
		// MSSQL TIMESTAMP is a rowversion counter, not a point in time.
		"TIMESTAMP": {Target: "bytea"},
	}
}

// lookup returns the mapping rule for an MSSQL type keyword.
// Lookup is case-insensitive; ok is false when no rewrite is needed.
func (tt typeTable) lookup(name string) (typeRule, bool) {
	r, ok := tt[strings.ToUpper(strings.TrimSpace(name))]
	return r, ok
}

// withOverrides returns a copy of the table extended with rename-only
// entries from a config file. Overrides preserve declared arguments.
func (tt typeTable) withOverrides(overrides map[string]string) typeTable {
	if len(overrides) == 0 {
		return tt
	}
	out := make(typeTable, len(tt)+len(overrides))
	for k, v := range tt {
		out[k] = v
	}
	for k, v := range overrides {
		out[strings.ToUpper(strings.TrimSpace(k))] = typeRule{
			Target: strings.ToLower(strings.TrimSpace(v)),
			Policy: argPreserve,
		}
	}
	return out
}

// mapType renders the PostgreSQL type for an MSSQL base type keyword plus
// optional argument text ("100" or "10,2"; empty when absent).
func (tt typeTable) mapType(baseType, args string) string {
	args = strings.TrimSpace(args)
	if strings.EqualFold(args, "max") {
		// NVARCHAR(MAX)/VARBINARY(MAX): PostgreSQL types are unbounded.
		args = ""
	}

	rule, ok := tt.lookup(baseType)
	if !ok {
		t := strings.ToLower(strings.TrimSpace(baseType))
		if args != "" {
			return t + "(" + args + ")"
		}
		return t
	}

	switch rule.Policy {
	case argPreserve:
		if args != "" {
			return rule.Target + "(" + args + ")"
		}
		return rule.Target
	case argReplace:
		return rule.Target + "(" + rule.FixedArgs + ")"
	default:
		return rule.Target
	}
}
