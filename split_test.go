package main

import "testing"

func TestSplitScript_Kinds(t *testing.T) {
	script := `USE [Northwind];
CREATE TABLE [dbo].[Users] ([Id] INT);
GO
SET NOCOUNT ON;
INSERT INTO [dbo].[Users] ([Id]) VALUES (1);
DROP TABLE [dbo].[Old];
GO`

	stmts := splitScript(script)
	wantKinds := []statementKind{
		stmtSkippableDirective,
		stmtCreateTable,
		stmtSkippableDirective,
		stmtInsert,
		stmtUnsupported,
	}
	if len(stmts) != len(wantKinds) {
		t.Fatalf("got %d statements, want %d: %+v", len(stmts), len(wantKinds), stmts)
	}
	for i, want := range wantKinds {
		if stmts[i].Kind != want {
			t.Errorf("statement %d kind = %d, want %d (%q)", i, stmts[i].Kind, want, stmts[i].Text)
		}
	}
}

func TestSplitScript_SemicolonInString(t *testing.T) {
	script := `INSERT INTO [T] ([A]) VALUES ('a;b');`
	stmts := splitScript(script)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1: %+v", len(stmts), stmts)
	}
	if stmts[0].Kind != stmtInsert {
		t.Errorf("kind = %d, want insert", stmts[0].Kind)
	}
}

func TestSplitScript_GOSeparator(t *testing.T) {
	script := "CREATE TABLE [A] ([X] INT)\nGO\nCREATE TABLE [B] ([Y] INT)\ngo\n"
	stmts := splitScript(script)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2: %+v", len(stmts), stmts)
	}
	for i, s := range stmts {
		if s.Kind != stmtCreateTable {
			t.Errorf("statement %d kind = %d, want create table", i, s.Kind)
		}
	}
}

func TestSplitScript_GOInsideIdentifierNotASeparator(t *testing.T) {
	script := "CREATE TABLE [GO] ([GoColumn] INT)"
	stmts := splitScript(script)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1: %+v", len(stmts), stmts)
	}
}

func TestSplitScript_Comments(t *testing.T) {
	script := `-- leading comment with a fake; semicolon
CREATE TABLE [A] ([X] INT) /* block
comment */;
/* another */ INSERT INTO [A] ([X]) VALUES (1);`
	stmts := splitScript(script)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2: %+v", len(stmts), stmts)
	}
	if stmts[0].Kind != stmtCreateTable || stmts[1].Kind != stmtInsert {
		t.Errorf("kinds = %d,%d", stmts[0].Kind, stmts[1].Kind)
	}
}

func TestClassifyStatement(t *testing.T) {
	tests := []struct {
		in   string
		want statementKind
	}{
		{"CREATE TABLE [T] ([A] INT)", stmtCreateTable},
		{"create table t (a int)", stmtCreateTable},
		{"CREATE INDEX ix ON t (a)", stmtUnsupported},
		{"INSERT INTO t (a) VALUES (1)", stmtInsert},
		{"USE [master]", stmtSkippableDirective},
		{"SET NOCOUNT ON", stmtSkippableDirective},
		{"SET IDENTITY_INSERT [dbo].[T] ON", stmtSkippableDirective},
		{"DELETE FROM t", stmtUnsupported},
		{"SET IDENTITY_INSERT [T] ON\nINSERT INTO [T] ([A]) VALUES (1)", stmtInsert},
	}
	for _, tc := range tests {
		if got := classifyStatement(tc.in); got != tc.want {
			t.Errorf("classifyStatement(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b, c", []string{"a", "b", "c"}},
		{"a DECIMAL(10,2), b INT", []string{"a DECIMAL(10,2)", "b INT"}},
		{"'a,b', c", []string{"'a,b'", "c"}},
		{"CAST('x' AS DECIMAL(10,2)), 5", []string{"CAST('x' AS DECIMAL(10,2))", "5"}},
		{"single", []string{"single"}},
	}
	for _, tc := range tests {
		got := splitTopLevel(tc.in, ',')
		if len(got) != len(tc.want) {
			t.Errorf("splitTopLevel(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("splitTopLevel(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}
