package main

import "testing"

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[dbo].[Users]", "users"},
		{"[Users]", "users"},
		{"dbo.Users", "users"},
		{"Users", "users"},
		{"[dbo].[Order Details]", "order details"},
		{"[sales].[Orders]", "sales.orders"},
		{"sales.Orders", "sales.orders"},
		{"  [CreateDate]  ", "createdate"},
		{"DBO.[Users]", "users"},
		{"dbo", "dbo"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := normalizeIdent(tc.in); got != tc.want {
			t.Errorf("normalizeIdent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdent_Idempotent(t *testing.T) {
	inputs := []string{"[dbo].[Users]", "Users", "sales.Orders", "[Order Details]", "already_normal"}
	for _, in := range inputs {
		once := normalizeIdent(in)
		if twice := normalizeIdent(once); twice != once {
			t.Errorf("normalizeIdent not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestPgIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users", "users"},
		{"user", `"user"`},
		{"order", `"order"`},
		{"createdate", "createdate"},
		{"order details", `"order details"`},
		{"col1", "col1"},
		{"1col", `"1col"`},
	}
	for _, tc := range tests {
		if got := pgIdent(tc.in); got != tc.want {
			t.Errorf("pgIdent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPgQualified(t *testing.T) {
	if got := pgQualified("sales.orders"); got != "sales.orders" {
		t.Errorf("pgQualified(sales.orders) = %q", got)
	}
	if got := pgQualified("sales.order"); got != `sales."order"` {
		t.Errorf("pgQualified(sales.order) = %q", got)
	}
	if got := pgQualified("users"); got != "users" {
		t.Errorf("pgQualified(users) = %q", got)
	}
}
