package core

import (
	"strings"
	"testing"
)

func TestEmitModuleBasicShape(t *testing.T) {
	m := &MoveModule{
		Address: "0x1",
		Name:    "vault",
		Imports: []ImportDecl{{Address: "0x1", Module: "signer"}},
		Constants: []MoveConstant{
			{Name: "E_UNAUTHORIZED", Type: &MoveType{Name: "u64"}, Value: "2"},
		},
		Resources: []ResourceStruct{
			{Name: "VaultState", Fields: []MoveField{{Name: "owner", Type: &MoveType{Name: "address"}}}},
		},
		Functions: []MoveFunction{
			{
				Name:       "get_owner",
				Visibility: MoveVisPublic,
				IsView:     true,
				Acquires:   []string{"VaultState"},
				Returns:    []*MoveType{{Name: "address"}},
				Body: []MoveStmt{
					&MoveReturnStmt{Values: []MoveExpr{&MoveFieldAccess{
						X:    &MoveCallExpr{Module: "", Name: "borrow_global", IsMacro: true, TypeArgs: []*MoveType{{Name: "VaultState"}}, Args: []MoveExpr{&MoveCallExpr{Name: "module_addr"}}},
						Name: "owner",
					}}},
				},
			},
		},
	}
	out := EmitModule(m)

	for _, want := range []string{
		"module 0x1::vault {",
		"use 0x1::signer;",
		"const E_UNAUTHORIZED: u64 = 2;",
		"struct VaultState has key {",
		"owner: address",
		"#[view]",
		"public fun get_owner(): address acquires VaultState {",
		"return borrow_global",
		"}\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("emitted module missing %q:\n%s", want, out)
		}
	}
}

func TestEmitModuleDedupesAndSortsImports(t *testing.T) {
	m := &MoveModule{
		Address: "0x1",
		Name:    "m",
		Imports: []ImportDecl{
			{Address: "0x1", Module: "table"},
			{Address: "0x1", Module: "signer"},
			{Address: "0x1", Module: "table"},
		},
	}
	out := EmitModule(m)
	signerIdx := strings.Index(out, "use 0x1::signer;")
	tableIdx := strings.Index(out, "use 0x1::table;")
	if signerIdx < 0 || tableIdx < 0 {
		t.Fatalf("expected both imports present:\n%s", out)
	}
	if signerIdx > tableIdx {
		t.Fatalf("expected imports sorted alphabetically (signer before table):\n%s", out)
	}
	if strings.Count(out, "use 0x1::table;") != 1 {
		t.Fatalf("expected table import deduped, got:\n%s", out)
	}
}

func TestEmitFunctionVisibilityAndEntry(t *testing.T) {
	fn := MoveFunction{
		Name:       "initialize",
		Visibility: MoveVisPublic,
		IsEntry:    true,
		Params:     []MoveParam{{Name: "account", IsSignerRef: true}},
	}
	var b strings.Builder
	emitFunction(&b, fn, 1)
	out := b.String()
	if !strings.Contains(out, "public entry fun initialize(account: &signer)") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestEmitExprCallForms(t *testing.T) {
	cases := []struct {
		expr MoveExpr
		want string
	}{
		{&MoveCallExpr{Name: "assert_is_owner"}, "assert_is_owner()"},
		{&MoveCallExpr{Module: "table", Name: "borrow", Args: []MoveExpr{&MoveIdent{Name: "t"}}}, "table::borrow(t)"},
		{&MoveCallExpr{Address: "0x1", Module: "coin", Name: "balance", TypeArgs: []*MoveType{{Name: "AptosCoin"}}, Args: []MoveExpr{&MoveIdent{Name: "a"}}}, "0x1::coin::balance<AptosCoin>(a)"},
		{&MoveCallExpr{Name: "borrow_global_mut", IsMacro: true, TypeArgs: []*MoveType{{Name: "VaultState"}}, Args: []MoveExpr{&MoveIdent{Name: "addr"}}}, "borrow_global_mut<VaultState>(addr)"},
	}
	for _, c := range cases {
		if got := emitExpr(c.expr); got != c.want {
			t.Errorf("emitExpr(%+v) = %q, want %q", c.expr, got, c.want)
		}
	}
}

func TestEmitExprBinaryAndRef(t *testing.T) {
	bin := &MoveBinaryExpr{Op: "+", Left: &MoveIdent{Name: "a"}, Right: &MoveIdent{Name: "b"}}
	if got, want := emitExpr(bin), "(a + b)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	ref := &MoveRefExpr{Mut: true, X: &MoveIdent{Name: "x"}}
	if got, want := emitExpr(ref), "&mut x"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
