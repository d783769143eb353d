package core

// runtime_helpers.go – the shared `runtime_helpers` Move module referenced
// by the expression transformer for operations Move has no operator for:
// exponentiation, addmod, mulmod, and bitwise-not (spec §4.2, "shared Move
// runtime helper module"). The driver adds it to a Translate result as a
// second module only when that contract's module calls one of these helpers
// (see hasArithmeticHelperCalls in driver.go).

// RuntimeHelpersModule returns the fixed helper module that contract modules
// calling pow/addmod/mulmod/bnot depend on. Its body is written directly as MoveFunction ASTs so
// it renders through the same emitter as every other module, guaranteeing
// identical formatting.
func RuntimeHelpersModule(opts Options) *MoveModule {
	return &MoveModule{
		Address: opts.ModuleAddress,
		Name:    "runtime_helpers",
		Functions: []MoveFunction{
			powFunction(),
			addmodFunction(),
			mulmodFunction(),
			bnotFunction(),
		},
	}
}

// powFunction computes base^exp by repeated squaring, aborting on overflow
// the same way Move's native `*` already does — no explicit bound check is
// needed since an overflowing intermediate multiplication aborts on its own.
func powFunction() MoveFunction {
	return MoveFunction{
		Name:       "pow",
		Visibility: MoveVisPublicFriend,
		Params: []MoveParam{
			{Name: "base", Type: &MoveType{Name: "u256"}},
			{Name: "exp", Type: &MoveType{Name: "u256"}},
		},
		Returns: []*MoveType{{Name: "u256"}},
		Body: []MoveStmt{
			&MoveLetStmt{Name: "result", Type: &MoveType{Name: "u256"}, Mut: true, Value: &MoveNumberLit{Value: "1"}},
			&MoveLetStmt{Name: "b", Type: &MoveType{Name: "u256"}, Mut: true, Value: &MoveIdent{Name: "base"}},
			&MoveLetStmt{Name: "e", Type: &MoveType{Name: "u256"}, Mut: true, Value: &MoveIdent{Name: "exp"}},
			&MoveWhileStmt{
				Cond: &MoveBinaryExpr{Op: ">", Left: &MoveIdent{Name: "e"}, Right: &MoveNumberLit{Value: "0"}},
				Body: []MoveStmt{
					&MoveIfStmt{
						Cond: &MoveBinaryExpr{Op: "==", Left: &MoveBinaryExpr{Op: "%", Left: &MoveIdent{Name: "e"}, Right: &MoveNumberLit{Value: "2"}}, Right: &MoveNumberLit{Value: "1"}},
						Then: []MoveStmt{&MoveAssignStmt{Target: &MoveIdent{Name: "result"}, Value: &MoveBinaryExpr{Op: "*", Left: &MoveIdent{Name: "result"}, Right: &MoveIdent{Name: "b"}}}},
					},
					&MoveAssignStmt{Target: &MoveIdent{Name: "e"}, Value: &MoveBinaryExpr{Op: "/", Left: &MoveIdent{Name: "e"}, Right: &MoveNumberLit{Value: "2"}}},
					&MoveIfStmt{
						Cond: &MoveBinaryExpr{Op: ">", Left: &MoveIdent{Name: "e"}, Right: &MoveNumberLit{Value: "0"}},
						Then: []MoveStmt{&MoveAssignStmt{Target: &MoveIdent{Name: "b"}, Value: &MoveBinaryExpr{Op: "*", Left: &MoveIdent{Name: "b"}, Right: &MoveIdent{Name: "b"}}}},
					},
				},
			},
			&MoveReturnStmt{Values: []MoveExpr{&MoveIdent{Name: "result"}}},
		},
	}
}

func addmodFunction() MoveFunction {
	return MoveFunction{
		Name:       "addmod",
		Visibility: MoveVisPublicFriend,
		Params: []MoveParam{
			{Name: "a", Type: &MoveType{Name: "u256"}},
			{Name: "b", Type: &MoveType{Name: "u256"}},
			{Name: "m", Type: &MoveType{Name: "u256"}},
		},
		Returns: []*MoveType{{Name: "u256"}},
		Body: []MoveStmt{
			&MoveReturnStmt{Values: []MoveExpr{
				&MoveBinaryExpr{Op: "%", Left: &MoveBinaryExpr{Op: "+", Left: &MoveIdent{Name: "a"}, Right: &MoveIdent{Name: "b"}}, Right: &MoveIdent{Name: "m"}},
			}},
		},
	}
}

func mulmodFunction() MoveFunction {
	return MoveFunction{
		Name:       "mulmod",
		Visibility: MoveVisPublicFriend,
		Params: []MoveParam{
			{Name: "a", Type: &MoveType{Name: "u256"}},
			{Name: "b", Type: &MoveType{Name: "u256"}},
			{Name: "m", Type: &MoveType{Name: "u256"}},
		},
		Returns: []*MoveType{{Name: "u256"}},
		Body: []MoveStmt{
			&MoveReturnStmt{Values: []MoveExpr{
				&MoveBinaryExpr{Op: "%", Left: &MoveBinaryExpr{Op: "*", Left: &MoveIdent{Name: "a"}, Right: &MoveIdent{Name: "b"}}, Right: &MoveIdent{Name: "m"}},
			}},
		},
	}
}

// bnotFunction emulates Solidity's `~x` (bitwise NOT), which Move has no
// direct unary operator for: XOR against the all-ones mask of the same
// width.
func bnotFunction() MoveFunction {
	return MoveFunction{
		Name:       "bnot",
		Visibility: MoveVisPublicFriend,
		Params:     []MoveParam{{Name: "x", Type: &MoveType{Name: "u256"}}},
		Returns:    []*MoveType{{Name: "u256"}},
		Body: []MoveStmt{
			&MoveReturnStmt{Values: []MoveExpr{
				&MoveBinaryExpr{Op: "^", Left: &MoveIdent{Name: "x"}, Right: &MoveNumberLit{Value: "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"}},
			}},
		},
	}
}
