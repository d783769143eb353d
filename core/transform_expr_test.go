package core

import "testing"

func newExprCtx(opts Options) *TranslationContext {
	return NewTranslationContext(opts, "Test")
}

func tallyContract() *Contract {
	return &Contract{
		Name: "Vault",
		StateVars: []StateVariable{
			{Name: "owner", Type: addrType(), Mutability: MutMutable},
			{Name: "tally", Type: u256(), Mutability: MutMutable},
			{Name: "MAX", Type: u256(), Mutability: MutConstant},
		},
		Functions: []Function{
			{Name: "bump", Body: []Stmt{
				&AssignStmt{Target: &Ident{Name: "tally"}, Op: AssignAdd, Value: &NumberLit{Value: "1"}},
			}},
		},
	}
}

func TestTransformNumberLitSubDenomination(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&NumberLit{Value: "2", SubDenomination: "ether"})
	lit, ok := got.(*MoveNumberLit)
	if !ok {
		t.Fatalf("got %T, want *MoveNumberLit", got)
	}
	if lit.Value != "2000000000000000000" {
		t.Fatalf("got %s, want 2 * 10^18", lit.Value)
	}
}

func TestTransformNumberLitOverflowFlagged(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{}, &ResourcePlan{})
	huge := "1157920892373161954235709850086879078532699846656405640394575840079131296399999999"
	tr.TransformExpr(&NumberLit{Value: huge})
	found := false
	for _, d := range ctx.Diags.Items() {
		if d.Code == DiagNarrowing {
			found = true
		}
	}
	if !found {
		t.Fatal("expected DiagNarrowing for a literal that does not fit u256")
	}
}

func TestTransformIdentLocalVsStateVar(t *testing.T) {
	c := tallyContract()
	ctx := newExprCtx(DefaultOptions())
	plan := BuildResourcePlan(c, ctx.Options)
	tr := newExprTransformer(ctx, c, plan)
	tr.locals["n"] = true

	local := tr.TransformExpr(&Ident{Name: "n"})
	if id, ok := local.(*MoveIdent); !ok || id.Name != "n" {
		t.Fatalf("expected bare local ident, got %#v", local)
	}

	// tally is classified aggregatable (only ever bumped by +=), so a read
	// goes through aggregator_v2::read rather than a bare field access.
	state := tr.TransformExpr(&Ident{Name: "tally"})
	readCall, ok := state.(*MoveCallExpr)
	if !ok || readCall.Module != "aggregator_v2" || readCall.Name != "read" {
		t.Fatalf("expected an aggregator_v2::read call, got %#v", state)
	}
	ref, ok := readCall.Args[0].(*MoveRefExpr)
	if !ok {
		t.Fatalf("expected a reference argument, got %#v", readCall.Args[0])
	}
	fa, ok := ref.X.(*MoveFieldAccess)
	if !ok || fa.Name != "tally" {
		t.Fatalf("expected a field access into a borrowed resource, got %#v", ref.X)
	}
	call, ok := fa.X.(*MoveCallExpr)
	if !ok || call.Name != "borrow_global" || !call.IsMacro {
		t.Fatalf("expected borrow_global macro call, got %#v", fa.X)
	}
}

func TestTransformIdentConstantUppercased(t *testing.T) {
	c := tallyContract()
	ctx := newExprCtx(DefaultOptions())
	plan := BuildResourcePlan(c, ctx.Options)
	tr := newExprTransformer(ctx, c, plan)

	got := tr.TransformExpr(&Ident{Name: "MAX"})
	id, ok := got.(*MoveIdent)
	if !ok || id.Name != "MAX" {
		t.Fatalf("got %#v, want bare uppercased constant ident MAX", got)
	}
}

func TestTransformIdentEventTrackableDegradesToZero(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{StateVars: []StateVariable{{Name: "x", Type: u256(), Mutability: MutMutable}}}, &ResourcePlan{})
	got := tr.TransformExpr(&Ident{Name: "x"})
	lit, ok := got.(*MoveNumberLit)
	if !ok || lit.Value != "0" {
		t.Fatalf("expected a zero literal when the variable has no resource group, got %#v", got)
	}
	if len(ctx.Diags.Items()) != 1 || ctx.Diags.Items()[0].Code != DiagEventTrackableReadSite {
		t.Fatalf("expected a single DiagEventTrackableReadSite warning, got %v", ctx.Diags.Items())
	}
}

func TestTransformBinaryExp(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&BinaryExpr{Op: OpExp, Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Module != "runtime_helpers" || call.Name != "pow" {
		t.Fatalf("got %#v, want runtime_helpers::pow call", got)
	}
}

func TestTransformBinaryOrdinaryOps(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&BinaryExpr{Op: OpAdd, Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}})
	bin, ok := got.(*MoveBinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("got %#v, want a '+' binary expr", got)
	}
}

func TestTransformUnaryNegOnUnsignedIsZeroMinusX(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&UnaryExpr{Op: OpNeg, X: &Ident{Name: "a"}})
	bin, ok := got.(*MoveBinaryExpr)
	if !ok || bin.Op != "-" {
		t.Fatalf("got %#v, want a '-' binary expr", got)
	}
	lhs, ok := bin.Left.(*MoveNumberLit)
	if !ok || lhs.Value != "0" {
		t.Fatalf("expected left operand to be literal 0, got %#v", bin.Left)
	}
}

func TestTransformUnaryBitNotRoutesThroughRuntimeHelper(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&UnaryExpr{Op: OpBitNot, X: &Ident{Name: "a"}})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Module != "runtime_helpers" || call.Name != "bnot" {
		t.Fatalf("got %#v, want runtime_helpers::bnot call", got)
	}
}

func TestTransformCallKeccakAndSha256(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})

	got := tr.TransformExpr(&CallExpr{Callee: &Ident{Name: "keccak256"}, Args: []CallArg{{Value: &Ident{Name: "data"}}}})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Address != "0x1" || call.Module != "hash" || call.Name != "sha3_256" {
		t.Fatalf("got %#v, want 0x1::hash::sha3_256", got)
	}

	got = tr.TransformExpr(&CallExpr{Callee: &Ident{Name: "sha256"}, Args: []CallArg{{Value: &Ident{Name: "data"}}}})
	call, ok = got.(*MoveCallExpr)
	if !ok || call.Name != "sha2_256" {
		t.Fatalf("got %#v, want 0x1::hash::sha2_256", got)
	}
}

func TestTransformCallKeccak256FoldsLiteralArgument(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})

	got := tr.TransformExpr(&CallExpr{Callee: &Ident{Name: "keccak256"}, Args: []CallArg{{Value: &StringLit{Value: "MINTER_ROLE"}}}})
	lit, ok := got.(*MoveByteStringLit)
	if !ok || !lit.Hex {
		t.Fatalf("got %#v, want a folded hex byte-string literal", got)
	}
	if len(lit.Value) != 32 {
		t.Fatalf("expected a 32-byte keccak256 digest, got %d bytes", len(lit.Value))
	}
}

func TestTransformCallAddmodMulmod(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})

	got := tr.TransformExpr(&CallExpr{Callee: &Ident{Name: "addmod"}, Args: []CallArg{{Value: &Ident{Name: "a"}}, {Value: &Ident{Name: "b"}}, {Value: &Ident{Name: "m"}}}})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Module != "runtime_helpers" || call.Name != "addmod" || len(call.Args) != 3 {
		t.Fatalf("got %#v, want runtime_helpers::addmod(a,b,m)", got)
	}

	got = tr.TransformExpr(&CallExpr{Callee: &Ident{Name: "mulmod"}, Args: []CallArg{{Value: &Ident{Name: "a"}}, {Value: &Ident{Name: "b"}}, {Value: &Ident{Name: "m"}}}})
	call, ok = got.(*MoveCallExpr)
	if !ok || call.Name != "mulmod" {
		t.Fatalf("got %#v, want runtime_helpers::mulmod", got)
	}
}

func TestTransformCallBalanceOf(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&CallExpr{
		Callee: &MemberExpr{X: &Ident{Name: "token"}, Name: "balanceOf"},
		Args:   []CallArg{{Value: &Ident{Name: "who"}}},
	})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Address != "0x1" || call.Module != "coin" || call.Name != "balance" {
		t.Fatalf("got %#v, want 0x1::coin::balance", got)
	}
}

func TestTransformCrossContractCallFlagsAssumedModuleAddress(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&CallExpr{
		Callee: &MemberExpr{X: &Ident{Name: "other"}, Name: "doThing"},
		Args:   []CallArg{{Value: &Ident{Name: "x"}}},
	})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Module != "external" || call.Name != "doThing" {
		t.Fatalf("got %#v", got)
	}
	if len(ctx.Diags.Items()) != 1 || ctx.Diags.Items()[0].Code != DiagAssumedModuleAddress {
		t.Fatalf("expected a single DiagAssumedModuleAddress diagnostic, got %v", ctx.Diags.Items())
	}
}

func TestTransformContextFieldMsgSender(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{}, &ResourcePlan{})
	got := tr.transformContextField(&ContextAccessExpr{Family: CtxMsg}, "sender")
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Address != "0x1" || call.Module != "signer" || call.Name != "address_of" {
		t.Fatalf("got %#v, want 0x1::signer::address_of(account)", got)
	}
	arg, ok := call.Args[0].(*MoveIdent)
	if !ok || arg.Name != "account" {
		t.Fatalf("expected signer arg to default to %q, got %#v", "account", call.Args[0])
	}
}

func TestTransformContextFieldBlockTimestampAndNumber(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})

	ts := tr.transformContextField(&ContextAccessExpr{Family: CtxBlock}, "timestamp")
	call, ok := ts.(*MoveCallExpr)
	if !ok || call.Module != "timestamp" || call.Name != "now_seconds" {
		t.Fatalf("got %#v, want 0x1::timestamp::now_seconds", ts)
	}

	num := tr.transformContextField(&ContextAccessExpr{Family: CtxBlock}, "number")
	call, ok = num.(*MoveCallExpr)
	if !ok || call.Module != "block" || call.Name != "get_current_block_height" {
		t.Fatalf("got %#v, want 0x1::block::get_current_block_height", num)
	}
}

func TestTransformContextFieldTxOriginFallsBackToMsgSender(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{}, &ResourcePlan{})
	got := tr.transformContextField(&ContextAccessExpr{Family: CtxTx}, "origin")
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Module != "signer" || call.Name != "address_of" {
		t.Fatalf("got %#v, want the msg.sender lowering reused for tx.origin", got)
	}
}

func TestTransformIndexOnMapping(t *testing.T) {
	c := &Contract{
		Name: "Token",
		StateVars: []StateVariable{
			{Name: "balances", Type: &Type{Kind: TypeMapping, Key: addrType(), Value: u256()}, KeyType: addrType(), ValueType: u256(), Mutability: MutMutable},
		},
		Functions: []Function{
			{Name: "transfer", Params: []Param{{Name: "to", Type: addrType()}, {Name: "amount", Type: u256()}}, Body: []Stmt{
				&AssignStmt{Target: &IndexExpr{X: &Ident{Name: "balances"}, Index: &ContextAccessExpr{Family: CtxMsg, Field: "sender"}}, Op: AssignSub, Value: &Ident{Name: "amount"}},
				&AssignStmt{Target: &IndexExpr{X: &Ident{Name: "balances"}, Index: &Ident{Name: "to"}}, Op: AssignAdd, Value: &Ident{Name: "amount"}},
			}},
		},
	}
	ctx := newExprCtx(DefaultOptions())
	opts := ctx.Options
	opts.OptimizationLevel = OptHigh
	ctx.Options = opts
	plan := BuildResourcePlan(c, opts)
	tr := newExprTransformer(ctx, c, plan)
	group := plan.GroupOf("balances")
	if !plan.IsPerUser(group) {
		t.Fatalf("expected %q to be a per-user group at high optimization", group)
	}

	// At the "high" optimization level `balances` is per-user: reads and
	// writes address the resource directly at the key's account, never
	// through a table (spec §4.4 "high", per-user resource addressing).
	read := tr.TransformExpr(&IndexExpr{X: &Ident{Name: "balances"}, Index: &Ident{Name: "to"}})
	field, ok := read.(*MoveFieldAccess)
	if !ok || field.Name != "balances" {
		t.Fatalf("got %#v, want a direct field access on the per-user resource", read)
	}
	borrow, ok := field.X.(*MoveCallExpr)
	if !ok || borrow.Name != "borrow_global" {
		t.Fatalf("got %#v, want borrow_global for a read", field.X)
	}

	tr.groupMut[group] = true
	write := tr.transformIndex(&IndexExpr{X: &Ident{Name: "balances"}, Index: &Ident{Name: "to"}}, true)
	wfield, ok := write.(*MoveFieldAccess)
	if !ok || wfield.Name != "balances" {
		t.Fatalf("got %#v, want a direct field access on the per-user resource", write)
	}
	wborrow, ok := wfield.X.(*MoveCallExpr)
	if !ok || wborrow.Name != "borrow_global_mut" {
		t.Fatalf("got %#v, want borrow_global_mut for a write", wfield.X)
	}
}

func TestTransformIndexSmartTableOption(t *testing.T) {
	c := &Contract{
		Name: "Token",
		StateVars: []StateVariable{
			{Name: "balances", Type: &Type{Kind: TypeMapping, Key: addrType(), Value: u256()}, KeyType: addrType(), ValueType: u256(), Mutability: MutMutable},
		},
		Functions: []Function{
			{Name: "transfer", Params: []Param{{Name: "to", Type: addrType()}}, Body: []Stmt{
				&AssignStmt{Target: &IndexExpr{X: &Ident{Name: "balances"}, Index: &ContextAccessExpr{Family: CtxMsg, Field: "sender"}}, Op: AssignSub, Value: &NumberLit{Value: "1"}},
				&AssignStmt{Target: &IndexExpr{X: &Ident{Name: "balances"}, Index: &Ident{Name: "to"}}, Op: AssignAdd, Value: &NumberLit{Value: "1"}},
			}},
		},
	}
	ctx := newExprCtx(DefaultOptions())
	opts := ctx.Options
	// Medium optimization keeps a user-keyed mapping table-backed (only
	// "high" promotes it to a per-user resource), which is what exercises
	// the smart_table routing this test checks.
	opts.OptimizationLevel = OptMedium
	opts.MappingType = MappingSmartTable
	ctx.Options = opts
	plan := BuildResourcePlan(c, opts)
	tr := newExprTransformer(ctx, c, plan)
	group := plan.GroupOf("balances")
	if plan.IsPerUser(group) {
		t.Fatalf("expected %q to stay table-backed at medium optimization", group)
	}

	read := tr.TransformExpr(&IndexExpr{X: &Ident{Name: "balances"}, Index: &Ident{Name: "to"}})
	call, ok := read.(*MoveCallExpr)
	if !ok || call.Module != "smart_table" {
		t.Fatalf("got %#v, want smart_table::borrow", read)
	}
}

func TestTransformIndexArrayUsesVectorBorrow(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&IndexExpr{X: &Ident{Name: "items"}, Index: &NumberLit{Value: "0"}})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Module != "vector" || call.Name != "borrow" || !call.IsMacro {
		t.Fatalf("got %#v, want vector::borrow macro call", got)
	}
}

func TestTransformTypeConvSkipsNonNumericTargets(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&TypeConvExpr{Target: &Type{Kind: TypeString}, X: &Ident{Name: "raw"}})
	id, ok := got.(*MoveIdent)
	if !ok || id.Name != "raw" {
		t.Fatalf("got %#v, want the original expr passed through unchanged for a string target", got)
	}
}

func TestTransformTypeConvNumericCast(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&TypeConvExpr{Target: &Type{Kind: TypeInt, Width: 256, SrcName: "uint256"}, X: &Ident{Name: "raw"}})
	cast, ok := got.(*MoveCastExpr)
	if !ok || cast.Target.Name != "u256" {
		t.Fatalf("got %#v, want a cast to u256", got)
	}
}

func TestTransformNewArrayEmitsEmptyVector(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&NewExpr{Target: &Type{Kind: TypeArray, Value: u256()}})
	call, ok := got.(*MoveCallExpr)
	if !ok || call.Module != "vector" || call.Name != "empty" {
		t.Fatalf("got %#v, want vector::empty", got)
	}
}

func TestTransformAddressLitZero(t *testing.T) {
	tr := newExprTransformer(newExprCtx(DefaultOptions()), &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&AddressLit{Value: "0x0000000000000000000000000000000000000000"})
	lit, ok := got.(*MoveAddressLit)
	if !ok || lit.Value != "@0x0" {
		t.Fatalf("got %#v, want @0x0", got)
	}
}

func TestTransformTernaryFallsBackToThenBranch(t *testing.T) {
	ctx := newExprCtx(DefaultOptions())
	tr := newExprTransformer(ctx, &Contract{}, &ResourcePlan{})
	got := tr.TransformExpr(&CondExpr{Cond: &BoolLit{Value: true}, Then: &NumberLit{Value: "1"}, Else: &NumberLit{Value: "2"}})
	lit, ok := got.(*MoveNumberLit)
	if !ok || lit.Value != "1" {
		t.Fatalf("got %#v, want the then-branch literal 1", got)
	}
	if len(ctx.Diags.Items()) != 1 {
		t.Fatalf("expected a single diagnostic flagging the ternary fallback, got %v", ctx.Diags.Items())
	}
}
