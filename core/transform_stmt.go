package core

// transform_stmt.go – IR statement -> Move statement lowering (spec §4.2).
// Statement lowering owns assignment-target routing (plain local vs global
// resource field vs table entry) since that decision depends on the
// resource plan built in core/resourceplan.go.

import "fmt"

type stmtTransformer struct {
	expr *exprTransformer
	ctx  *TranslationContext
}

func newStmtTransformer(ctx *TranslationContext, c *Contract, plan *ResourcePlan) *stmtTransformer {
	return &stmtTransformer{expr: newExprTransformer(ctx, c, plan), ctx: ctx}
}

// TransformBlock lowers a statement list in order, flattening UncheckedStmt
// delimiters (spec §4.2: "unchecked blocks are a delimiter only").
func (t *stmtTransformer) TransformBlock(stmts []Stmt) []MoveStmt {
	out := make([]MoveStmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, t.TransformStmt(s)...)
	}
	return out
}

// TransformStmt lowers one statement, returning zero or more Move
// statements (a few IR statements expand to more than one Move statement).
func (t *stmtTransformer) TransformStmt(s Stmt) []MoveStmt {
	switch v := s.(type) {
	case *VarDeclStmt:
		return t.transformVarDecl(v)
	case *AssignStmt:
		return t.transformAssign(v)
	case *IfStmt:
		return []MoveStmt{&MoveIfStmt{
			Cond: t.expr.TransformExpr(v.Cond),
			Then: t.TransformBlock(v.Then),
			Else: t.TransformBlock(v.Else),
		}}
	case *ForStmt:
		return t.transformFor(v)
	case *WhileStmt:
		return []MoveStmt{&MoveWhileStmt{Cond: t.expr.TransformExpr(v.Cond), Body: t.TransformBlock(v.Body)}}
	case *DoWhileStmt:
		return t.transformDoWhile(v)
	case *BlockStmt:
		return t.TransformBlock(v.Body)
	case *ReturnStmt:
		vals := make([]MoveExpr, len(v.Values))
		for i, val := range v.Values {
			vals[i] = t.expr.TransformExpr(val)
		}
		return []MoveStmt{&MoveReturnStmt{Values: vals}}
	case *EmitStmt:
		return t.transformEmit(v)
	case *RequireStmt:
		return t.transformRequire(v)
	case *RevertStmt:
		return t.transformRevert(v)
	case *BreakStmt:
		return []MoveStmt{&MoveBreakStmt{}}
	case *ContinueStmt:
		return []MoveStmt{&MoveContinueStmt{}}
	case *ExprStmt:
		return []MoveStmt{&MoveExprStmt{X: t.expr.TransformExpr(v.X)}}
	case *UncheckedStmt:
		return t.TransformBlock(v.Body)
	case *TryStmt:
		return t.transformTry(v)
	case *PlaceholderStmt:
		// Never reached directly: the function transformer splices the
		// wrapped body in place of the placeholder before this stage runs.
		t.ctx.Diags.Fatal("modifier placeholder reached the statement transformer unspliced")
		return nil
	default:
		t.ctx.Diags.Fatal("unknown IR statement variant %T", s)
		return nil
	}
}

func (t *stmtTransformer) transformVarDecl(v *VarDeclStmt) []MoveStmt {
	var val MoveExpr
	if v.Init != nil {
		val = t.expr.TransformExpr(v.Init)
	} else {
		val = zeroValueFor(v.Type, t.ctx.Options)
	}
	t.expr.locals[v.Name] = true
	mapped := MapType(v.Type, t.ctx.Options)
	for _, d := range mapped.Diags {
		t.ctx.Diags.items = append(t.ctx.Diags.items, d)
	}
	return []MoveStmt{&MoveLetStmt{Name: v.Name, Type: mapped.Type, Mut: true, Value: val}}
}

func zeroValueFor(ty *Type, opts Options) MoveExpr {
	switch ty.Kind {
	case TypeInt:
		return &MoveNumberLit{Value: "0"}
	case TypeBool:
		return &MoveBoolLit{Value: false}
	case TypeAddress:
		return &MoveAddressLit{Value: "@0x0"}
	case TypeBytes, TypeString:
		if ty.Kind == TypeString && opts.StringType == StringAsUTF8 {
			return &MoveCallExpr{Address: "0x1", Module: "string", Name: "utf8", Args: []MoveExpr{&MoveByteStringLit{Value: nil}}}
		}
		return &MoveCallExpr{Module: "vector", Name: "empty", IsMacro: true}
	default:
		return &MoveCallExpr{Module: "vector", Name: "empty", IsMacro: true}
	}
}

// transformAssign routes the target through one of three shapes: a plain
// local, a module-scoped resource field (AssignSet becomes a field store;
// compound ops lower to a read-modify-write against a mutable borrow), or a
// mapping entry (threaded through table::borrow_mut, spec §4.2 "mapping
// assignment targets").
func (t *stmtTransformer) transformAssign(v *AssignStmt) []MoveStmt {
	switch target := v.Target.(type) {
	case *Ident:
		return t.transformIdentAssign(target, v.Op, v.Value)
	case *IndexExpr:
		return t.transformIndexAssign(target, v.Op, v.Value)
	case *MemberExpr:
		// Struct-field assignment through a local struct variable; no
		// global borrow involved.
		lhs := t.expr.TransformExpr(target)
		return []MoveStmt{&MoveAssignStmt{Target: lhs, Value: t.compoundValue(lhs, v.Op, v.Value)}}
	default:
		t.ctx.Diags.ErrorCapable(DiagUnsupportedConstruct, "unsupported assignment target")
		return nil
	}
}

func (t *stmtTransformer) transformIdentAssign(target *Ident, op AssignOp, value Expr) []MoveStmt {
	if !t.expr.isStateVar(target.Name) {
		lhs := &MoveIdent{Name: target.Name}
		return []MoveStmt{&MoveAssignStmt{Target: lhs, Value: t.compoundValue(lhs, op, value)}}
	}
	sv := t.expr.stateVar(target.Name)
	if sv != nil && sv.Mutability == MutConstant {
		t.ctx.Diags.ErrorCapable(DiagUnsupportedConstruct, "assignment to constant %q", target.Name)
		return nil
	}
	group := t.expr.plan.GroupOf(target.Name)
	if group == "" {
		// event_trackable: the write becomes an emit instead of a store
		// (spec §4.4, "medium" optimization drops the field from storage).
		return []MoveStmt{&MoveExprStmt{X: &MoveCallExpr{Module: "event", Name: "emit", Args: []MoveExpr{
			&MoveStructLit{Name: target.Name + "Changed", Fields: []MoveFieldInit{{Name: "new_value", Value: t.expr.TransformExpr(value)}}},
		}}}}
	}
	// An assignment is always a write, regardless of whether the function's
	// borrow prelude already ran (it marks every written group mutable up
	// front) — set it here too so a borrowExprFor fallback (no hoisted local
	// yet, e.g. a direct unit test) still asks for borrow_global_mut.
	t.expr.groupMut[group] = true
	fieldRef := &MoveFieldAccess{X: t.expr.borrowExprFor(group), Name: target.Name}
	if t.expr.plan.IsAggregatable(group) {
		return []MoveStmt{t.aggregatorUpdate(fieldRef, op, value)}
	}
	return []MoveStmt{&MoveAssignStmt{Target: fieldRef, Value: t.compoundValue(fieldRef, op, value)}}
}

// aggregatorUpdate lowers a +=/-= write on an Aggregator-backed counter to
// aggregator_v2::add/sub, which classifyVariable guarantees is the only
// kind of write onlyCompoundArithmetic ever classified as ClassAggregatable
// in the first place (a plain `=` assignment keeps the field a regular
// integer).
func (t *stmtTransformer) aggregatorUpdate(fieldRef *MoveFieldAccess, op AssignOp, value Expr) MoveStmt {
	fn := "add"
	if op == AssignSub {
		fn = "sub"
	}
	return &MoveExprStmt{X: &MoveCallExpr{
		Address: "0x1", Module: "aggregator_v2", Name: fn,
		Args: []MoveExpr{&MoveRefExpr{Mut: true, X: fieldRef}, t.expr.TransformExpr(value)},
	}}
}

func (t *stmtTransformer) transformIndexAssign(target *IndexExpr, op AssignOp, value Expr) []MoveStmt {
	baseName, _ := indexRootIdent(target)
	if baseName == "" || !t.expr.isStateVar(baseName) {
		// A local array/vector element assignment; no resource plan
		// involvement, but Move's vector has no direct index-assign, so it
		// lowers to vector::borrow_mut then a dereference-store.
		base := t.expr.TransformExpr(target.X)
		idx := t.expr.TransformExpr(target.Index)
		slot := &MoveCallExpr{Module: "vector", Name: "borrow_mut", Args: []MoveExpr{base, idx}, IsMacro: true}
		deref := &MoveUnaryExpr{Op: "*", X: slot}
		return []MoveStmt{&MoveAssignStmt{Target: deref, Value: t.compoundValue(deref, op, value)}}
	}
	group := t.expr.plan.GroupOf(baseName)
	if group == "" {
		t.ctx.Diags.Warn(DiagEventTrackableReadSite, "mapping %q has no backing storage at this optimization level; write dropped", baseName)
		return nil
	}
	t.expr.groupMut[group] = true
	entry := t.expr.transformIndexChain(target, group)
	if t.expr.plan.IsPerUser(group) {
		// transformIndexChain already resolved to a direct field access on
		// the per-user resource (no table indirection), so it's assigned the
		// same way a plain state-variable field is.
		return []MoveStmt{&MoveAssignStmt{Target: entry, Value: t.compoundValue(entry, op, value)}}
	}
	deref := &MoveUnaryExpr{Op: "*", X: entry}
	return []MoveStmt{&MoveAssignStmt{Target: deref, Value: t.compoundValue(deref, op, value)}}
}

// compoundValue renders the right-hand side for AssignSet directly, or
// synthesizes `lhs OP rhs` for a compound operator (spec §4.2,
// "compound-assignment handling").
func (t *stmtTransformer) compoundValue(lhs MoveExpr, op AssignOp, value Expr) MoveExpr {
	rhs := t.expr.TransformExpr(value)
	if op == AssignSet {
		return rhs
	}
	return &MoveBinaryExpr{Op: assignOpText(op), Left: lhs, Right: rhs}
}

func assignOpText(op AssignOp) string {
	switch op {
	case AssignAdd:
		return "+"
	case AssignSub:
		return "-"
	case AssignMul:
		return "*"
	case AssignDiv:
		return "/"
	case AssignMod:
		return "%"
	case AssignOr:
		return "|"
	case AssignAnd:
		return "&"
	case AssignXor:
		return "^"
	default:
		return "?"
	}
}

// transformFor lowers the common counted-loop shape (`for (uint i = 0; i <
// N; i++)`) into Move's native range-for, falling back to a `while`-shaped
// `loop` for anything else (spec §4.2, "for/while/do-while handling").
func (t *stmtTransformer) transformFor(v *ForStmt) []MoveStmt {
	if rng, ok := recognizeCountedLoop(v); ok {
		t.expr.locals[rng.varName] = true
		return []MoveStmt{&MoveRangeForStmt{
			Var:  rng.varName,
			Lo:   t.expr.TransformExpr(rng.lo),
			Hi:   t.expr.TransformExpr(rng.hi),
			Body: t.TransformBlock(v.Body),
		}}
	}

	var pre []MoveStmt
	if v.Init != nil {
		pre = t.TransformStmt(v.Init)
	}
	body := t.TransformBlock(v.Body)
	if v.Step != nil {
		body = append(body, t.TransformStmt(v.Step)...)
	}
	var loopBody []MoveStmt
	if v.Cond != nil {
		loopBody = append(loopBody, &MoveIfStmt{
			Cond: &MoveUnaryExpr{Op: "!", X: t.expr.TransformExpr(v.Cond)},
			Then: []MoveStmt{&MoveBreakStmt{}},
		})
	}
	loopBody = append(loopBody, body...)
	return append(pre, &MoveLoopStmt{Body: loopBody})
}

type countedLoopShape struct {
	varName string
	lo, hi  Expr
}

// recognizeCountedLoop matches `for (uint<N> i = lo; i < hi; i++)` /
// `i <= hi; i++` shapes into Move's native range-for.
func recognizeCountedLoop(v *ForStmt) (countedLoopShape, bool) {
	decl, ok := v.Init.(*VarDeclStmt)
	if !ok || decl.Init == nil {
		return countedLoopShape{}, false
	}
	cond, ok := v.Cond.(*BinaryExpr)
	if !ok {
		return countedLoopShape{}, false
	}
	condVar, ok := cond.Left.(*Ident)
	if !ok || condVar.Name != decl.Name {
		return countedLoopShape{}, false
	}
	if cond.Op != OpLt && cond.Op != OpLte {
		return countedLoopShape{}, false
	}
	if !isSimpleIncrement(v.Step, decl.Name) {
		return countedLoopShape{}, false
	}
	hi := cond.Right
	if cond.Op == OpLte {
		hi = &BinaryExpr{Op: OpAdd, Left: cond.Right, Right: &NumberLit{Value: "1"}}
	}
	return countedLoopShape{varName: decl.Name, lo: decl.Init, hi: hi}, true
}

func isSimpleIncrement(step Stmt, varName string) bool {
	switch s := step.(type) {
	case *ExprStmt:
		if u, ok := s.X.(*UnaryExpr); ok && (u.Op == OpPostInc || u.Op == OpPreInc) {
			if id, ok := u.X.(*Ident); ok {
				return id.Name == varName
			}
		}
	case *AssignStmt:
		if s.Op == AssignAdd {
			if id, ok := s.Target.(*Ident); ok && id.Name == varName {
				if n, ok := s.Value.(*NumberLit); ok && n.Value == "1" {
					return true
				}
			}
		}
	}
	return false
}

func (t *stmtTransformer) transformDoWhile(v *DoWhileStmt) []MoveStmt {
	body := t.TransformBlock(v.Body)
	cond := t.expr.TransformExpr(v.Cond)
	loopBody := append(append([]MoveStmt{}, body...), &MoveIfStmt{
		Cond: &MoveUnaryExpr{Op: "!", X: cond},
		Then: []MoveStmt{&MoveBreakStmt{}},
	})
	return []MoveStmt{&MoveLoopStmt{Body: loopBody}}
}

func (t *stmtTransformer) transformEmit(v *EmitStmt) []MoveStmt {
	if t.ctx.Options.EventPattern == EventPatternNone {
		return nil
	}
	fields := make([]MoveFieldInit, 0, len(v.Args))
	evt := findEvent(t.expr.contract, v.Event)
	for i, a := range v.Args {
		name := fmt.Sprintf("arg%d", i)
		if evt != nil && i < len(evt.Params) {
			name = evt.Params[i].Name
		}
		fields = append(fields, MoveFieldInit{Name: name, Value: t.expr.TransformExpr(a)})
	}
	lit := &MoveStructLit{Name: v.Event, Fields: fields}
	if t.ctx.Options.EventPattern == EventHandle {
		return []MoveStmt{&MoveExprStmt{X: &MoveCallExpr{Address: "0x1", Module: "event", Name: "emit_event", Args: []MoveExpr{
			&MoveRefExpr{Mut: true, X: &MoveFieldAccess{X: &MoveIdent{Name: "handles"}, Name: v.Event + "Handle"}}, lit}}}}
	}
	return []MoveStmt{&MoveExprStmt{X: &MoveCallExpr{Address: "0x1", Module: "event", Name: "emit", Args: []MoveExpr{lit}}}}
}

func findEvent(c *Contract, name string) *Event {
	for i := range c.Events {
		if c.Events[i].Name == name {
			return &c.Events[i]
		}
	}
	return nil
}

// transformRequire lowers `require(cond, "message")` to `assert!(cond,
// E_CONST)` (spec §4.2).
func (t *stmtTransformer) transformRequire(v *RequireStmt) []MoveStmt {
	constName, code := t.ctx.ResolveAbortCode(v.Message)
	cond := t.expr.TransformExpr(v.Cond)
	var codeExpr MoveExpr
	if t.ctx.Options.ErrorStyle == ErrorAbortVerbose {
		codeExpr = &MoveIdent{Name: constName}
	} else {
		codeExpr = &MoveNumberLit{Value: fmt.Sprintf("%d", code)}
	}
	return []MoveStmt{&MoveAssertStmt{Cond: cond, Code: codeExpr}}
}

// transformRevert lowers a bare `revert()`/`revert("msg")`/custom-error
// revert into `abort E_CONST` (spec §4.2).
func (t *stmtTransformer) transformRevert(v *RevertStmt) []MoveStmt {
	msg := v.Message
	if msg == "" && v.Error != "" {
		msg = v.Error
	}
	constName, code := t.ctx.ResolveAbortCode(msg)
	var codeExpr MoveExpr
	if t.ctx.Options.ErrorStyle == ErrorAbortVerbose {
		codeExpr = &MoveIdent{Name: constName}
	} else {
		codeExpr = &MoveNumberLit{Value: fmt.Sprintf("%d", code)}
	}
	return []MoveStmt{&MoveAbortStmt{Code: codeExpr}}
}

// transformTry has no Move equivalent (Move aborts unwind the whole
// transaction; there is no catchable error value), so the happy path is
// kept and the catch arms are dropped with a diagnostic (spec §4.2,
// "unsupported constructs get a sentinel, not silent omission").
func (t *stmtTransformer) transformTry(v *TryStmt) []MoveStmt {
	t.ctx.Diags.ErrorCapable(DiagUnsupportedConstruct, "try/catch has no Move equivalent; only the try body is translated, catch clauses are dropped")
	return t.TransformBlock(v.Body)
}

// mappingCopyWalker implements spec §9's open question on struct-valued
// mapping copies: Solidity's `StructType s = mapping[key];` declares a
// memory copy, so a later field write on `s` never reaches storage the way
// the same-looking write would against the mapping entry itself. Move's
// lowering already borrows the entry directly (no copy happens in the
// emitted code), so the mismatch is purely at the source level — this
// walker only flags it, it never changes what gets emitted.
type mappingCopyWalker struct {
	ctx              *TranslationContext
	structCopyLocals map[string]bool
}

// detectMappingCopyWriteback scans one function body (after modifier
// inlining, so spliced guard bodies are covered too) for locals declared as
// a direct copy of a struct-valued mapping entry, then flags any later
// field mutation on that local (DiagMappingCopyAmbiguous — the original
// Solidity write silently never reached storage) or any use of the local as
// a call argument (DiagMappingCopyEscapes — whether the callee mutates a
// copy or the original can't be known without inlining it).
func detectMappingCopyWriteback(ctx *TranslationContext, c *Contract, body []Stmt) {
	w := &mappingCopyWalker{ctx: ctx, structCopyLocals: map[string]bool{}}
	w.walkStmts(c, body)
}

func (w *mappingCopyWalker) walkStmts(c *Contract, stmts []Stmt) {
	for _, s := range stmts {
		w.walkStmt(c, s)
	}
}

func (w *mappingCopyWalker) walkStmt(c *Contract, s Stmt) {
	switch st := s.(type) {
	case *VarDeclStmt:
		if st.Init != nil {
			w.checkExpr(st.Init)
		}
		if isStructValuedMappingIndex(c, st.Init) {
			w.structCopyLocals[st.Name] = true
		}
	case *AssignStmt:
		if mem, ok := st.Target.(*MemberExpr); ok {
			if id, ok := mem.X.(*Ident); ok && w.structCopyLocals[id.Name] {
				w.ctx.Diags.Warn(DiagMappingCopyAmbiguous, "write to %s.%s mutates a memory copy taken from a mapping; the source contract's storage entry is never updated", id.Name, mem.Name)
			}
		}
		w.checkExpr(st.Value)
	case *IfStmt:
		w.checkExpr(st.Cond)
		w.walkStmts(c, st.Then)
		w.walkStmts(c, st.Else)
	case *ForStmt:
		if st.Step != nil {
			w.walkStmt(c, st.Step)
		}
		w.walkStmts(c, st.Body)
	case *WhileStmt:
		w.checkExpr(st.Cond)
		w.walkStmts(c, st.Body)
	case *DoWhileStmt:
		w.walkStmts(c, st.Body)
	case *BlockStmt:
		w.walkStmts(c, st.Body)
	case *UncheckedStmt:
		w.walkStmts(c, st.Body)
	case *ReturnStmt:
		for _, v := range st.Values {
			w.checkExpr(v)
		}
	case *ExprStmt:
		w.checkExpr(st.X)
	case *EmitStmt:
		for _, a := range st.Args {
			w.checkExpr(a)
		}
	}
}

func (w *mappingCopyWalker) checkExpr(e Expr) {
	call, ok := e.(*CallExpr)
	if !ok {
		return
	}
	for _, a := range call.Args {
		if id, ok := a.Value.(*Ident); ok && w.structCopyLocals[id.Name] {
			w.ctx.Diags.Warn(DiagMappingCopyEscapes, "%s, a memory copy taken from a mapping, is passed into a call; whether the callee observes the copy or the original storage entry can't be determined here", id.Name)
		}
	}
}

// isStructValuedMappingIndex reports whether init is a direct index into a
// state-variable mapping whose value type names a declared struct — the one
// shape the writeback ambiguity applies to.
func isStructValuedMappingIndex(c *Contract, init Expr) bool {
	idx, ok := init.(*IndexExpr)
	if !ok {
		return false
	}
	base, ok := idx.X.(*Ident)
	if !ok {
		return false
	}
	for _, sv := range c.StateVars {
		if sv.Name != base.Name || sv.Type.Kind != TypeMapping || sv.ValueType == nil {
			continue
		}
		if sv.ValueType.Kind != TypeNamed {
			return false
		}
		for _, s := range c.Structs {
			if s.Name == sv.ValueType.Name {
				return true
			}
		}
	}
	return false
}
