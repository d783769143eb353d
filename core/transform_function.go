package core

// transform_function.go – IR function -> Move function lowering (spec §4.3):
// signer/address parameter wiring, modifier inlining, `acquires` computation,
// and the visibility/entry/view mapping.

import (
	"sort"
	"strings"
)

// TransformFunction lowers one IR function into a Move function, splicing
// any applied modifiers in outermost-first order around the body
// (spec §3 invariant: modifier application order matches declaration order).
func TransformFunction(ctx *TranslationContext, c *Contract, plan *ResourcePlan, fn *Function) *MoveFunction {
	body := inlineModifiers(ctx, c, fn.Modifiers, fn.Body)
	detectMappingCopyWriteback(ctx, c, body)

	st := newStmtTransformer(ctx, c, plan)
	for _, p := range fn.Params {
		st.expr.locals[p.Name] = true
	}
	hasSigner := fn.StateMut != MutView && fn.StateMut != MutPure
	userState := ensureUserStatePrelude(plan, plan.Profiles[fn.Name], ctx.Options, hasSigner)
	prelude := borrowPrelude(plan, plan.Profiles[fn.Name], st.expr)
	moveBody := append(append(userState, prelude...), st.TransformBlock(body)...)

	params := buildParams(ctx, fn)
	returns := buildReturns(ctx, fn)
	vis, isEntry := moveVisibility(ctx, fn)
	isView := fn.StateMut == MutView || fn.StateMut == MutPure

	mfn := &MoveFunction{
		Name:       fn.Name,
		Visibility: vis,
		IsEntry:    isEntry,
		IsView:     isView && ctx.Options.ViewFunctionBehavior == ViewAnnotate,
		IsInline:   ctx.Options.UseInlineFunctions && fn.Visibility == VisPrivate,
		Params:     params,
		Returns:    returns,
		Acquires:   computeAcquires(plan, fn),
		Body:       moveBody,
	}
	if ctx.Options.EmitSourceComments {
		mfn.SourceComment = sourceSignatureComment(fn)
	}
	return mfn
}

// borrowPrelude hoists exactly one borrow_global[_mut] per non-PerUser
// resource group a function's profile touches, binding it to a local the
// rest of the body references through groupLocals (spec §8: a function may
// never mix a borrow_global and a borrow_global_mut of the same resource).
// A PerUser group is left out: different access sites within the same
// function can address different accounts, so those stay borrowed at the
// point of use instead (see transformIndexChain/perUserAddr). Mutability is
// decided once for the whole function — mutable if the profile ever writes
// the group, read-only otherwise — and recorded on groupMut so every access
// site, hoisted or not, agrees on which kind of borrow a group gets.
func borrowPrelude(plan *ResourcePlan, prof *FunctionProfile, expr *exprTransformer) []MoveStmt {
	if prof == nil {
		return nil
	}
	touched := map[string]bool{}
	for g := range prof.Reads {
		touched[g] = true
	}
	for g := range prof.Writes {
		touched[g] = true
		expr.groupMut[g] = true
	}
	groups := make([]string, 0, len(touched))
	for g := range touched {
		if plan.IsPerUser(g) {
			continue
		}
		groups = append(groups, g)
	}
	sort.Strings(groups)

	stmts := make([]MoveStmt, 0, len(groups))
	for _, g := range groups {
		local := "res_" + toSnakeCase(g)
		fn := "borrow_global"
		if expr.groupMut[g] {
			fn = "borrow_global_mut"
		}
		stmts = append(stmts, &MoveLetStmt{
			Name: local,
			Value: &MoveCallExpr{
				Name:     fn,
				Args:     []MoveExpr{&MoveAddressLit{Value: "@module_addr"}},
				IsMacro:  true,
				TypeArgs: []*MoveType{{Name: g}},
			},
		})
		expr.groupLocals[g] = local
	}
	return stmts
}

// ensureUserStatePrelude calls ensure_user_state_<group> for every per-user
// resource group a function touches, so a caller's own account always has
// that resource published before the function's body tries to borrow it
// (spec §4.4 "high", per-user resource addressing). Skipped for functions
// with no signer — ensure_user_state always self-registers the caller, never
// an arbitrary account, so a view function touching only someone else's
// already-published per-user data has nothing to ensure.
func ensureUserStatePrelude(plan *ResourcePlan, prof *FunctionProfile, opts Options, hasSigner bool) []MoveStmt {
	if prof == nil || !hasSigner {
		return nil
	}
	touched := map[string]bool{}
	for g := range prof.Reads {
		touched[g] = true
	}
	for g := range prof.Writes {
		touched[g] = true
	}
	groups := make([]string, 0, len(touched))
	for g := range touched {
		if plan.IsPerUser(g) {
			groups = append(groups, g)
		}
	}
	sort.Strings(groups)

	stmts := make([]MoveStmt, 0, len(groups))
	for _, g := range groups {
		stmts = append(stmts, &MoveExprStmt{X: &MoveCallExpr{
			Name: ensureUserStateFnName(g),
			Args: []MoveExpr{&MoveIdent{Name: opts.SignerParamName}},
		}})
	}
	return stmts
}

// buildParams prepends a leading `&signer` for any function that needs to
// observe the caller's address (a non-view, non-pure function, per spec
// §4.3's "signer/address parameter wiring"), then lowers each IR param.
func buildParams(ctx *TranslationContext, fn *Function) []MoveParam {
	var out []MoveParam
	if fn.StateMut != MutView && fn.StateMut != MutPure {
		out = append(out, MoveParam{Name: ctx.Options.SignerParamName, Type: &MoveType{Name: "signer"}, IsSignerRef: true})
	}
	for _, p := range fn.Params {
		res := MapType(p.Type, ctx.Options)
		for _, d := range res.Diags {
			ctx.Diags.items = append(ctx.Diags.items, d)
		}
		out = append(out, MoveParam{Name: p.Name, Type: res.Type})
	}
	return out
}

func buildReturns(ctx *TranslationContext, fn *Function) []*MoveType {
	out := make([]*MoveType, 0, len(fn.Returns))
	for _, r := range fn.Returns {
		res := MapType(r.Type, ctx.Options)
		for _, d := range res.Diags {
			ctx.Diags.items = append(ctx.Diags.items, d)
		}
		out = append(out, res.Type)
	}
	return out
}

// moveVisibility maps Solidity visibility + the internal_visibility option
// onto Move's visibility keywords, and decides entry-function eligibility:
// only state-changing public/external functions with no return values are
// callable as Aptos entry functions (spec §4.3).
func moveVisibility(ctx *TranslationContext, fn *Function) (MoveVisibility, bool) {
	switch fn.Visibility {
	case VisPublic, VisExternal:
		isEntry := fn.StateMut != MutView && fn.StateMut != MutPure && len(fn.Returns) == 0
		return MoveVisPublic, isEntry
	case VisInternal:
		switch ctx.Options.InternalVisibility {
		case InternalPublicPackage:
			return MoveVisPublicPackage, false
		case InternalPublicFriend:
			return MoveVisPublicFriend, false
		default:
			return MoveVisPrivate, false
		}
	default:
		return MoveVisPrivate, false
	}
}

// computeAcquires scans the function's resource-group read/write profile
// (already computed by resourceplan.go) and returns the sorted union of
// groups it touches, matching Move's requirement that every globally
// borrowed resource type be declared in the function's `acquires` clause
// (spec §4.3, "acquires computation by scanning the generated body").
func computeAcquires(plan *ResourcePlan, fn *Function) []string {
	prof := plan.Profiles[fn.Name]
	if prof == nil {
		return nil
	}
	set := map[string]bool{}
	for g := range prof.Reads {
		set[g] = true
	}
	for g := range prof.Writes {
		set[g] = true
	}
	out := make([]string, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func sourceSignatureComment(fn *Function) string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(fn.Name)
	b.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.SrcName)
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	b.WriteString(")")
	return b.String()
}

// inlineModifiers splices each applied modifier's body around fnBody in
// outermost-first order: modifiers[0] wraps modifiers[1], which wraps the
// innermost function body (spec §3, "Order matters: application is
// outermost-first").
func inlineModifiers(ctx *TranslationContext, c *Contract, invocations []ModifierInvocation, fnBody []Stmt) []Stmt {
	body := fnBody
	for i := len(invocations) - 1; i >= 0; i-- {
		mod := findModifier(c, invocations[i].Name)
		if mod == nil {
			ctx.Diags.ErrorCapable(DiagUnsupportedConstruct, "modifier %q not found on contract", invocations[i].Name)
			continue
		}
		body = spliceModifier(ctx, mod, invocations[i].Args, body)
	}
	return body
}

func findModifier(c *Contract, name string) *Modifier {
	for i := range c.Modifiers {
		if c.Modifiers[i].Name == name {
			return &c.Modifiers[i]
		}
	}
	return nil
}

// spliceModifier substitutes the modifier's own parameters with the call
// site's argument expressions, then replaces the placeholder with wrapped.
// A modifier with no placeholder (an unconditional guard, e.g. a bare
// `require` followed by nothing) simply prepends its body.
func spliceModifier(ctx *TranslationContext, mod *Modifier, args []Expr, wrapped []Stmt) []Stmt {
	subst := paramSubstitution(mod.Params, args)
	idx := mod.PlaceholderIndex()
	if idx < 0 {
		out := make([]Stmt, 0, len(mod.Body)+len(wrapped))
		for _, s := range mod.Body {
			out = append(out, substituteStmt(s, subst))
		}
		return append(out, wrapped...)
	}
	out := make([]Stmt, 0, len(mod.Body)+len(wrapped))
	for _, s := range mod.Body[:idx] {
		out = append(out, substituteStmt(s, subst))
	}
	out = append(out, wrapped...)
	for _, s := range mod.Body[idx+1:] {
		out = append(out, substituteStmt(s, subst))
	}
	return out
}

func paramSubstitution(params []Param, args []Expr) map[string]Expr {
	subst := map[string]Expr{}
	for i, p := range params {
		if i < len(args) {
			subst[p.Name] = args[i]
		}
	}
	return subst
}

// substituteStmt and substituteExpr perform a shallow textual substitution
// of modifier parameter references with the call-site argument expressions.
// Structurally this mirrors a copy-and-rewrite pass rather than true
// capture-avoiding substitution, which is sufficient since modifier
// parameters in practice are simple values (role identifiers, amounts) that
// never themselves bind new names.
func substituteStmt(s Stmt, subst map[string]Expr) Stmt {
	if len(subst) == 0 {
		return s
	}
	switch v := s.(type) {
	case *RequireStmt:
		return &RequireStmt{Cond: substituteExpr(v.Cond, subst), Message: v.Message}
	case *IfStmt:
		then := make([]Stmt, len(v.Then))
		for i, x := range v.Then {
			then[i] = substituteStmt(x, subst)
		}
		els := make([]Stmt, len(v.Else))
		for i, x := range v.Else {
			els[i] = substituteStmt(x, subst)
		}
		return &IfStmt{Cond: substituteExpr(v.Cond, subst), Then: then, Else: els}
	case *ExprStmt:
		return &ExprStmt{X: substituteExpr(v.X, subst)}
	default:
		return s
	}
}

func substituteExpr(e Expr, subst map[string]Expr) Expr {
	switch v := e.(type) {
	case *Ident:
		if repl, ok := subst[v.Name]; ok {
			return repl
		}
		return v
	case *BinaryExpr:
		return &BinaryExpr{Op: v.Op, Left: substituteExpr(v.Left, subst), Right: substituteExpr(v.Right, subst)}
	case *UnaryExpr:
		return &UnaryExpr{Op: v.Op, X: substituteExpr(v.X, subst)}
	case *MemberExpr:
		return &MemberExpr{X: substituteExpr(v.X, subst), Name: v.Name}
	case *CallExpr:
		args := make([]CallArg, len(v.Args))
		for i, a := range v.Args {
			args[i] = CallArg{Name: a.Name, Value: substituteExpr(a.Value, subst)}
		}
		return &CallExpr{Callee: substituteExpr(v.Callee, subst), Args: args}
	default:
		return e
	}
}

// builtinModifierShapes documents the recognized structural shapes of the
// common OpenZeppelin-style modifiers (onlyOwner, nonReentrant,
// whenNotPaused, whenPaused, onlyRole): they need no special-casing beyond
// ordinary placeholder splicing, since their bodies already lower through
// the normal RequireStmt/AssignStmt paths. It is a documentation registry
// only: no code reads it, and the resource planner's identifyAdminModifiers
// does its own recognition of admin guards (see resourceplan.go).
var builtinModifierShapes = map[string]string{
	"onlyOwner":     "require(msg.sender == owner)",
	"nonReentrant":  "mutex guard set/check/clear around the placeholder",
	"whenNotPaused": "require(!paused)",
	"whenPaused":    "require(paused)",
	"onlyRole":      "require(hasRole(role, msg.sender))",
}
