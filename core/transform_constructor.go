package core

// transform_constructor.go – deployment-pattern lowering (spec §4.3). The
// constructor becomes `init_module` (ConstructorResourceAccount), a `create`
// entry function (ConstructorNamedObject) or an `initialize` entry function
// (the default) depending on constructor_pattern, responsible for move_to-ing
// every resource group this contract owns and then populating any
// mapping-keyed state afterward (move_to must happen before table inserts
// that reference the freshly created table).

import "sort"

// TransformConstructor lowers the IR constructor (or synthesizes a trivial
// one if the contract declared none) into the module's init function.
func TransformConstructor(ctx *TranslationContext, c *Contract, plan *ResourcePlan) *MoveFunction {
	var body []Stmt
	var params []Param
	if c.Constructor != nil {
		body = c.Constructor.Body
		params = c.Constructor.Params
	}
	detectMappingCopyWriteback(ctx, c, body)

	st := newStmtTransformer(ctx, c, plan)
	for _, p := range params {
		st.expr.locals[p.Name] = true
	}

	prelude := moveToPrelude(ctx, c, plan, st)
	borrows := borrowPrelude(plan, plan.Profiles["__constructor__"], st.expr)
	lowered := st.TransformBlock(body)

	full := append(append(prelude, borrows...), lowered...)

	fnParams := buildConstructorParams(ctx, params)
	name, isEntry := constructorEntryPoint(ctx.Options.ConstructorPattern)

	return &MoveFunction{
		Name:       name,
		Visibility: MoveVisPublic,
		IsEntry:    isEntry,
		Params:     fnParams,
		Acquires:   computeAcquires(plan, &Function{Name: "__constructor__"}), // the borrow prelude's groups; move_to itself needs no acquires
		Body:       full,
	}
}

func constructorEntryPoint(pattern ConstructorPattern) (string, bool) {
	switch pattern {
	case ConstructorResourceAccount:
		return "init_module", false // framework-invoked at publish time, never an entry function
	case ConstructorNamedObject:
		return "create", true
	default:
		return "initialize", true
	}
}

func buildConstructorParams(ctx *TranslationContext, params []Param) []MoveParam {
	out := []MoveParam{{Name: ctx.Options.SignerParamName, Type: &MoveType{Name: "signer"}, IsSignerRef: true}}
	for _, p := range params {
		res := MapType(p.Type, ctx.Options)
		for _, d := range res.Diags {
			ctx.Diags.items = append(ctx.Diags.items, d)
		}
		out = append(out, MoveParam{Name: p.Name, Type: res.Type})
	}
	return out
}

// moveToPrelude emits one `move_to(&account, Group { ... })` per resource
// group this contract owns, in deterministic (sorted) order, before the
// constructor's own statements run — so any constructor logic that borrows
// a group finds it already published. Mapping-typed fields always start
// empty (spec §4.3, "mapping-keyed constructor initialization deferred past
// move_to"): any entries the original Solidity constructor seeded into a
// mapping are assignments later in the body, which by running after this
// prelude already find their table constructed.
func moveToPrelude(ctx *TranslationContext, c *Contract, plan *ResourcePlan, st *stmtTransformer) []MoveStmt {
	groups := make([]ResourceGroup, len(plan.Groups))
	copy(groups, plan.Groups)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	var out []MoveStmt
	for _, g := range groups {
		if g.PerUser {
			continue // published lazily per account by ensure_user_state_<group>, not at publish time
		}
		out = append(out, moveToStmtFor(ctx, c, st, g))
	}
	return out
}

// moveToStmtFor synthesizes the struct literal for one resource group,
// using each field's declared initializer when present and a zero value
// otherwise.
func moveToStmtFor(ctx *TranslationContext, c *Contract, st *stmtTransformer, g ResourceGroup) MoveStmt {
	fields := make([]MoveFieldInit, 0, len(g.Variables))
	for _, name := range g.Variables {
		sv := findStateVar(c, name)
		if sv == nil {
			continue
		}
		var val MoveExpr
		switch {
		case g.Class == ClassAggregatable:
			// An initializer on a compound-only counter would only ever be
			// its zero value in practice; create_unbounded_aggregator starts
			// there regardless; an explicit non-zero initializer is not
			// representable against an Aggregator and is dropped, flagged.
			if sv.Initializer != nil {
				ctx.Diags.Warn(DiagNarrowing, "initializer for aggregator-backed counter %q is dropped; Aggregator always starts at zero", name)
			}
			val = &MoveCallExpr{Address: "0x1", Module: "aggregator_v2", Name: "create_unbounded_aggregator"}
		case sv.Type.Kind == TypeMapping:
			tableKind := "table"
			if ctx.Options.MappingType == MappingSmartTable {
				tableKind = "smart_table"
			}
			val = &MoveCallExpr{Module: tableKind, Name: "new"}
		case sv.Initializer != nil:
			val = st.expr.TransformExpr(sv.Initializer)
		default:
			val = zeroValueFor(sv.Type, ctx.Options)
		}
		fields = append(fields, MoveFieldInit{Name: name, Value: val})
	}
	lit := &MoveStructLit{Name: g.Name, Fields: fields}
	signerRef := &MoveRefExpr{Mut: false, X: &MoveIdent{Name: ctx.Options.SignerParamName}}
	return &MoveExprStmt{X: &MoveCallExpr{Name: "move_to", Args: []MoveExpr{signerRef, lit}, IsMacro: true}}
}

// ensureUserStateFnName names the per-group lazy-publish helper a per-user
// resource gets instead of a move_to in the constructor prelude.
func ensureUserStateFnName(group string) string {
	return "ensure_user_state_" + toSnakeCase(group)
}

// ensureUserStateFunctions synthesizes one ensure_user_state_<group> helper
// per PerUser resource group: it publishes the group under the caller's own
// address the first time the caller is seen, since a per-user resource has
// no single publish-time owner the way a module-owned group does
// (spec §4.4 "high", per-user resource addressing).
func ensureUserStateFunctions(ctx *TranslationContext, c *Contract, plan *ResourcePlan) []*MoveFunction {
	groups := make([]ResourceGroup, len(plan.Groups))
	copy(groups, plan.Groups)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	var out []*MoveFunction
	for _, g := range groups {
		if g.PerUser {
			out = append(out, ensureUserStateFunctionFor(ctx, c, g))
		}
	}
	return out
}

func ensureUserStateFunctionFor(ctx *TranslationContext, c *Contract, g ResourceGroup) *MoveFunction {
	signerParam := ctx.Options.SignerParamName
	fields := make([]MoveFieldInit, 0, len(g.Variables))
	for _, name := range g.Variables {
		sv := findStateVar(c, name)
		if sv == nil {
			continue
		}
		fieldType := sv.Type
		if sv.Type.Kind == TypeMapping && sv.ValueType != nil {
			fieldType = sv.ValueType
		}
		fields = append(fields, MoveFieldInit{Name: name, Value: zeroValueFor(fieldType, ctx.Options)})
	}

	const addrLocal = "addr"
	body := []MoveStmt{
		&MoveLetStmt{
			Name:  addrLocal,
			Value: &MoveCallExpr{Address: "0x1", Module: "signer", Name: "address_of", Args: []MoveExpr{&MoveIdent{Name: signerParam}}},
		},
		&MoveIfStmt{
			Cond: &MoveUnaryExpr{Op: "!", X: &MoveCallExpr{
				Name:     "exists",
				Args:     []MoveExpr{&MoveIdent{Name: addrLocal}},
				IsMacro:  true,
				TypeArgs: []*MoveType{{Name: g.Name}},
			}},
			Then: []MoveStmt{
				&MoveExprStmt{X: &MoveCallExpr{
					Name:    "move_to",
					Args:    []MoveExpr{&MoveIdent{Name: signerParam}, &MoveStructLit{Name: g.Name, Fields: fields}},
					IsMacro: true,
				}},
			},
		},
	}

	return &MoveFunction{
		Name:       ensureUserStateFnName(g.Name),
		Visibility: MoveVisPrivate,
		Params:     []MoveParam{{Name: signerParam, Type: &MoveType{Name: "signer"}, IsSignerRef: true}},
		Body:       body,
	}
}

func findStateVar(c *Contract, name string) *StateVariable {
	for i := range c.StateVars {
		if c.StateVars[i].Name == name {
			return &c.StateVars[i]
		}
	}
	return nil
}
