package core

// driver.go – the `transpile(source, options)` pipeline (spec §2, §6).
// Adapted from the teacher's core/contracts.go: that file routed one
// `Deploy`/`Invoke` call through a registry and a VM, logging each stage;
// this one routes one contract through S2 (already done by the caller via
// BuildIR) -> S3 (resource planning) -> S4 (transform) -> S5 (emission),
// logging each stage transition the same way.
//
// Build-graph: depends on every other file in this package. No import of
// cmd/ or pkg/ — those depend on this, not the reverse.

import (
	"fmt"
	"time"
)

// TranslationResult is the structured pipeline output (spec §6: "success,
// modules[], warnings[], errors[], manifest").
type TranslationResult struct {
	Success  bool
	Modules  []string // rendered Move source, one entry per module
	Manifest string
	Warnings []Diagnostic
	Errors   []Diagnostic
}

// Translate runs one contract through the full S3->S5 pipeline and returns
// the structured result. The IR must already exist (built via BuildIR from
// a FrontendContract, or constructed directly by a test).
func Translate(c *Contract, opts Options) TranslationResult {
	ctx := NewTranslationContext(opts, c.Name)
	started := time.Now()

	ctx.Log.WithField("stage", "S3").Info("building resource plan")
	plan := BuildResourcePlan(c, opts)
	ctx.Log.WithField("stage", "S3").WithField("duration_ms", time.Since(started).Milliseconds()).
		WithField("groups", len(plan.Groups)).Debug("resource plan built")

	s4start := time.Now()
	ctx.Log.WithField("stage", "S4").Info("transforming contract")
	module := transformContract(ctx, c, plan)
	ctx.Log.WithField("stage", "S4").WithField("duration_ms", time.Since(s4start).Milliseconds()).Debug("transform complete")

	if err := ctx.CheckAbortCodes(); err != nil {
		ctx.Diags.Fatal("%s", err.Error())
	}

	var modules []string
	var manifest string
	if !ctx.Diags.HasErrors() {
		if opts.GenerateSpecs {
			ctx.Log.WithField("stage", "S6").Info("generating MSL spec blocks")
			module.SpecBlocks = GenerateSpecBlocks(module)
		}

		s5start := time.Now()
		ctx.Log.WithField("stage", "S5").Info("emitting Move source")
		modules = append(modules, EmitModule(module))
		if hasArithmeticHelperCalls(module) {
			modules = append(modules, EmitModule(RuntimeHelpersModule(opts)))
		}
		if opts.GenerateManifest {
			rendered, err := RenderManifest(opts)
			if err != nil {
				ctx.Diags.Fatal("manifest render failed: %s", err.Error())
			} else {
				manifest = rendered
			}
		}
		ctx.Log.WithField("stage", "S5").WithField("duration_ms", time.Since(s5start).Milliseconds()).Debug("emission complete")
	}

	return TranslationResult{
		Success:  !ctx.Diags.HasErrors(),
		Modules:  modules,
		Manifest: manifest,
		Warnings: ctx.Diags.Warnings(),
		Errors:   ctx.Diags.Errors(),
	}
}

// transformContract is S4: build the module skeleton (resources, structs,
// enums, constants), then lower the constructor and every function into it.
func transformContract(ctx *TranslationContext, c *Contract, plan *ResourcePlan) *MoveModule {
	m := &MoveModule{
		Address: ctx.Options.ModuleAddress,
		Name:    moduleNameFor(c.Name),
	}

	for _, g := range plan.Groups {
		fields := make([]MoveField, 0, len(g.Variables))
		for _, name := range g.Variables {
			sv := findStateVar(c, name)
			if sv == nil {
				continue
			}
			// A per-user group is published once per account, so a mapping
			// field holds that one account's value directly instead of a
			// Table keyed by every address (spec §4.4 "high").
			fieldType := sv.Type
			if g.PerUser && sv.Type.Kind == TypeMapping && sv.ValueType != nil {
				fieldType = sv.ValueType
			}
			if g.Class == ClassAggregatable {
				// A counter that's only ever bumped by +=/-= is backed by
				// Aggregator<u128> instead of a plain integer (spec §4.4
				// "medium"): concurrent transactions incrementing it don't
				// serialize against each other the way a plain field would.
				fields = append(fields, MoveField{Name: name, Type: aggregatorMoveType()})
				continue
			}
			res := MapType(fieldType, ctx.Options)
			for _, d := range res.Diags {
				ctx.Diags.items = append(ctx.Diags.items, d)
			}
			fields = append(fields, MoveField{Name: name, Type: res.Type})
		}
		m.Resources = append(m.Resources, ResourceStruct{Name: g.Name, Fields: fields})
	}

	for _, s := range c.Structs {
		m.Structs = append(m.Structs, transformPlainStruct(ctx, s))
	}

	if ctx.Options.EnumStyle == EnumNative {
		for _, e := range c.Enums {
			m.Enums = append(m.Enums, MoveEnum{Name: e.Name, Variants: e.Variants})
		}
	} else {
		for _, e := range c.Enums {
			for i, v := range e.Variants {
				m.Constants = append(m.Constants, MoveConstant{Name: strings_ToUpperSnake(e.Name + "_" + v), Type: &MoveType{Name: "u8"}, Value: fmt.Sprintf("%d", i)})
			}
		}
	}

	ctor := TransformConstructor(ctx, c, plan)
	m.Functions = append(m.Functions, *ctor)

	for _, fn := range ensureUserStateFunctions(ctx, c, plan) {
		m.Functions = append(m.Functions, *fn)
	}

	for i := range c.Functions {
		fn := TransformFunction(ctx, c, plan, &c.Functions[i])
		m.Functions = append(m.Functions, *fn)
	}

	m.Constants = append(m.Constants, ctx.AbortConstants()...)

	m.Imports = collectImports(m)

	return m
}

// transformPlainStruct computes the kept-ability subset (spec §3: "structs
// containing mapping-typed fields cannot carry copy/drop").
func transformPlainStruct(ctx *TranslationContext, s Struct) PlainStruct {
	fields := make([]MoveField, 0, len(s.Fields))
	hasMapping := false
	for _, f := range s.Fields {
		if f.Type.Kind == TypeMapping {
			hasMapping = true
		}
		res := MapType(f.Type, ctx.Options)
		for _, d := range res.Diags {
			ctx.Diags.items = append(ctx.Diags.items, d)
		}
		fields = append(fields, MoveField{Name: f.Name, Type: res.Type})
	}
	abilities := []MoveAbility{AbilityStore}
	if !hasMapping {
		abilities = append([]MoveAbility{AbilityCopy, AbilityDrop}, abilities...)
	}
	return PlainStruct{Name: s.Name, Fields: fields, Abilities: abilities}
}

func moduleNameFor(contractName string) string {
	return toSnakeCase(contractName)
}

func toSnakeCase(name string) string {
	var out []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			out = append(out, c-'A'+'a')
		} else {
			out = append(out, c)
		}
	}
	return string(out)
}

func strings_ToUpperSnake(name string) string {
	snake := toSnakeCase(name)
	out := make([]byte, len(snake))
	for i := 0; i < len(snake); i++ {
		c := snake[i]
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		} else {
			out[i] = c
		}
	}
	return string(out)
}

// hasArithmeticHelperCalls reports whether the emitted module references
// the shared runtime_helpers module, so the driver only ships that module
// alongside contracts that actually use addmod/mulmod/pow/bnot.
func hasArithmeticHelperCalls(m *MoveModule) bool {
	for _, fn := range m.Functions {
		if stmtsReferenceHelpers(fn.Body) {
			return true
		}
	}
	return false
}

func stmtsReferenceHelpers(stmts []MoveStmt) bool {
	for _, s := range stmts {
		if stmtReferencesHelpers(s) {
			return true
		}
	}
	return false
}

func stmtReferencesHelpers(s MoveStmt) bool {
	switch v := s.(type) {
	case *MoveLetStmt:
		return exprReferencesHelpers(v.Value)
	case *MoveAssignStmt:
		return exprReferencesHelpers(v.Target) || exprReferencesHelpers(v.Value)
	case *MoveIfStmt:
		return exprReferencesHelpers(v.Cond) || stmtsReferenceHelpers(v.Then) || stmtsReferenceHelpers(v.Else)
	case *MoveWhileStmt:
		return exprReferencesHelpers(v.Cond) || stmtsReferenceHelpers(v.Body)
	case *MoveRangeForStmt:
		return stmtsReferenceHelpers(v.Body)
	case *MoveLoopStmt:
		return stmtsReferenceHelpers(v.Body)
	case *MoveReturnStmt:
		for _, val := range v.Values {
			if exprReferencesHelpers(val) {
				return true
			}
		}
	case *MoveExprStmt:
		return exprReferencesHelpers(v.X)
	case *MoveAssertStmt:
		return exprReferencesHelpers(v.Cond)
	}
	return false
}

func exprReferencesHelpers(e MoveExpr) bool {
	switch v := e.(type) {
	case *MoveCallExpr:
		if v.Module == "runtime_helpers" {
			return true
		}
		for _, a := range v.Args {
			if exprReferencesHelpers(a) {
				return true
			}
		}
	case *MoveBinaryExpr:
		return exprReferencesHelpers(v.Left) || exprReferencesHelpers(v.Right)
	case *MoveUnaryExpr:
		return exprReferencesHelpers(v.X)
	case *MoveFieldAccess:
		return exprReferencesHelpers(v.X)
	case *MoveRefExpr:
		return exprReferencesHelpers(v.X)
	}
	return false
}

// collectImports scans the module for 0x1-prefixed calls and produces the
// corresponding `use` declarations, deduplicated by the emitter.
func collectImports(m *MoveModule) []ImportDecl {
	var out []ImportDecl
	seen := map[string]bool{}
	add := func(addr, mod string) {
		key := addr + "::" + mod
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, ImportDecl{Address: addr, Module: mod})
	}
	var walkExpr func(MoveExpr)
	var walkStmt func(MoveStmt)
	walkExpr = func(e MoveExpr) {
		switch v := e.(type) {
		case *MoveCallExpr:
			switch {
			case v.Address != "":
				add(v.Address, v.Module)
			case v.Module == "vector" || v.Module == "string":
				add("0x1", v.Module)
			case v.Module != "" && v.Module != "runtime_helpers" && v.Module != "table" && v.Module != "smart_table" && v.Module != "external":
				add(m.Address, v.Module)
			}
			for _, a := range v.Args {
				walkExpr(a)
			}
		case *MoveBinaryExpr:
			walkExpr(v.Left)
			walkExpr(v.Right)
		case *MoveUnaryExpr:
			walkExpr(v.X)
		case *MoveFieldAccess:
			walkExpr(v.X)
		case *MoveRefExpr:
			walkExpr(v.X)
		case *MoveStructLit:
			for _, f := range v.Fields {
				walkExpr(f.Value)
			}
		}
	}
	walkStmt = func(s MoveStmt) {
		switch v := s.(type) {
		case *MoveLetStmt:
			walkExpr(v.Value)
		case *MoveAssignStmt:
			walkExpr(v.Target)
			walkExpr(v.Value)
		case *MoveIfStmt:
			walkExpr(v.Cond)
			for _, x := range v.Then {
				walkStmt(x)
			}
			for _, x := range v.Else {
				walkStmt(x)
			}
		case *MoveWhileStmt:
			walkExpr(v.Cond)
			for _, x := range v.Body {
				walkStmt(x)
			}
		case *MoveRangeForStmt:
			walkExpr(v.Lo)
			walkExpr(v.Hi)
			for _, x := range v.Body {
				walkStmt(x)
			}
		case *MoveLoopStmt:
			for _, x := range v.Body {
				walkStmt(x)
			}
		case *MoveReturnStmt:
			for _, val := range v.Values {
				walkExpr(val)
			}
		case *MoveExprStmt:
			walkExpr(v.X)
		case *MoveAssertStmt:
			walkExpr(v.Cond)
		}
	}
	for _, fn := range m.Functions {
		for _, s := range fn.Body {
			walkStmt(s)
		}
	}
	// table/smart_table are always framework-qualified at 0x1, but the
	// emitter renders their calls module-qualified without an address
	// prefix by convention (table::borrow(...)), matching Move's typical
	// unqualified-use style once imported.
	for _, kind := range tableKindsUsed(m) {
		add("0x1", kind)
	}
	return out
}

func tableKindsUsed(m *MoveModule) []string {
	seen := map[string]bool{}
	for _, r := range m.Resources {
		for _, f := range r.Fields {
			if f.Type == nil {
				continue
			}
			switch f.Type.Name {
			case "Table":
				seen["table"] = true
			case "SmartTable":
				seen["smart_table"] = true
			case "Aggregator":
				seen["aggregator_v2"] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	return out
}

// aggregatorMoveType is the field type for a ClassAggregatable resource
// group member: Aptos's `aggregator_v2::Aggregator<u128>`.
func aggregatorMoveType() *MoveType {
	return &MoveType{Name: "Aggregator", Generics: []*MoveType{{Name: "u128"}}}
}
