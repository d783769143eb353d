package core

// resourceplan.go – the state-access analysis (spec §4.4). Given an IR
// contract, partitions mutable state variables into resource groups so
// unrelated transactions touch disjoint `acquires` sets under Block-STM.

import (
	"sort"
	"strings"
)

// KeyPattern classifies how a mapping index expression derives its key.
type KeyPattern int

const (
	KeyMsgSender KeyPattern = iota
	KeyParameter
	KeyLiteral
	KeyComputed
)

// VariableAccessRecord is the per-variable, per-function access summary
// built by the walker (spec §4.4 phase 2).
type VariableAccessRecord struct {
	Variable        string
	Reads           int
	Writes          int
	WriteOps        map[AssignOp]bool
	AdminGuarded     bool
	KeyHistogram    map[KeyPattern]int
	ReadBeforeWrite bool
	ExplicitRead    bool // read outside of a compound-assignment's own LHS
}

func newAccessRecord(name string) *VariableAccessRecord {
	return &VariableAccessRecord{
		Variable:     name,
		WriteOps:     make(map[AssignOp]bool),
		KeyHistogram: make(map[KeyPattern]int),
	}
}

// ResourceClass is the classification a variable is assigned to (spec §4.4
// phase 4).
type ResourceClass int

const (
	ClassAdminConfig ResourceClass = iota
	ClassAggregatable
	ClassEventTrackable
	ClassUserKeyedMapping
	ClassGeneral
)

// ResourceGroup is one emitted resource struct's worth of state variables.
type ResourceGroup struct {
	Name      string
	Class     ResourceClass
	Variables []string
	PerUser   bool // true for the high-optimization per-user resource
}

// FunctionProfile is the set of groups a function reads/writes, used to
// compute `acquires` and borrow-kind (spec §4.4 phase 6).
type FunctionProfile struct {
	Function string
	Reads    map[string]bool // resource group name -> touched
	Writes   map[string]bool
}

// ResourcePlan is the output of the state-access analysis: one plan per
// contract, consumed read-only by every subsequent stage (spec §3,
// "Lifecycle").
type ResourcePlan struct {
	ContractName string
	Groups       []ResourceGroup
	VarToGroup   map[string]string
	Profiles     map[string]*FunctionProfile
	AdminModifiers map[string]bool // modifier names recognized as admin guards
	// Calls is the transitively-closed same-contract internal-call graph
	// (caller name -> set of every function reachable through internal
	// calls), built in phase 3 and consumed by phase 6.
	Calls map[string]map[string]bool
}

// GroupOf returns the resource group name a variable belongs to, or "" if
// the variable isn't a mutable state variable.
func (p *ResourcePlan) GroupOf(varName string) string { return p.VarToGroup[varName] }

// IsPerUser reports whether a resource group is the high-optimization
// per-user resource (spec §4.4 "high"), stored under each account's own
// address rather than the module address.
func (p *ResourcePlan) IsPerUser(group string) bool {
	for _, g := range p.Groups {
		if g.Name == group {
			return g.PerUser
		}
	}
	return false
}

// IsAggregatable reports whether a resource group holds only
// compound-arithmetic counters (spec §4.4 "medium"), backed by Aptos's
// parallelizable `Aggregator` type instead of a plain integer field.
func (p *ResourcePlan) IsAggregatable(group string) bool {
	for _, g := range p.Groups {
		if g.Name == group {
			return g.Class == ClassAggregatable
		}
	}
	return false
}

// BuildResourcePlan runs the six analysis phases of spec §4.4 against one
// contract.
func BuildResourcePlan(c *Contract, opts Options) *ResourcePlan {
	plan := &ResourcePlan{
		ContractName:   c.Name,
		VarToGroup:     make(map[string]string),
		Profiles:       make(map[string]*FunctionProfile),
		AdminModifiers: identifyAdminModifiers(c),
	}

	records := walkAccessRecords(c, plan.AdminModifiers)
	plan.Calls = propagateInternalCalls(c, plan.AdminModifiers, records)

	classes := make(map[string]ResourceClass, len(c.StateVars))
	for _, sv := range c.StateVars {
		if sv.Mutability != MutMutable {
			continue // constants never appear in the state plan (spec §3 invariant)
		}
		classes[sv.Name] = classifyVariable(sv, records[sv.Name], opts)
	}

	groupVariables(plan, c, classes, opts)
	buildFunctionProfiles(c, plan)
	return plan
}

// identifyAdminModifiers recognizes admin-guard modifiers by name prefix
// ("only*") or by a structural msg.sender-equality check inside the body
// (spec §4.4 phase 1).
func identifyAdminModifiers(c *Contract) map[string]bool {
	out := make(map[string]bool)
	for _, m := range c.Modifiers {
		if strings.HasPrefix(strings.ToLower(m.Name), "only") {
			out[m.Name] = true
			continue
		}
		if modifierGuardsMsgSender(m.Body) {
			out[m.Name] = true
		}
	}
	return out
}

func modifierGuardsMsgSender(body []Stmt) bool {
	for _, s := range body {
		if req, ok := s.(*RequireStmt); ok && exprGuardsMsgSender(req.Cond) {
			return true
		}
	}
	return false
}

// exprGuardsMsgSender recognizes `msg.sender == <stateVar>` directly, or the
// same comparison nested inside `||` (spec §4.4 phase 1).
func exprGuardsMsgSender(e Expr) bool {
	bin, ok := e.(*BinaryExpr)
	if !ok {
		return false
	}
	switch bin.Op {
	case OpEq:
		return isMsgSenderCompare(bin.Left) || isMsgSenderCompare(bin.Right)
	case OpOr:
		return exprGuardsMsgSender(bin.Left) || exprGuardsMsgSender(bin.Right)
	}
	return false
}

func isMsgSenderCompare(e Expr) bool {
	ctx, ok := e.(*ContextAccessExpr)
	return ok && ctx.Family == CtxMsg && ctx.Field == "sender"
}

// ensureRecord fetches or lazily creates the access record for one variable.
func ensureRecord(records map[string]*VariableAccessRecord, name string) *VariableAccessRecord {
	r, ok := records[name]
	if !ok {
		r = newAccessRecord(name)
		records[name] = r
	}
	return r
}

// walkAccessRecords is phase 2: build per-variable VariableAccessRecords by
// walking every function, modifier, and the constructor.
func walkAccessRecords(c *Contract, adminModifiers map[string]bool) map[string]*VariableAccessRecord {
	records := make(map[string]*VariableAccessRecord)
	ensure := func(name string) *VariableAccessRecord { return ensureRecord(records, name) }
	stateNames := make(map[string]bool, len(c.StateVars))
	for _, sv := range c.StateVars {
		stateNames[sv.Name] = true
	}

	visitFn := func(fn *Function, adminGuarded bool) {
		w := &accessWalker{records: records, ensure: ensure, stateNames: stateNames, adminGuarded: adminGuarded}
		w.walkStmts(fn.Body)
	}

	for i := range c.Functions {
		fn := &c.Functions[i]
		guarded := false
		for _, mi := range fn.Modifiers {
			if adminModifiers[mi.Name] {
				guarded = true
			}
		}
		visitFn(fn, guarded)
	}
	if c.Constructor != nil {
		visitFn(c.Constructor, true) // constructor writes are always admin-equivalent (spec §4.4 class rule)
	}
	for i := range c.Modifiers {
		w := &accessWalker{records: records, ensure: ensure, stateNames: stateNames}
		w.walkStmts(c.Modifiers[i].Body)
	}
	return records
}

type accessWalker struct {
	records      map[string]*VariableAccessRecord
	ensure       func(string) *VariableAccessRecord
	stateNames   map[string]bool
	adminGuarded bool
}

func (w *accessWalker) walkStmts(stmts []Stmt) {
	for _, s := range stmts {
		w.walkStmt(s)
	}
}

func (w *accessWalker) walkStmt(s Stmt) {
	switch st := s.(type) {
	case *VarDeclStmt:
		if st.Init != nil {
			w.walkExpr(st.Init, false)
		}
	case *AssignStmt:
		w.walkAssignTarget(st.Target, st.Op)
		w.walkExpr(st.Value, false)
	case *IfStmt:
		w.walkExpr(st.Cond, false)
		w.walkStmts(st.Then)
		w.walkStmts(st.Else)
	case *ForStmt:
		if st.Init != nil {
			w.walkStmt(st.Init)
		}
		if st.Cond != nil {
			w.walkExpr(st.Cond, false)
		}
		if st.Step != nil {
			w.walkStmt(st.Step)
		}
		w.walkStmts(st.Body)
	case *WhileStmt:
		w.walkExpr(st.Cond, false)
		w.walkStmts(st.Body)
	case *DoWhileStmt:
		w.walkStmts(st.Body)
		w.walkExpr(st.Cond, false)
	case *BlockStmt:
		w.walkStmts(st.Body)
	case *ReturnStmt:
		for _, v := range st.Values {
			w.walkExpr(v, false)
		}
	case *EmitStmt:
		for _, a := range st.Args {
			w.walkExpr(a, false)
		}
	case *RequireStmt:
		w.walkExpr(st.Cond, false)
	case *RevertStmt:
		for _, a := range st.Args {
			w.walkExpr(a, false)
		}
	case *ExprStmt:
		w.walkExpr(st.X, false)
	case *UncheckedStmt:
		w.walkStmts(st.Body)
	case *TryStmt:
		w.walkExpr(st.Call, false)
		w.walkStmts(st.Body)
		for _, cc := range st.Catches {
			w.walkStmts(cc.Body)
		}
	}
}

func (w *accessWalker) walkAssignTarget(target Expr, op AssignOp) {
	switch t := target.(type) {
	case *Ident:
		if !w.stateNames[t.Name] {
			return
		}
		r := w.ensure(t.Name)
		r.Writes++
		r.WriteOps[op] = true
		if w.adminGuarded {
			r.AdminGuarded = true
		}
	case *IndexExpr:
		baseName, pattern := rootMappingAccess(t)
		if baseName == "" || !w.stateNames[baseName] {
			w.walkExpr(t.Index, false)
			return
		}
		r := w.ensure(baseName)
		r.Writes++
		r.WriteOps[op] = true
		r.KeyHistogram[pattern]++
		if w.adminGuarded {
			r.AdminGuarded = true
		}
		w.walkExpr(t.Index, false)
	default:
		w.walkExpr(target, false)
	}
}

// rootMappingAccess walks through (possibly nested) IndexExpr/MemberExpr to
// find the root state-variable identifier, classifying the outermost key's
// pattern.
func rootMappingAccess(e *IndexExpr) (string, KeyPattern) {
	pattern := classifyKey(e.Index)
	switch base := e.X.(type) {
	case *Ident:
		return base.Name, pattern
	case *IndexExpr:
		name, _ := rootMappingAccess(base)
		return name, pattern
	default:
		return "", pattern
	}
}

func classifyKey(e Expr) KeyPattern {
	switch v := e.(type) {
	case *ContextAccessExpr:
		if v.Family == CtxMsg && v.Field == "sender" {
			return KeyMsgSender
		}
	case *Ident:
		return KeyParameter
	case *NumberLit, *AddressLit, *StringLit, *HexLit, *BoolLit:
		return KeyLiteral
	}
	return KeyComputed
}

func (w *accessWalker) walkExpr(e Expr, inAssignTargetChain bool) {
	switch v := e.(type) {
	case *Ident:
		if w.stateNames[v.Name] {
			r := w.ensure(v.Name)
			r.Reads++
			r.ExplicitRead = true
			if r.Writes == 0 {
				r.ReadBeforeWrite = true
			}
		}
	case *IndexExpr:
		baseName, pattern := rootMappingAccess(v)
		if baseName != "" && w.stateNames[baseName] {
			r := w.ensure(baseName)
			r.Reads++
			r.ExplicitRead = true
			r.KeyHistogram[pattern]++
		}
		w.walkExpr(v.Index, false)
	case *BinaryExpr:
		w.walkExpr(v.Left, false)
		w.walkExpr(v.Right, false)
	case *UnaryExpr:
		w.walkExpr(v.X, false)
	case *CallExpr:
		w.walkExpr(v.Callee, false)
		for _, a := range v.Args {
			w.walkExpr(a.Value, false)
		}
	case *MemberExpr:
		w.walkExpr(v.X, false)
	case *CondExpr:
		w.walkExpr(v.Cond, false)
		w.walkExpr(v.Then, false)
		w.walkExpr(v.Else, false)
	case *TupleExpr:
		for _, el := range v.Elems {
			w.walkExpr(el, false)
		}
	case *TypeConvExpr:
		w.walkExpr(v.X, false)
	case *NewExpr:
		for _, a := range v.Args {
			w.walkExpr(a, false)
		}
	}
}

// propagateInternalCalls is phase 3: builds the same-contract internal-call
// graph and closes it to a fixed point (transitive reachability), then folds
// each reachable callee's own accesses back into the caller — re-walking the
// callee's body under the caller's admin-guard context — so a public
// function that only writes a variable through a private helper still
// contributes that write, correctly guarded, to the variable's access record
// (spec §4.4 phase 3). The closed call graph is returned so phase 6
// (buildFunctionProfiles) can union group-level reads/writes the same way
// for `acquires` computation, after groups exist.
func propagateInternalCalls(c *Contract, adminModifiers map[string]bool, records map[string]*VariableAccessRecord) map[string]map[string]bool {
	byName := make(map[string]*Function, len(c.Functions))
	for i := range c.Functions {
		byName[c.Functions[i].Name] = &c.Functions[i]
	}

	reach := make(map[string]map[string]bool, len(c.Functions))
	for i := range c.Functions {
		fn := &c.Functions[i]
		set := make(map[string]bool)
		for _, callee := range collectCallees(fn.Body, byName) {
			set[callee] = true
		}
		reach[fn.Name] = set
	}
	changed := true
	for changed {
		changed = false
		for name := range reach {
			for callee := range reach[name] {
				for transitive := range reach[callee] {
					if !reach[name][transitive] {
						reach[name][transitive] = true
						changed = true
					}
				}
			}
		}
	}

	guardedEntry := make(map[string]bool, len(c.Functions))
	for i := range c.Functions {
		fn := &c.Functions[i]
		for _, mi := range fn.Modifiers {
			if adminModifiers[mi.Name] {
				guardedEntry[fn.Name] = true
			}
		}
	}
	// a helper reached (directly or transitively) only from admin-guarded
	// entry points inherits that guard, even though its own declaration
	// carries no modifier.
	guardedViaCaller := make(map[string]bool)
	for caller, reachable := range reach {
		if !guardedEntry[caller] {
			continue
		}
		for callee := range reachable {
			guardedViaCaller[callee] = true
		}
	}

	stateNames := make(map[string]bool, len(c.StateVars))
	for _, sv := range c.StateVars {
		stateNames[sv.Name] = true
	}
	ensure := func(name string) *VariableAccessRecord { return ensureRecord(records, name) }
	for i := range c.Functions {
		fn := &c.Functions[i]
		for callee := range reach[fn.Name] {
			calleeFn := byName[callee]
			if calleeFn == nil {
				continue
			}
			guarded := guardedEntry[fn.Name] || guardedViaCaller[callee]
			w := &accessWalker{records: records, ensure: ensure, stateNames: stateNames, adminGuarded: guarded}
			w.walkStmts(calleeFn.Body)
		}
	}

	return reach
}

func collectCallees(body []Stmt, known map[string]*Function) []string {
	var out []string
	var walk func(Stmt)
	var walkExpr func(Expr)
	walkExpr = func(e Expr) {
		if call, ok := e.(*CallExpr); ok {
			if id, ok := call.Callee.(*Ident); ok {
				if _, isLocal := known[id.Name]; isLocal {
					out = append(out, id.Name)
				}
			}
			for _, a := range call.Args {
				walkExpr(a.Value)
			}
		}
	}
	walk = func(s Stmt) {
		switch st := s.(type) {
		case *ExprStmt:
			walkExpr(st.X)
		case *AssignStmt:
			walkExpr(st.Value)
		case *VarDeclStmt:
			if st.Init != nil {
				walkExpr(st.Init)
			}
		case *IfStmt:
			for _, x := range st.Then {
				walk(x)
			}
			for _, x := range st.Else {
				walk(x)
			}
		case *BlockStmt:
			for _, x := range st.Body {
				walk(x)
			}
		case *ForStmt:
			for _, x := range st.Body {
				walk(x)
			}
		case *WhileStmt:
			for _, x := range st.Body {
				walk(x)
			}
		}
	}
	for _, s := range body {
		walk(s)
	}
	return out
}

// classifyVariable is phase 4.
func classifyVariable(sv StateVariable, rec *VariableAccessRecord, opts Options) ResourceClass {
	if sv.Mutability == MutImmutable {
		return ClassAdminConfig
	}
	if rec == nil {
		return ClassAdminConfig // never read or written anywhere (constructor writes also create a record)
	}
	if rec.Writes > 0 && allWritesAdminGuarded(rec) {
		return ClassAdminConfig
	}
	if opts.OptimizationLevel == OptLow {
		return ClassGeneral
	}
	if sv.Type.Kind == TypeInt && onlyCompoundArithmetic(rec) {
		if opts.OptimizationLevel != OptLow && !rec.ExplicitRead && nameLooksFeeLike(sv.Name) {
			return ClassEventTrackable
		}
		return ClassAggregatable
	}
	if opts.OptimizationLevel == OptHigh && sv.Type.Kind == TypeMapping && sv.KeyType != nil && sv.KeyType.Kind == TypeAddress {
		if majorityMsgSenderKeyed(rec) {
			return ClassUserKeyedMapping
		}
	}
	return ClassGeneral
}

func allWritesAdminGuarded(rec *VariableAccessRecord) bool {
	return rec.AdminGuarded && rec.Writes > 0
}

func onlyCompoundArithmetic(rec *VariableAccessRecord) bool {
	if rec.Writes == 0 {
		return false
	}
	if rec.WriteOps[AssignSet] {
		return false
	}
	return rec.WriteOps[AssignAdd] || rec.WriteOps[AssignSub]
}

func nameLooksFeeLike(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range []string{"fee", "reward", "accrued", "counter", "total"} {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func majorityMsgSenderKeyed(rec *VariableAccessRecord) bool {
	total := 0
	for _, n := range rec.KeyHistogram {
		total += n
	}
	if total == 0 {
		return false
	}
	return rec.KeyHistogram[KeyMsgSender]*2 >= total
}

// groupVariables is phase 5: group classified variables into named
// resources, dropping empty groups, guaranteeing at least one primary group.
func groupVariables(plan *ResourcePlan, c *Contract, classes map[string]ResourceClass, opts Options) {
	byClass := map[ResourceClass][]string{}
	for _, sv := range c.StateVars {
		cls, ok := classes[sv.Name]
		if !ok {
			continue
		}
		byClass[cls] = append(byClass[cls], sv.Name)
	}
	sortGroup := func(names []string) []string { sort.Strings(names); return names }

	addGroup := func(suffix string, cls ResourceClass, vars []string, perUser bool) {
		if len(vars) == 0 {
			return
		}
		name := c.Name + suffix
		plan.Groups = append(plan.Groups, ResourceGroup{Name: name, Class: cls, Variables: sortGroup(vars), PerUser: perUser})
		for _, v := range vars {
			plan.VarToGroup[v] = name
		}
	}

	if opts.OptimizationLevel == OptLow {
		var all []string
		for _, vars := range byClass {
			all = append(all, vars...)
		}
		addGroup("State", ClassGeneral, all, false)
		if len(plan.Groups) == 0 {
			plan.Groups = append(plan.Groups, ResourceGroup{Name: c.Name + "State", Class: ClassGeneral})
		}
		return
	}

	addGroup("AdminConfig", ClassAdminConfig, byClass[ClassAdminConfig], false)
	addGroup("Counters", ClassAggregatable, byClass[ClassAggregatable], false)
	if opts.OptimizationLevel == OptHigh {
		addGroup("UserData", ClassUserKeyedMapping, byClass[ClassUserKeyedMapping], true)
	} else {
		// at medium, user-keyed mappings stay in the primary resource
		byClass[ClassGeneral] = append(byClass[ClassGeneral], byClass[ClassUserKeyedMapping]...)
	}
	// event_trackable fields are surfaced as events and removed from storage
	// entirely (spec §4.4 "medium"); they never get a group or a VarToGroup
	// entry, which is how the emitter knows to drop the field and the caller
	// knows read sites must degrade to a constant zero.
	addGroup("State", ClassGeneral, byClass[ClassGeneral], false)

	if len(plan.Groups) == 0 {
		plan.Groups = append(plan.Groups, ResourceGroup{Name: c.Name + "State", Class: ClassGeneral})
	}
}

// buildFunctionProfiles is phase 6: the set of groups each function reads
// and writes, later used to compute `acquires` and borrow-kind.
func buildFunctionProfiles(c *Contract, plan *ResourcePlan) {
	build := func(fn *Function) *FunctionProfile {
		prof := &FunctionProfile{Function: fn.Name, Reads: map[string]bool{}, Writes: map[string]bool{}}
		w := &profileWalker{plan: plan, prof: prof}
		w.walkStmts(fn.Body)
		return prof
	}
	for i := range c.Functions {
		fn := &c.Functions[i]
		plan.Profiles[fn.Name] = build(fn)
	}
	if c.Constructor != nil {
		plan.Profiles["__constructor__"] = build(c.Constructor)
	}

	// Fold each transitively-reachable internal callee's own profile into
	// the caller's: a public function that only touches a resource group
	// through a private helper must still declare that group in its own
	// `acquires` clause (spec §4.4 phase 3/6).
	for name, reachable := range plan.Calls {
		prof, ok := plan.Profiles[name]
		if !ok {
			continue
		}
		for callee := range reachable {
			calleeProf, ok := plan.Profiles[callee]
			if !ok {
				continue
			}
			for g := range calleeProf.Reads {
				prof.Reads[g] = true
			}
			for g := range calleeProf.Writes {
				prof.Writes[g] = true
			}
		}
	}
}

type profileWalker struct {
	plan *ResourcePlan
	prof *FunctionProfile
}

func (w *profileWalker) touch(varName string, write bool) {
	group := w.plan.GroupOf(varName)
	if group == "" {
		return
	}
	if write {
		w.prof.Writes[group] = true
	} else {
		w.prof.Reads[group] = true
	}
}

func (w *profileWalker) walkStmts(stmts []Stmt) {
	for _, s := range stmts {
		w.walkStmt(s)
	}
}

func (w *profileWalker) walkStmt(s Stmt) {
	switch st := s.(type) {
	case *AssignStmt:
		w.walkTarget(st.Target, true)
		w.walkExpr(st.Value)
	case *VarDeclStmt:
		if st.Init != nil {
			w.walkExpr(st.Init)
		}
	case *IfStmt:
		w.walkExpr(st.Cond)
		w.walkStmts(st.Then)
		w.walkStmts(st.Else)
	case *ForStmt:
		if st.Init != nil {
			w.walkStmt(st.Init)
		}
		if st.Cond != nil {
			w.walkExpr(st.Cond)
		}
		if st.Step != nil {
			w.walkStmt(st.Step)
		}
		w.walkStmts(st.Body)
	case *WhileStmt:
		w.walkExpr(st.Cond)
		w.walkStmts(st.Body)
	case *DoWhileStmt:
		w.walkStmts(st.Body)
		w.walkExpr(st.Cond)
	case *BlockStmt:
		w.walkStmts(st.Body)
	case *ReturnStmt:
		for _, v := range st.Values {
			w.walkExpr(v)
		}
	case *EmitStmt:
		for _, a := range st.Args {
			w.walkExpr(a)
		}
	case *RequireStmt:
		w.walkExpr(st.Cond)
	case *ExprStmt:
		w.walkExpr(st.X)
	case *UncheckedStmt:
		w.walkStmts(st.Body)
	}
}

func (w *profileWalker) walkTarget(target Expr, write bool) {
	switch t := target.(type) {
	case *Ident:
		w.touch(t.Name, write)
	case *IndexExpr:
		baseName, _ := rootMappingAccess(t)
		if baseName != "" {
			w.touch(baseName, write)
		}
		w.walkExpr(t.Index)
	}
}

func (w *profileWalker) walkExpr(e Expr) {
	switch v := e.(type) {
	case *Ident:
		w.touch(v.Name, false)
	case *IndexExpr:
		baseName, _ := rootMappingAccess(v)
		if baseName != "" {
			w.touch(baseName, false)
		}
		w.walkExpr(v.Index)
	case *BinaryExpr:
		w.walkExpr(v.Left)
		w.walkExpr(v.Right)
	case *UnaryExpr:
		w.walkExpr(v.X)
	case *CallExpr:
		for _, a := range v.Args {
			w.walkExpr(a.Value)
		}
	case *MemberExpr:
		w.walkExpr(v.X)
	case *CondExpr:
		w.walkExpr(v.Cond)
		w.walkExpr(v.Then)
		w.walkExpr(v.Else)
	}
}
