package core

import "testing"

func u256() *Type { return &Type{Kind: TypeInt, Width: 256, SrcName: "uint256"} }

func addrType() *Type { return &Type{Kind: TypeAddress} }

// setOwnerContract models:
//
//	address owner;
//	uint256 tally;
//	modifier onlyOwner { require(msg.sender == owner); _; }
//	function setOwner(address n) onlyOwner { owner = n; }
//	function bump() { tally += 1; }
func setOwnerContract() *Contract {
	return &Contract{
		Name: "Vault",
		StateVars: []StateVariable{
			{Name: "owner", Type: addrType(), Mutability: MutMutable},
			{Name: "tally", Type: u256(), Mutability: MutMutable},
		},
		Modifiers: []Modifier{
			{
				Name: "onlyOwner",
				Body: []Stmt{
					&RequireStmt{Cond: &BinaryExpr{
						Op:   OpEq,
						Left: &ContextAccessExpr{Family: CtxMsg, Field: "sender"},
						Right: &Ident{Name: "owner"},
					}},
					&PlaceholderStmt{},
				},
			},
		},
		Functions: []Function{
			{
				Name: "setOwner",
				Modifiers: []ModifierInvocation{{Name: "onlyOwner"}},
				Params:    []Param{{Name: "n", Type: addrType()}},
				Body: []Stmt{
					&AssignStmt{Target: &Ident{Name: "owner"}, Op: AssignSet, Value: &Ident{Name: "n"}},
				},
			},
			{
				Name: "bump",
				Body: []Stmt{
					&AssignStmt{Target: &Ident{Name: "tally"}, Op: AssignAdd, Value: &NumberLit{Value: "1"}},
				},
			},
		},
	}
}

func TestIdentifyAdminModifiersByNamePrefix(t *testing.T) {
	c := setOwnerContract()
	mods := identifyAdminModifiers(c)
	if !mods["onlyOwner"] {
		t.Fatal("expected onlyOwner to be recognized as an admin modifier")
	}
}

func TestIdentifyAdminModifiersByStructuralGuard(t *testing.T) {
	c := &Contract{
		Name: "X",
		Modifiers: []Modifier{{
			Name: "restricted",
			Body: []Stmt{
				&RequireStmt{Cond: &BinaryExpr{
					Op:    OpEq,
					Left:  &ContextAccessExpr{Family: CtxMsg, Field: "sender"},
					Right: &Ident{Name: "admin"},
				}},
				&PlaceholderStmt{},
			},
		}},
	}
	mods := identifyAdminModifiers(c)
	if !mods["restricted"] {
		t.Fatal("expected structural msg.sender guard to be recognized without an 'only' prefix")
	}
}

func TestBuildResourcePlanClassifiesAdminConfigAndCounters(t *testing.T) {
	c := setOwnerContract()
	opts := DefaultOptions()
	opts.OptimizationLevel = OptMedium
	plan := BuildResourcePlan(c, opts)

	ownerGroup := plan.GroupOf("owner")
	counterGroup := plan.GroupOf("tally")
	if ownerGroup == "" || counterGroup == "" {
		t.Fatalf("expected both variables to be grouped, got owner=%q tally=%q", ownerGroup, counterGroup)
	}
	if ownerGroup == counterGroup {
		t.Fatalf("expected owner (admin-guarded) and tally (compound-arithmetic) in different groups, both got %q", ownerGroup)
	}
	if ownerGroup != "VaultAdminConfig" {
		t.Fatalf("got owner group %q, want VaultAdminConfig", ownerGroup)
	}
	if counterGroup != "VaultCounters" {
		t.Fatalf("got tally group %q, want VaultCounters", counterGroup)
	}
}

func TestBuildResourcePlanLowOptimizationCollapsesToOneGroup(t *testing.T) {
	c := setOwnerContract()
	opts := DefaultOptions()
	opts.OptimizationLevel = OptLow
	plan := BuildResourcePlan(c, opts)

	if len(plan.Groups) != 1 {
		t.Fatalf("expected exactly one group at low optimization, got %d: %+v", len(plan.Groups), plan.Groups)
	}
	if plan.GroupOf("owner") != plan.GroupOf("tally") {
		t.Fatal("expected owner and tally in the same group at low optimization")
	}
}

func TestBuildResourcePlanHighOptimizationUserKeyedMapping(t *testing.T) {
	c := &Contract{
		Name: "Token",
		StateVars: []StateVariable{
			{
				Name:      "balances",
				Type:      &Type{Kind: TypeMapping, Key: addrType(), Value: u256()},
				KeyType:   addrType(),
				ValueType: u256(),
				Mutability: MutMutable,
			},
		},
		Functions: []Function{
			{
				Name:   "transfer",
				Params: []Param{{Name: "to", Type: addrType()}, {Name: "amount", Type: u256()}},
				Body: []Stmt{
					&AssignStmt{
						Target: &IndexExpr{X: &Ident{Name: "balances"}, Index: &ContextAccessExpr{Family: CtxMsg, Field: "sender"}},
						Op:     AssignSub,
						Value:  &Ident{Name: "amount"},
					},
					&AssignStmt{
						Target: &IndexExpr{X: &Ident{Name: "balances"}, Index: &Ident{Name: "to"}},
						Op:     AssignAdd,
						Value:  &Ident{Name: "amount"},
					},
				},
			},
		},
	}
	opts := DefaultOptions()
	opts.OptimizationLevel = OptHigh
	plan := BuildResourcePlan(c, opts)

	group := plan.GroupOf("balances")
	if group != "TokenUserData" {
		t.Fatalf("got group %q, want TokenUserData", group)
	}
	for _, g := range plan.Groups {
		if g.Name == "TokenUserData" && !g.PerUser {
			t.Fatal("expected TokenUserData to be marked PerUser")
		}
	}
}

func TestBuildFunctionProfilesTracksReadsAndWrites(t *testing.T) {
	c := setOwnerContract()
	opts := DefaultOptions()
	plan := BuildResourcePlan(c, opts)

	prof := plan.Profiles["bump"]
	if prof == nil {
		t.Fatal("expected a profile for bump")
	}
	counterGroup := plan.GroupOf("tally")
	if !prof.Writes[counterGroup] {
		t.Fatalf("expected bump to write group %q, got %+v", counterGroup, prof.Writes)
	}
}

// bankWithInternalHelperContract models a public function that never
// touches `tally` directly, only through a private helper it calls:
//
//	uint256 tally;
//	function _touchTally() private { tally += 1; }
//	function adminBump() public { _touchTally(); }
func bankWithInternalHelperContract() *Contract {
	return &Contract{
		Name: "Bank",
		StateVars: []StateVariable{
			{Name: "tally", Type: u256(), Mutability: MutMutable},
		},
		Functions: []Function{
			{
				Name:       "_touchTally",
				Visibility: VisPrivate,
				Body: []Stmt{
					&AssignStmt{Target: &Ident{Name: "tally"}, Op: AssignAdd, Value: &NumberLit{Value: "1"}},
				},
			},
			{
				Name:       "adminBump",
				Visibility: VisPublic,
				StateMut:   MutNonpayable,
				Body: []Stmt{
					&ExprStmt{X: &CallExpr{Callee: &Ident{Name: "_touchTally"}}},
				},
			},
		},
	}
}

func TestBuildFunctionProfilesPropagatesThroughInternalCall(t *testing.T) {
	c := bankWithInternalHelperContract()
	opts := DefaultOptions()
	plan := BuildResourcePlan(c, opts)

	tallyGroup := plan.GroupOf("tally")
	if tallyGroup == "" {
		t.Fatal("expected tally to be grouped")
	}

	helperProf := plan.Profiles["_touchTally"]
	if helperProf == nil || !helperProf.Writes[tallyGroup] {
		t.Fatalf("expected _touchTally's own profile to write %q, got %+v", tallyGroup, helperProf)
	}

	callerProf := plan.Profiles["adminBump"]
	if callerProf == nil {
		t.Fatal("expected a profile for adminBump")
	}
	if !callerProf.Writes[tallyGroup] {
		t.Fatalf("expected adminBump to inherit the write to %q from its internal helper, got %+v", tallyGroup, callerProf.Writes)
	}
}

func TestClassifyKeyPatterns(t *testing.T) {
	cases := []struct {
		expr Expr
		want KeyPattern
	}{
		{&ContextAccessExpr{Family: CtxMsg, Field: "sender"}, KeyMsgSender},
		{&Ident{Name: "to"}, KeyParameter},
		{&NumberLit{Value: "1"}, KeyLiteral},
		{&BinaryExpr{Op: OpAdd, Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}}, KeyComputed},
	}
	for _, c := range cases {
		if got := classifyKey(c.expr); got != c.want {
			t.Errorf("classifyKey(%T) = %v, want %v", c.expr, got, c.want)
		}
	}
}
