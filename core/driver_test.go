package core

import (
	"strings"
	"testing"
)

// counterContract models:
//
//	uint256 count;
//	function increment() { count += 1; }
//	function getCount() view returns (uint256) { return count; }
func counterContract() *Contract {
	return &Contract{
		Name: "Counter",
		StateVars: []StateVariable{
			{Name: "count", Type: u256(), Mutability: MutMutable},
		},
		Functions: []Function{
			{
				Name:       "increment",
				Visibility: VisPublic,
				StateMut:   MutNonpayable,
				Body: []Stmt{
					&AssignStmt{Target: &Ident{Name: "count"}, Op: AssignAdd, Value: &NumberLit{Value: "1"}},
				},
			},
			{
				Name:       "getCount",
				Visibility: VisPublic,
				StateMut:   MutView,
				Returns:    []Param{{Type: u256()}},
				Body: []Stmt{
					&ReturnStmt{Values: []Expr{&Ident{Name: "count"}}},
				},
			},
		},
	}
}

func TestTranslateSimpleCounter(t *testing.T) {
	c := counterContract()
	res := Translate(c, DefaultOptions())
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if len(res.Modules) != 1 {
		t.Fatalf("expected exactly one module (no arithmetic helpers used), got %d", len(res.Modules))
	}
	if res.Manifest == "" {
		t.Fatal("expected a rendered manifest since generate_manifest defaults to true")
	}
	src := res.Modules[0]
	if !containsAll(src, "module 0x1::counter", "struct", "fun increment", "fun getCount", "acquires") {
		t.Fatalf("emitted module missing expected fragments:\n%s", src)
	}
}

func TestTranslateCounterAtMediumOptimizationGroupsByRole(t *testing.T) {
	c := counterContract()
	opts := DefaultOptions()
	opts.OptimizationLevel = OptMedium
	res := Translate(c, opts)
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if !containsAll(res.Modules[0], "CounterCounters") {
		t.Fatalf("expected the compound-arithmetic variable grouped under a Counters resource, got:\n%s", res.Modules[0])
	}
}

func TestTranslateOnlyOwnerGuardedSetter(t *testing.T) {
	c := setOwnerContract()
	res := Translate(c, DefaultOptions())
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	src := res.Modules[0]
	if !containsAll(src, "fun setOwner", "assert!") {
		t.Fatalf("expected the inlined onlyOwner guard to render as an assert!, got:\n%s", src)
	}
	if !containsAll(src, "VaultAdminConfig") {
		t.Fatalf("expected the admin-guarded owner field grouped separately, got:\n%s", src)
	}
}

// erc20Contract models a minimal transfer function over a balances mapping,
// keyed predominantly by msg.sender so OptHigh classifies it per-user.
func erc20Contract() *Contract {
	return &Contract{
		Name: "Token",
		StateVars: []StateVariable{
			{Name: "totalSupply", Type: u256(), Mutability: MutMutable},
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
				Name:       "transfer",
				Visibility: VisPublic,
				StateMut:   MutNonpayable,
				Params:     []Param{{Name: "to", Type: addrType()}, {Name: "amount", Type: u256()}},
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
}

func TestTranslateERC20TransferAtHighOptimization(t *testing.T) {
	c := erc20Contract()
	opts := DefaultOptions()
	opts.OptimizationLevel = OptHigh
	res := Translate(c, opts)
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	src := res.Modules[0]
	if !containsAll(src, "fun transfer", "TokenUserData") {
		t.Fatalf("expected a per-user TokenUserData resource for balances, got:\n%s", src)
	}
}

// flashLoanContract models a nonReentrant-guarded withdraw function over a
// single admin-config `locked` style field plus a balances mapping.
func flashLoanContract() *Contract {
	return &Contract{
		Name: "Flash",
		StateVars: []StateVariable{
			{
				Name:      "balances",
				Type:      &Type{Kind: TypeMapping, Key: addrType(), Value: u256()},
				KeyType:   addrType(),
				ValueType: u256(),
				Mutability: MutMutable,
			},
		},
		Modifiers: []Modifier{
			{Name: "nonReentrant", Body: []Stmt{&PlaceholderStmt{}}},
		},
		Functions: []Function{
			{
				Name:       "withdraw",
				Visibility: VisPublic,
				StateMut:   MutNonpayable,
				Modifiers:  []ModifierInvocation{{Name: "nonReentrant"}},
				Params:     []Param{{Name: "amount", Type: u256()}},
				Body: []Stmt{
					&AssignStmt{
						Target: &IndexExpr{X: &Ident{Name: "balances"}, Index: &ContextAccessExpr{Family: CtxMsg, Field: "sender"}},
						Op:     AssignSub,
						Value:  &Ident{Name: "amount"},
					},
				},
			},
		},
	}
}

func TestTranslateFlashLoanWithNonReentrantGuard(t *testing.T) {
	c := flashLoanContract()
	res := Translate(c, DefaultOptions())
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if !containsAll(res.Modules[0], "fun withdraw") {
		t.Fatalf("expected a withdraw function, got:\n%s", res.Modules[0])
	}
}

// vaultWithMappingConstructor models a constructor that both assigns a
// scalar field and requires the balances mapping to be initialized via
// table::new in the constructor prelude.
func vaultWithMappingConstructor() *Contract {
	return &Contract{
		Name: "Ledger",
		StateVars: []StateVariable{
			{Name: "owner", Type: addrType(), Mutability: MutMutable},
			{
				Name:      "balances",
				Type:      &Type{Kind: TypeMapping, Key: addrType(), Value: u256()},
				KeyType:   addrType(),
				ValueType: u256(),
				Mutability: MutMutable,
			},
		},
		Constructor: &Function{
			Name:          "Ledger",
			IsConstructor: true,
			Params:        []Param{{Name: "initialOwner", Type: addrType()}},
			Body: []Stmt{
				&AssignStmt{Target: &Ident{Name: "owner"}, Op: AssignSet, Value: &Ident{Name: "initialOwner"}},
			},
		},
	}
}

func TestTranslateConstructorWithMappingInitialization(t *testing.T) {
	c := vaultWithMappingConstructor()
	res := Translate(c, DefaultOptions())
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if !containsAll(res.Modules[0], "fun initialize", "table::new", "move_to") {
		t.Fatalf("expected the constructor to move_to a resource initializing balances via table::new, got:\n%s", res.Modules[0])
	}
}

func TestTranslateEmitsRuntimeHelpersModuleWhenUsed(t *testing.T) {
	c := &Contract{
		Name: "Mixer",
		Functions: []Function{
			{
				Name:       "combine",
				Visibility: VisPublic,
				StateMut:   MutView,
				Params:     []Param{{Name: "a", Type: u256()}, {Name: "b", Type: u256()}, {Name: "m", Type: u256()}},
				Returns:    []Param{{Type: u256()}},
				Body: []Stmt{
					&ReturnStmt{Values: []Expr{&CallExpr{Callee: &Ident{Name: "addmod"}, Args: []CallArg{
						{Value: &Ident{Name: "a"}},
						{Value: &Ident{Name: "b"}},
						{Value: &Ident{Name: "m"}},
					}}}},
				},
			},
		},
	}
	res := Translate(c, DefaultOptions())
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if len(res.Modules) != 2 {
		t.Fatalf("expected the contract module plus runtime_helpers, got %d modules", len(res.Modules))
	}
	if !containsAll(res.Modules[1], "module 0x1::runtime_helpers", "fun addmod") {
		t.Fatalf("expected the second module to be runtime_helpers with addmod, got:\n%s", res.Modules[1])
	}
}

func TestTranslateNoManifestWhenDisabled(t *testing.T) {
	c := counterContract()
	opts := DefaultOptions()
	opts.GenerateManifest = false
	res := Translate(c, opts)
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if res.Manifest != "" {
		t.Fatalf("expected no manifest when generate_manifest is false, got %q", res.Manifest)
	}
}

func TestTranslateGeneratesSpecBlocksWhenEnabled(t *testing.T) {
	c := setOwnerContract()
	opts := DefaultOptions()
	opts.GenerateSpecs = true
	res := Translate(c, opts)
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	src := res.Modules[0]
	if !containsAll(src, "spec module {", "pragma verify = false;", "spec setOwner {", "pragma aborts_if_is_partial = true;") {
		t.Fatalf("expected MSL spec blocks with setOwner flagged as able to abort, got:\n%s", src)
	}
}

func TestTranslateOmitsSpecBlocksByDefault(t *testing.T) {
	c := counterContract()
	res := Translate(c, DefaultOptions())
	if !res.Success {
		t.Fatalf("expected success, got errors %+v", res.Errors)
	}
	if strings.Contains(res.Modules[0], "spec module {") {
		t.Fatalf("expected no spec blocks since generate_specs defaults to false, got:\n%s", res.Modules[0])
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
