package core

// irbuild.go – the Go-native IR builder seam (SPEC_FULL.md §12). Solidity
// parsing itself stays external (spec §1, "a separately maintained
// front-end parses Solidity source into a typed AST"); what this file
// provides is the boundary interface that AST hands across, plus the
// builder that turns it into the core IR. Any real front-end binding
// (cgo, a subprocess, a WASM-compiled parser) only needs to produce values
// satisfying these interfaces.

// FrontendContract is the minimal shape a parsed Solidity contract must
// expose to enter the pipeline. A real front-end binding's AST type
// satisfies this by construction or via a thin adapter.
type FrontendContract interface {
	ContractName() string
	StateVariables() []FrontendStateVar
	EventDecls() []FrontendEvent
	EnumDecls() []FrontendEnum
	StructDecls() []FrontendStruct
	ModifierDecls() []FrontendModifier
	ConstructorDecl() (FrontendFunction, bool)
	FunctionDecls() []FrontendFunction
}

// FrontendStateVar mirrors one contract-level storage declaration.
type FrontendStateVar struct {
	Name        string
	Type        *Type
	Mutability  Mutability
	Visibility  Visibility
	Initializer Expr
}

// FrontendEvent mirrors one `event` declaration.
type FrontendEvent struct {
	Name   string
	Params []EventParam
}

// FrontendEnum mirrors one `enum` declaration.
type FrontendEnum struct {
	Name     string
	Variants []string
}

// FrontendStruct mirrors one `struct` declaration.
type FrontendStruct struct {
	Name   string
	Fields []StructField
}

// FrontendModifier mirrors one `modifier` declaration, body already
// expressed in IR statement form by the front-end's own lowering (the
// statement/expression shapes in spec §3 are exactly what the external
// parser is expected to emit).
type FrontendModifier struct {
	Name   string
	Params []Param
	Body   []Stmt
}

// FrontendFunction mirrors one function or constructor declaration.
type FrontendFunction struct {
	Name          string
	Visibility    Visibility
	StateMut      StateMutability
	Params        []Param
	Returns       []Param
	Modifiers     []ModifierInvocation
	Body          []Stmt
	IsConstructor bool
	IsReceive     bool
	IsFallback    bool
}

// BuildIR converts a FrontendContract into the core Contract IR node,
// filling in the mapping-convenience KeyType/ValueType fields on state
// variables as it goes (spec §3, "StateVariable").
func BuildIR(fc FrontendContract) *Contract {
	c := &Contract{Name: fc.ContractName()}

	for _, sv := range fc.StateVariables() {
		v := StateVariable{
			Name:        sv.Name,
			Type:        sv.Type,
			Mutability:  sv.Mutability,
			Visibility:  sv.Visibility,
			Initializer: sv.Initializer,
		}
		if sv.Type != nil && sv.Type.Kind == TypeMapping {
			v.KeyType = sv.Type.Key
			v.ValueType = sv.Type.Value
		}
		c.StateVars = append(c.StateVars, v)
	}

	for _, e := range fc.EventDecls() {
		c.Events = append(c.Events, Event{Name: e.Name, Params: e.Params})
	}
	for _, e := range fc.EnumDecls() {
		c.Enums = append(c.Enums, Enum{Name: e.Name, Variants: e.Variants})
	}
	for _, s := range fc.StructDecls() {
		c.Structs = append(c.Structs, Struct{Name: s.Name, Fields: s.Fields})
	}
	for _, m := range fc.ModifierDecls() {
		c.Modifiers = append(c.Modifiers, Modifier{Name: m.Name, Params: m.Params, Body: m.Body})
	}
	if ctor, ok := fc.ConstructorDecl(); ok {
		c.Constructor = frontendFunctionToIR(ctor)
	}
	for _, f := range fc.FunctionDecls() {
		c.Functions = append(c.Functions, *frontendFunctionToIR(f))
	}

	return c
}

func frontendFunctionToIR(f FrontendFunction) *Function {
	return &Function{
		Name:          f.Name,
		Visibility:    f.Visibility,
		StateMut:      f.StateMut,
		Params:        f.Params,
		Returns:       f.Returns,
		Modifiers:     f.Modifiers,
		Body:          f.Body,
		IsConstructor: f.IsConstructor,
		IsReceive:     f.IsReceive,
		IsFallback:    f.IsFallback,
	}
}

// staticContract is a trivial in-memory FrontendContract implementation
// used by tests and by any caller that already has the pieces assembled
// (e.g. a hand-written fixture) rather than a live parser binding.
type staticContract struct {
	name        string
	stateVars   []FrontendStateVar
	events      []FrontendEvent
	enums       []FrontendEnum
	structs     []FrontendStruct
	modifiers   []FrontendModifier
	constructor *FrontendFunction
	functions   []FrontendFunction
}

func (s *staticContract) ContractName() string                { return s.name }
func (s *staticContract) StateVariables() []FrontendStateVar   { return s.stateVars }
func (s *staticContract) EventDecls() []FrontendEvent          { return s.events }
func (s *staticContract) EnumDecls() []FrontendEnum            { return s.enums }
func (s *staticContract) StructDecls() []FrontendStruct        { return s.structs }
func (s *staticContract) ModifierDecls() []FrontendModifier    { return s.modifiers }
func (s *staticContract) FunctionDecls() []FrontendFunction     { return s.functions }
func (s *staticContract) ConstructorDecl() (FrontendFunction, bool) {
	if s.constructor == nil {
		return FrontendFunction{}, false
	}
	return *s.constructor, true
}

// NewStaticContract builds a FrontendContract from already-assembled
// pieces, for tests and programmatic callers that bypass a real parser.
func NewStaticContract(
	name string,
	stateVars []FrontendStateVar,
	events []FrontendEvent,
	enums []FrontendEnum,
	structs []FrontendStruct,
	modifiers []FrontendModifier,
	constructor *FrontendFunction,
	functions []FrontendFunction,
) FrontendContract {
	return &staticContract{
		name:        name,
		stateVars:   stateVars,
		events:      events,
		enums:       enums,
		structs:     structs,
		modifiers:   modifiers,
		constructor: constructor,
		functions:   functions,
	}
}
