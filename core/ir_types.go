package core

// ir_types.go – centralised IR struct definitions referenced across the
// transpiler. This file **declares only data structures** (no functions) to
// keep the IR dependency-light and importable from every stage without
// cyclic imports — the same discipline the teacher's common_structs.go used
// for its cross-module struct definitions.
// -----------------------------------------------------------------------------

// TypeKind enumerates the closed set of IR type variants (spec §3, "A type
// is one of: primitive integer...").
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeBool
	TypeAddress
	TypeBytes
	TypeString
	TypeMapping
	TypeArray
	TypeTuple
	TypeNamed
)

// Type carries both the source-form name and the mapper-resolved
// target-form name; every IR type has both filled in before stage S4 starts.
type Type struct {
	Kind     TypeKind
	SrcName  string // e.g. "uint24", "mapping(address => uint256)"
	DstName  string // e.g. "u32", "Table<address, u256>" — empty until mapped

	Width    int  // bit width for TypeInt; 0 otherwise
	Signed   bool // TypeInt only
	FixedLen int  // TypeBytes/TypeArray fixed length; -1 means dynamic

	Key   *Type // TypeMapping
	Value *Type // TypeMapping, TypeArray element

	Tuple []*Type // TypeTuple members

	Name string // TypeNamed: struct/enum/interface name
}

// Mutability of a state variable.
type Mutability int

const (
	MutMutable Mutability = iota
	MutImmutable
	MutConstant
)

// Visibility mirrors Solidity visibility on state variables and functions.
type Visibility int

const (
	VisPublic Visibility = iota
	VisExternal
	VisInternal
	VisPrivate
)

// StateMutability is the Solidity function mutability qualifier.
type StateMutability int

const (
	MutPure StateMutability = iota
	MutView
	MutNonpayable
	MutPayable
)

// StateVariable is a single contract-level storage slot.
type StateVariable struct {
	Name        string
	Type        *Type
	Mutability  Mutability
	Visibility  Visibility
	Initializer Expr // nil if none

	// Filled only when Type.Kind == TypeMapping; duplicated here for
	// convenience since the resource planner reads these constantly.
	KeyType   *Type
	ValueType *Type
}

// Param is a function/modifier formal parameter.
type Param struct {
	Name string
	Type *Type
}

// ModifierInvocation is one `name(args...)` entry in a function's modifier
// list. Order matters: application is outermost-first (spec §3 invariant).
type ModifierInvocation struct {
	Name string
	Args []Expr
}

// Function is an IR function (spec §3).
type Function struct {
	Name       string
	Visibility Visibility
	StateMut   StateMutability
	Params     []Param
	Returns    []Param
	Modifiers  []ModifierInvocation
	Body       []Stmt

	// IsConstructor/IsReceive/IsFallback mark the special Solidity entry
	// points the function-transformer handles distinctly (spec §4.3).
	IsConstructor bool
	IsReceive     bool
	IsFallback    bool
}

// Modifier is a function-shaped node whose body contains a Placeholder
// marking where the wrapped body is spliced. Statements before the
// placeholder are pre-guards; statements after are cleanup (spec §3).
type Modifier struct {
	Name   string
	Params []Param
	Body   []Stmt
}

// PlaceholderIndex returns the index of the single Placeholder statement in
// the modifier body, or -1 if the modifier unconditionally aborts (spec §3
// invariant: exactly one placeholder, or zero).
func (m *Modifier) PlaceholderIndex() int {
	for i, s := range m.Body {
		if _, ok := s.(*PlaceholderStmt); ok {
			return i
		}
	}
	return -1
}

// EventParam is one field of an event declaration.
type EventParam struct {
	Name    string
	Type    *Type
	Indexed bool
}

// Event is a Solidity `event` declaration.
type Event struct {
	Name   string
	Params []EventParam
}

// StructField is one member of a Struct declaration.
type StructField struct {
	Name string
	Type *Type
}

// Struct is a Solidity `struct` declaration.
type Struct struct {
	Name   string
	Fields []StructField
}

// Enum is a Solidity `enum` declaration.
type Enum struct {
	Name     string
	Variants []string
}

// Contract is the root IR node: a name, ordered state variables, events,
// enums, structs, modifiers, an optional constructor, and functions
// (spec §3). Inheritance is assumed already flattened by the time the IR is
// built (spec §9, "Inheritance").
type Contract struct {
	Name       string
	StateVars  []StateVariable
	Events     []Event
	Enums      []Enum
	Structs    []Struct
	Modifiers  []Modifier
	Constructor *Function // nil if the source had none
	Functions  []Function
}
