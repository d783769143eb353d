package core

// move_types.go – the Move AST. Like ir_types.go, this file declares only
// data structures (no behavior lives on the nodes, per spec §2) so it can be
// imported by the transformer and the emitter without either depending on
// the other's logic.

// MoveAbility is one of Move's four struct abilities.
type MoveAbility int

const (
	AbilityCopy MoveAbility = iota
	AbilityDrop
	AbilityStore
	AbilityKey
)

// MoveType is a resolved Move-side type reference, as produced by the type
// mapper. Most fields mirror Type but name Move's own primitives/generics.
type MoveType struct {
	Name     string   // "u8".."u256", "bool", "address", "vector<u8>", "0x1::string::String", ...
	Generics []*MoveType
}

// MoveField is one struct/resource field.
type MoveField struct {
	Name string
	Type *MoveType
}

// ResourceStruct is a Move struct marked with the `key` ability, stored at
// an address and reachable via borrow_global (spec §3, "Move AST").
type ResourceStruct struct {
	Name   string
	Fields []MoveField
}

// PlainStruct is a non-resource Move struct; its ability subset is computed
// from its field types (structs containing mapping-typed fields cannot
// carry copy/drop, per spec §3).
type PlainStruct struct {
	Name     string
	Fields   []MoveField
	Abilities []MoveAbility
}

// MoveEnum models a native Move enum (used when enum_style=native-enum).
type MoveEnum struct {
	Name     string
	Variants []string
}

// MoveConstant is a module-level constant.
type MoveConstant struct {
	Name  string
	Type  *MoveType
	Value string // pre-rendered literal text
}

// MoveVisibility mirrors Move's function visibility keywords.
type MoveVisibility int

const (
	MoveVisPublic MoveVisibility = iota
	MoveVisPublicPackage
	MoveVisPublicFriend
	MoveVisPrivate
)

// MoveParam is a function parameter; IsSignerRef marks a leading `&signer`.
type MoveParam struct {
	Name        string
	Type        *MoveType
	IsSignerRef bool
}

// MoveFunction is a Move function definition (spec §3, "Move AST").
type MoveFunction struct {
	Name       string
	Visibility MoveVisibility
	IsEntry    bool
	IsView     bool
	IsInline   bool
	Params     []MoveParam
	Returns    []*MoveType
	Acquires   []string // resource struct names this function globally borrows
	Body       []MoveStmt

	// SourceComment holds the original Solidity signature text when
	// emit_source_comments is enabled (spec §6).
	SourceComment string
}

// ImportDecl is one `use addr::module;` (optionally `as alias`) declaration.
type ImportDecl struct {
	Address string
	Module  string
	Alias   string // "" if none
}

// MoveModule is the root Move AST node: a target address, a name, imports,
// resource structs, plain structs, enums, constants, and functions
// (spec §3).
type MoveModule struct {
	Address   string
	Name      string
	Imports   []ImportDecl
	Resources []ResourceStruct
	Structs   []PlainStruct
	Enums     []MoveEnum
	Constants []MoveConstant
	Functions []MoveFunction

	// SpecBlocks holds the S6 "Diagnostics/spec gen" output (spec §2, §6
	// "generate_specs"): optional MSL `spec { ... }` blocks, populated only
	// when Options.GenerateSpecs is set. Empty otherwise.
	SpecBlocks []MoveSpecBlock
}

// MoveSpecBlock is one `spec <target> { ... }` MSL block. Target is
// "module" for the module-level block, otherwise a function name.
type MoveSpecBlock struct {
	Target string
	Lines  []string
}
