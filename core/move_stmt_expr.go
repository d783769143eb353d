package core

// move_stmt_expr.go – Move's statement/expression language, as produced by
// the transformer (core/transform_*.go) and consumed once by the emitter
// (core/emitter.go).

// MoveStmt is the marker interface for Move statement variants.
type MoveStmt interface{ isMoveStmt() }

// MoveExpr is the marker interface for Move expression variants.
type MoveExpr interface{ isMoveExpr() }

// --- statements -------------------------------------------------------

type MoveLetStmt struct {
	Name   string
	Type   *MoveType // nil if elided
	Mut    bool
	Value  MoveExpr
}

func (*MoveLetStmt) isMoveStmt() {}

type MoveAssignStmt struct {
	Target MoveExpr
	Value  MoveExpr
}

func (*MoveAssignStmt) isMoveStmt() {}

type MoveIfStmt struct {
	Cond Expr2
	Then []MoveStmt
	Else []MoveStmt
}

// Expr2 avoids a name clash: Move's if-condition is itself a MoveExpr.
type Expr2 = MoveExpr

func (*MoveIfStmt) isMoveStmt() {}

type MoveWhileStmt struct {
	Cond MoveExpr
	Body []MoveStmt
}

func (*MoveWhileStmt) isMoveStmt() {}

// MoveRangeForStmt models Move's native `for (i in lo..hi) { ... }`, used
// when the statement transformer recognizes the range-loop pattern
// (spec §4.2).
type MoveRangeForStmt struct {
	Var      string
	Lo, Hi   MoveExpr
	Body     []MoveStmt
}

func (*MoveRangeForStmt) isMoveStmt() {}

type MoveLoopStmt struct {
	Body []MoveStmt
}

func (*MoveLoopStmt) isMoveStmt() {}

type MoveBreakStmt struct{}

func (*MoveBreakStmt) isMoveStmt() {}

type MoveContinueStmt struct{}

func (*MoveContinueStmt) isMoveStmt() {}

type MoveReturnStmt struct {
	Values []MoveExpr
}

func (*MoveReturnStmt) isMoveStmt() {}

type MoveAbortStmt struct {
	Code MoveExpr
}

func (*MoveAbortStmt) isMoveStmt() {}

type MoveAssertStmt struct {
	Cond MoveExpr
	Code MoveExpr
}

func (*MoveAssertStmt) isMoveStmt() {}

type MoveExprStmt struct {
	X MoveExpr
}

func (*MoveExprStmt) isMoveStmt() {}

// --- expressions --------------------------------------------------------

type MoveNumberLit struct {
	Value string
	Type  *MoveType // numeric literal suffix, e.g. "256u256"; nil lets Move infer
}

func (*MoveNumberLit) isMoveExpr() {}

type MoveBoolLit struct{ Value bool }

func (*MoveBoolLit) isMoveExpr() {}

type MoveByteStringLit struct {
	Value []byte
	Hex   bool // render as x"..." instead of b"..."; used for raw binary data such as a folded hash
}

func (*MoveByteStringLit) isMoveExpr() {}

type MoveAddressLit struct{ Value string } // "@0x...".

func (*MoveAddressLit) isMoveExpr() {}

type MoveIdent struct{ Name string }

func (*MoveIdent) isMoveExpr() {}

type MoveFieldAccess struct {
	X    MoveExpr
	Name string
}

func (*MoveFieldAccess) isMoveExpr() {}

type MoveBinaryExpr struct {
	Op          string // Move operator text, e.g. "+", "==", "<<"
	Left, Right MoveExpr
}

func (*MoveBinaryExpr) isMoveExpr() {}

type MoveUnaryExpr struct {
	Op string
	X  MoveExpr
}

func (*MoveUnaryExpr) isMoveExpr() {}

// MoveCallExpr is a fully module-qualified call: `addr::module::fn(args...)`
// when Module is non-empty, or a bare local call otherwise.
type MoveCallExpr struct {
	Address string
	Module  string
	Name    string
	Args    []MoveExpr
	IsMacro bool // true for builtin ops like borrow_global_mut<T>()
	TypeArgs []*MoveType
}

func (*MoveCallExpr) isMoveExpr() {}

type MoveRefExpr struct {
	Mut bool
	X   MoveExpr
}

func (*MoveRefExpr) isMoveExpr() {}

type MoveCastExpr struct {
	Target *MoveType
	X      MoveExpr
}

func (*MoveCastExpr) isMoveExpr() {}

type MoveTupleExpr struct {
	Elems []MoveExpr
}

func (*MoveTupleExpr) isMoveExpr() {}

// MoveStructLit is a struct literal `Name { field: value, ... }`.
type MoveStructLit struct {
	Name   string
	Fields []MoveFieldInit
}

type MoveFieldInit struct {
	Name  string
	Value MoveExpr
}

func (*MoveStructLit) isMoveExpr() {}
