package main

// ir_json.go implements tagged-union JSON decoding for the three IR marker
// interfaces (core.Type is a plain struct and decodes directly; core.Expr
// and core.Stmt are closed interfaces and need a discriminator field, same
// idea as encoding/json's own RawMessage-based patterns).

import (
	"encoding/json"
	"fmt"

	"sol2move/core"
)

// irType decodes a JSON type node into a *core.Type.
type irType core.Type

func (t *irType) UnmarshalJSON(b []byte) error {
	var raw struct {
		Kind     string   `json:"kind"`
		SrcName  string   `json:"srcName"`
		DstName  string   `json:"dstName"`
		Width    int      `json:"width"`
		Signed   bool     `json:"signed"`
		FixedLen *int     `json:"fixedLen"`
		Key      *irType  `json:"key"`
		Value    *irType  `json:"value"`
		Tuple    []*irType `json:"tuple"`
		Name     string   `json:"name"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.SrcName = raw.SrcName
	t.DstName = raw.DstName
	t.Width = raw.Width
	t.Signed = raw.Signed
	t.Name = raw.Name
	t.FixedLen = -1
	if raw.FixedLen != nil {
		t.FixedLen = *raw.FixedLen
	}
	t.Key = (*core.Type)(raw.Key)
	t.Value = (*core.Type)(raw.Value)
	for _, tt := range raw.Tuple {
		t.Tuple = append(t.Tuple, (*core.Type)(tt))
	}
	switch raw.Kind {
	case "int":
		t.Kind = core.TypeInt
	case "bool":
		t.Kind = core.TypeBool
	case "address":
		t.Kind = core.TypeAddress
	case "bytes":
		t.Kind = core.TypeBytes
	case "string":
		t.Kind = core.TypeString
	case "mapping":
		t.Kind = core.TypeMapping
	case "array":
		t.Kind = core.TypeArray
	case "tuple":
		t.Kind = core.TypeTuple
	case "named":
		t.Kind = core.TypeNamed
	default:
		return fmt.Errorf("unknown type kind %q", raw.Kind)
	}
	return nil
}

// exprNode decodes a JSON expression node into a core.Expr.
type exprNode struct{ E core.Expr }

func (n *exprNode) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.E = nil
		return nil
	}
	var head struct {
		Expr string `json:"expr"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	switch head.Expr {
	case "number":
		var v struct {
			Value           string `json:"value"`
			SubDenomination string `json:"subDenomination"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.NumberLit{Value: v.Value, SubDenomination: v.SubDenomination}
	case "bool":
		var v struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.BoolLit{Value: v.Value}
	case "string":
		var v struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.StringLit{Value: v.Value}
	case "hex":
		var v struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.HexLit{Value: v.Value}
	case "address":
		var v struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.AddressLit{Value: v.Value}
	case "ident":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.Ident{Name: v.Name}
	case "binary":
		var v struct {
			Op    string   `json:"op"`
			Left  exprNode `json:"left"`
			Right exprNode `json:"right"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.BinaryExpr{Op: binOpFromString(v.Op), Left: v.Left.E, Right: v.Right.E}
	case "unary":
		var v struct {
			Op string   `json:"op"`
			X  exprNode `json:"x"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.UnaryExpr{Op: unOpFromString(v.Op), X: v.X.E}
	case "call":
		var v struct {
			Callee exprNode `json:"callee"`
			Args   []struct {
				Name  string   `json:"name"`
				Value exprNode `json:"value"`
			} `json:"args"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		call := &core.CallExpr{Callee: v.Callee.E}
		for _, a := range v.Args {
			call.Args = append(call.Args, core.CallArg{Name: a.Name, Value: a.Value.E})
		}
		n.E = call
	case "member":
		var v struct {
			X    exprNode `json:"x"`
			Name string   `json:"name"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.MemberExpr{X: v.X.E, Name: v.Name}
	case "index":
		var v struct {
			X     exprNode `json:"x"`
			Index exprNode `json:"index"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.IndexExpr{X: v.X.E, Index: v.Index.E}
	case "cond":
		var v struct {
			Cond exprNode `json:"cond"`
			Then exprNode `json:"then"`
			Else exprNode `json:"else"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.CondExpr{Cond: v.Cond.E, Then: v.Then.E, Else: v.Else.E}
	case "tuple":
		var v struct {
			Elems []exprNode `json:"elems"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		t := &core.TupleExpr{}
		for _, e := range v.Elems {
			t.Elems = append(t.Elems, e.E)
		}
		n.E = t
	case "typeconv":
		var v struct {
			Target *irType  `json:"target"`
			X      exprNode `json:"x"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.TypeConvExpr{Target: (*core.Type)(v.Target), X: v.X.E}
	case "new":
		var v struct {
			Target *irType    `json:"target"`
			Args   []exprNode `json:"args"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		ne := &core.NewExpr{Target: (*core.Type)(v.Target)}
		for _, a := range v.Args {
			ne.Args = append(ne.Args, a.E)
		}
		n.E = ne
	case "context":
		var v struct {
			Family string `json:"family"`
			Field  string `json:"field"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.E = &core.ContextAccessExpr{Family: ctxFamilyFromString(v.Family), Field: v.Field}
	default:
		return fmt.Errorf("unknown expr kind %q", head.Expr)
	}
	return nil
}

// stmtNode decodes a JSON statement node into a core.Stmt.
type stmtNode struct{ S core.Stmt }

func (n *stmtNode) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		n.S = nil
		return nil
	}
	var head struct {
		Stmt string `json:"stmt"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	switch head.Stmt {
	case "vardecl":
		var v struct {
			Name string   `json:"name"`
			Type *irType  `json:"type"`
			Init exprNode `json:"init"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.VarDeclStmt{Name: v.Name, Type: (*core.Type)(v.Type), Init: v.Init.E}
	case "assign":
		var v struct {
			Target exprNode `json:"target"`
			Op     string   `json:"op"`
			Value  exprNode `json:"value"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.AssignStmt{Target: v.Target.E, Op: assignOpFromString(v.Op), Value: v.Value.E}
	case "if":
		var v struct {
			Cond exprNode   `json:"cond"`
			Then []stmtNode `json:"then"`
			Else []stmtNode `json:"else"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.IfStmt{Cond: v.Cond.E, Then: stmtsToIR(v.Then), Else: stmtsToIR(v.Else)}
	case "for":
		var v struct {
			Init stmtNode   `json:"init"`
			Cond exprNode   `json:"cond"`
			Step stmtNode   `json:"step"`
			Body []stmtNode `json:"body"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.ForStmt{Init: v.Init.S, Cond: v.Cond.E, Step: v.Step.S, Body: stmtsToIR(v.Body)}
	case "while":
		var v struct {
			Cond exprNode   `json:"cond"`
			Body []stmtNode `json:"body"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.WhileStmt{Cond: v.Cond.E, Body: stmtsToIR(v.Body)}
	case "dowhile":
		var v struct {
			Body []stmtNode `json:"body"`
			Cond exprNode   `json:"cond"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.DoWhileStmt{Body: stmtsToIR(v.Body), Cond: v.Cond.E}
	case "block":
		var v struct {
			Body []stmtNode `json:"body"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.BlockStmt{Body: stmtsToIR(v.Body)}
	case "return":
		var v struct {
			Values []exprNode `json:"values"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.ReturnStmt{Values: exprsToIR(v.Values)}
	case "emit":
		var v struct {
			Event string     `json:"event"`
			Args  []exprNode `json:"args"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.EmitStmt{Event: v.Event, Args: exprsToIR(v.Args)}
	case "revert":
		var v struct {
			Error   string     `json:"error"`
			Args    []exprNode `json:"args"`
			Message string     `json:"message"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.RevertStmt{Error: v.Error, Args: exprsToIR(v.Args), Message: v.Message}
	case "require":
		var v struct {
			Cond    exprNode `json:"cond"`
			Message string   `json:"message"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.RequireStmt{Cond: v.Cond.E, Message: v.Message}
	case "break":
		n.S = &core.BreakStmt{}
	case "continue":
		n.S = &core.ContinueStmt{}
	case "exprstmt":
		var v struct {
			X exprNode `json:"x"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.ExprStmt{X: v.X.E}
	case "unchecked":
		var v struct {
			Body []stmtNode `json:"body"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		n.S = &core.UncheckedStmt{Body: stmtsToIR(v.Body)}
	case "try":
		var v struct {
			Call       exprNode    `json:"call"`
			ReturnVars []jsonParam `json:"returnVars"`
			Body       []stmtNode  `json:"body"`
			Catches    []struct {
				ErrorName string      `json:"errorName"`
				Params    []jsonParam `json:"params"`
				Body      []stmtNode  `json:"body"`
			} `json:"catches"`
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		try := &core.TryStmt{Call: v.Call.E, ReturnVars: paramsToIR(v.ReturnVars), Body: stmtsToIR(v.Body)}
		for _, c := range v.Catches {
			try.Catches = append(try.Catches, core.CatchClause{ErrorName: c.ErrorName, Params: paramsToIR(c.Params), Body: stmtsToIR(c.Body)})
		}
		n.S = try
	case "placeholder":
		n.S = &core.PlaceholderStmt{}
	default:
		return fmt.Errorf("unknown stmt kind %q", head.Stmt)
	}
	return nil
}

var binOpNames = map[string]core.BinOp{
	"add": core.OpAdd, "sub": core.OpSub, "mul": core.OpMul, "div": core.OpDiv, "mod": core.OpMod, "exp": core.OpExp,
	"eq": core.OpEq, "neq": core.OpNeq, "lt": core.OpLt, "lte": core.OpLte, "gt": core.OpGt, "gte": core.OpGte,
	"and": core.OpAnd, "or": core.OpOr, "bitand": core.OpBitAnd, "bitor": core.OpBitOr, "bitxor": core.OpBitXor,
	"shl": core.OpShl, "shr": core.OpShr,
}

func binOpFromString(s string) core.BinOp { return binOpNames[s] }

var unOpNames = map[string]core.UnOp{
	"neg": core.OpNeg, "not": core.OpNot, "bitnot": core.OpBitNot,
	"preinc": core.OpPreInc, "predec": core.OpPreDec, "postinc": core.OpPostInc, "postdec": core.OpPostDec,
}

func unOpFromString(s string) core.UnOp { return unOpNames[s] }

var assignOpNames = map[string]core.AssignOp{
	"set": core.AssignSet, "add": core.AssignAdd, "sub": core.AssignSub, "mul": core.AssignMul,
	"div": core.AssignDiv, "mod": core.AssignMod, "or": core.AssignOr, "and": core.AssignAnd, "xor": core.AssignXor,
}

func assignOpFromString(s string) core.AssignOp { return assignOpNames[s] }

func ctxFamilyFromString(s string) core.ContextAccessor {
	switch s {
	case "block":
		return core.CtxBlock
	case "tx":
		return core.CtxTx
	default:
		return core.CtxMsg
	}
}
