package core

// emitter.go – renders a MoveModule into Move source text (spec §4.5). Pure
// function of the AST: no diagnostics, no lookups, no side effects. Anything
// that needed a decision has already been decided by the transformer; this
// stage only has to print correctly and consistently.

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// EmitModule renders one Move module to source text.
func EmitModule(m *MoveModule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s::%s {\n", m.Address, m.Name)

	imports := dedupImports(m.Imports)
	for _, imp := range imports {
		if imp.Alias != "" {
			fmt.Fprintf(&b, "    use %s::%s as %s;\n", imp.Address, imp.Module, imp.Alias)
		} else {
			fmt.Fprintf(&b, "    use %s::%s;\n", imp.Address, imp.Module)
		}
	}
	if len(imports) > 0 {
		b.WriteString("\n")
	}

	for _, c := range m.Constants {
		fmt.Fprintf(&b, "    const %s: %s = %s;\n", c.Name, emitType(c.Type), c.Value)
	}
	if len(m.Constants) > 0 {
		b.WriteString("\n")
	}

	for _, e := range m.Enums {
		emitEnum(&b, e)
	}

	for _, r := range m.Resources {
		emitResource(&b, r)
	}

	for _, s := range m.Structs {
		emitPlainStruct(&b, s)
	}

	for i, fn := range m.Functions {
		emitFunction(&b, fn, 1)
		if i != len(m.Functions)-1 {
			b.WriteString("\n")
		}
	}

	if len(m.SpecBlocks) > 0 {
		b.WriteString("\n")
		for _, sb := range m.SpecBlocks {
			emitSpecBlock(&b, sb)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// emitSpecBlock renders one `spec <target> { ... }` MSL block (spec §6
// "generate_specs").
func emitSpecBlock(b *strings.Builder, sb MoveSpecBlock) {
	fmt.Fprintf(b, "    spec %s {\n", sb.Target)
	for _, line := range sb.Lines {
		fmt.Fprintf(b, "        %s\n", line)
	}
	b.WriteString("    }\n")
}

func dedupImports(imports []ImportDecl) []ImportDecl {
	seen := map[string]bool{}
	var out []ImportDecl
	for _, imp := range imports {
		key := imp.Address + "::" + imp.Module + "::" + imp.Alias
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].Module < out[j].Module
	})
	return out
}

func emitType(t *MoveType) string {
	if t == nil {
		return ""
	}
	if len(t.Generics) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Generics))
	for i, g := range t.Generics {
		parts[i] = emitType(g)
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

func emitAbility(a MoveAbility) string {
	switch a {
	case AbilityCopy:
		return "copy"
	case AbilityDrop:
		return "drop"
	case AbilityStore:
		return "store"
	case AbilityKey:
		return "key"
	default:
		return ""
	}
}

func emitFieldList(b *strings.Builder, fields []MoveField) {
	for i, f := range fields {
		fmt.Fprintf(b, "        %s: %s", f.Name, emitType(f.Type))
		if i != len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
}

func emitResource(b *strings.Builder, r ResourceStruct) {
	fmt.Fprintf(b, "    struct %s has key {\n", r.Name)
	emitFieldList(b, r.Fields)
	b.WriteString("    }\n\n")
}

func emitPlainStruct(b *strings.Builder, s PlainStruct) {
	abilities := make([]string, len(s.Abilities))
	for i, a := range s.Abilities {
		abilities[i] = emitAbility(a)
	}
	if len(abilities) > 0 {
		fmt.Fprintf(b, "    struct %s has %s {\n", s.Name, strings.Join(abilities, ", "))
	} else {
		fmt.Fprintf(b, "    struct %s {\n", s.Name)
	}
	emitFieldList(b, s.Fields)
	b.WriteString("    }\n\n")
}

func emitEnum(b *strings.Builder, e MoveEnum) {
	fmt.Fprintf(b, "    enum %s has copy, drop, store {\n", e.Name)
	for i, v := range e.Variants {
		fmt.Fprintf(b, "        %s", v)
		if i != len(e.Variants)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("    }\n\n")
}

func emitFunction(b *strings.Builder, fn MoveFunction, indent int) {
	pad := strings.Repeat("    ", indent)
	if fn.SourceComment != "" {
		fmt.Fprintf(b, "%s// %s\n", pad, fn.SourceComment)
	}
	if fn.IsView {
		fmt.Fprintf(b, "%s#[view]\n", pad)
	}

	fmt.Fprintf(b, "%s%s%s%sfun %s(%s)", pad, visibilityPrefix(fn.Visibility), entryPrefix(fn.IsEntry), inlinePrefix(fn.IsInline), fn.Name, emitParams(fn.Params))

	if len(fn.Returns) == 1 {
		fmt.Fprintf(b, ": %s", emitType(fn.Returns[0]))
	} else if len(fn.Returns) > 1 {
		parts := make([]string, len(fn.Returns))
		for i, r := range fn.Returns {
			parts[i] = emitType(r)
		}
		fmt.Fprintf(b, ": (%s)", strings.Join(parts, ", "))
	}

	if len(fn.Acquires) > 0 {
		fmt.Fprintf(b, " acquires %s", strings.Join(fn.Acquires, ", "))
	}

	b.WriteString(" {\n")
	emitStmts(b, fn.Body, indent+1)
	fmt.Fprintf(b, "%s}\n", pad)
}

func visibilityPrefix(v MoveVisibility) string {
	switch v {
	case MoveVisPublic:
		return "public "
	case MoveVisPublicPackage:
		return "public(package) "
	case MoveVisPublicFriend:
		return "public(friend) "
	default:
		return ""
	}
}

func entryPrefix(isEntry bool) string {
	if isEntry {
		return "entry "
	}
	return ""
}

func inlinePrefix(isInline bool) string {
	if isInline {
		return "inline "
	}
	return ""
}

func emitParams(params []MoveParam) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.IsSignerRef {
			parts[i] = fmt.Sprintf("%s: &signer", p.Name)
		} else {
			parts[i] = fmt.Sprintf("%s: %s", p.Name, emitType(p.Type))
		}
	}
	return strings.Join(parts, ", ")
}

func emitStmts(b *strings.Builder, stmts []MoveStmt, indent int) {
	pad := strings.Repeat("    ", indent)
	for _, s := range stmts {
		emitStmt(b, s, pad, indent)
	}
}

func emitStmt(b *strings.Builder, s MoveStmt, pad string, indent int) {
	switch v := s.(type) {
	case *MoveLetStmt:
		mut := ""
		if v.Mut {
			mut = "mut "
		}
		if v.Type != nil {
			fmt.Fprintf(b, "%slet %s%s: %s = %s;\n", pad, mut, v.Name, emitType(v.Type), emitExpr(v.Value))
		} else {
			fmt.Fprintf(b, "%slet %s%s = %s;\n", pad, mut, v.Name, emitExpr(v.Value))
		}
	case *MoveAssignStmt:
		fmt.Fprintf(b, "%s%s = %s;\n", pad, emitExpr(v.Target), emitExpr(v.Value))
	case *MoveIfStmt:
		fmt.Fprintf(b, "%sif (%s) {\n", pad, emitExpr(v.Cond))
		emitStmts(b, v.Then, indent+1)
		if len(v.Else) > 0 {
			fmt.Fprintf(b, "%s} else {\n", pad)
			emitStmts(b, v.Else, indent+1)
		}
		fmt.Fprintf(b, "%s}\n", pad)
	case *MoveWhileStmt:
		fmt.Fprintf(b, "%swhile (%s) {\n", pad, emitExpr(v.Cond))
		emitStmts(b, v.Body, indent+1)
		fmt.Fprintf(b, "%s}\n", pad)
	case *MoveRangeForStmt:
		fmt.Fprintf(b, "%sfor (%s in %s..%s) {\n", pad, v.Var, emitExpr(v.Lo), emitExpr(v.Hi))
		emitStmts(b, v.Body, indent+1)
		fmt.Fprintf(b, "%s}\n", pad)
	case *MoveLoopStmt:
		fmt.Fprintf(b, "%sloop {\n", pad)
		emitStmts(b, v.Body, indent+1)
		fmt.Fprintf(b, "%s}\n", pad)
	case *MoveBreakStmt:
		fmt.Fprintf(b, "%sbreak;\n", pad)
	case *MoveContinueStmt:
		fmt.Fprintf(b, "%scontinue;\n", pad)
	case *MoveReturnStmt:
		if len(v.Values) == 0 {
			fmt.Fprintf(b, "%sreturn;\n", pad)
		} else if len(v.Values) == 1 {
			fmt.Fprintf(b, "%sreturn %s;\n", pad, emitExpr(v.Values[0]))
		} else {
			parts := make([]string, len(v.Values))
			for i, val := range v.Values {
				parts[i] = emitExpr(val)
			}
			fmt.Fprintf(b, "%sreturn (%s);\n", pad, strings.Join(parts, ", "))
		}
	case *MoveAbortStmt:
		fmt.Fprintf(b, "%sabort %s;\n", pad, emitExpr(v.Code))
	case *MoveAssertStmt:
		fmt.Fprintf(b, "%sassert!(%s, %s);\n", pad, emitExpr(v.Cond), emitExpr(v.Code))
	case *MoveExprStmt:
		fmt.Fprintf(b, "%s%s;\n", pad, emitExpr(v.X))
	}
}

func emitExpr(e MoveExpr) string {
	switch v := e.(type) {
	case *MoveNumberLit:
		if v.Type != nil {
			return v.Value + emitType(v.Type)
		}
		return v.Value
	case *MoveBoolLit:
		if v.Value {
			return "true"
		}
		return "false"
	case *MoveByteStringLit:
		if v.Hex {
			return fmt.Sprintf("x\"%s\"", hex.EncodeToString(v.Value))
		}
		return fmt.Sprintf("b\"%s\"", escapeBytes(v.Value))
	case *MoveAddressLit:
		return v.Value
	case *MoveIdent:
		return v.Name
	case *MoveFieldAccess:
		return fmt.Sprintf("%s.%s", emitExpr(v.X), v.Name)
	case *MoveBinaryExpr:
		return fmt.Sprintf("(%s %s %s)", emitExpr(v.Left), v.Op, emitExpr(v.Right))
	case *MoveUnaryExpr:
		return fmt.Sprintf("%s%s", v.Op, emitExpr(v.X))
	case *MoveCallExpr:
		return emitCall(v)
	case *MoveRefExpr:
		if v.Mut {
			return fmt.Sprintf("&mut %s", emitExpr(v.X))
		}
		return fmt.Sprintf("&%s", emitExpr(v.X))
	case *MoveCastExpr:
		return fmt.Sprintf("(%s as %s)", emitExpr(v.X), emitType(v.Target))
	case *MoveTupleExpr:
		parts := make([]string, len(v.Elems))
		for i, el := range v.Elems {
			parts[i] = emitExpr(el)
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case *MoveStructLit:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Name, emitExpr(f.Value))
		}
		return fmt.Sprintf("%s { %s }", v.Name, strings.Join(parts, ", "))
	default:
		return "/* unrenderable expression */"
	}
}

func emitCall(v *MoveCallExpr) string {
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = emitExpr(a)
	}
	argList := strings.Join(args, ", ")

	typeArgs := ""
	if len(v.TypeArgs) > 0 {
		parts := make([]string, len(v.TypeArgs))
		for i, ta := range v.TypeArgs {
			parts[i] = emitType(ta)
		}
		typeArgs = fmt.Sprintf("<%s>", strings.Join(parts, ", "))
	}

	switch {
	case v.IsMacro && v.Module == "":
		return fmt.Sprintf("%s%s(%s)", v.Name, typeArgs, argList)
	case v.Address != "" && v.Module != "":
		return fmt.Sprintf("%s::%s::%s%s(%s)", v.Address, v.Module, v.Name, typeArgs, argList)
	case v.Module != "":
		return fmt.Sprintf("%s::%s%s(%s)", v.Module, v.Name, typeArgs, argList)
	default:
		return fmt.Sprintf("%s%s(%s)", v.Name, typeArgs, argList)
	}
}

func escapeBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
