package core

// typemapper.go – the type mapper (spec §4.1). A pure function of a Type
// and Options: identical inputs must produce identical output, with no
// reliance on translation-context state (deterministic / idempotent, per
// spec). Diagnostics from mapping decisions are returned alongside the
// mapped type rather than written to a shared collector, keeping the
// mapper itself side-effect free; callers (the transformer) forward them
// into the per-contract TranslationContext.

import (
	"fmt"

	"github.com/holiman/uint256"
)

// standardUnsignedWidths are the widths Move natively supports.
var standardUnsignedWidths = []int{8, 16, 32, 64, 128, 256}

// nextStandardWidth rounds width up to the next supported unsigned width
// (spec §4.1: "Non-standard widths round up to the next power-of-two
// supported width").
func nextStandardWidth(width int) (int, bool) {
	for _, w := range standardUnsignedWidths {
		if width <= w {
			return w, true
		}
	}
	return 0, false
}

// MapTypeResult pairs the mapped MoveType with any diagnostics the decision
// produced.
type MapTypeResult struct {
	Type  *MoveType
	Diags []Diagnostic
}

// MapType converts one IR Type to its Move representation, per the rules of
// spec §4.1. It never mutates t.
func MapType(t *Type, opts Options) MapTypeResult {
	switch t.Kind {
	case TypeInt:
		return mapIntType(t, opts)
	case TypeBool:
		return MapTypeResult{Type: &MoveType{Name: "bool"}}
	case TypeAddress:
		if opts.OptionalValues == OptionalOption {
			return MapTypeResult{Type: &MoveType{Name: "Option", Generics: []*MoveType{{Name: "address"}}}}
		}
		return MapTypeResult{Type: &MoveType{Name: "address"}}
	case TypeBytes:
		if t.FixedLen >= 0 {
			return MapTypeResult{Type: &MoveType{Name: "vector", Generics: []*MoveType{{Name: "u8"}}}}
		}
		return MapTypeResult{Type: &MoveType{Name: "vector", Generics: []*MoveType{{Name: "u8"}}}}
	case TypeString:
		if opts.StringType == StringAsBytes {
			return MapTypeResult{Type: &MoveType{Name: "vector", Generics: []*MoveType{{Name: "u8"}}}}
		}
		return MapTypeResult{Type: &MoveType{Name: "String", Generics: nil}}
	case TypeMapping:
		return mapMappingType(t, opts)
	case TypeArray:
		return mapArrayType(t, opts)
	case TypeTuple:
		elems := make([]*MoveType, 0, len(t.Tuple))
		var diags []Diagnostic
		for _, e := range t.Tuple {
			r := MapType(e, opts)
			elems = append(elems, r.Type)
			diags = append(diags, r.Diags...)
		}
		return MapTypeResult{Type: &MoveType{Name: "tuple", Generics: elems}, Diags: diags}
	case TypeNamed:
		return MapTypeResult{Type: &MoveType{Name: t.Name}}
	default:
		return MapTypeResult{Type: &MoveType{Name: "u64"}, Diags: []Diagnostic{{
			Severity: SeverityError, Code: "internal-invariant",
			Message: fmt.Sprintf("unknown IR type kind %d for %q", t.Kind, t.SrcName),
		}}}
	}
}

func mapIntType(t *Type, opts Options) MapTypeResult {
	if !t.Signed {
		width, ok := nextStandardWidth(t.Width)
		if !ok {
			// t.Width > 256 never happens for Solidity integers (max is 256),
			// but guard it anyway rather than silently truncating.
			return MapTypeResult{Type: &MoveType{Name: "u256"}, Diags: []Diagnostic{{
				Severity: SeverityWarning, Code: DiagNarrowing,
				Message: fmt.Sprintf("width %d exceeds u256; clamped", t.Width),
			}}}
		}
		res := MapTypeResult{Type: &MoveType{Name: fmt.Sprintf("u%d", width)}}
		if width != t.Width {
			res.Diags = append(res.Diags, Diagnostic{
				Severity: SeverityWarning, Code: DiagWidening,
				Message: fmt.Sprintf("%s widened to u%d (no native u%d in Move)", t.SrcName, width, t.Width),
			})
		}
		return res
	}
	return mapSignedInt(t, opts)
}

// mapSignedInt implements the unsigned-fallback path from spec §9's open
// question: Move has no signed integer primitive at any width, so the
// "widen to the next available signed width" path never has a target to
// widen into — every signed integer takes the unsigned-fallback path,
// mapped to the next standard unsigned width and flagged explicitly
// (DESIGN.md §Open Questions #2).
func mapSignedInt(t *Type, opts Options) MapTypeResult {
	width, ok := nextStandardWidth(t.Width)
	if !ok {
		width = 256
	}
	return MapTypeResult{
		Type: &MoveType{Name: fmt.Sprintf("u%d", width)},
		Diags: []Diagnostic{{
			Severity: SeverityWarning, Code: DiagSignedFallback,
			Message: fmt.Sprintf("%s has no Move signed counterpart; mapped to unsigned u%d — sign must be tracked by the caller", t.SrcName, width),
		}},
	}
}

func mapMappingType(t *Type, opts Options) MapTypeResult {
	tableName := "Table"
	if opts.MappingType == MappingSmartTable {
		tableName = "SmartTable"
	}
	keyRes := MapType(t.Key, opts)
	valRes := MapType(t.Value, opts)
	diags := append(keyRes.Diags, valRes.Diags...)
	return MapTypeResult{
		Type:  &MoveType{Name: tableName, Generics: []*MoveType{keyRes.Type, valRes.Type}},
		Diags: diags,
	}
}

func mapArrayType(t *Type, opts Options) MapTypeResult {
	elemRes := MapType(t.Value, opts)
	// Fixed-length arrays still map to vector<T>; Move has no dependent
	// fixed-size array type, so the length is enforced (if at all) by the
	// transformer inserting a length assertion at construction sites, not
	// by the type itself.
	return MapTypeResult{Type: &MoveType{Name: "vector", Generics: []*MoveType{elemRes.Type}}, Diags: elemRes.Diags}
}

// FitsU256 reports whether a decimal literal value fits in 256 bits,
// used by the expression transformer when folding numeric literals.
func FitsU256(decimal string) bool {
	v, err := uint256.FromDecimal(decimal)
	return err == nil && v != nil
}
