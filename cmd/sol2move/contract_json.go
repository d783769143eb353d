package main

// contract_json.go adapts a JSON-serialized parsed-contract document into a
// core.FrontendContract, standing in for the real front-end binding
// (core/irbuild.go's header names cgo, a subprocess, or a
// WASM-compiled parser as the eventual source; a JSON document is the
// simplest thing that satisfies the same boundary for this CLI).

import (
	"encoding/json"
	"fmt"
	"os"

	"sol2move/core"
)

// loadFrontendContract reads path as a JSON document and builds the
// core.FrontendContract the pipeline expects.
func loadFrontendContract(path string) (core.FrontendContract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc jsonContract
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var stateVars []core.FrontendStateVar
	for _, sv := range doc.StateVariables {
		stateVars = append(stateVars, core.FrontendStateVar{
			Name:        sv.Name,
			Type:        (*core.Type)(sv.Type),
			Mutability:  mutabilityFromString(sv.Mutability),
			Visibility:  visibilityFromString(sv.Visibility),
			Initializer: sv.Initializer.E,
		})
	}

	var events []core.FrontendEvent
	for _, e := range doc.Events {
		events = append(events, core.FrontendEvent{Name: e.Name, Params: eventParamsToIR(e.Params)})
	}

	var enums []core.FrontendEnum
	for _, e := range doc.Enums {
		enums = append(enums, core.FrontendEnum{Name: e.Name, Variants: e.Variants})
	}

	var structs []core.FrontendStruct
	for _, s := range doc.Structs {
		structs = append(structs, core.FrontendStruct{Name: s.Name, Fields: structFieldsToIR(s.Fields)})
	}

	var modifiers []core.FrontendModifier
	for _, m := range doc.Modifiers {
		modifiers = append(modifiers, core.FrontendModifier{
			Name:   m.Name,
			Params: paramsToIR(m.Params),
			Body:   stmtsToIR(m.Body),
		})
	}

	var constructor *core.FrontendFunction
	if doc.Constructor != nil {
		f := functionToIR(*doc.Constructor)
		f.IsConstructor = true
		constructor = &f
	}

	var functions []core.FrontendFunction
	for _, f := range doc.Functions {
		functions = append(functions, functionToIR(f))
	}

	return core.NewStaticContract(doc.Name, stateVars, events, enums, structs, modifiers, constructor, functions), nil
}

// --- top-level document shape ---------------------------------------------

type jsonContract struct {
	Name           string             `json:"name"`
	StateVariables []jsonStateVar     `json:"stateVariables"`
	Events         []jsonEvent        `json:"events"`
	Enums          []jsonEnum         `json:"enums"`
	Structs        []jsonStruct       `json:"structs"`
	Modifiers      []jsonModifier     `json:"modifiers"`
	Constructor    *jsonFunction      `json:"constructor"`
	Functions      []jsonFunction     `json:"functions"`
}

type jsonStateVar struct {
	Name        string   `json:"name"`
	Type        *irType  `json:"type"`
	Mutability  string   `json:"mutability"`
	Visibility  string   `json:"visibility"`
	Initializer exprNode `json:"initializer"`
}

type jsonEvent struct {
	Name   string           `json:"name"`
	Params []jsonEventParam `json:"params"`
}

type jsonEventParam struct {
	Name    string  `json:"name"`
	Type    *irType `json:"type"`
	Indexed bool    `json:"indexed"`
}

type jsonEnum struct {
	Name     string   `json:"name"`
	Variants []string `json:"variants"`
}

type jsonStruct struct {
	Name   string            `json:"name"`
	Fields []jsonStructField `json:"fields"`
}

type jsonStructField struct {
	Name string  `json:"name"`
	Type *irType `json:"type"`
}

type jsonParam struct {
	Name string  `json:"name"`
	Type *irType `json:"type"`
}

type jsonModifierInvocation struct {
	Name string     `json:"name"`
	Args []exprNode `json:"args"`
}

type jsonModifier struct {
	Name   string      `json:"name"`
	Params []jsonParam `json:"params"`
	Body   []stmtNode  `json:"body"`
}

type jsonFunction struct {
	Name          string                   `json:"name"`
	Visibility    string                   `json:"visibility"`
	StateMut      string                   `json:"stateMut"`
	Params        []jsonParam              `json:"params"`
	Returns       []jsonParam              `json:"returns"`
	Modifiers     []jsonModifierInvocation `json:"modifiers"`
	Body          []stmtNode               `json:"body"`
	IsConstructor bool                     `json:"isConstructor"`
	IsReceive     bool                     `json:"isReceive"`
	IsFallback    bool                     `json:"isFallback"`
}

func functionToIR(f jsonFunction) core.FrontendFunction {
	return core.FrontendFunction{
		Name:          f.Name,
		Visibility:    visibilityFromString(f.Visibility),
		StateMut:      stateMutFromString(f.StateMut),
		Params:        paramsToIR(f.Params),
		Returns:       paramsToIR(f.Returns),
		Modifiers:     modifierInvocationsToIR(f.Modifiers),
		Body:          stmtsToIR(f.Body),
		IsConstructor: f.IsConstructor,
		IsReceive:     f.IsReceive,
		IsFallback:    f.IsFallback,
	}
}

func paramsToIR(ps []jsonParam) []core.Param {
	out := make([]core.Param, 0, len(ps))
	for _, p := range ps {
		out = append(out, core.Param{Name: p.Name, Type: (*core.Type)(p.Type)})
	}
	return out
}

func eventParamsToIR(ps []jsonEventParam) []core.EventParam {
	out := make([]core.EventParam, 0, len(ps))
	for _, p := range ps {
		out = append(out, core.EventParam{Name: p.Name, Type: (*core.Type)(p.Type), Indexed: p.Indexed})
	}
	return out
}

func structFieldsToIR(fs []jsonStructField) []core.StructField {
	out := make([]core.StructField, 0, len(fs))
	for _, f := range fs {
		out = append(out, core.StructField{Name: f.Name, Type: (*core.Type)(f.Type)})
	}
	return out
}

func modifierInvocationsToIR(ms []jsonModifierInvocation) []core.ModifierInvocation {
	out := make([]core.ModifierInvocation, 0, len(ms))
	for _, m := range ms {
		out = append(out, core.ModifierInvocation{Name: m.Name, Args: exprsToIR(m.Args)})
	}
	return out
}

func exprsToIR(ns []exprNode) []core.Expr {
	out := make([]core.Expr, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.E)
	}
	return out
}

func stmtsToIR(ns []stmtNode) []core.Stmt {
	out := make([]core.Stmt, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.S)
	}
	return out
}

// --- enum-like string mappings --------------------------------------------

func mutabilityFromString(s string) core.Mutability {
	switch s {
	case "immutable":
		return core.MutImmutable
	case "constant":
		return core.MutConstant
	default:
		return core.MutMutable
	}
}

func visibilityFromString(s string) core.Visibility {
	switch s {
	case "external":
		return core.VisExternal
	case "internal":
		return core.VisInternal
	case "private":
		return core.VisPrivate
	default:
		return core.VisPublic
	}
}

func stateMutFromString(s string) core.StateMutability {
	switch s {
	case "pure":
		return core.MutPure
	case "view":
		return core.MutView
	case "payable":
		return core.MutPayable
	default:
		return core.MutNonpayable
	}
}
