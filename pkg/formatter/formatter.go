// Package formatter runs emitted Move source through an optional external
// formatter plugin compiled to WASM (SPEC_FULL.md §11's post-emission
// formatter hook). Adapted from the teacher's core/virtual_machine.go
// HeavyVM.Execute: the same per-call engine/store/module/instance sequence
// and exported-memory convention, minus the gas-metered host-function
// imports a full Move VM would need — a formatter plugin is a pure
// bytes-in/bytes-out transform with no ledger to touch.
package formatter

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/wasmerio/wasmer-go/wasmer"
)

// Formatter loads a WASM-compiled Move source formatter once and reuses its
// compiled module across calls; each Format call gets its own instance so
// plugin state never leaks between contracts.
type Formatter struct {
	engine *wasmer.Engine
	module *wasmer.Module
}

// Load compiles the formatter plugin at wasmPath. The plugin must export
// "memory", "alloc(len: i32) -> ptr: i32", and
// "format(ptr: i32, len: i32) -> packed: i64" where packed is
// (out_ptr << 32) | out_len.
func Load(wasmPath string) (*Formatter, error) {
	code, err := os.ReadFile(wasmPath)
	if err != nil {
		return nil, fmt.Errorf("read formatter plugin %s: %w", wasmPath, err)
	}
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	mod, err := wasmer.NewModule(store, code)
	if err != nil {
		return nil, fmt.Errorf("compile formatter plugin: %w", err)
	}
	return &Formatter{engine: engine, module: mod}, nil
}

// Format runs one Move source string through the plugin's exported
// "format" function and returns the reformatted source.
func (f *Formatter) Format(source string) (string, error) {
	store := wasmer.NewStore(f.engine)
	instance, err := wasmer.NewInstance(f.module, wasmer.NewImportObject())
	if err != nil {
		return "", fmt.Errorf("instantiate formatter plugin: %w", err)
	}

	mem, err := instance.Exports.GetMemory("memory")
	if err != nil {
		return "", errors.New("formatter plugin missing memory export")
	}
	alloc, err := instance.Exports.GetFunction("alloc")
	if err != nil {
		return "", errors.New("formatter plugin missing alloc export")
	}
	format, err := instance.Exports.GetFunction("format")
	if err != nil {
		return "", errors.New("formatter plugin missing format export")
	}

	src := []byte(source)
	inPtrVal, err := alloc(int32(len(src)))
	if err != nil {
		return "", fmt.Errorf("formatter plugin alloc: %w", err)
	}
	inPtr := inPtrVal.(int32)
	copy(mem.Data()[inPtr:int(inPtr)+len(src)], src)

	packedVal, err := format(inPtr, int32(len(src)))
	if err != nil {
		return "", fmt.Errorf("formatter plugin format: %w", err)
	}
	packed := packedVal.(int64)
	outPtr, outLen := unpackPtrLen(packed)

	data := mem.Data()
	if int(outPtr)+int(outLen) > len(data) {
		return "", fmt.Errorf("formatter plugin returned out-of-bounds span")
	}
	out := make([]byte, outLen)
	copy(out, data[outPtr:int(outPtr)+int(outLen)])

	_ = store // created per call but not passed to NewInstance, which instantiates f.module directly
	return string(out), nil
}

func unpackPtrLen(packed int64) (ptr, length int32) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(packed))
	ptr = int32(binary.BigEndian.Uint32(b[0:4]))
	length = int32(binary.BigEndian.Uint32(b[4:8]))
	return
}
