package core

// abortcodes.go – adapted from the teacher's vm_opcodes.go: the same
// "small collision-checked constant catalogue" shape, now backing the
// require()-message-to-abort-code table of spec §4.2 ("the message string
// is matched against a fixed table of patterns... to pick a stable
// abort-code constant — otherwise, a new constant is synthesized,
// de-duplicated per module").

import (
	"fmt"
	"sort"
	"strings"
)

// knownAbortPattern is one entry of the fixed require-message pattern table.
type knownAbortPattern struct {
	constName string
	code      uint64
	match     func(msg string) bool
}

func containsAny(msg string, needles ...string) bool {
	lower := strings.ToLower(msg)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// knownAbortPatterns is checked in order; the first match wins. Codes start
// at 1 — Move convention reserves 0 for "no error."
var knownAbortPatterns = []knownAbortPattern{
	{"E_INSUFFICIENT_BALANCE", 1, func(m string) bool {
		return containsAny(m, "insufficient balance", "insufficient funds", "not enough balance")
	}},
	{"E_UNAUTHORIZED", 2, func(m string) bool {
		return containsAny(m, "unauthorized", "not owner", "only owner", "caller is not", "access denied", "not authorized")
	}},
	{"E_PAUSED", 3, func(m string) bool {
		return containsAny(m, "paused", "is paused") && !containsAny(m, "not paused")
	}},
	{"E_NOT_PAUSED", 4, func(m string) bool {
		return containsAny(m, "not paused")
	}},
	{"E_OVERFLOW", 5, func(m string) bool {
		return containsAny(m, "overflow")
	}},
	{"E_UNDERFLOW", 6, func(m string) bool {
		return containsAny(m, "underflow")
	}},
	{"E_REENTRANCY", 7, func(m string) bool {
		return containsAny(m, "reentra")
	}},
	{"E_ZERO_ADDRESS", 8, func(m string) bool {
		return containsAny(m, "zero address")
	}},
	{"E_INVALID_AMOUNT", 9, func(m string) bool {
		return containsAny(m, "invalid amount", "amount must be", "amount > 0", "zero amount")
	}},
	{"E_EXPIRED", 10, func(m string) bool {
		return containsAny(m, "expired", "deadline")
	}},
}

// abortCodeCatalogue de-duplicates synthesized error-code constants within
// one module (spec §4.2, §8 "Every synthesized error-code constant in a
// module is unique").
type abortCodeCatalogue struct {
	byConst map[string]uint64
	byMsg   map[string]string // normalized message -> constant name, for custom (unrecognized) messages
	nextCustomCode uint64
}

func newAbortCodeCatalogue() *abortCodeCatalogue {
	return &abortCodeCatalogue{
		byConst:        make(map[string]uint64),
		byMsg:          make(map[string]string),
		nextCustomCode: 100, // leave room below 100 for the fixed pattern table
	}
}

// Resolve returns the stable constant name and numeric code for a require()
// message, registering it in the catalogue. Calling Resolve twice with the
// same message (even across different call sites) returns the same constant.
func (c *abortCodeCatalogue) Resolve(message string) (constName string, code uint64) {
	if message == "" {
		return "E_ASSERTION_FAILED", 0
	}
	for _, p := range knownAbortPatterns {
		if p.match(message) {
			c.byConst[p.constName] = p.code
			return p.constName, p.code
		}
	}
	norm := strings.ToLower(strings.TrimSpace(message))
	if name, ok := c.byMsg[norm]; ok {
		return name, c.byConst[name]
	}
	name := fmt.Sprintf("E_CUSTOM_%d", len(c.byMsg)+1)
	code := c.nextCustomCode
	c.nextCustomCode++
	c.byMsg[norm] = name
	c.byConst[name] = code
	return name, code
}

// Constants returns the catalogue's entries sorted by constant name, ready
// to render as MoveConstant declarations.
func (c *abortCodeCatalogue) Constants() []MoveConstant {
	names := make([]string, 0, len(c.byConst))
	for name := range c.byConst {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]MoveConstant, 0, len(names))
	for _, name := range names {
		out = append(out, MoveConstant{
			Name:  name,
			Type:  &MoveType{Name: "u64"},
			Value: fmt.Sprintf("%d", c.byConst[name]),
		})
	}
	return out
}

// checkNoDuplicateCodes is the §8 testable property as a callable check:
// every constant name maps to a unique numeric code.
func (c *abortCodeCatalogue) checkNoDuplicateCodes() error {
	seen := make(map[uint64]string)
	for name, code := range c.byConst {
		if other, ok := seen[code]; ok && other != name {
			return fmt.Errorf("abort code %d assigned to both %s and %s", code, other, name)
		}
		seen[code] = name
	}
	return nil
}
