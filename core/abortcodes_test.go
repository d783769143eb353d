package core

import "testing"

// TestKnownAbortPatternsUnique absorbs cmd/opcode-lint's invariant (no two
// catalogue entries share a numeric code or a constant name) against the
// fixed require()-message pattern table instead of a runtime opcode list.
func TestKnownAbortPatternsUnique(t *testing.T) {
	seenCodes := make(map[uint64]string)
	seenNames := make(map[string]bool)
	for _, p := range knownAbortPatterns {
		if other, ok := seenCodes[p.code]; ok {
			t.Fatalf("duplicate abort code %d: %s and %s", p.code, other, p.constName)
		}
		seenCodes[p.code] = p.constName
		if seenNames[p.constName] {
			t.Fatalf("duplicate abort constant name %s", p.constName)
		}
		seenNames[p.constName] = true
	}
}

func TestAbortCodeCatalogueKnownPattern(t *testing.T) {
	cat := newAbortCodeCatalogue()
	name, code := cat.Resolve("ERC20: insufficient balance")
	if name != "E_INSUFFICIENT_BALANCE" || code != 1 {
		t.Fatalf("got %s/%d, want E_INSUFFICIENT_BALANCE/1", name, code)
	}
}

func TestAbortCodeCatalogueCustomMessagesDeduped(t *testing.T) {
	cat := newAbortCodeCatalogue()
	name1, code1 := cat.Resolve("flash loan not repaid")
	name2, code2 := cat.Resolve("flash loan not repaid")
	if name1 != name2 || code1 != code2 {
		t.Fatalf("same message resolved to different constants: %s/%d vs %s/%d", name1, code1, name2, code2)
	}

	otherName, otherCode := cat.Resolve("pool already initialized")
	if otherName == name1 || otherCode == code1 {
		t.Fatalf("distinct messages collided on %s/%d", otherName, otherCode)
	}
}

func TestAbortCodeCatalogueEmptyMessage(t *testing.T) {
	cat := newAbortCodeCatalogue()
	name, code := cat.Resolve("")
	if name != "E_ASSERTION_FAILED" || code != 0 {
		t.Fatalf("got %s/%d, want E_ASSERTION_FAILED/0", name, code)
	}
}

func TestAbortCodeCatalogueNoDuplicateCodes(t *testing.T) {
	cat := newAbortCodeCatalogue()
	cat.Resolve("insufficient balance")
	cat.Resolve("custom message one")
	cat.Resolve("custom message two")
	if err := cat.checkNoDuplicateCodes(); err != nil {
		t.Fatalf("unexpected collision: %v", err)
	}

	cat.byConst["E_FORCED_COLLISION"] = cat.byConst["E_INSUFFICIENT_BALANCE"]
	if err := cat.checkNoDuplicateCodes(); err == nil {
		t.Fatal("expected a collision error after forcing one")
	}
}

func TestAbortCodeCatalogueConstantsSorted(t *testing.T) {
	cat := newAbortCodeCatalogue()
	cat.Resolve("paused")
	cat.Resolve("not owner")
	consts := cat.Constants()
	for i := 1; i < len(consts); i++ {
		if consts[i-1].Name > consts[i].Name {
			t.Fatalf("Constants() not sorted: %s before %s", consts[i-1].Name, consts[i].Name)
		}
	}
}
