package main

import (
	"testing"

	"sol2move/core"
)

// TestExitCodeFor covers the three exit paths SPEC_FULL.md §12 names: 0 for
// success, 1 for errors degraded under permissive mode, 2 for a strict-mode
// hard failure.
func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		name   string
		result core.TranslationResult
		strict bool
		want   int
	}{
		{
			name:   "success",
			result: core.TranslationResult{Success: true},
			strict: false,
			want:   0,
		},
		{
			name:   "success ignores strict flag",
			result: core.TranslationResult{Success: true},
			strict: true,
			want:   0,
		},
		{
			name:   "errors degrade under permissive mode",
			result: core.TranslationResult{Success: false, Errors: []core.Diagnostic{{Message: "bad"}}},
			strict: false,
			want:   1,
		},
		{
			name:   "errors hard-fail under strict mode",
			result: core.TranslationResult{Success: false, Errors: []core.Diagnostic{{Message: "bad"}}},
			strict: true,
			want:   2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := exitCodeFor(tc.result, tc.strict)
			if got != tc.want {
				t.Fatalf("exitCodeFor() = %d, want %d", got, tc.want)
			}
		})
	}
}
