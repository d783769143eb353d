package core

// context.go – the per-contract translation context (spec §9, "Globals").
// One TranslationContext is created at the start of a contract's
// translation and discarded at the end; nothing here is process-wide.

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// TranslationContext threads the options, diagnostics, and synthesized-name
// bookkeeping through every stage of one contract's translation.
type TranslationContext struct {
	ContextID string // uuid, used only as a logging correlation field
	Options   Options
	Diags     *DiagnosticCollector
	Log       *log.Entry

	abortCodes    *abortCodeCatalogue
	nextLocalTemp int
}

// NewTranslationContext creates a fresh, independent context for translating
// one contract. contractName is used only for logging.
func NewTranslationContext(opts Options, contractName string) *TranslationContext {
	id := uuid.NewString()
	return &TranslationContext{
		ContextID:  id,
		Options:    opts,
		Diags:      NewDiagnosticCollector(opts.StrictMode),
		Log:        log.WithField("ctx_id", id).WithField("contract", contractName),
		abortCodes: newAbortCodeCatalogue(),
	}
}

// FreshTempName returns a unique, never-before-used local variable name for
// this context, used by the transformer when it needs to introduce a
// temporary (e.g. a snapshot read, a deferred write-back value).
func (c *TranslationContext) FreshTempName(hint string) string {
	c.nextLocalTemp++
	return fmt.Sprintf("__%s_%d", hint, c.nextLocalTemp)
}

// ResolveAbortCode maps a require()/revert() message to its stable abort
// constant name and numeric code, registering the message in this context's
// catalogue (spec §4.2).
func (c *TranslationContext) ResolveAbortCode(message string) (string, uint64) {
	return c.abortCodes.Resolve(message)
}

// AbortConstants returns every abort-code constant registered so far,
// ready for the emitter to render as module-level MoveConstants.
func (c *TranslationContext) AbortConstants() []MoveConstant {
	return c.abortCodes.Constants()
}

// CheckAbortCodes reports an error if two distinct constant names ended up
// sharing a numeric code (spec §8 testable property).
func (c *TranslationContext) CheckAbortCodes() error {
	return c.abortCodes.checkNoDuplicateCodes()
}
