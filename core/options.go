package core

// options.go – the `transpile(source, options)` configuration record
// (spec §6). Mapstructure-tagged so pkg/config can load it from YAML/env via
// viper the same way the teacher's pkg/config.Config is loaded.

// MappingType selects the Move table type backing Solidity mappings.
type MappingType string

const (
	MappingTable      MappingType = "table"
	MappingSmartTable MappingType = "smart-table"
)

// AccessControlStyle selects how onlyOwner-shaped modifiers are compiled.
type AccessControlStyle string

const (
	AccessInlineAssert AccessControlStyle = "inline-assert"
	AccessCapability   AccessControlStyle = "capability"
)

// UpgradeabilityStyle selects the deployed-resource addressing scheme.
type UpgradeabilityStyle string

const (
	UpgradeImmutable       UpgradeabilityStyle = "immutable"
	UpgradeResourceAccount UpgradeabilityStyle = "resource-account"
)

// OptionalValuesStyle selects how a nil-initialized address field is
// represented.
type OptionalValuesStyle string

const (
	OptionalSentinel OptionalValuesStyle = "sentinel"
	OptionalOption   OptionalValuesStyle = "option-type"
)

// CallStyle selects interface-call rendering.
type CallStyle string

const (
	CallModuleQualified CallStyle = "module-qualified"
	CallReceiver        CallStyle = "receiver"
)

// ReentrancyPattern selects nonReentrant modifier codegen.
type ReentrancyPattern string

const (
	ReentrancyMutex ReentrancyPattern = "mutex"
	ReentrancyNone  ReentrancyPattern = "none"
)

// ConstructorPattern selects one of the three deployment patterns (spec §4.3).
type ConstructorPattern string

const (
	ConstructorResourceAccount ConstructorPattern = "resource-account"
	ConstructorDeployerDirect  ConstructorPattern = "deployer-direct"
	ConstructorNamedObject     ConstructorPattern = "named-object"
)

// InternalVisibility selects the Move visibility used for internal/private
// Solidity functions.
type InternalVisibility string

const (
	InternalPublicPackage InternalVisibility = "public-package"
	InternalPublicFriend  InternalVisibility = "public-friend"
	InternalPrivate       InternalVisibility = "private"
)

// StringType selects the Move representation of Solidity `string`.
type StringType string

const (
	StringAsUTF8  StringType = "string"
	StringAsBytes StringType = "bytes"
)

// EnumStyle selects how Solidity enums are compiled.
type EnumStyle string

const (
	EnumNative      EnumStyle = "native-enum"
	EnumU8Constants EnumStyle = "u8-constants"
)

// OverflowBehavior selects arithmetic semantics inside `unchecked { }` blocks.
type OverflowBehavior string

const (
	OverflowAbort    OverflowBehavior = "abort"
	OverflowWrapping OverflowBehavior = "wrapping"
)

// ViewFunctionBehavior selects whether view functions get a `#[view]`
// attribute.
type ViewFunctionBehavior string

const (
	ViewAnnotate ViewFunctionBehavior = "annotate"
	ViewSkip     ViewFunctionBehavior = "skip"
)

// ErrorStyle selects abort-code rendering verbosity.
type ErrorStyle string

const (
	ErrorAbortCodes   ErrorStyle = "abort-codes"
	ErrorAbortVerbose ErrorStyle = "abort-verbose"
)

// EventPattern selects how Solidity events are compiled.
type EventPattern string

const (
	EventNative      EventPattern = "native"
	EventHandle      EventPattern = "event-handle"
	EventPatternNone EventPattern = "none"
)

// OptimizationLevel selects the resource-planner aggressiveness (spec §4.4).
type OptimizationLevel string

const (
	OptLow    OptimizationLevel = "low"
	OptMedium OptimizationLevel = "medium"
	OptHigh   OptimizationLevel = "high"
)

// Options is the full configuration record accepted by Translate
// (spec §6, "CLI").
type Options struct {
	ModuleAddress      string               `mapstructure:"module_address"`
	PackageName        string               `mapstructure:"package_name"`
	OptimizationLevel  OptimizationLevel    `mapstructure:"optimization_level"`
	MappingType        MappingType          `mapstructure:"mapping_type"`
	AccessControl      AccessControlStyle   `mapstructure:"access_control"`
	Upgradeability     UpgradeabilityStyle  `mapstructure:"upgradeability"`
	OptionalValues     OptionalValuesStyle  `mapstructure:"optional_values"`
	CallStyle          CallStyle            `mapstructure:"call_style"`
	ReentrancyPattern  ReentrancyPattern    `mapstructure:"reentrancy_pattern"`
	ConstructorPattern ConstructorPattern   `mapstructure:"constructor_pattern"`
	InternalVisibility InternalVisibility   `mapstructure:"internal_visibility"`
	StringType         StringType           `mapstructure:"string_type"`
	EnumStyle          EnumStyle            `mapstructure:"enum_style"`
	OverflowBehavior   OverflowBehavior     `mapstructure:"overflow_behavior"`
	ViewFunctionBehavior ViewFunctionBehavior `mapstructure:"view_function_behavior"`
	ErrorStyle         ErrorStyle           `mapstructure:"error_style"`
	EventPattern       EventPattern         `mapstructure:"event_pattern"`
	UseInlineFunctions bool                 `mapstructure:"use_inline_functions"`
	EmitSourceComments bool                 `mapstructure:"emit_source_comments"`
	StrictMode         bool                 `mapstructure:"strict_mode"`
	GenerateSpecs      bool                 `mapstructure:"generate_specs"`
	GenerateManifest   bool                 `mapstructure:"generate_manifest"`
	SignerParamName    string               `mapstructure:"signer_param_name"`
}

// DefaultOptions returns the baseline configuration: medium optimization,
// plain tables, inline-assert access control, deployer-direct constructors —
// the least surprising choice along each axis.
func DefaultOptions() Options {
	return Options{
		ModuleAddress:        "0x1",
		PackageName:          "transpiled",
		OptimizationLevel:    OptMedium,
		MappingType:          MappingTable,
		AccessControl:        AccessInlineAssert,
		Upgradeability:       UpgradeImmutable,
		OptionalValues:       OptionalSentinel,
		CallStyle:            CallModuleQualified,
		ReentrancyPattern:    ReentrancyMutex,
		ConstructorPattern:   ConstructorDeployerDirect,
		InternalVisibility:   InternalPrivate,
		StringType:           StringAsUTF8,
		EnumStyle:            EnumNative,
		OverflowBehavior:     OverflowAbort,
		ViewFunctionBehavior: ViewAnnotate,
		ErrorStyle:           ErrorAbortCodes,
		EventPattern:         EventNative,
		UseInlineFunctions:   false,
		EmitSourceComments:   true,
		StrictMode:           false,
		GenerateSpecs:        false,
		GenerateManifest:     true,
		SignerParamName:      "account",
	}
}
