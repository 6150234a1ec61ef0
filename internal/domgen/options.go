package domgen

// ModuleFormat selects how the runtime helper import is written.
type ModuleFormat int

const (
	ModuleESM ModuleFormat = iota // import { a } from "m";
	ModuleCJS                     // const { a } = require("m");
)

// String returns the format name.
func (f ModuleFormat) String() string {
	if f == ModuleCJS {
		return "cjs"
	}
	return "esm"
}

// BuiltIn describes a recognized control-flow component.
type BuiltIn struct {
	// Required props must be present on every use.
	Required []string
	// Props lists every accepted prop. Empty means any prop is accepted.
	Props []string
}

// DefaultBuiltIns returns the control-flow components checked by the analyzer.
func DefaultBuiltIns() map[string]BuiltIn {
	return map[string]BuiltIn{
		"Show":          {Required: []string{"when"}, Props: []string{"when", "fallback", "keyed", "children"}},
		"For":           {Required: []string{"each"}, Props: []string{"each", "fallback", "children"}},
		"Index":         {Required: []string{"each"}, Props: []string{"each", "fallback", "children"}},
		"Switch":        {Props: []string{"fallback", "children"}},
		"Match":         {Required: []string{"when"}, Props: []string{"when", "keyed", "children"}},
		"Suspense":      {Props: []string{"fallback", "children"}},
		"SuspenseList":  {Required: []string{"revealOrder"}, Props: []string{"revealOrder", "tail", "children"}},
		"ErrorBoundary": {Props: []string{"fallback", "children"}},
		"Portal":        {Props: []string{"mount", "useShadow", "isSVG", "children"}},
		"Dynamic":       {Required: []string{"component"}},
	}
}

// Options configures a compilation.
type Options struct {
	// Module is the runtime module helpers are imported from.
	// Empty means no import line is written.
	Module string
	Format ModuleFormat

	// Delegation routes common events through a document-level listener.
	Delegation bool

	// WrapConditionals lowers reactive conditionals whose branches hold
	// markup into a block that evaluates the test separately.
	WrapConditionals bool

	// MemoWrapper wraps that test in memo() so branches are only rebuilt
	// when its truthiness changes. Without it the test is a plain thunk.
	MemoWrapper bool

	// MarkerRefs passes the placeholder node as the insert anchor instead
	// of null.
	MarkerRefs bool

	// Indent is one level of indentation in generated code.
	Indent string

	BuiltIns map[string]BuiltIn
}

// DefaultOptions returns the standard compiler configuration.
func DefaultOptions() Options {
	return Options{
		Format:           ModuleESM,
		Delegation:       true,
		WrapConditionals: true,
		MemoWrapper:      true,
		Indent:           "    ",
		BuiltIns:         DefaultBuiltIns(),
	}
}

// delegatedEvents are the events handled by delegation when it is enabled.
var delegatedEvents = map[string]bool{
	"click":       true,
	"dblclick":    true,
	"input":       true,
	"change":      true,
	"submit":      true,
	"focus":       true,
	"blur":        true,
	"keydown":     true,
	"keyup":       true,
	"keypress":    true,
	"mousedown":   true,
	"mouseup":     true,
	"pointerdown": true,
	"pointerup":   true,
	"touchstart":  true,
	"touchend":    true,
}
