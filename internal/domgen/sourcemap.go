package domgen

import (
	"encoding/json"
	"strings"
)

// SourceMap tracks position mappings between .jsx source and generated .js files.
// All line numbers are 0-indexed.
type SourceMap struct {
	// SourceFile is the original .jsx file path
	SourceFile string `json:"sourceFile"`

	// Mappings holds one entry per replaced markup region
	Mappings []SourceMapping `json:"mappings"`
}

// SourceMapping maps the start of a generated region to its markup.
type SourceMapping struct {
	JSLine  int `json:"jsLine"`
	JSCol   int `json:"jsCol"`
	JSXLine int `json:"jsxLine"`
	JSXCol  int `json:"jsxCol"`
	// Length is the byte length of the markup region
	Length int `json:"length"`
	// Lines is the number of generated lines for the region
	Lines int `json:"lines"`
}

// NewSourceMap creates a new empty source map.
func NewSourceMap(sourceFile string) *SourceMap {
	return &SourceMap{
		SourceFile: sourceFile,
		Mappings:   make([]SourceMapping, 0),
	}
}

// AddMapping adds a new position mapping.
func (sm *SourceMap) AddMapping(m SourceMapping) {
	sm.Mappings = append(sm.Mappings, m)
}

// JSToJSX converts a generated line to the start of the markup it came from.
// Returns the input line and false if the line is not generated from markup.
func (sm *SourceMap) JSToJSX(jsLine int) (jsxLine, jsxCol int, found bool) {
	for _, m := range sm.Mappings {
		if jsLine >= m.JSLine && jsLine < m.JSLine+m.Lines {
			return m.JSXLine, m.JSXCol, true
		}
	}
	return jsLine, 0, false
}

// JSXToJS converts a markup start position to its generated position.
func (sm *SourceMap) JSXToJS(jsxLine, jsxCol int) (jsLine, jsCol int, found bool) {
	for _, m := range sm.Mappings {
		if m.JSXLine == jsxLine && m.JSXCol == jsxCol {
			return m.JSLine, m.JSCol, true
		}
	}
	return jsxLine, jsxCol, false
}

// ToJSON serializes the source map to JSON.
func (sm *SourceMap) ToJSON() ([]byte, error) {
	return json.MarshalIndent(sm, "", "  ")
}

// ParseSourceMap parses a source map from JSON.
func ParseSourceMap(data []byte) (*SourceMap, error) {
	var sm SourceMap
	if err := json.Unmarshal(data, &sm); err != nil {
		return nil, err
	}
	return &sm, nil
}

// SourceMapFileName returns the source map filename for a given generated file.
// e.g., "app.js" -> "app.js.map"
func SourceMapFileName(jsFile string) string {
	return jsFile + ".map"
}

// countLines counts the number of lines in a string.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
