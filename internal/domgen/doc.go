// Package domgen compiles JSX markup embedded in JavaScript into reactive DOM
// construction code.
//
// The pipeline consists of:
//   - host scan: [hostjs.Scan] finds every JSX expression in the file
//   - [Lexer] and [Parser]: build a markup AST for each expression
//   - [Analyzer]: classifies attributes and children as static or dynamic
//     and validates built-in control-flow components
//   - extraction: collapses static markup into deduplicated templates
//   - [Generator]: emits template instantiation, bindings and component calls
//
// [Compile] runs the whole pipeline and splices the generated code back into
// the host source.
package domgen
