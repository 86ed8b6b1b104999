// Package harness executes YAML conformance scenarios against the flow
// engine.
//
// A scenario names a survey definition, a sequence of respondent steps
// (answer, next, back), and assertions over the resulting traversal.
// Scenario execution is fully deterministic, so traces are also checked
// against golden files: any change to engine semantics shows up as a
// golden diff before it ships.
package harness
