// Package survey defines the questionnaire data model: questions, the
// per-question logic configuration (skip logic, branch logic, option
// sources), and the Survey container holding the ordered question
// sequence.
//
// The model is configuration, not behavior. All flow decisions live in
// the engine package; all authoring-time checks live in the validate
// package. Types here carry JSON tags because survey definitions are
// authored as JSON or YAML documents and loaded by the loader package.
//
// INVARIANT: the question sequence order is the sole addressing
// mechanism for before/after relationships. Validation and carry-forward
// both reason about positions, never about ids alone.
package survey
