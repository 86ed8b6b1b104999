// Package engine implements the questionnaire flow-control engine.
//
// The engine decides, given the ordered question list and the answers
// collected so far: whether a question is visible (skip logic), where
// the flow goes after a question (branch logic), which options a
// carry-forward question offers, and how prior answers substitute into
// question text (piping). The Navigator drives the respondent's position
// through the sequence using those resolvers.
//
// ARCHITECTURE:
//
// Pure Functions:
// Every resolver is a pure function of (questions, answers). The engine
// holds no persistent state and performs no I/O - the same answers always
// yield the same path, so a session can be replayed from its answer log
// and must land on the same positions.
//
// Evaluation Degradation:
// Malformed input never throws. A missing prior answer fails a positive
// condition, a dangling jump target falls through to the default forward
// scan, a dangling carry-forward source falls back to static options. A
// broken configuration degrades survey quality; it never blocks a
// respondent session.
//
// CRITICAL PATTERNS:
//
// Deterministic Ordering:
// Branch rules are evaluated in authored order with first-match-wins
// short-circuit. Rule order is never changed after load.
//
// Bounded Traversal:
// Branch jumps make the sequence a directed graph, and nothing stops an
// author from writing a cycle. The Navigator caps traversal steps
// (DefaultMaxSteps) so a cyclic configuration terminates the session
// instead of looping forever.
package engine
