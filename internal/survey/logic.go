package survey

// Operator is a condition comparison operator.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"
)

// ValidOperators defines the allowed condition operators.
var ValidOperators = map[Operator]bool{
	OpEquals:      true,
	OpNotEquals:   true,
	OpContains:    true,
	OpGreaterThan: true,
	OpLessThan:    true,
	OpIsEmpty:     true,
	OpIsNotEmpty:  true,
}

// Combinator joins a list of condition results.
type Combinator string

const (
	CombineAll Combinator = "all"
	CombineAny Combinator = "any"
)

// Condition is a single atomic test against a prior answer.
//
// QuestionID references the source question whose answer is inspected.
// Value is the comparison operand as an authored string; numeric
// operators parse it as a number at evaluation time.
type Condition struct {
	QuestionID string   `json:"question_id" yaml:"question_id"`
	Operator   Operator `json:"operator" yaml:"operator"`
	Value      string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// SkipLogic decides whether the owning question is shown.
// Zero conditions (or disabled) means the question is always shown.
type SkipLogic struct {
	Enabled    bool        `json:"enabled" yaml:"enabled"`
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Combinator Combinator  `json:"combinator,omitempty" yaml:"combinator,omitempty"`
}

// ActionType is what a matched branch rule does.
type ActionType string

const (
	ActionNext ActionType = "next"
	ActionJump ActionType = "jump"
	ActionEnd  ActionType = "end"
)

// BranchAction is the outcome of a matched branch rule.
// Jump actions carry the target question id; next and end do not.
type BranchAction struct {
	Type     ActionType `json:"type" yaml:"type"`
	TargetID string     `json:"target_id,omitempty" yaml:"target_id,omitempty"`
}

// BranchRule pairs a condition list with an action.
type BranchRule struct {
	Conditions []Condition  `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Combinator Combinator   `json:"combinator,omitempty" yaml:"combinator,omitempty"`
	Action     BranchAction `json:"action" yaml:"action"`
}

// BranchLogic decides where the flow goes after the owning question.
//
// Rules are evaluated top to bottom; the FIRST satisfied rule wins.
// Rule order is authoring intent and must never be reordered.
type BranchLogic struct {
	Enabled       bool         `json:"enabled" yaml:"enabled"`
	Rules         []BranchRule `json:"rules,omitempty" yaml:"rules,omitempty"`
	DefaultAction ActionType   `json:"default_action,omitempty" yaml:"default_action,omitempty"`
}

// SourceMode selects which of a carry-forward source's options are exposed.
type SourceMode string

const (
	ModeSelected    SourceMode = "selected"
	ModeNotSelected SourceMode = "not_selected"
	ModeAll         SourceMode = "all"
)

// OptionSource configures where a question's option list comes from.
//
// Type "static" (or a nil OptionSource) uses the question's own Options.
// Type "carry_forward" derives the list from SourceQuestionID's options,
// filtered by Mode against the respondent's answer to the source.
type OptionSource struct {
	Type             string     `json:"type" yaml:"type"`
	SourceQuestionID string     `json:"source_question_id,omitempty" yaml:"source_question_id,omitempty"`
	Mode             SourceMode `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// SourceTypeCarryForward is the OptionSource.Type value enabling
// carry-forward resolution. Any other value falls back to static options.
const SourceTypeCarryForward = "carry_forward"
