package survey

// QuestionType identifies one of the closed set of question kinds.
type QuestionType string

// Answerable input types.
const (
	TypeShortText   QuestionType = "short_text"
	TypeLongText    QuestionType = "long_text"
	TypeEmail       QuestionType = "email"
	TypePhone       QuestionType = "phone"
	TypeNumber      QuestionType = "number"
	TypeDate        QuestionType = "date"
	TypeTime        QuestionType = "time"
	TypeURL         QuestionType = "url"
	TypeChoice      QuestionType = "multiple_choice"
	TypeCheckbox    QuestionType = "checkbox"
	TypeDropdown    QuestionType = "dropdown"
	TypeYesNo       QuestionType = "yes_no"
	TypePicture     QuestionType = "picture_choice"
	TypeRating      QuestionType = "rating"
	TypeNPS         QuestionType = "nps"
	TypeOpinion     QuestionType = "opinion_scale"
	TypeSlider      QuestionType = "slider"
	TypeLikert      QuestionType = "likert"
	TypeMatrix      QuestionType = "matrix"
	TypeRanking     QuestionType = "ranking"
	TypeConstantSum QuestionType = "constant_sum"
	TypeAddress     QuestionType = "address"
	TypeContactInfo QuestionType = "contact_info"
	TypeLegal       QuestionType = "legal"
)

// Non-answerable display types. These render content but collect nothing,
// so proceed validation always passes for them.
const (
	TypeWelcome   QuestionType = "welcome_screen"
	TypeEnd       QuestionType = "end_screen"
	TypeSection   QuestionType = "section_header"
	TypeStatement QuestionType = "statement"
)

// displayTypes is the set of non-answerable kinds.
var displayTypes = map[QuestionType]bool{
	TypeWelcome:   true,
	TypeEnd:       true,
	TypeSection:   true,
	TypeStatement: true,
}

// IsDisplay reports whether the type collects no answer.
func (t QuestionType) IsDisplay() bool {
	return displayTypes[t]
}

// Question is a single entry in the survey sequence.
//
// ID must be unique and stable across the survey lifetime - answers,
// logic conditions, and piping tokens all reference questions by id.
// Options, when present, must be unique within the question.
type Question struct {
	ID          string       `json:"id" yaml:"id"`
	Type        QuestionType `json:"type" yaml:"type"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Settings    Settings     `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Settings is the per-question configuration bag. All fields are
// optional; a zero Settings means "plain question, always shown,
// linear flow, static options".
type Settings struct {
	Skip   *SkipLogic    `json:"skip_logic,omitempty" yaml:"skip_logic,omitempty"`
	Branch *BranchLogic  `json:"branch_logic,omitempty" yaml:"branch_logic,omitempty"`
	Source *OptionSource `json:"option_source,omitempty" yaml:"option_source,omitempty"`

	// Type-specific settings.
	ScaleMin  int      `json:"scale_min,omitempty" yaml:"scale_min,omitempty"`
	ScaleMax  int      `json:"scale_max,omitempty" yaml:"scale_max,omitempty"`
	LeftLabel string   `json:"left_label,omitempty" yaml:"left_label,omitempty"`
	RightLabel string  `json:"right_label,omitempty" yaml:"right_label,omitempty"`
	Rows      []string `json:"rows,omitempty" yaml:"rows,omitempty"`

	// Total is the required allocation sum for constant_sum questions.
	Total float64 `json:"total,omitempty" yaml:"total,omitempty"`
}
