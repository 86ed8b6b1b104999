package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios drive a respondent session through a survey and assert on
// the resulting traversal trace and final position.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Survey is the path to the survey definition file, relative to the
	// scenario file location.
	Survey string `yaml:"survey"`

	// Steps is the respondent's action sequence, applied in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and position.
	// Supported types: final_position, ended_by_branch, trail_contains,
	// trail_absent, piped_title
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single respondent action.
// Do selects the action: "answer" records Value for Question, "next"
// advances, "back" retreats.
type Step struct {
	Do       string      `yaml:"do"`
	Question string      `yaml:"question,omitempty"`
	Value    interface{} `yaml:"value,omitempty"`
}

// Step action constants.
const (
	StepAnswer = "answer"
	StepNext   = "next"
	StepBack   = "back"
)

// Assertion validates the trace or final position.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_position": the position label the session ends at
	// - "ended_by_branch": whether an end rule terminated the session
	// - "trail_contains": a position label that must appear in the trail
	// - "trail_absent": a position label that must NOT appear in the trail
	// - "piped_title": the rendered title of a question after piping
	Type string `yaml:"type"`

	// Position is a position label like "question[2]" or "submitted"
	// (used by final_position, trail_contains, trail_absent).
	Position string `yaml:"position,omitempty"`

	// Value is the expected boolean for ended_by_branch.
	Value bool `yaml:"value,omitempty"`

	// Question and Title are used by piped_title.
	Question string `yaml:"question,omitempty"`
	Title    string `yaml:"title,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalPosition = "final_position"
	AssertEndedByBranch = "ended_by_branch"
	AssertTrailContains = "trail_contains"
	AssertTrailAbsent   = "trail_absent"
	AssertPipedTitle    = "piped_title"
)

// LoadScenario reads and parses a scenario YAML file. The survey path
// is resolved relative to the scenario file's directory.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Survey != "" && !filepath.IsAbs(scenario.Survey) {
		scenario.Survey = filepath.Join(filepath.Dir(path), scenario.Survey)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Survey == "" {
		return fmt.Errorf("survey is required")
	}
	if _, err := os.Stat(s.Survey); os.IsNotExist(err) {
		return fmt.Errorf("survey file not found: %s", s.Survey)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step.Do {
		case StepAnswer:
			if step.Question == "" {
				return fmt.Errorf("steps[%d]: question is required for answer", i)
			}
			if step.Value == nil {
				return fmt.Errorf("steps[%d]: value is required for answer", i)
			}
		case StepNext, StepBack:
			// No extra fields needed.
		case "":
			return fmt.Errorf("steps[%d]: do is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown step action %q", i, step.Do)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalPosition, AssertTrailContains, AssertTrailAbsent:
		if a.Position == "" {
			return fmt.Errorf("assertions[%d]: position is required for %s", index, a.Type)
		}
	case AssertEndedByBranch:
		// Value defaults to false, which is a legitimate expectation.
	case AssertPipedTitle:
		if a.Question == "" {
			return fmt.Errorf("assertions[%d]: question is required for piped_title", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
