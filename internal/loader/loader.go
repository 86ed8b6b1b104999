// Package loader reads survey definitions and answer files from disk.
//
// Definitions are authored as YAML or JSON. Decoding is strict (unknown
// fields are rejected, catching typos like "skip_logc"), and the decoded
// document is unified with an embedded CUE schema before it is accepted,
// so enum typos and missing required fields fail at load time with a
// useful message instead of degrading silently at respondent time.
package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	"gopkg.in/yaml.v3"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/survey"
)

//go:embed schema.cue
var schemaCUE string

// Error code constants - unified across all load failures.
const (
	ErrCodeNotFound    = "E001" // file not found or unreadable
	ErrCodeBadFormat   = "E002" // unsupported file extension
	ErrCodeParseFailed = "E003" // YAML/JSON decode error
	ErrCodeSchema      = "E004" // CUE schema violation
	ErrCodeBadAnswers  = "E005" // answers file decode error
)

// LoadError is a coded survey-loading failure.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

// LoadSurvey reads, decodes, and schema-validates a survey definition.
// The extension selects the decoder: .yaml/.yml or .json.
func LoadSurvey(path string) (*survey.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	var s survey.Survey
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true) // Reject unknown fields
		if err := dec.Decode(&s); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: err.Error()}
		}
	default:
		return nil, &LoadError{Code: ErrCodeBadFormat, Path: path, Message: "expected .yaml, .yml, or .json"}
	}

	if err := validateSchema(path, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// validateSchema unifies the decoded definition with the embedded CUE
// schema. The decoded struct is re-serialized to JSON first so both
// YAML and JSON sources validate through the same path.
func validateSchema(path string, s *survey.Survey) error {
	data, err := json.Marshal(s)
	if err != nil {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: err.Error()}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile embedded schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Survey"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Survey definition: %w", err)
	}

	expr, err := cuejson.Extract(path, data)
	if err != nil {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: err.Error()}
	}

	unified := def.Unify(ctx.BuildExpr(expr))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &LoadError{
			Code:    ErrCodeSchema,
			Path:    path,
			Message: cueerrors.Details(err, nil),
		}
	}

	return nil
}

// LoadAnswers reads a JSON answers file: an object mapping question ids
// to answer values in their wire shapes.
func LoadAnswers(path string) (answer.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	var m answer.Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &LoadError{Code: ErrCodeBadAnswers, Path: path, Message: err.Error()}
	}
	return m, nil
}
