package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validSurveyYAML = `id: onboarding
title: Onboarding
anonymous: true
questions:
  - id: name
    type: short_text
    title: "Your name?"
    required: true
  - id: role
    type: multiple_choice
    title: "Role?"
    options: [Engineer, Designer, Other]
    settings:
      branch_logic:
        enabled: true
        rules:
          - conditions:
              - question_id: role
                operator: equals
                value: Other
            action:
              type: end
        default_action: next
  - id: team
    type: short_text
    title: "{{name}}, which team?"
`

const danglingJumpSurveyYAML = `id: broken
title: Broken
anonymous: true
questions:
  - id: q1
    type: yes_no
    title: "Continue?"
    settings:
      branch_logic:
        enabled: true
        rules:
          - conditions:
              - question_id: q1
                operator: equals
                value: "yes"
            action:
              type: jump
              target_id: nowhere
        default_action: next
`

const validAnswersJSON = `{"name": "Ada", "role": "Engineer", "team": "Infra"}`

// writeFixture drops content into a temp file and returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
