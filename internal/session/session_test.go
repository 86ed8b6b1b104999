package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/engine"
	"github.com/pathlight/surveyflow/internal/store"
	"github.com/pathlight/surveyflow/internal/survey"
)

func testSurvey() *survey.Survey {
	return &survey.Survey{
		ID:        "onboarding",
		Title:     "Onboarding",
		Anonymous: true,
		Questions: []survey.Question{
			{ID: "name", Type: survey.TypeShortText, Title: "Your name?", Required: true},
			{
				ID:      "role",
				Type:    survey.TypeChoice,
				Title:   "Role?",
				Options: []string{"Engineer", "Designer", "Other"},
				Settings: survey.Settings{
					Branch: &survey.BranchLogic{
						Enabled: true,
						Rules: []survey.BranchRule{
							{
								Conditions: []survey.Condition{
									{QuestionID: "role", Operator: survey.OpEquals, Value: "Other"},
								},
								Action: survey.BranchAction{Type: survey.ActionEnd},
							},
						},
						DefaultAction: survey.ActionNext,
					},
				},
			},
			{ID: "team", Type: survey.TypeShortText, Title: "Team?"},
		},
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSession_FullTraversal(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	sv := testSurvey()

	s, err := New(ctx, st, sv, NewFixedGenerator("sess-1"))
	require.NoError(t, err)
	assert.Equal(t, "sess-1", s.Token())
	assert.Equal(t, engine.PosWelcome, s.Position().Kind)

	// Welcome -> first question (anonymous survey skips respondent info).
	pos, moved, err := s.Next(ctx)
	require.NoError(t, err)
	require.True(t, moved)
	assert.Equal(t, engine.Position{Kind: engine.PosQuestion, Index: 0}, pos)

	// Required question blocks until answered.
	_, moved, err = s.Next(ctx)
	require.NoError(t, err)
	assert.False(t, moved, "required unanswered question must block forward")

	require.NoError(t, s.Answer(ctx, "name", answer.Text("Ada")))
	pos, moved, err = s.Next(ctx)
	require.NoError(t, err)
	require.True(t, moved)
	assert.Equal(t, 1, pos.Index)

	require.NoError(t, s.Answer(ctx, "role", answer.Text("Engineer")))
	pos, moved, err = s.Next(ctx)
	require.NoError(t, err)
	require.True(t, moved)
	assert.Equal(t, 2, pos.Index)

	pos, moved, err = s.Next(ctx)
	require.NoError(t, err)
	require.True(t, moved)
	assert.Equal(t, engine.PosSubmitted, pos.Kind)
	assert.False(t, s.EndedByBranch())

	// Terminal position is absorbing.
	_, moved, err = s.Next(ctx)
	require.NoError(t, err)
	assert.False(t, moved)

	rec, err := st.ReadSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, store.StateSubmitted, rec.State)
	assert.NotEmpty(t, rec.PathHash)
}

func TestSession_BranchEnd(t *testing.T) {
	ctx := context.Background()
	sv := testSurvey()

	s, err := New(ctx, nil, sv, NewFixedGenerator("sess-2"))
	require.NoError(t, err)

	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Answer(ctx, "name", answer.Text("Ada")))
	_, _, err = s.Next(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Answer(ctx, "role", answer.Text("Other")))
	pos, moved, err := s.Next(ctx)
	require.NoError(t, err)
	require.True(t, moved)

	assert.Equal(t, engine.PosSubmitted, pos.Kind)
	assert.True(t, s.EndedByBranch(), "end action must mark the session as branch-ended")
}

func TestSession_AnswerAfterFinalizeRejected(t *testing.T) {
	ctx := context.Background()
	sv := testSurvey()

	s, err := New(ctx, nil, sv, NewFixedGenerator("sess-3"))
	require.NoError(t, err)
	require.NoError(t, s.Abandon(ctx))

	err = s.Answer(ctx, "name", answer.Text("late"))
	assert.Error(t, err)
}

func TestSession_AbandonRecordsStateWithoutHash(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	s, err := New(ctx, st, testSurvey(), NewFixedGenerator("sess-4"))
	require.NoError(t, err)
	require.NoError(t, s.Abandon(ctx))

	rec, err := st.ReadSession(ctx, "sess-4")
	require.NoError(t, err)
	assert.Equal(t, store.StateAbandoned, rec.State)
	assert.Empty(t, rec.PathHash)
}

func TestPath_Deterministic(t *testing.T) {
	sv := testSurvey()
	answers := answer.Map{
		"name": answer.Text("Ada"),
		"role": answer.Text("Engineer"),
		"team": answer.Text("Infra"),
	}

	p1 := Path(sv, answers)
	p2 := Path(sv, answers)
	assert.Equal(t, p1, p2)

	h1, err := PathHash(p1, answers)
	require.NoError(t, err)
	h2, err := PathHash(p2, answers)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestPathHash_SensitiveToAnswers(t *testing.T) {
	sv := testSurvey()

	a := answer.Map{"name": answer.Text("Ada"), "role": answer.Text("Engineer"), "team": answer.Text("Infra")}
	b := answer.Map{"name": answer.Text("Ada"), "role": answer.Text("Engineer"), "team": answer.Text("Platform")}

	ha, err := PathHash(Path(sv, a), a)
	require.NoError(t, err)
	hb, err := PathHash(Path(sv, b), b)
	require.NoError(t, err)

	assert.NotEqual(t, ha, hb, "answer snapshot is part of the digest")
}

func TestReplay_Deterministic(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	sv := testSurvey()

	s, err := New(ctx, st, sv, NewFixedGenerator("sess-5"))
	require.NoError(t, err)

	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Answer(ctx, "name", answer.Text("Ada")))
	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Answer(ctx, "role", answer.Text("Engineer")))
	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Answer(ctx, "team", answer.Text("Infra")))
	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	_, _, err = s.Next(ctx)
	require.NoError(t, err)

	res, err := Replay(ctx, st, sv, "sess-5")
	require.NoError(t, err)

	assert.Equal(t, store.StateSubmitted, res.State)
	assert.True(t, res.Deterministic, "replayed hash must match the recorded one")
	assert.Equal(t, res.RecordedHash, res.ComputedHash)
	assert.Equal(t, "question[2]", res.Path[len(res.Path)-2])
	assert.Equal(t, "submitted", res.Path[len(res.Path)-1])
}

func TestReplay_EditedAnswerLastWriteWins(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	sv := testSurvey()

	s, err := New(ctx, st, sv, NewFixedGenerator("sess-6"))
	require.NoError(t, err)

	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Answer(ctx, "name", answer.Text("Ada")))
	_, _, err = s.Next(ctx)
	require.NoError(t, err)

	// Edit before moving on; the later event must win on rebuild.
	require.NoError(t, s.Answer(ctx, "role", answer.Text("Designer")))
	require.NoError(t, s.Answer(ctx, "role", answer.Text("Engineer")))
	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Answer(ctx, "team", answer.Text("Infra")))
	_, _, err = s.Next(ctx)
	require.NoError(t, err)
	_, _, err = s.Next(ctx)
	require.NoError(t, err)

	rebuilt, err := st.RebuildAnswers(ctx, "sess-6")
	require.NoError(t, err)
	assert.Equal(t, answer.Text("Engineer"), rebuilt["role"])

	res, err := Replay(ctx, st, sv, "sess-6")
	require.NoError(t, err)
	assert.True(t, res.Deterministic)
}

func TestReplay_WrongSurvey(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	sv := testSurvey()

	_, err := New(ctx, st, sv, NewFixedGenerator("sess-7"))
	require.NoError(t, err)

	other := &survey.Survey{ID: "different", Title: "Different"}
	_, err = Replay(ctx, st, other, "sess-7")
	assert.Error(t, err)
}

func TestReplay_UnknownToken(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := Replay(ctx, st, testSurvey(), "no-such-token")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
