package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pathlight/surveyflow/internal/store"
	"github.com/pathlight/surveyflow/internal/survey"
)

// Result is the outcome of replaying one stored session.
type Result struct {
	Token        string   `json:"token"`
	State        string   `json:"state"`
	Path         []string `json:"path"`
	ComputedHash string   `json:"computed_hash"`
	RecordedHash string   `json:"recorded_hash"`
	// Deterministic is true when the recomputed path hash matches the
	// hash recorded at submit time. Abandoned sessions record no hash
	// and always report false.
	Deterministic bool `json:"deterministic"`
}

// Replay rebuilds a stored session's answer map from its event log,
// re-drives a fresh navigator over it, and compares the resulting path
// hash against the hash recorded at finalize time.
//
// A mismatch means either the survey definition changed since the
// session was taken or the engine's traversal is no longer the one that
// produced the recording. Both are worth knowing about.
func Replay(ctx context.Context, st *store.Store, sv *survey.Survey, token string) (Result, error) {
	rec, err := st.ReadSession(ctx, token)
	if err != nil {
		return Result{}, err
	}
	if rec.SurveyID != sv.ID {
		return Result{}, fmt.Errorf("replay %s: session belongs to survey %q, not %q", token, rec.SurveyID, sv.ID)
	}

	answers, err := st.RebuildAnswers(ctx, token)
	if err != nil {
		return Result{}, err
	}

	path := Path(sv, answers)
	hash, err := PathHash(path, answers)
	if err != nil {
		return Result{}, fmt.Errorf("replay %s: %w", token, err)
	}

	labels := make([]string, len(path))
	for i, p := range path {
		labels[i] = p.String()
	}

	res := Result{
		Token:         token,
		State:         rec.State,
		Path:          labels,
		ComputedHash:  hash,
		RecordedHash:  rec.PathHash,
		Deterministic: rec.PathHash != "" && hash == rec.PathHash,
	}

	slog.Info("session replayed",
		"token", token,
		"state", rec.State,
		"deterministic", res.Deterministic)
	return res, nil
}
