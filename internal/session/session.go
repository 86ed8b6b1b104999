// Package session is the respondent-side runtime around the pure flow
// engine: it owns one navigator, accumulates answers monotonically,
// appends answer events to the store, and finalizes with a path hash
// that later replay verification checks against.
//
// One session, one goroutine. Concurrency across respondents needs no
// coordination here - each session evaluates against its own answer map
// and the shared survey snapshot is read-only once published.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pathlight/surveyflow/internal/answer"
	"github.com/pathlight/surveyflow/internal/engine"
	"github.com/pathlight/surveyflow/internal/store"
	"github.com/pathlight/surveyflow/internal/survey"
)

// Session drives one respondent through a survey.
//
// The store is optional: a nil store runs the session purely in memory,
// which the CLI trace command and the test harness both use.
type Session struct {
	store  *store.Store
	survey *survey.Survey
	token  string

	answers answer.Map
	nav     *engine.Navigator

	// clock stamps answer events with their seq. Event ordering comes
	// from this counter, never from wall time.
	clock Clock

	finalized bool
}

// Option configures a session.
type Option func(*Session)

// WithNavigatorOptions forwards options to the underlying navigator.
func WithNavigatorOptions(opts ...engine.NavigatorOption) Option {
	return func(s *Session) {
		s.nav = engine.NewNavigator(s.survey, s.answers, opts...)
	}
}

// New opens a session positioned at the welcome screen. When st is
// non-nil the session row is created immediately so answer events have
// a parent to reference.
func New(ctx context.Context, st *store.Store, sv *survey.Survey, gen TokenGenerator, opts ...Option) (*Session, error) {
	s := &Session{
		store:   st,
		survey:  sv,
		token:   gen.Generate(),
		answers: answer.Map{},
	}
	s.nav = engine.NewNavigator(sv, s.answers)

	for _, opt := range opts {
		opt(s)
	}

	if st != nil {
		if err := st.CreateSession(ctx, s.token, sv.ID); err != nil {
			return nil, fmt.Errorf("open session: %w", err)
		}
	}

	slog.Info("session opened", "token", s.token, "survey", sv.ID)
	return s, nil
}

// Token returns the session token.
func (s *Session) Token() string {
	return s.token
}

// Position returns the current traversal position.
func (s *Session) Position() engine.Position {
	return s.nav.Position()
}

// Current returns the question at the current position, or nil.
func (s *Session) Current() *survey.Question {
	return s.nav.Current()
}

// Answers returns the accumulated answer map. Callers must treat it as
// read-only; Answer is the only mutation path.
func (s *Session) Answers() answer.Map {
	return s.answers
}

// Answer records an answer for a question. Edits are allowed - a later
// event for the same question wins on rebuild - and every still-unvisited
// question's visibility is recomputed from the current accumulated
// answers the next time the session moves forward.
func (s *Session) Answer(ctx context.Context, questionID string, v answer.Value) error {
	if s.finalized {
		return fmt.Errorf("answer %s: session %s already finalized", questionID, s.token)
	}

	s.answers[questionID] = v
	seq := s.clock.Next()

	if s.store != nil {
		if err := s.store.WriteAnswerEvent(ctx, s.token, seq, questionID, v); err != nil {
			return err
		}
	}

	slog.Debug("answer recorded", "token", s.token, "question", questionID, "seq", seq)
	return nil
}

// Next advances the session. Reaching the terminal position finalizes
// the stored session with the path hash of the accumulated answers.
func (s *Session) Next(ctx context.Context) (engine.Position, bool, error) {
	pos, moved := s.nav.Forward()
	if !moved {
		return pos, false, nil
	}

	if pos.Kind == engine.PosSubmitted && !s.finalized {
		if err := s.finalize(ctx, store.StateSubmitted); err != nil {
			return pos, true, err
		}
	}

	return pos, true, nil
}

// Back retreats the session. Never blocked by validation.
func (s *Session) Back() (engine.Position, bool) {
	return s.nav.Back()
}

// EndedByBranch reports whether the terminal position came from an
// explicit branch end action rather than question exhaustion.
func (s *Session) EndedByBranch() bool {
	return s.nav.EndedByBranch()
}

// Abandon finalizes the session as abandoned. No path hash is recorded -
// an abandoned session has no submit-time path to verify against.
func (s *Session) Abandon(ctx context.Context) error {
	if s.finalized {
		return nil
	}
	s.finalized = true

	if s.store == nil {
		return nil
	}
	if err := s.store.FinalizeSession(ctx, s.token, store.StateAbandoned, ""); err != nil {
		return err
	}

	slog.Info("session abandoned", "token", s.token)
	return nil
}

func (s *Session) finalize(ctx context.Context, state string) error {
	s.finalized = true

	if s.store == nil {
		return nil
	}

	hash, err := PathHash(Path(s.survey, s.answers), s.answers)
	if err != nil {
		return fmt.Errorf("finalize session %s: %w", s.token, err)
	}
	if err := s.store.FinalizeSession(ctx, s.token, state, hash); err != nil {
		return err
	}

	slog.Info("session finalized", "token", s.token, "state", state, "path_hash", hash)
	return nil
}
