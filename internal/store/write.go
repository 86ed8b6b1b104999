package store

import (
	"context"
	"fmt"

	"github.com/pathlight/surveyflow/internal/answer"
)

// Session states.
const (
	StateActive    = "active"
	StateSubmitted = "submitted"
	StateAbandoned = "abandoned"
)

// CreateSession inserts a session row.
// Uses ON CONFLICT(token) DO NOTHING for idempotency - re-creating an
// existing session is silently ignored.
func (s *Store) CreateSession(ctx context.Context, token, surveyID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, survey_id, state)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, token, surveyID, StateActive)
	if err != nil {
		return fmt.Errorf("create session %s: %w", token, err)
	}
	return nil
}

// WriteAnswerEvent appends an answer event to the session log.
//
// The value is serialized canonically so stored bytes are comparable.
// (token, seq) is the primary key; duplicate seqs are silently ignored
// for idempotency, so a retried write cannot corrupt the log.
//
// Answer edits are NOT updates: editing a prior answer appends a new
// event with a later seq, and rebuild applies events in seq order so the
// last write wins.
func (s *Store) WriteAnswerEvent(ctx context.Context, token string, seq int64, questionID string, value answer.Value) error {
	encoded, err := answer.MarshalCanonical(value)
	if err != nil {
		return fmt.Errorf("write answer event: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO answer_events (session_token, seq, question_id, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_token, seq) DO NOTHING
	`, token, seq, questionID, string(encoded))
	if err != nil {
		return fmt.Errorf("write answer event: %w", err)
	}

	return nil
}

// FinalizeSession marks a session terminal and records the path hash
// computed from the accumulated answers at submit time. Replay
// verification compares against this hash.
func (s *Store) FinalizeSession(ctx context.Context, token, state, pathHash string) error {
	if state != StateSubmitted && state != StateAbandoned {
		return fmt.Errorf("finalize session %s: invalid terminal state %q", token, state)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET state = ?, path_hash = ? WHERE token = ?
	`, state, pathHash, token)
	if err != nil {
		return fmt.Errorf("finalize session %s: %w", token, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finalize session %s: rows affected: %w", token, err)
	}
	if n == 0 {
		return fmt.Errorf("finalize session %s: session not found", token)
	}

	return nil
}
