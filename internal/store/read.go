package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pathlight/surveyflow/internal/answer"
)

// ErrSessionNotFound is returned when a session token does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionRecord is a stored session row.
type SessionRecord struct {
	Token     string
	SurveyID  string
	State     string
	PathHash  string
	CreatedAt string
}

// AnswerEvent is one entry in a session's append-only answer log.
type AnswerEvent struct {
	Seq        int64
	QuestionID string
	Value      answer.Value
}

// ReadSession fetches a session row by token.
func (s *Store) ReadSession(ctx context.Context, token string) (SessionRecord, error) {
	var rec SessionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT token, survey_id, state, path_hash, created_at
		FROM sessions WHERE token = ?
	`, token).Scan(&rec.Token, &rec.SurveyID, &rec.State, &rec.PathHash, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("read session %s: %w", token, ErrSessionNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("read session %s: %w", token, err)
	}
	return rec, nil
}

// ReadAnswerEvents returns a session's answer log ordered by seq ASC.
// Deterministic replay depends on this ordering; never reorder.
func (s *Store) ReadAnswerEvents(ctx context.Context, token string) ([]AnswerEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, question_id, value
		FROM answer_events
		WHERE session_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("read answer events %s: %w", token, err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			ev  AnswerEvent
			raw string
		)
		if err := rows.Scan(&ev.Seq, &ev.QuestionID, &raw); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		val, err := answer.UnmarshalValue([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("decode answer event seq %d: %w", ev.Seq, err)
		}
		ev.Value = val
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}

	return events, nil
}

// ListSessionTokens returns every session token, oldest first.
func (s *Store) ListSessionTokens(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token FROM sessions ORDER BY created_at ASC, token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list session tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan session token: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session tokens: %w", err)
	}
	return tokens, nil
}

// RebuildAnswers folds a session's event log into the answer map the
// respondent had accumulated, applying events in seq order so edits
// (later events for the same question) win.
func (s *Store) RebuildAnswers(ctx context.Context, token string) (answer.Map, error) {
	events, err := s.ReadAnswerEvents(ctx, token)
	if err != nil {
		return nil, err
	}

	answers := make(answer.Map, len(events))
	for _, ev := range events {
		answers[ev.QuestionID] = ev.Value
	}
	return answers, nil
}
