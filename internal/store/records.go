package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brightsteps/scribe/internal/engine"
)

// WriteSessionNote writes a parsed note and its child records across the
// clinical record tables in one transaction.
// Tables: session_notes, behavior_events, skill_trials, reinforcements.
func (s *Store) WriteSessionNote(ctx context.Context, clientUUID uuid.UUID, sessionRef, rawText string, p engine.ParsedInput) (uuid.UUID, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	noteID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO session_notes (id, client_id, session_ref, raw_text, narrative, antecedent, function_guess, intervention, needs_clarification, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		noteID, clientUUID, sessionRef, rawText, p.NarrativeFragment,
		p.Antecedent, string(p.FunctionGuess), p.Intervention, p.NeedsClarification,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert note: %w", err)
	}

	for _, b := range p.Behaviors {
		_, err = tx.Exec(ctx, `
			INSERT INTO behavior_events (id, note_id, behavior_type, count, duration_seconds)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), noteID, string(b.Type), b.Count, b.DurationSeconds,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert behavior event: %w", err)
		}
	}

	for _, t := range p.SkillTrials {
		_, err = tx.Exec(ctx, `
			INSERT INTO skill_trials (id, note_id, skill, target, response, prompt_level)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), noteID, t.Skill, t.Target, string(t.Response), string(t.PromptLevel),
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert skill trial: %w", err)
		}
	}

	if p.Reinforcement != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO reinforcements (id, note_id, type, delivered, details)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), noteID, p.Reinforcement.Type, p.Reinforcement.Delivered, p.Reinforcement.Details,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert reinforcement: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	return noteID, nil
}

// UpdateNoteReviewStatus records the clinician's confirmation verdict,
// together with any answers to the follow-up questions.
func (s *Store) UpdateNoteReviewStatus(ctx context.Context, noteID uuid.UUID, status, functionGuess, intervention string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE session_notes
		SET review_status = $1,
		    function_guess = COALESCE(NULLIF($2, ''), function_guess),
		    intervention = COALESCE(NULLIF($3, ''), intervention),
		    reviewed_at = now()
		WHERE id = $4`,
		status, functionGuess, intervention, noteID,
	)
	return err
}
