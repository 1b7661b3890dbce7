package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/brightsteps/scribe/internal/engine"
	"github.com/brightsteps/scribe/internal/events"
)

type localParser struct{}

func (localParser) Parse(ctx context.Context, text string) engine.ParsedInput {
	return engine.Parse(text)
}

type fakeStore struct {
	noteID     uuid.UUID
	clientUUID uuid.UUID
	rawText    string
	writeErr   error

	statusNoteID uuid.UUID
	status       string
	function     string
	intervention string
}

func (f *fakeStore) WriteSessionNote(ctx context.Context, clientUUID uuid.UUID, sessionRef, rawText string, p engine.ParsedInput) (uuid.UUID, error) {
	if f.writeErr != nil {
		return uuid.Nil, f.writeErr
	}
	f.clientUUID = clientUUID
	f.rawText = rawText
	f.noteID = uuid.New()
	return f.noteID, nil
}

func (f *fakeStore) UpdateNoteReviewStatus(ctx context.Context, noteID uuid.UUID, status, functionGuess, intervention string) error {
	f.statusNoteID = noteID
	f.status = status
	f.function = functionGuess
	f.intervention = intervention
	return nil
}

type fakeBus struct {
	subjects []string
	payloads []any
}

func (f *fakeBus) Publish(subject string, data any) error {
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func newTestPipeline(store *fakeStore, bus *fakeBus) *Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(localParser{}, store, bus, logger)
}

func TestHandleNoteSubmitted(t *testing.T) {
	store := &fakeStore{}
	bus := &fakeBus{}
	p := newTestPipeline(store, bus)

	clientUUID := uuid.New()
	data, _ := json.Marshal(events.NoteSubmitted{
		ClientUUID: clientUUID.String(),
		SessionRef: "session-42",
		Text:       "Client hit 3 times during clean up demand",
	})

	p.HandleNoteSubmitted(events.SubjectNoteSubmitted, data)

	if store.clientUUID != clientUUID {
		t.Errorf("stored client = %s, want %s", store.clientUUID, clientUUID)
	}
	if store.rawText != "Client hit 3 times during clean up demand" {
		t.Errorf("stored raw text = %q", store.rawText)
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != events.SubjectNoteParsed {
		t.Fatalf("published subjects = %v, want [%s]", bus.subjects, events.SubjectNoteParsed)
	}

	evt, ok := bus.payloads[0].(events.NoteParsed)
	if !ok {
		t.Fatalf("payload type = %T", bus.payloads[0])
	}
	if evt.NoteID != store.noteID.String() {
		t.Errorf("NoteID = %s, want %s", evt.NoteID, store.noteID)
	}
	if evt.Behaviors != 1 || evt.SkillTrials != 0 || evt.NeedsClarification {
		t.Errorf("parsed event = %+v", evt)
	}
}

func TestHandleNoteSubmittedBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"malformed json", []byte("not json")},
		{"bad client uuid", mustMarshal(events.NoteSubmitted{ClientUUID: "nope", Text: "hi"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			bus := &fakeBus{}
			p := newTestPipeline(store, bus)

			p.HandleNoteSubmitted(events.SubjectNoteSubmitted, tt.data)
			if store.noteID != uuid.Nil {
				t.Error("nothing should be persisted")
			}
			if len(bus.subjects) != 0 {
				t.Errorf("nothing should be published, got %v", bus.subjects)
			}
		})
	}
}

func TestHandleNoteSubmittedPersistenceFailure(t *testing.T) {
	store := &fakeStore{writeErr: errors.New("db down")}
	bus := &fakeBus{}
	p := newTestPipeline(store, bus)

	data := mustMarshal(events.NoteSubmitted{
		ClientUUID: uuid.New().String(),
		Text:       "tantrum for 2 minutes",
	})
	p.HandleNoteSubmitted(events.SubjectNoteSubmitted, data)

	if len(bus.subjects) != 0 {
		t.Errorf("parse event published despite persistence failure: %v", bus.subjects)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		confirmed  bool
		wantStatus string
	}{
		{"confirmed", true, "confirmed"},
		{"rejected", false, "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			bus := &fakeBus{}
			p := newTestPipeline(store, bus)

			noteID := uuid.New()
			if err := p.Confirm(context.Background(), noteID, tt.confirmed, "escape", "redirection"); err != nil {
				t.Fatalf("Confirm: %v", err)
			}
			if store.statusNoteID != noteID || store.status != tt.wantStatus {
				t.Errorf("stored status = (%s, %s), want (%s, %s)", store.statusNoteID, store.status, noteID, tt.wantStatus)
			}
			if store.function != "escape" || store.intervention != "redirection" {
				t.Errorf("stored follow-ups = (%q, %q)", store.function, store.intervention)
			}
			if len(bus.subjects) != 1 || bus.subjects[0] != events.SubjectNoteConfirmed {
				t.Fatalf("published subjects = %v", bus.subjects)
			}
			evt := bus.payloads[0].(events.NoteConfirmed)
			if evt.NoteID != noteID.String() || evt.Confirmed != tt.confirmed {
				t.Errorf("confirmed event = %+v", evt)
			}
		})
	}
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
