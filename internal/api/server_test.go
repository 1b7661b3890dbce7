package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/brightsteps/scribe/internal/engine"
)

type stubParser struct{}

func (stubParser) Parse(ctx context.Context, text string) engine.ParsedInput {
	return engine.Parse(text)
}

type stubConfirmer struct {
	noteID    uuid.UUID
	confirmed bool
	function  string
	err       error
}

func (s *stubConfirmer) Confirm(ctx context.Context, noteID uuid.UUID, confirmed bool, functionGuess, intervention string) error {
	s.noteID = noteID
	s.confirmed = confirmed
	s.function = functionGuess
	return s.err
}

func newTestServer(t *testing.T, token string, confirmer *stubConfirmer) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	notes := NewNotesHandler(stubParser{}, nil, confirmer, logger)
	return NewServer(0, token, notes)
}

func TestHealthAndStatus(t *testing.T) {
	srv := newTestServer(t, "", &stubConfirmer{})

	for _, path := range []string{"/health", "/api/v1/scribe/status"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestParseEndpoint(t *testing.T) {
	srv := newTestServer(t, "", &stubConfirmer{})

	body := `{"text":"Client hit 3 times during clean up demand"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		NoteID       string             `json:"note_id"`
		Parsed       engine.ParsedInput `json:"parsed"`
		Confirmation struct {
			Message string `json:"message"`
		} `json:"confirmation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NoteID != "" {
		t.Errorf("NoteID = %q, want empty without a store", resp.NoteID)
	}
	if len(resp.Parsed.Behaviors) != 1 || resp.Parsed.Behaviors[0].Type != engine.BehaviorAggression {
		t.Errorf("Parsed.Behaviors = %+v", resp.Parsed.Behaviors)
	}
	if !strings.Contains(resp.Confirmation.Message, "Is this correct?") {
		t.Errorf("Confirmation.Message = %q", resp.Confirmation.Message)
	}
}

func TestParseEndpointRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, "", &stubConfirmer{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "not json"},
		{"missing text", `{"session_ref":"s1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/parse", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestBearerAuth(t *testing.T) {
	srv := newTestServer(t, "secret", &stubConfirmer{})

	body := `{"text":"matching trial blue correct"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/notes/parse", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/notes/parse", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health should not require auth, got %d", rec.Code)
	}
}

func TestConfirmEndpoint(t *testing.T) {
	confirmer := &stubConfirmer{}
	srv := newTestServer(t, "", confirmer)

	noteID := uuid.New()
	body := `{"confirmed":true,"function_guess":"escape"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/"+noteID.String()+"/confirm", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if confirmer.noteID != noteID {
		t.Errorf("noteID = %s, want %s", confirmer.noteID, noteID)
	}
	if !confirmer.confirmed || confirmer.function != "escape" {
		t.Errorf("confirmer received %+v", confirmer)
	}
}

func TestConfirmEndpointRejectsBadID(t *testing.T) {
	srv := newTestServer(t, "", &stubConfirmer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes/not-a-uuid/confirm", strings.NewReader(`{"confirmed":true}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
