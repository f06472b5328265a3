package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/folio/pkg/apperr"
	"github.com/JaimeStill/folio/pkg/handlers"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		data     any
		wantBody string
	}{
		{"ok with map", http.StatusOK, map[string]string{"message": "hello"}, `{"message":"hello"}`},
		{"created with struct", http.StatusCreated, struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}{1, "audit"}, `{"id":1,"name":"audit"}`},
		{"ok with slice", http.StatusOK, []int{1, 2, 3}, `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondJSON(w, tt.status, tt.data)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var got, want any
			json.Unmarshal(w.Body.Bytes(), &got)
			json.Unmarshal([]byte(tt.wantBody), &want)
			gotJSON, _ := json.Marshal(got)
			wantJSON, _ := json.Marshal(want)
			if string(gotJSON) != string(wantJSON) {
				t.Errorf("body = %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		wantError string
	}{
		{"bad request", http.StatusBadRequest, errors.New("invalid input"), "invalid input"},
		{"not found", http.StatusNotFound, apperr.NotFound("category not found"), "category not found"},
		{"internal hides detail", http.StatusInternalServerError, errors.New("pq: connection refused"), "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondError(w, discard(), tt.status, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var body handlers.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}

func TestRespondAppError_Fields(t *testing.T) {
	err := apperr.Fields(
		apperr.Field("score", errors.New("not an integer")),
		apperr.Field("title", errors.New("required")),
	)

	w := httptest.NewRecorder()
	handlers.RespondAppError(w, discard(), err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if len(body.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(body.Fields))
	}
	if body.Fields[0].Field != "score" || body.Fields[0].Message != "not an integer" {
		t.Errorf("fields[0] = %+v", body.Fields[0])
	}
}

func TestRespondAppError_Status(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"conflict", apperr.Conflict("name taken"), http.StatusConflict},
		{"not found", apperr.NotFound("missing"), http.StatusNotFound},
		{"unclassified", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondAppError(w, discard(), tt.err)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
