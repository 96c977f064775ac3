package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "datacleaner/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "app error",
			err:        apperrors.NotFoundWithID("Cleaning run", "42"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
			wantMsg:    "Cleaning run not found",
		},
		{
			name:       "plain error hides its text",
			err:        errors.New("mongo: connection pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
			wantMsg:    "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode || body.Error != tt.wantMsg {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteCSV(rec, http.StatusOK, func(w io.Writer) error {
		_, err := io.WriteString(w, "a,b\n1,2\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "a,b\n1,2\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{query: "", wantLimit: 10, wantOffset: 0},
		{query: "limit=25&offset=50", wantLimit: 25, wantOffset: 50},
		{query: "limit=1000", wantLimit: 100, wantOffset: 0},
		{query: "offset=-3", wantLimit: 10, wantOffset: 0},
		{query: "limit=ten", wantErr: true},
		{query: "offset=x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/runs?"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestMediaType(t *testing.T) {
	tests := map[string]string{
		"":                                 "",
		"application/json":                 "application/json",
		"Text/CSV; charset=utf-8":          "text/csv",
		"application/json; =broken":       "application/json",
		"text/":                            "",
	}
	for header, want := range tests {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		if header != "" {
			r.Header.Set("Content-Type", header)
		}
		if got := MediaType(r); got != want {
			t.Errorf("MediaType(%q) = %q, want %q", header, got, want)
		}
	}
}
