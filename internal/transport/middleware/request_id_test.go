package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/amenitygen/pkg/ctxutil"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "uuid reused", incoming: "6f1c1c8e-1d7a-4b39-9b1a-0e5c2f3d4a5b", wantSame: true},
		{name: "opaque token reused", incoming: "preview-42", wantSame: true},
		{name: "missing generates", incoming: ""},
		{name: "control characters replaced", incoming: "abc\tdef"},
		{name: "spaces replaced", incoming: "a b"},
		{name: "non ascii replaced", incoming: "zapros-Ж"},
		{name: "too long replaced", incoming: strings.Repeat("a", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inCtx string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inCtx = ctxutil.RequestIDFromCtx(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/categories", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			RequestID()(handler).ServeHTTP(rec, req)

			echoed := rec.Header().Get(RequestIDHeader)
			if echoed != inCtx {
				t.Errorf("header %q does not match context %q", echoed, inCtx)
			}
			if tt.wantSame {
				if inCtx != tt.incoming {
					t.Errorf("expected incoming ID %q to be reused, got %q", tt.incoming, inCtx)
				}
				return
			}
			if _, err := uuid.Parse(inCtx); err != nil {
				t.Errorf("expected generated UUID, got %q: %v", inCtx, err)
			}
		})
	}
}

func TestRequestID_ReachesAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := Chain(RequestID(), Logger(logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/classify", nil)
	req.Header.Set(RequestIDHeader, "preview-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"request_id":"preview-7"`) {
		t.Errorf("expected request_id in access log, got %q", buf.String())
	}

	buf.Reset()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	generated := rec.Header().Get(RequestIDHeader)
	if !strings.Contains(buf.String(), `"request_id":"`+generated+`"`) {
		t.Errorf("expected generated request_id %q in access log, got %q", generated, buf.String())
	}
}
