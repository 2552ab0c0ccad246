package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
)

// owner is the caller every authenticated test request runs as.
var owner = domain.Session{UserID: uuid.MustParse("6f1c2a4e-1111-4c3b-9d2e-000000000001")}

// asOwner stands in for the session middleware: it attaches owner to every
// request without looking at the Authorization header.
func asOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), owner)))
	})
}

// anonymous passes requests through without a session.
func anonymous(next http.Handler) http.Handler { return next }

// newHTTPHandler wires a Server with the given mocks into the router.
// This mirrors how main.go wires it in production, minus the real auth.
func newHTTPHandler(svc handler.Services) http.Handler {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, []byte("openapi: 3.0.3\n"), quiet).Routes(asOwner)
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rdr = bytes.NewBuffer(raw)
		}
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error
}
