package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toyz/ctorgen/internal/config"
	"github.com/toyz/ctorgen/internal/refactoring"
)

func newTestServer(t *testing.T, mutate func(*config.ServerConfig)) *Server {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	if mutate != nil {
		mutate(&cfg.Server)
	}

	metrics, err := NewMetrics()
	require.NoError(t, err)
	return New(cfg.Server, zap.NewNop(), metrics, refactoring.New(refactoring.Options{}))
}

func postRefactoring(t *testing.T, s *Server, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/refactorings", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func request(text string, start, length int) RefactoringRequest {
	return RefactoringRequest{
		Document: DocumentPayload{Name: "A.cs", Text: text},
		Span:     SpanPayload{Start: start, Length: length},
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err, "request id must be a uuid")
}

func TestRefactoring(t *testing.T) {
	tests := []struct {
		name      string
		req       RefactoringRequest
		available bool
		changed   bool
		contains  string
		diagnosis string
	}{
		{
			name:      "regenerates the selected class",
			req:       request("class A\n{\n    readonly IFoo _foo;\n    public A() { }\n}", 6, 0),
			available: true,
			changed:   true,
			contains:  "public A(IFoo foo) { _foo = foo; }",
		},
		{
			name:      "satisfied constructor is left alone",
			req:       request("class A\n{\n    readonly IFoo _foo;\n    public A(IFoo foo) { _foo = foo; }\n}", 6, 0),
			available: true,
		},
		{
			name:      "diagnostic comment",
			req:       request("class A\n{\n}", 6, 0),
			available: true,
			changed:   true,
			contains:  "{//Can't regenerate constructor, no candidate members found",
			diagnosis: "NoCandidates",
		},
		{
			name: "nothing at the selection",
			req:  request("// nothing here\n", 3, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRefactoring(t, newTestServer(t, nil), tt.req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp RefactoringResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.available, resp.Available)
			assert.Equal(t, tt.changed, resp.Changed)
			if tt.available {
				assert.Equal(t, refactoring.Title, resp.Title)
			}
			if tt.contains != "" {
				assert.Contains(t, resp.Text, tt.contains)
			} else {
				assert.Equal(t, tt.req.Document.Text, resp.Text)
			}
			if tt.diagnosis != "" {
				require.NotNil(t, resp.Diagnostic)
				assert.Equal(t, tt.diagnosis, resp.Diagnostic.Code)
			} else {
				assert.Nil(t, resp.Diagnostic)
			}
		})
	}
}

func TestRefactoringDuplicateMembers(t *testing.T) {
	rec := postRefactoring(t, newTestServer(t, nil), request("class A\n{\n    readonly IFoo _a;\n    readonly IFoo _b;\n}", 6, 0))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefactoringResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Diagnostic)
	assert.Equal(t, "DuplicateType", resp.Diagnostic.Code)
	assert.Equal(t, []string{"_a", "_b"}, resp.Diagnostic.Members)
	assert.Equal(t, "Can't regenerate constructor, _a,_b have the same type (can't generate unique parameter).", resp.Diagnostic.Message)
}

func TestRefactoringErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{name: "span past the end", body: request("class A {}", 5, 50), status: http.StatusBadRequest, code: "ValidationError"},
		{name: "negative span", body: request("class A {}", -1, 0), status: http.StatusBadRequest, code: "ValidationError"},
		{name: "malformed json", body: `{"document":`, status: http.StatusBadRequest, code: "Bad Request"},
		{name: "syntax error", body: request("class A {", 6, 0), status: http.StatusUnprocessableEntity, code: "SyntaxError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRefactoring(t, newTestServer(t, nil), tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestRefactoringBodyLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.ServerConfig) { c.MaxDocumentBytes = 64 })
	rec := postRefactoring(t, s, request("class A\n{\n"+strings.Repeat("    readonly IFoo _foo;\n", 10)+"}", 6, 0))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, nil)
	postRefactoring(t, s, request("class A\n{\n    readonly IFoo _foo;\n}", 6, 0))
	postRefactoring(t, s, request("class A\n{\n}", 6, 0))
	postRefactoring(t, s, request("class A {}", 5, 50))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `ctorgen_refactorings_total{outcome="regenerated"} 1`)
	assert.Contains(t, body, `ctorgen_refactorings_total{outcome="diagnostic"} 1`)
	assert.Contains(t, body, `ctorgen_refactorings_total{outcome="invalid"} 1`)
	assert.Contains(t, body, `ctorgen_refactoring_duration_seconds_count{outcome="regenerated"} 1`)
}
