package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/leebrouse/movieBase/internal/jsonlog"
	"github.com/leebrouse/movieBase/internal/token"
)

const testSigningSecret = "test-signing-secret-for-handler-tests"

// newTestApplication builds an application with no database behind it, for
// exercising the request paths that reject before any query runs.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	tokens, err := token.New(testSigningSecret)
	if err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.Limiter.Enabled = false

	return &application{
		config: cfg,
		logger: jsonlog.New(io.Discard, jsonlog.LevelOff),
		tokens: tokens,
	}
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	for key, values := range header {
		req.Header[key] = values
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func readErrorBody(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rr.Body.String(), err)
	}
	return body
}

func checkError(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantMessage string) {
	t.Helper()

	if rr.Code != wantStatus {
		t.Errorf("got status %d; want %d (body %s)", rr.Code, wantStatus, rr.Body.String())
	}

	body := readErrorBody(t, rr)
	if !body.Error {
		t.Error("error body should have error: true")
	}
	if body.Message != wantMessage {
		t.Errorf("got message %q; want %q", body.Message, wantMessage)
	}
}

func bearerHeader(t *testing.T, app *application, email string) http.Header {
	t.Helper()

	signed, err := app.tokens.IssueAccess(email, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	return http.Header{"Authorization": []string{"Bearer " + signed}}
}
