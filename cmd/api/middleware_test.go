package main

import (
	"net/http"
	"testing"
	"time"
)

func TestAuthenticate(t *testing.T) {
	app := newTestApplication(t)
	router := app.router()

	missingMessage := "Authorization header ('Bearer token') not found"

	t.Run("missing header on protected route", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/people/nm0000001", nil, nil)
		checkError(t, rr, http.StatusUnauthorized, missingMessage)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"Basic abc123"}}
		rr := doRequest(t, router, http.MethodGet, "/people/nm0000001", nil, header)
		checkError(t, rr, http.StatusUnauthorized, missingMessage)
	})

	t.Run("bare token without scheme", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"sometoken"}}
		rr := doRequest(t, router, http.MethodGet, "/people/nm0000001", nil, header)
		checkError(t, rr, http.StatusUnauthorized, missingMessage)
	})

	t.Run("garbage token", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"Bearer not.a.token"}}
		rr := doRequest(t, router, http.MethodGet, "/people/nm0000001", nil, header)
		checkError(t, rr, http.StatusUnauthorized, "Invalid JWT token")
	})

	t.Run("expired token", func(t *testing.T) {
		signed, err := app.tokens.IssueAccess("alice@example.com", -time.Second)
		if err != nil {
			t.Fatal(err)
		}
		header := http.Header{"Authorization": []string{"Bearer " + signed}}
		rr := doRequest(t, router, http.MethodGet, "/people/nm0000001", nil, header)
		// the gateway does not distinguish expired from malformed
		checkError(t, rr, http.StatusUnauthorized, "Invalid JWT token")
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		// the query-parameter rejection fires only after authentication,
		// so a 400 here proves the identity was accepted
		header := bearerHeader(t, app, "alice@example.com")
		rr := doRequest(t, router, http.MethodGet, "/people/nm0000001?x=1", nil, header)
		checkError(t, rr, http.StatusBadRequest, "Invalid query parameter: x. Query parameters are not permitted.")
	})

	t.Run("invalid token rejected on public route too", func(t *testing.T) {
		header := http.Header{"Authorization": []string{"Bearer not.a.token"}}
		rr := doRequest(t, router, http.MethodGet, "/movies/search", nil, header)
		checkError(t, rr, http.StatusUnauthorized, "Invalid JWT token")
	})
}

func TestHealthcheck(t *testing.T) {
	app := newTestApplication(t)

	rr := doRequest(t, app.router(), http.MethodGet, "/healthcheck", nil, nil)

	if rr.Code != http.StatusOK {
		t.Errorf("got status %d; want 200", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	app := newTestApplication(t)
	app.config.Limiter.Enabled = true
	app.config.Limiter.RPS = 2
	app.config.Limiter.Burst = 4

	router := app.router()

	// the bucket starts with burst tokens; the burst+1'th immediate
	// request from the same address must be rejected
	for i := 0; i < 4; i++ {
		rr := doRequest(t, router, http.MethodGet, "/healthcheck", nil, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d; want 200", i+1, rr.Code)
		}
	}

	rr := doRequest(t, router, http.MethodGet, "/healthcheck", nil, nil)
	checkError(t, rr, http.StatusTooManyRequests, "rate limit exceeded")
}
