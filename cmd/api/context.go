package main

import (
	"context"
	"net/http"
)

type contextKey string

const identityContextKey = contextKey("identity")

// anonymousIdentity marks a request that carried no Authorization header.
const anonymousIdentity = ""

// contextSetIdentity returns a copy of the request with the verified subject
// email attached. The authenticate middleware always sets a value, so
// handlers downstream can rely on it being present.
func (app *application) contextSetIdentity(r *http.Request, email string) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, email)
	return r.WithContext(ctx)
}

func (app *application) contextGetIdentity(r *http.Request) string {
	email, ok := r.Context().Value(identityContextKey).(string)
	if !ok {
		panic("missing identity value in request context")
	}
	return email
}
