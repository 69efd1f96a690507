package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/leebrouse/movieBase/internal/data"
	"github.com/leebrouse/movieBase/internal/token"
	"github.com/leebrouse/movieBase/internal/validator"
)

// tokenPairResponse is the body returned by login and refresh.
func tokenPairResponse(accessToken string, accessExpiresIn int, refreshToken string) envelope {
	return envelope{
		"bearerToken": envelope{
			"token":      accessToken,
			"token_type": "Bearer",
			"expires_in": accessExpiresIn,
		},
		"refreshToken": envelope{
			"token":      refreshToken,
			"token_type": "Refresh",
			"expires_in": int(token.RefreshedTTL / time.Second),
		},
	}
}

// POST /user/login
func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email                   string `json:"email"`
		Password                string `json:"password"`
		BearerExpiresInSeconds  int    `json:"bearerExpiresInSeconds"`
		RefreshExpiresInSeconds int    `json:"refreshExpiresInSeconds"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.Email != "", "email", "must be provided")
	v.Check(input.Password != "", "password", "must be provided")
	if !v.Valid() {
		app.errorResponse(w, r, http.StatusBadRequest, "Request body incomplete, both email and password are required")
		return
	}

	user, err := app.models.Users.GetByEmail(input.Email)
	if err != nil {
		switch {
		// an unknown email and a wrong password must be
		// indistinguishable to the caller
		case errors.Is(err, data.ErrRecordNotFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r)
		return
	}

	bearerTTL := time.Duration(input.BearerExpiresInSeconds) * time.Second
	refreshTTL := time.Duration(input.RefreshExpiresInSeconds) * time.Second

	accessToken, err := app.tokens.IssueAccess(user.Email, bearerTTL)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	refreshToken, err := app.tokens.IssueRefresh(user.Email, refreshTTL)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	accessExpiresIn := input.BearerExpiresInSeconds
	if accessExpiresIn == 0 {
		accessExpiresIn = int(token.DefaultAccessTTL / time.Second)
	}

	err = app.writeJSON(w, http.StatusOK, tokenPairResponse(accessToken, accessExpiresIn, refreshToken), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// POST /user/refresh
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := app.verifyRefreshRequest(w, r)
	if !ok {
		return
	}

	// new access token at the default ttl; the refresh token lifetime is
	// fixed at 24h here no matter what was requested at login
	accessToken, err := app.tokens.IssueAccess(claims.Email, token.DefaultAccessTTL)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	refreshToken, err := app.tokens.IssueRefresh(claims.Email, token.RefreshedTTL)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	accessExpiresIn := int(token.DefaultAccessTTL / time.Second)

	err = app.writeJSON(w, http.StatusOK, tokenPairResponse(accessToken, accessExpiresIn, refreshToken), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// POST /user/logout
//
// Tokens are stateless, so there is nothing server-side to invalidate: the
// operation verifies the presented token and reports success. The token
// remains usable until its natural expiry.
func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	_, ok := app.verifyRefreshRequest(w, r)
	if !ok {
		return
	}

	env := envelope{
		"error":   false,
		"message": "Token successfully invalidated",
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// verifyRefreshRequest reads and verifies the refreshToken field shared by
// the refresh and logout operations, writing the error response itself when
// the token is missing, expired or malformed.
func (app *application) verifyRefreshRequest(w http.ResponseWriter, r *http.Request) (*token.Claims, bool) {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	if input.RefreshToken == "" {
		app.errorResponse(w, r, http.StatusBadRequest, "Request body incomplete, refresh token required")
		return nil, false
	}

	claims, err := app.tokens.Verify(input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenExpired):
			app.expiredAuthenticationTokenResponse(w, r)
		default:
			app.invalidAuthenticationTokenResponse(w, r)
		}
		return nil, false
	}

	return claims, true
}
