package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) router() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)

	// catalog (public)
	router.HandlerFunc(http.MethodGet, "/movies/search", app.searchMoviesHandler)
	router.HandlerFunc(http.MethodGet, "/movies/data/:imdbID", app.showMovieHandler)

	// people (access token required)
	router.HandlerFunc(http.MethodGet, "/people/:id", app.requireAuthenticatedUser(app.showPersonHandler))

	// user accounts
	router.HandlerFunc(http.MethodPost, "/user/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/user/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/user/refresh", app.refreshTokenHandler)
	router.HandlerFunc(http.MethodPost, "/user/logout", app.logoutUserHandler)
	router.HandlerFunc(http.MethodGet, "/user/:email/profile", app.showProfileHandler)
	router.HandlerFunc(http.MethodPut, "/user/:email/profile", app.updateProfileHandler)

	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	return app.recoverPanic(app.metrics(app.ratelimited(app.authenticate(router))))
}
