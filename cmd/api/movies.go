package main

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/leebrouse/movieBase/internal/data"
	"github.com/leebrouse/movieBase/internal/validator"
)

var (
	yearRX = regexp.MustCompile(`^\d{4}$`)
	pageRX = regexp.MustCompile(`^\d+$`)
)

// GET /movies/search?title&year&page
func (app *application) searchMoviesHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	title := qs.Get("title")
	yearParam := qs.Get("year")
	pageParam := qs.Get("page")

	// both parameters are validated before any query runs
	if yearParam != "" && !validator.Matches(yearParam, yearRX) {
		app.errorResponse(w, r, http.StatusBadRequest, "Invalid year format. Format must be yyyy.")
		return
	}

	page := 1
	if pageParam != "" {
		if !validator.Matches(pageParam, pageRX) {
			app.errorResponse(w, r, http.StatusBadRequest, "Invalid page format. page must be a number.")
			return
		}

		parsed, err := strconv.Atoi(pageParam)
		if err != nil || parsed <= 0 {
			app.errorResponse(w, r, http.StatusBadRequest, "Invalid page format. page must be a number.")
			return
		}
		page = parsed
	}

	year := 0
	if yearParam != "" {
		year, _ = strconv.Atoi(yearParam)
	}

	movies, pagination, err := app.models.Movies.Search(title, year, page)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"data":       movies,
		"pagination": pagination,
	}

	err = app.writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GET /movies/data/:imdbID
func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	if app.rejectQueryParameters(w, r) {
		return
	}

	imdbID := app.readParam(r, "imdbID")

	movie, err := app.models.Movies.Get(imdbID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "No record exists for the given IMDb ID")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
