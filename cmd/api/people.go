package main

import (
	"errors"
	"net/http"

	"github.com/leebrouse/movieBase/internal/data"
)

// GET /people/:id
func (app *application) showPersonHandler(w http.ResponseWriter, r *http.Request) {
	if app.rejectQueryParameters(w, r) {
		return
	}

	id := app.readParam(r, "id")

	person, err := app.models.People.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "No record exists of a person with this ID")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, person, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
