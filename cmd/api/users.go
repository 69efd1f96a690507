package main

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/leebrouse/movieBase/internal/data"
	"github.com/leebrouse/movieBase/internal/validator"
)

var dobRX = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	errDOBNotReal = errors.New("Invalid input: dob must be a real date in format YYYY-MM-DD.")
	errDOBFuture  = errors.New("Invalid input: dob must be a date in the past.")
)

// dob must be a real calendar date, not in the future, with a year in
// [1990, 2023]. A valid-but-future date gets its own message; every other
// failure (unreal date, bad format, out-of-range year) gets the generic one.
func validateDOB(dob string, now time.Time) error {
	if !validator.Matches(dob, dobRX) {
		return errDOBNotReal
	}

	date, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return errDOBNotReal
	}

	if date.After(now) {
		return errDOBFuture
	}

	if date.Year() < 1990 || date.Year() > 2023 {
		return errDOBNotReal
	}

	return nil
}

// POST /user/register
func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
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

	user := &data.User{Email: input.Email}

	if err := user.Password.Set(input.Password); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if err := app.models.Users.Insert(user); err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateEmail):
			app.errorResponse(w, r, http.StatusConflict, "User already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err := app.writeJSON(w, http.StatusCreated, envelope{"message": "User created"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GET /user/:email/profile
func (app *application) showProfileHandler(w http.ResponseWriter, r *http.Request) {
	email := app.readParam(r, "email")

	profile, err := app.models.Users.GetProfile(email)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// dob and address are visible to the profile owner only
	var body any = profile
	if app.contextGetIdentity(r) != email {
		body = profile.Redacted()
	}

	err = app.writeJSON(w, http.StatusOK, body, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// PUT /user/:email/profile
//
// Body validation deliberately runs before the ownership checks: an
// incomplete or malformed body is a 400 even without a token.
func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	email := app.readParam(r, "email")

	// fields are decoded loosely so a wrong type gets its own message
	// instead of a generic decode error
	var input struct {
		FirstName any `json:"firstName"`
		LastName  any `json:"lastName"`
		Dob       any `json:"dob"`
		Address   any `json:"address"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := []any{input.FirstName, input.LastName, input.Dob, input.Address}

	for _, field := range fields {
		if isMissingField(field) {
			app.errorResponse(w, r, http.StatusBadRequest, "Request body incomplete: firstName, lastName, dob and address are required.")
			return
		}
	}

	strs := make([]string, len(fields))
	for i, field := range fields {
		s, ok := field.(string)
		if !ok {
			app.errorResponse(w, r, http.StatusBadRequest, "Request body invalid: firstName, lastName and address must be strings only.")
			return
		}
		strs[i] = s
	}
	firstName, lastName, dob, address := strs[0], strs[1], strs[2], strs[3]

	if err := validateDOB(dob, time.Now()); err != nil {
		app.errorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	identity := app.contextGetIdentity(r)
	if identity == anonymousIdentity {
		app.missingAuthHeaderResponse(w, r)
		return
	}
	if identity != email {
		app.forbiddenResponse(w, r)
		return
	}

	err := app.models.Users.UpdateProfile(email, firstName, lastName, dob, address)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	profile := data.Profile{
		Email:     email,
		FirstName: &firstName,
		LastName:  &lastName,
		Dob:       &dob,
		Address:   &address,
	}

	err = app.writeJSON(w, http.StatusOK, profile, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// isMissingField treats an absent field and an empty string the same way,
// mirroring the required-field contract.
func isMissingField(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
