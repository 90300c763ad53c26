package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	libvalidator "github.com/MaximJrr/drf-movies/internal/lib/validator"

	"github.com/go-chi/chi/v5"
)

func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request) (id int64, extracted bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		app.Http.BadRequest(w, r, "invalid ID")
		return 0, false
	}
	if id < 1 {
		app.Http.BadRequest(w, r, "id must be greater than zero")
		return 0, false
	}
	return id, true
}

// readValidated decodes the JSON body into dst and validates it. On failure
// the 400 response has already been written and false is returned.
func (app *Application) readValidated(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.readJSON(w, r, dst); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	return app.validateInput(w, r, dst)
}

func (app *Application) validateInput(w http.ResponseWriter, r *http.Request, obj any) bool {
	if errs := libvalidator.ValidateStruct(app.validator, obj); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return false
	}
	return true
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}

// extractQueryInt pulls a required integer query parameter, mirroring the
// 400-on-missing behavior of the filtered movie endpoints.
func (app *Application) extractQueryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		app.Http.BadRequest(w, r, fmt.Sprintf("%s query parameter is required", name))
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		app.Http.BadRequest(w, r, fmt.Sprintf("%s query parameter must be an integer", name))
		return 0, false
	}
	return value, true
}
