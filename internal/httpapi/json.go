package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// decodeJSON reads the request body into v, answering 400 (or 413 past the
// body limit) and returning false when it cannot.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeStatus(w, r, http.StatusRequestEntityTooLarge)
			return false
		}
		badRequest(w, r)
		return false
	}
	return true
}

func writeOK(w http.ResponseWriter, r *http.Request, v any) {
	render.JSON(w, r, v)
}

func created(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}
