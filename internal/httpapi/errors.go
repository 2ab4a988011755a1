package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/tinoosan/ncnews/internal/errs"
)

// messageResponse is the payload of every failure and of delete confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

var reasons = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusNotFound:              "Page Not Found",
	http.StatusUnsupportedMediaType:  "Unsupported Media Type",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusInternalServerError:   "Internal Server Error",
	http.StatusServiceUnavailable:    "Service Unavailable",
	http.StatusRequestEntityTooLarge: "Request Entity Too Large",
}

// statusMessage renders "<code>: <reason>." for code.
func statusMessage(code int) string {
	reason, ok := reasons[code]
	if !ok {
		reason = http.StatusText(code)
	}
	return fmt.Sprintf("%d: %s.", code, reason)
}

func writeStatus(w http.ResponseWriter, r *http.Request, code int) {
	render.Status(r, code)
	render.JSON(w, r, messageResponse{Message: statusMessage(code)})
}

func badRequest(w http.ResponseWriter, r *http.Request) { writeStatus(w, r, http.StatusBadRequest) }

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, r, http.StatusNotFound)
}

// statusFor maps service and store errors onto response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrMalformedID), errors.Is(err, errs.ErrInvalid), errors.Is(err, errs.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the response for err. Unexpected errors are logged with the request id.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "req_id", chimw.GetReqID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.log.Debug("request rejected", "req_id", chimw.GetReqID(r.Context()), "status", code, "err", err)
	}
	writeStatus(w, r, code)
}
