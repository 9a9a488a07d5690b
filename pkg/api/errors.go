package api

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch {
	case code == errs.ErrCodeNotFound:
		return http.StatusNotFound
	case code.IsInput():
		return http.StatusBadRequest
	case code == errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case code == errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == errs.ErrCodeStorage:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Error: errorDetail{Code: code, Message: errs.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

func errMethod(method, path string) error {
	return errs.New(errs.ErrCodeUnsupported, "%s not allowed on %s", method, path)
}
