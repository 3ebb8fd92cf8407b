// Package httputil centralizes the JSON response envelope and request
// decoding so every endpoint answers with the same shape:
//
//	{"success": true,  "data": ..., "message": "..."}
//	{"success": false, "error": "...", "details": [...]}
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "coicit/pkg/domain-errors"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope with data and a user-facing message.
func WriteMessage(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// WriteList writes a success envelope with data and its element count.
func WriteList(w http.ResponseWriter, data any, total int) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Total: &total})
}

// WriteError maps a domain error to its HTTP status and failure envelope.
// Unclassified errors become a 500 with a generic message; the real cause is
// the caller's responsibility to log.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.HTTPStatus(code), Envelope{
		Success: false,
		Error:   dErrors.MessageOf(err),
		Details: dErrors.DetailsOf(err),
	})
}

// Decode reads the request body into dst, translating malformed or empty
// bodies into a bad-request domain error.
func Decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dErrors.New(dErrors.CodeBadRequest, "Cuerpo de la solicitud requerido")
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "Cuerpo de la solicitud inválido")
	}
	return nil
}
