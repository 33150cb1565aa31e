package errors

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standardized error body: {"success":false,"error":404,...}.
type Envelope struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// Respond writes the canonical error envelope for the given code.
func Respond(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Envelope{
		Error:   code,
		Message: Message(code),
	})
}

// RespondBadRequest writes the 400 envelope.
func RespondBadRequest(w http.ResponseWriter) {
	Respond(w, CodeBadRequest)
}

// RespondNotFound writes the 404 envelope.
func RespondNotFound(w http.ResponseWriter) {
	Respond(w, CodeNotFound)
}

// RespondWriteRejected writes the 405 envelope used for rejected writes.
func RespondWriteRejected(w http.ResponseWriter) {
	Respond(w, CodeWriteRejected)
}

// RespondUnprocessable writes the 422 envelope.
func RespondUnprocessable(w http.ResponseWriter) {
	Respond(w, CodeUnprocessable)
}
