package errors

// Numeric error codes carried in the response envelope. The HTTP status of an
// error response always equals its envelope code.
const (
	CodeBadRequest    = 400
	CodeNotFound      = 404
	CodeWriteRejected = 405
	CodeUnprocessable = 422
)

// Fixed user-facing messages per code. Nothing else ever reaches the wire: no
// store errors, no internal detail.
var messages = map[int]string{
	CodeBadRequest:    "bad request",
	CodeNotFound:      "resource not found",
	CodeWriteRejected: "method not allowed",
	CodeUnprocessable: "unprocessable",
}

// Message returns the canonical message for a known code, falling back to the
// unprocessable message for anything unrecognized.
func Message(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[CodeUnprocessable]
}
