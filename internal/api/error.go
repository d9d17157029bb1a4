package api

import "encoding/json"

// Error is the single error kind surfaced by the client: application
// errors (non-2xx responses) and transport failures both end up here, so
// callers only ever deal with a human-readable message. Status is zero
// when the request never produced a response.
type Error struct {
	Status  int
	Message string
	// Fields maps field names to messages when the server rejected a
	// request with per-field validation errors.
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorBody struct {
	Message string       `json:"message"`
	Err     string       `json:"error"`
	Errors  []fieldError `json:"errors"`
}

// parseError maps a non-2xx response body to an *Error, preferring the
// server's "message" field, then "error", then a generic fallback.
func parseError(status int, body []byte) *Error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Message
	if msg == "" {
		msg = parsed.Err
	}
	if msg == "" {
		msg = "Something went wrong"
	}

	apiErr := &Error{Status: status, Message: msg}
	if len(parsed.Errors) > 0 {
		apiErr.Fields = make(map[string]string, len(parsed.Errors))
		for _, fe := range parsed.Errors {
			if _, ok := apiErr.Fields[fe.Field]; !ok {
				apiErr.Fields[fe.Field] = fe.Message
			}
		}
	}
	return apiErr
}
