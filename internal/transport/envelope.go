package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when the response body is not a JSON
// envelope.
var ErrMalformedResponse = errors.New("malformed response")

// StatusSuccess is the value of the envelope status field on success.
const StatusSuccess = "success"

// Envelope is the decoded response of a preference mutation.
type Envelope struct {
	HTTPStatus int
	Status     string
	Message    string
	// Data holds the follow-up payload. When the server does not nest it
	// under "data", the remaining top-level fields are collected here.
	Data map[string]any
}

// OK reports whether the server accepted the change: a 2xx status and a
// status field that is either absent or "success".
func (e Envelope) OK() bool {
	if e.HTTPStatus < http.StatusOK || e.HTTPStatus >= http.StatusMultipleChoices {
		return false
	}
	return e.Status == "" || e.Status == StatusSuccess
}

// String returns a string field from Data. Missing, null and non-string
// values report false.
func (e Envelope) String(key string) (string, bool) {
	v, ok := e.Data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Bool returns a boolean field from Data.
func (e Envelope) Bool(key string) (bool, bool) {
	v, ok := e.Data[key].(bool)
	return v, ok
}

func decodeEnvelope(status int, body []byte) (Envelope, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Envelope{HTTPStatus: status}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if raw == nil {
		return Envelope{HTTPStatus: status}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	env := Envelope{HTTPStatus: status, Data: map[string]any{}}
	if s, ok := raw["status"].(string); ok {
		env.Status = s
	}
	if m, ok := raw["message"].(string); ok {
		env.Message = m
	}

	if nested, ok := raw["data"]; ok {
		if m, ok := nested.(map[string]any); ok {
			env.Data = m
		}
		return env, nil
	}

	for k, v := range raw {
		if k == "status" || k == "message" {
			continue
		}
		env.Data[k] = v
	}
	return env, nil
}
