package httputil

import (
	"encoding/json"
	"net/http"
)

// problemTypes maps the statuses the API returns to their RFC 7807 type URIs
var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.1",
	http.StatusUnauthorized:        "https://datatracker.ietf.org/doc/html/rfc7235#section-3.1",
	http.StatusForbidden:           "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.3",
	http.StatusNotFound:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.4",
	http.StatusConflict:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.8",
	http.StatusGone:                "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.9",
	http.StatusInternalServerError: "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.1",
}

// RespondJSON marshals data before touching the response, so an encoding
// failure still produces a clean 500
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, "application/json", payload)
}

// RespondText writes a plain payload with the given content type
func RespondText(w http.ResponseWriter, status int, contentType, body string) {
	write(w, status, contentType, []byte(body))
}

// ProblemDetail is an RFC 7807 body. Extra members are flattened next to
// the standard ones; validation errors use this for "fields".
type ProblemDetail struct {
	Type   string                 `json:"type"`
	Title  string                 `json:"title"`
	Status int                    `json:"status"`
	Detail string                 `json:"detail,omitempty"`
	Extra  map[string]interface{} `json:"-"`
}

// MarshalJSON flattens Extra; the standard members cannot be overridden
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Extra)+4)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	return json.Marshal(m)
}

// RespondError writes an RFC 7807 problem response
func RespondError(w http.ResponseWriter, status int, detail string) {
	writeProblem(w, newProblem(status, detail, nil))
}

// RespondErrorWithExtras writes an RFC 7807 problem with additional members
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]interface{}) {
	writeProblem(w, newProblem(status, detail, extras))
}

func newProblem(status int, detail string, extras map[string]interface{}) ProblemDetail {
	problemType, ok := problemTypes[status]
	if !ok {
		problemType = "about:blank"
	}
	return ProblemDetail{
		Type:   problemType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Extra:  extras,
	}
}

func writeProblem(w http.ResponseWriter, problem ProblemDetail) {
	payload, err := json.Marshal(problem)
	if err != nil {
		write(w, http.StatusInternalServerError, "text/plain", []byte("internal server error"))
		return
	}
	write(w, problem.Status, "application/problem+json", payload)
}

func write(w http.ResponseWriter, status int, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(payload)
}
