package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the error payload every API route returns. A missing
// payload (i.e. the requested object coming back directly) signals
// success; there is no success flag.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// JSON writes v as the response body.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes the conventional error payload. Status must be >= 400.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Message: message})
}

// ValidationFailed writes a 422 with the per-field messages.
func ValidationFailed(w http.ResponseWriter, msgs []string) {
	JSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Message: "validation failed",
		Errors:  msgs,
	})
}

// Decode reads the JSON request body into v. Unknown fields are
// rejected so typos in parameter names surface instead of being
// silently dropped.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
