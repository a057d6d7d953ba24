package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Decision says whether a failed candidate call should advance the
// cascade to the next model or end it.
type Decision int

const (
	TryNext Decision = iota
	Stop
)

// apiError carries the raw HTTP status and error body of a failed
// generateContent call for classification.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gemini api error: %d - %s", e.status, e.body)
}

// Classify maps a candidate failure to a cascade decision. Rate limits
// and unknown-model replies are transient for that one model; anything
// else ends the cascade. Matching is on error-body substrings rather
// than status codes alone: the API reports deprecated and renamed
// models inconsistently across 400 and 404.
func Classify(err error) Decision {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.status, apiErr.body)
	}

	// Transport-level failure; the error text is all there is to go on
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate") {
		return TryNext
	}
	return Stop
}

func classifyStatus(status int, body string) Decision {
	if status == http.StatusTooManyRequests {
		return TryNext
	}
	if (status == http.StatusNotFound || status == http.StatusBadRequest) && mentionsUnknownModel(body) {
		return TryNext
	}
	if strings.Contains(body, "quota") || strings.Contains(body, "rate") {
		return TryNext
	}
	return Stop
}

func mentionsUnknownModel(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range []string{"not found", "does not exist", "is not supported", "unavailable", "unknown model"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
