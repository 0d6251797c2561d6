package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fintrack-server/src/engine"
)

// consistencyErrors are the engine's pre-write validation failures. They are
// surfaced as 422 so clients can show them inline; nothing was written.
var consistencyErrors = []error{
	engine.ErrCategoryTypeMismatch,
	engine.ErrNoCategoryAvailable,
	engine.ErrInvalidPair,
	engine.ErrUnbalancedRefund,
	engine.ErrNotConvertible,
	engine.ErrInsufficientAccounts,
	engine.ErrUnsupportedDirectTransition,
	engine.ErrTypeSelectionRequired,
}

// writeConsistencyError maps an engine validation failure to a 422 response.
// Returns false when err is not part of the engine taxonomy.
func writeConsistencyError(w http.ResponseWriter, err error) bool {
	for _, sentinel := range consistencyErrors {
		if errors.Is(err, sentinel) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
