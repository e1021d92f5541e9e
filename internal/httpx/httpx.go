package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
)

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// WriteError maps core errors onto HTTP status codes: NotFound becomes 404,
// InvalidInput 400, everything else 500.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, contracts.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	WriteJSON(w, status, map[string]any{"error": err.Error()})
}
