package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the {error, code} body shared with the API handlers.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
