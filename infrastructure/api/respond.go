package api

import (
	"encoding/json"
	"net/http"

	"vchat/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, errors.MapToHTTPStatus(err), map[string]string{
		"error": err.Error(),
	})
}
