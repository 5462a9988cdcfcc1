package server

import (
	"encoding/json"
	"net/http"
)

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("http.respond.encode", "error", err)
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, apiError{Error: message})
}
