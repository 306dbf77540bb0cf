package common

import (
	"encoding/json"
	"net/http"
)

// JSON пишет ответ в формате JSON с указанным статусом.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Error пишет ошибку в формате {"message": "..."}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}
