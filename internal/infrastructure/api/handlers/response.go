package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
