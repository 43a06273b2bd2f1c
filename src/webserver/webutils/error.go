package webutils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// JSONError writes a JSON object with an error message and sets the HTTP status code.
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	resp := jsonErrorMessage{
		Error: message,
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(&resp); err != nil {
		log.Printf("error writing JSON error body: %s", err)
	}
}

// JSONErrorf is JSONError with a formatted message.
func JSONErrorf(w http.ResponseWriter, statusCode int, format string, args ...any) {
	JSONError(w, fmt.Sprintf(format, args...), statusCode)
}

type jsonErrorMessage struct {
	Error string `json:"error"`
}
