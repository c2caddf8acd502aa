package common

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response shape shared by every endpoint. Count is only
// set on list responses, Data and Error only when there is something to say.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Envelope{Success: false, Message: message, Error: message})
}

func RespondWithData(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, Envelope{Success: true, Message: message, Data: data})
}

// RespondWithList is RespondWithData plus the count field the browser
// client reads on collection endpoints.
func RespondWithList(w http.ResponseWriter, code int, message string, count int, data interface{}) {
	writeJSON(w, code, Envelope{Success: true, Message: message, Count: &count, Data: data})
}

func writeJSON(w http.ResponseWriter, code int, payload Envelope) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
