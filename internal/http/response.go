package httpapi

import (
	"encoding/json"
	"net/http"

	"zapgroups-backend-go/internal/services"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// mapServiceError writes a ServiceError if err is one; otherwise the caller
// still owes a response.
func mapServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if serr, ok := err.(services.ServiceError); ok {
		WriteError(w, serr.Status, serr.Message)
		return true
	}
	return false
}

// writeRemoteFailure converts any remote-call failure into the single
// human-readable message the views show; no retry happens anywhere.
func writeRemoteFailure(w http.ResponseWriter, err error) {
	if mapServiceError(w, err) {
		return
	}
	WriteError(w, http.StatusBadGateway, "The listing service is unavailable right now")
}
