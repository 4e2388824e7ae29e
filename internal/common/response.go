package common

import (
	"encoding/json"
	"net/http"
)

// Excuse texts shown on routing dead ends. The originals shipped with the
// product and are kept verbatim.
const (
	NotFoundExcuse = "Apologies, we can't seem to find the Book Repository database or worse, " +
		"we've lost access to the Internet. Please click on the pink pulsating buoy to go to the " +
		"Home Page (registering or signing in) or Member's Page (signed in), or click on Sign Out below."
	InternalErrorExcuse = "Apologies, something serious occurred and the Leprechauns are working on " +
		"resolving the issue. It's most likely Google Mail (GMail) acting up...again. Please click on " +
		"the pink pulsating buoy to go to the Home Page (registering or signing in) or Member's Page " +
		"(signed in), or click on Sign Out below."
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries the user-visible notice for mutations, standing in
// for the reference UI's flash messages.
type MessageResponse struct {
	Message string `json:"message"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func RespondWithMessage(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, MessageResponse{Message: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
