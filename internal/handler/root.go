package handler

import "net/http"

// HandleRoot is the unauthenticated welcome route.
//
// HTTP: GET /
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Welcome to the HabiTap API")
}
