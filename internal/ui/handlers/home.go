package handlers

import (
	"net/http"
)

// HandleHome redirects to the claims list
func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/claims")
		w.WriteHeader(http.StatusOK)
	} else {
		http.Redirect(w, r, "/claims", http.StatusSeeOther)
	}
}

func (h *HandlerService) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
