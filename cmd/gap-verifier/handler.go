package main

import (
	"encoding/json"
	"net/http"

	"github.com/golden-vcr/gap-auth/entry"
	"github.com/golden-vcr/gap-auth/hmac"
)

type identity struct {
	User      string `json:"user"`
	Email     string `json:"email,omitempty"`
	RequestId string `json:"requestId,omitempty"`
}

// newHandler builds the example backend: /healthz is open to anyone, while every other
// route is served only for requests whose Gap-Signature validates
func newHandler(validate func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/", validate(http.HandlerFunc(handleWhoami)))
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// handleWhoami echoes the identity that the proxy asserted for the signed request
func handleWhoami(w http.ResponseWriter, r *http.Request) {
	result := identity{
		User:      r.Header.Get(hmac.HeaderGapAuth),
		Email:     r.Header.Get("X-Forwarded-Email"),
		RequestId: entry.RequestId(r.Context()),
	}
	w.Header().Set("content-type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		entry.Log(r).Error("Failed to write response", "error", err)
	}
}
