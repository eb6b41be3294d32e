package controller

import (
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies; every accepted shape is far smaller
const maxBodyBytes = 64 << 10

// Fixed user-facing failure messages
const (
	messageServerError       = "Server error"
	messageVerificationFail  = "Verification failed"
	messageLocationNotFound  = "Location not found"
	messageDistanceFailed    = "Distance calculation failed"
	messageMethodNotAllowed  = "Method not allowed"
	messageImageNotAvailable = "Image not found"
)

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Response: Error encoding response: %v", err)
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureResponse{Success: false, Message: message})
}

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

// clientIP prefers the address reported by the edge proxy
func clientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
