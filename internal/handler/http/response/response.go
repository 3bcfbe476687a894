package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync/atomic"
)

// Payload holds the keys merged next to "success" in every envelope.
type Payload map[string]any

var production atomic.Bool

// SetProduction hides internal error details from 500 responses when true.
func SetProduction(p bool) {
	production.Store(p)
}

// IsProduction reports the mode set by SetProduction.
func IsProduction() bool {
	return production.Load()
}

func writeJSON(w http.ResponseWriter, statusCode int, success bool, payload Payload) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = success

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode error", "error", err)
	}
}

// Success responses
func Success(w http.ResponseWriter, payload Payload) {
	writeJSON(w, http.StatusOK, true, payload)
}

func SuccessWithMessage(w http.ResponseWriter, message string, payload Payload) {
	if payload == nil {
		payload = Payload{}
	}
	payload["message"] = message
	writeJSON(w, http.StatusOK, true, payload)
}

func Created(w http.ResponseWriter, message string, payload Payload) {
	if payload == nil {
		payload = Payload{}
	}
	payload["message"] = message
	writeJSON(w, http.StatusCreated, true, payload)
}

// Page describes one slice of a paginated list.
type Page struct {
	Count int64
	Page  int
	Limit int
}

func (p Page) TotalPages() int {
	if p.Limit < 1 {
		return 1
	}
	return int(math.Ceil(float64(p.Count) / float64(p.Limit)))
}

// List writes a paginated collection under key together with count,
// totalPages and currentPage.
func List(w http.ResponseWriter, key string, items any, page Page) {
	writeJSON(w, http.StatusOK, true, Payload{
		key:           items,
		"count":       page.Count,
		"totalPages":  page.TotalPages(),
		"currentPage": page.Page,
	})
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	payload := Payload{"message": message}
	if len(details) > 0 {
		payload["errors"] = details
	}
	writeJSON(w, http.StatusBadRequest, false, payload)
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, false, Payload{"message": message})
}

func Forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, false, Payload{"message": message})
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, false, Payload{"message": message})
}

// ServerError answers 500 "Server error". Outside production the cause is
// attached under "error".
func ServerError(w http.ResponseWriter, err error) {
	payload := Payload{"message": "Server error"}
	if err != nil && !IsProduction() {
		payload["error"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, false, payload)
}

// Panic answers 500 for a recovered panic, with the stack outside production.
func Panic(w http.ResponseWriter, recovered any, stack []byte) {
	payload := Payload{"message": "Server error"}
	if !IsProduction() {
		payload["error"] = fmt.Sprint(recovered)
		payload["stack"] = string(stack)
	}
	writeJSON(w, http.StatusInternalServerError, false, payload)
}
