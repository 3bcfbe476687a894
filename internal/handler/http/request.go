package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

const maxBodyBytes = 1 << 20

// decodeWithRaw decodes the JSON body into dst and also returns the raw bytes,
// which update operations record as audit metadata.
func decodeWithRaw(r *http.Request, dst any) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// queryInt parses an integer query parameter, returning 0 when it is absent
// or malformed so the DTO defaults apply.
func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
