package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"survey/internal/apperr"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// decodeBody reads a JSON object into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	if allowEmpty && r.ContentLength == 0 {
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Validation("request body too large", map[string]string{"body": "must not exceed 1MB"})
	}
	return apperr.Validation("invalid request body", map[string]string{"body": "must be a valid JSON object"})
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int, fields map[string]string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = name + " must be an integer"
		return def
	}
	return n
}
