// Package envelope writes the uniform {success,message,data,error} body
// shared by every endpoint.
package envelope

import (
	"net/http"
	"survey/internal/models"

	json "github.com/goccy/go-json"
)

var internalErrorBody = []byte(`{"success":false,"message":"Internal server error","error":"internal_error"}`)

func Write(w http.ResponseWriter, status int, body *models.ApiResponse) {
	gson, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		gson = internalErrorBody
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func Success(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusOK, &models.ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Failure(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, &models.ApiResponse{
		Success: false,
		Message: message,
		Error:   code,
	})
}
