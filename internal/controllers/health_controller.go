package controllers

import (
	"fmt"
	"net/http"
	"survey/internal/envelope"
	"survey/internal/models"
	"survey/internal/services"
	"time"
)

type HealthController struct {
	service   services.SurveyServiceInterface
	startTime time.Time
	now       func() time.Time
}

type healthResponse struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	StoreAvailable bool   `json:"store_available"`
	Uptime         string `json:"uptime"`
}

func (hc *HealthController) Health(w http.ResponseWriter, _ *http.Request) {
	now := hc.now()
	envelope.Success(w, "LIFF Survey API is running", healthResponse{
		Status:         "OK",
		Timestamp:      models.FormatTimestamp(now),
		StoreAvailable: hc.service.StoreAvailable(),
		Uptime:         formatDuration(now.Sub(hc.startTime)),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.SurveyServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
		now:       time.Now,
	}
}
