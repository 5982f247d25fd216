package controllers

import (
	"net/http"
	"survey/internal/apperr"
	"survey/internal/envelope"
	"survey/internal/models"
	"survey/internal/providers"
	"survey/internal/services"
)

type SurveyController struct {
	logger  providers.Logger
	service services.SurveyServiceInterface
}

func NewSurveyController(logger providers.Logger, service services.SurveyServiceInterface) *SurveyController {
	return &SurveyController{
		logger:  logger,
		service: service,
	}
}

type submitResult struct {
	ID string `json:"id"`
}

func (sc *SurveyController) Submit(w http.ResponseWriter, r *http.Request) {
	ident, ok := mustIdentity(w, r, sc.logger)
	if !ok {
		return
	}

	var req models.SurveyRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		writeError(w, r, sc.logger, err)
		return
	}

	id, err := sc.service.Submit(r.Context(), ident, &req)
	if err != nil {
		writeError(w, r, sc.logger, err)
		return
	}

	envelope.Success(w, "Survey response saved", submitResult{ID: id})
}

// Results serves a page of responses for the admin view. It does not
// require an identity.
func (sc *SurveyController) Results(w http.ResponseWriter, r *http.Request) {
	fields := map[string]string{}
	limit := queryInt(r, "limit", services.DefaultResultsLimit, fields)
	offset := queryInt(r, "offset", 0, fields)
	if len(fields) > 0 {
		writeError(w, r, sc.logger, apperr.Validation("invalid pagination", fields))
		return
	}

	results, err := sc.service.Results(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, sc.logger, err)
		return
	}

	envelope.Success(w, "", results)
}
