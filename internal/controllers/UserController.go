package controllers

import (
	"net/http"
	"survey/internal/apperr"
	"survey/internal/envelope"
	"survey/internal/models"
	"survey/internal/providers"
	"survey/internal/services"

	"github.com/gorilla/mux"
)

type UserController struct {
	logger  providers.Logger
	service services.SurveyServiceInterface
}

func NewUserController(logger providers.Logger, service services.SurveyServiceInterface) *UserController {
	return &UserController{
		logger:  logger,
		service: service,
	}
}

// Status reports whether the caller has answered. The body is optional; a
// userId in it must match the verified identity.
func (uc *UserController) Status(w http.ResponseWriter, r *http.Request) {
	ident, ok := mustIdentity(w, r, uc.logger)
	if !ok {
		return
	}

	var req models.UserStatusRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		writeError(w, r, uc.logger, err)
		return
	}
	if req.UserID != "" && req.UserID != ident.ID {
		writeError(w, r, uc.logger, apperr.Forbidden("access denied"))
		return
	}

	status, err := uc.service.UserStatus(r.Context(), ident.ID)
	if err != nil {
		writeError(w, r, uc.logger, err)
		return
	}

	envelope.Success(w, "User status retrieved", status)
}

func (uc *UserController) LatestResponse(w http.ResponseWriter, r *http.Request) {
	ident, ok := mustIdentity(w, r, uc.logger)
	if !ok {
		return
	}

	userID := mux.Vars(r)["userId"]
	if userID != ident.ID {
		writeError(w, r, uc.logger, apperr.Forbidden("access denied"))
		return
	}

	latest, err := uc.service.LatestResponse(r.Context(), userID)
	if err != nil {
		writeError(w, r, uc.logger, err)
		return
	}

	envelope.Success(w, "Latest response retrieved", latest)
}
