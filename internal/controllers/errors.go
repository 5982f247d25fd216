package controllers

import (
	"net/http"
	"survey/internal/apperr"
	"survey/internal/envelope"
	"survey/internal/models"
	"survey/internal/providers"
)

type errorTranslation struct {
	status  int
	message string
}

// errorTable is the only place where error kinds become HTTP statuses.
// An empty message means the error's own message is shown to the client.
var errorTable = map[apperr.Kind]errorTranslation{
	apperr.KindValidation:      {http.StatusUnprocessableEntity, ""},
	apperr.KindUnauthenticated: {http.StatusUnauthorized, ""},
	apperr.KindForbidden:       {http.StatusForbidden, ""},
	apperr.KindNotFound:        {http.StatusOK, ""},
	apperr.KindUpstream:        {http.StatusInternalServerError, "A server error occurred"},
	apperr.KindInternal:        {http.StatusInternalServerError, "An unexpected error occurred"},
}

func writeError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	kind := apperr.KindOf(err)
	tr, ok := errorTable[kind]
	if !ok {
		kind = apperr.KindInternal
		tr = errorTable[kind]
	}

	logType := providers.GetLogTypeByRequestType(r.Method)
	body := &models.ApiResponse{Success: false, Error: kind.String()}

	appErr, isAppErr := apperr.As(err)
	switch {
	case tr.message != "":
		logger.Errorf(logType, "%s %s failed: %v", r.Method, r.URL.Path, err)
		body.Message = tr.message
	case isAppErr:
		body.Message = appErr.Message
		if len(appErr.Fields) > 0 {
			body.Data = appErr.Fields
		}
	default:
		body.Message = err.Error()
	}

	if kind == apperr.KindNotFound {
		// not-found answers are a normal outcome, reported in the body only
		body.Error = ""
	}

	envelope.Write(w, tr.status, body)
}
