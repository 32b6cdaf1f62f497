package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	"github.com/Dias221467/Wallpaper_Hub/pkg/logger"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.WithError(err).Error("Failed to write JSON response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// writeError maps a service error onto a status code and body. Internal
// details are logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = &apperrors.Error{Kind: apperrors.KindInternal, Err: err}
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		fields := make([]map[string]string, 0, len(appErr.Fields))
		for _, f := range appErr.Fields {
			fields = append(fields, map[string]string{f.Field: f.Message})
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"success": false,
			"errors":  fields,
		})
	case apperrors.KindBadRequest, apperrors.KindConflict:
		writeMessage(w, http.StatusBadRequest, appErr.Message)
	case apperrors.KindAuth:
		writeMessage(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.KindNotFound:
		writeMessage(w, http.StatusNotFound, appErr.Message)
	default:
		logger.Log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"kind":   appErr.Kind.String(),
			"error":  err.Error(),
		}).Error("Request failed")
		writeMessage(w, http.StatusInternalServerError, "Server Error")
	}
}
