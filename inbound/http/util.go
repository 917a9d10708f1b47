package http

import (
	"cudeca-ticket/common/errs"
	"cudeca-ticket/model"
	"encoding/json"
	"errors"
	"github.com/go-playground/validator/v10"
	"net/http"
	"strconv"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var message string
	var data any

	var httpErr *errs.HttpError
	var validationErr validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		message = httpErr.Message
		data = httpErr.Data
		w.WriteHeader(httpErr.Code)
	case errors.As(err, &validationErr):
		message = "Validation failed"
		w.WriteHeader(http.StatusBadRequest)

		validationErrors := make(map[string]string)
		for _, fieldErr := range validationErr {
			validationErrors[fieldErr.Field()] = fieldErr.Tag()
		}

		data = validationErrors
	case errors.Is(err, errs.ErrInvalidRequest):
		message = err.Error()
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, errs.ErrNotFound):
		message = err.Error()
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrDuplicateRequest):
		message = err.Error()
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, errs.ErrStorageFailure):
		message = "Service Unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		message = "Internal Server Error"
		w.WriteHeader(http.StatusInternalServerError)
	}

	errorResponse := model.ErrorResponse{Error: message, Data: data}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// pathID parses a positive numeric path value.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &errs.HttpError{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Data:    map[string]string{name: "not valid"},
		}
	}
	return id, nil
}
