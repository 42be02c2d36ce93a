package datetime

import (
	"errors"
	"net/http"

	"mapkit/internal/pkg/errorsx"
	"mapkit/internal/pkg/logctx"
	"mapkit/internal/pkg/logger"
	"mapkit/internal/pkg/mapper"
	"mapkit/internal/pkg/normalizer"
	"mapkit/internal/pkg/server"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ConvertRequest is the body of POST /convert
type ConvertRequest struct {
	Value any            `json:"value"`
	From  map[string]any `json:"from"`
	To    map[string]any `json:"to"`
}

// ConvertResponse carries the normalized value
type ConvertResponse struct {
	Value any `json:"value"`
}

// DenormalizeRequest is the body of POST /denormalize
type DenormalizeRequest struct {
	Value   any            `json:"value"`
	Context map[string]any `json:"context"`
}

// ErrorDetail describes a value that could not be converted
type ErrorDetail struct {
	Message       string   `json:"message"`
	Path          string   `json:"path,omitempty"`
	ExpectedTypes []string `json:"expected_types,omitempty"`
}

// DateTimeHandler handles date-time HTTP requests
type DateTimeHandler struct {
	service *DateTimeService
	logger  *logger.Logger
}

// NewDateTimeHandler creates a new date-time handler
func NewDateTimeHandler(service *DateTimeService, log *logger.Logger) *DateTimeHandler {
	return &DateTimeHandler{
		service: service,
		logger:  log,
	}
}

// Convert handles conversion between two representations
func (h *DateTimeHandler) Convert(c echo.Context) error {
	var req ConvertRequest
	if err := c.Bind(&req); err != nil {
		return server.ErrorResponse(c, http.StatusBadRequest, err.Error(), "Invalid request body")
	}

	value, err := h.service.Convert(req.Value, req.From, req.To)
	if err != nil {
		return h.failure(c, err, "Failed to convert value")
	}

	return server.SuccessResponse(c, http.StatusOK, ConvertResponse{Value: value}, "Value converted successfully")
}

// Denormalize handles decoding a value into an instant
func (h *DateTimeHandler) Denormalize(c echo.Context) error {
	var req DenormalizeRequest
	if err := c.Bind(&req); err != nil {
		return server.ErrorResponse(c, http.StatusBadRequest, err.Error(), "Invalid request body")
	}

	description, err := h.service.Describe(req.Value, req.Context)
	if err != nil {
		return h.failure(c, err, "Failed to denormalize value")
	}

	return server.SuccessResponse(c, http.StatusOK, description, "Value denormalized successfully")
}

func (h *DateTimeHandler) failure(c echo.Context, err error, message string) error {
	var notNormalizable *normalizer.NotNormalizableError
	switch {
	case errors.As(err, &notNormalizable):
		detail := ErrorDetail{
			Message:       "The value is not a valid date-time.",
			Path:          notNormalizable.Path,
			ExpectedTypes: notNormalizable.ExpectedTypes,
		}
		if notNormalizable.UseMessageForUser {
			detail.Message = notNormalizable.Message
		}
		return server.ErrorResponse(c, http.StatusUnprocessableEntity, detail, message)

	case errors.Is(err, normalizer.ErrUnknownTimezone):
		return server.ErrorResponse(c, http.StatusBadRequest, ErrorDetail{Message: err.Error()}, message)

	case errors.Is(err, mapper.ErrValidation), errorsx.IsPermanent(err):
		return server.ErrorResponse(c, http.StatusUnprocessableEntity, ErrorDetail{Message: err.Error()}, message)
	}

	h.logger.Error("Date-time request failed",
		append(logctx.Fields(c.Request().Context()), zap.Error(err))...)
	return server.ErrorResponse(c, http.StatusInternalServerError, nil, message)
}
