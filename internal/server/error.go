package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NotSooShariff/adversarial-vision/api"
	"github.com/NotSooShariff/adversarial-vision/internal/logging"
	"github.com/NotSooShariff/adversarial-vision/pkg/imageio"
	"github.com/NotSooShariff/adversarial-vision/pkg/ocr"
	"github.com/NotSooShariff/adversarial-vision/pkg/stego"
	"github.com/NotSooShariff/adversarial-vision/pkg/transform"
)

var (
	errInvalidBody = errors.New("invalid request body")

	errRequestTooLarge = api.Error{Code: "request_too_large", Error: "Request body is too large"}
	errImageTooLarge   = api.Error{Code: "image_too_large", Error: "Supplied image has too many pixels"}
	errOCRNotEnabled   = api.Error{Code: "ocr_not_enabled", Error: "OCR is not available on this server"}
	errNoMessage       = api.Error{Code: "no_message", Error: "No hidden message found with the given bit configuration"}
	errProcessing      = api.Error{Code: "processing_error", Error: "Failed to process image transformation"}
)

// abortWithError answers with the status matching err. Client errors carry
// their message; anything else is logged and hidden behind fallback.
func abortWithError(ctx *gin.Context, logger *logging.Logger, err error, fallback api.Error) {
	var (
		validationErr *transform.ValidationError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &maxBytesErr):
		logger.WithError(err).Info("Rejected oversized request body")
		ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errRequestTooLarge)
	case errors.Is(err, transform.ErrUnknownTechnique):
		errors.As(err, &validationErr)
		ctx.AbortWithStatusJSON(http.StatusNotFound, api.Error{Code: "unknown_technique", Error: err.Error(), Field: fieldOf(validationErr)})
	case errors.As(err, &validationErr):
		logger.WithError(err).Info("Rejected invalid request")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: validationCode(err), Error: validationErr.Error(), Field: validationErr.Field})
	case errors.Is(err, transform.ErrMissingParameter):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: "missing_parameter", Error: "Missing required parameters: image and text"})
	case errors.Is(err, stego.ErrCapacity):
		logger.WithError(err).Info("Rejected message over capacity")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: "capacity_exceeded", Error: err.Error(), Field: "text"})
	case errors.Is(err, stego.ErrInvalidConfig):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: "validation_error", Error: err.Error()})
	case errors.Is(err, stego.ErrNoTerminator):
		ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, errNoMessage)
	case errors.Is(err, errInvalidBody):
		logger.WithError(err).Info("Rejected unreadable request body")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: "invalid_body", Error: err.Error()})
	case errors.Is(err, imageio.ErrImageTooLarge):
		logger.WithError(err).Info("Rejected oversized image")
		ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errImageTooLarge)
	case errors.Is(err, ocr.ErrInvalidThreshold):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: "validation_error", Error: err.Error(), Field: "threshold"})
	case errors.Is(err, ocr.ErrOCRNotEnabled):
		ctx.AbortWithStatusJSON(http.StatusNotImplemented, errOCRNotEnabled)
	default:
		logger.WithError(err).Error("Request failed")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, fallback)
	}
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, transform.ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, transform.ErrTechniqueMismatch):
		return "technique_mismatch"
	}
	return "validation_error"
}

func fieldOf(err *transform.ValidationError) string {
	if err == nil {
		return ""
	}
	return err.Field
}
