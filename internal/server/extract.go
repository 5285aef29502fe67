package server

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/NotSooShariff/adversarial-vision/api"
	"github.com/NotSooShariff/adversarial-vision/internal/logging"
	"github.com/NotSooShariff/adversarial-vision/pkg/stego"
)

var errExtract = api.Error{Code: "extract_error", Error: "Failed to extract a message from the image"}

// ExtractHandler godoc
//
// @Summary Read a message hidden with the steganography technique
// @Description Reads the low bits of the selected channels back into text. The bit configuration must match the one used to embed the message
// @Tags extract
// @Accept json
// @Produce json
// @Param requestBody body api.ExtractRequest true "Image and the bit configuration it was encoded with"
// @Success 200 {object} api.ExtractResponse
// @Failure 400 {object} api.Error
// @Failure 422 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /extract/steganography [post]
func (s *Server) ExtractHandler(ctx *gin.Context) {
	var requestBody api.ExtractRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing extraction request")

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		abortWithError(ctx, logger, bindError(err), errExtract)
		return
	}

	config := stego.Config{BitsPerChannel: requestBody.BitsPerChannel, Channels: requestBody.Channels}
	config.PopulateUnsetConfigVars()
	if err := config.Validate(); err != nil {
		abortWithError(ctx, logger, err, errExtract)
		return
	}

	img, _, err := s.codec.DecodeDataURI(requestBody.Image)
	if err != nil {
		abortWithError(ctx, logger, err, errExtract)
		return
	}

	decoder, err := stego.NewDecoder(img, config)
	if err != nil {
		abortWithError(ctx, logger, err, errExtract)
		return
	}

	text, err := decoder.DecodeMessage()
	if err != nil {
		abortWithError(ctx, logger, err, errExtract)
		return
	}

	logger.With("stats", toHumanizedExtractStats(decoder.Stats())).Info("Extraction was successful")

	capacityBits := config.CapacityBits(img.Rect.Dx() * img.Rect.Dy())
	ctx.JSON(http.StatusOK, api.ExtractResponse{
		Success:      true,
		Text:         text,
		TextLength:   utf8.RuneCountInString(text),
		CapacityBits: capacityBits,
		Capacity:     humanizeBits(capacityBits),
	})
}

// bindError marks a gin binding failure as a client error.
func bindError(err error) error {
	return fmt.Errorf("%w: %w", errInvalidBody, err)
}
