package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/NotSooShariff/adversarial-vision/api"
	fbTransform "github.com/NotSooShariff/adversarial-vision/api/fb/Transform"
	"github.com/NotSooShariff/adversarial-vision/internal/logging"
	"github.com/NotSooShariff/adversarial-vision/pkg/imageio"
	"github.com/NotSooShariff/adversarial-vision/pkg/model"
	"github.com/NotSooShariff/adversarial-vision/pkg/transform"
)

const (
	vectorMessage   = "SVG path technique requires client-side rendering for best results"
	missingFontNote = "Font family %q is not available, the default font was used."
)

// DescribeTechniqueHandler godoc
//
// @Summary Describe a technique
// @Description Lists the parameters a technique accepts, with their defaults and ranges
// @Tags transform
// @Produce json
// @Param technique path string true "Technique name" Enums(low-contrast, low-opacity, micro-font, svg-path, microtext-tiling, steganography)
// @Success 200 {object} transform.TechniqueDoc
// @Failure 404 {object} api.Error
// @Router /transform/{technique} [get]
func DescribeTechniqueHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)

	technique, err := transform.ParseTechnique(ctx.Param("technique"))
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}
	doc, err := transform.Describe(technique)
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}
	ctx.JSON(http.StatusOK, doc)
}

// TransformHandler godoc
//
// @Summary Embed text into an image
// @Description Applies a technique to the supplied image. JSON bodies get a JSON response with the result as a PNG data URI. A flatbuffers TransformRequest sent as application/octet-stream gets a TransformResponse with raw PNG bytes. Errors are always returned as JSON
// @Tags transform
// @Accept json,octet-stream
// @Produce json,octet-stream
// @Param technique path string true "Technique name" Enums(low-contrast, low-opacity, micro-font, svg-path, microtext-tiling, steganography)
// @Param requestBody body api.TransformRequest true "Image, text and technique parameters"
// @Success 200 {object} api.TransformResponse
// @Failure 400 {object} api.Error
// @Failure 404 {object} api.Error
// @Failure 413 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /transform/{technique} [post]
func (s *Server) TransformHandler(ctx *gin.Context) {
	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing transform request")

	if ctx.ContentType() == binaryContentType {
		s.transformBinary(ctx, logger)
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}

	request, err := s.engine.Parse(ctx.Param("technique"), body)
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}
	technique := request.Config.Technique()
	logger = logger.With("technique", technique)

	if technique.Kind() == transform.KindVector {
		result, err := s.engine.Apply(nil, request.Config)
		if err != nil {
			abortWithError(ctx, logger, err, errProcessing)
			return
		}
		ctx.JSON(http.StatusOK, api.TransformResponse{
			Success:   true,
			SVGConfig: result.Parameters,
			Message:   vectorMessage,
			Metadata:  s.newMetadata(request.Config, result, nil),
		})
		return
	}

	var stats model.TransformStats
	start := time.Now()
	img, _, err := s.codec.DecodeDataURI(request.Image)
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}
	stats.ImageDecoding = time.Since(start)

	output, result, err := s.applyRaster(logger, img, request.Config, &stats)
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}

	ctx.JSON(http.StatusOK, api.TransformResponse{
		Success:  true,
		Image:    imageio.FormatDataURI(imageio.PNGMIMEType, output),
		Metadata: s.newMetadata(request.Config, result, toAPITransformStats(stats, len(output))),
	})
}

// applyRaster runs a raster technique and encodes its result as PNG.
func (s *Server) applyRaster(logger *logging.Logger, img *image.NRGBA, config transform.Config, stats *model.TransformStats) ([]byte, transform.Result, error) {
	result, err := s.engine.Apply(img, config)
	if err != nil {
		return nil, transform.Result{}, err
	}
	stats.Transform = result.Duration

	start := time.Now()
	output := bytes.NewBuffer(make([]byte, 0, len(img.Pix)/2))
	if err := s.codec.EncodePNG(output, result.Image); err != nil {
		return nil, transform.Result{}, err
	}
	stats.ImageEncoding = time.Since(start)

	logger = logger.With("stats", toHumanizedTransformStats(*stats, output.Len()))
	if result.Embed != nil {
		logger = logger.With("embed_stats", toHumanizedEmbedStats(*result.Embed))
	}
	logger.Info("Transform was successful")

	return output.Bytes(), result, nil
}

func (s *Server) transformBinary(ctx *gin.Context, logger *logging.Logger) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}

	request, err := readTransformRequest(body)
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}

	config, err := s.engine.ParseParams(ctx.Param("technique"), request.Params())
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}
	logger = logger.With("technique", config.Technique())

	var (
		output []byte
		result transform.Result
		stats  model.TransformStats
	)
	if config.Technique().Kind() == transform.KindVector {
		result, err = s.engine.Apply(nil, config)
	} else {
		imageBytes := request.ImageBytes()
		if len(imageBytes) == 0 {
			abortWithError(ctx, logger, transform.ErrMissingParameter, errProcessing)
			return
		}

		start := time.Now()
		img, _, decodeErr := s.codec.Decode(imageBytes)
		if decodeErr != nil {
			abortWithError(ctx, logger, decodeErr, errProcessing)
			return
		}
		stats.ImageDecoding = time.Since(start)
		output, result, err = s.applyRaster(logger, img, config, &stats)
	}
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}

	var apiStats *api.TransformStats
	if output != nil {
		apiStats = toAPITransformStats(stats, len(output))
	}
	metadata, err := json.Marshal(s.newMetadata(config, result, apiStats))
	if err != nil {
		abortWithError(ctx, logger, err, errProcessing)
		return
	}

	builder := flatbuffers.NewBuilder(len(output) + len(metadata) + 64)
	var imageOffset flatbuffers.UOffsetT
	if output != nil {
		imageOffset = builder.CreateByteVector(output)
	}
	metadataOffset := builder.CreateByteString(metadata)

	fbTransform.TransformResponseStart(builder)
	if output != nil {
		fbTransform.TransformResponseAddImage(builder, imageOffset)
	}
	fbTransform.TransformResponseAddMetadata(builder, metadataOffset)
	builder.Finish(fbTransform.TransformResponseEnd(builder))

	ctx.Data(http.StatusOK, binaryContentType, builder.FinishedBytes())
}

// readTransformRequest reads the root table of body. Offsets pointing outside
// the buffer make the flatbuffers accessors panic, so they are all touched here
// once and the panic is turned into an error.
func readTransformRequest(body []byte) (request *fbTransform.TransformRequest, err error) {
	if len(body) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("%w: flatbuffer is too short", errInvalidBody)
	}

	defer func() {
		if r := recover(); r != nil {
			request, err = nil, fmt.Errorf("%w: malformed flatbuffer: %v", errInvalidBody, r)
		}
	}()

	request = fbTransform.GetRootAsTransformRequest(body, 0)
	_ = request.ImageBytes()
	_ = request.Params()
	return request, nil
}

func (s *Server) newMetadata(config transform.Config, result transform.Result, stats *api.TransformStats) api.TransformMetadata {
	metadata := api.TransformMetadata{
		Technique:  string(result.Technique),
		Parameters: result.Parameters,
		Timestamp:  time.Now().UTC().Format(RFC3339Millis),
		Stats:      stats,
	}
	if doc, err := transform.Describe(result.Technique); err == nil {
		metadata.Note = doc.Note
	}
	if family, missing := s.engine.MissingFontFamily(config); missing {
		metadata.Note = strings.TrimSpace(metadata.Note + " " + fmt.Sprintf(missingFontNote, family))
	}
	return metadata
}
