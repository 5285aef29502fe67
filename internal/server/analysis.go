package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NotSooShariff/adversarial-vision/api"
	"github.com/NotSooShariff/adversarial-vision/internal/logging"
	"github.com/NotSooShariff/adversarial-vision/pkg/contrast"
	"github.com/NotSooShariff/adversarial-vision/pkg/ocr"
	"github.com/NotSooShariff/adversarial-vision/pkg/transform"
	"github.com/NotSooShariff/adversarial-vision/pkg/visibility"
)

const (
	serviceName        = "Adversarial Vision API"
	serviceVersion     = "1.0.0"
	serviceDescription = "Transform images with adversarial text techniques that AI can detect but humans cannot easily see"

	defaultAnalysisFontSize = 16.0
)

var (
	errInvalidColor    = api.Error{Code: "invalid_color", Error: "Colors must be hex values such as #1A2B3C"}
	errOCR             = api.Error{Code: "ocr_error", Error: "Failed to recognize text in the image"}
	errUnknownTestCase = api.Error{Code: "unknown_test_case", Error: "No test case with this id"}
)

// HealthHandler godoc
//
// @Summary Liveness probe
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// IndexHandler godoc
//
// @Summary List the available techniques and font families
// @Tags service
// @Produce json
// @Success 200 {object} api.IndexResponse
// @Router / [get]
func (s *Server) IndexHandler(ctx *gin.Context) {
	response := api.IndexResponse{
		Name:        serviceName,
		Version:     serviceVersion,
		Description: serviceDescription,
		Fonts:       s.engine.FontFamilies(),
	}
	for _, technique := range transform.Techniques() {
		doc, _ := transform.Describe(technique)
		response.Techniques = append(response.Techniques, api.TechniqueEntry{
			Technique:   string(technique),
			Kind:        string(doc.Kind),
			Description: doc.Description,
			Note:        doc.Note,
			URL:         "/api/v1/transform/" + string(technique),
			Methods:     []string{http.MethodGet, http.MethodPost},
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// ContrastHandler godoc
//
// @Summary Measure the contrast of a color pair
// @Description Computes the WCAG contrast ratio of two colors together with the WCAG level, a human visibility estimate and whether the pair sits in the band people miss but OCR reads. With steps set, also measures evenly spaced blends from the background to the foreground
// @Tags analyze
// @Accept json
// @Produce json
// @Param requestBody body api.ContrastRequest true "Colors and text size to evaluate"
// @Success 200 {object} api.ContrastResponse
// @Failure 400 {object} api.Error
// @Router /analyze/contrast [post]
func ContrastHandler(ctx *gin.Context) {
	var requestBody api.ContrastRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		abortWithError(ctx, logger, bindError(err), errProcessing)
		return
	}

	foreground, ok := contrast.HexToRGB(requestBody.Foreground)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, withField(errInvalidColor, "foreground"))
		return
	}
	background, ok := contrast.HexToRGB(requestBody.Background)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, withField(errInvalidColor, "background"))
		return
	}

	fontSize := requestBody.FontSize
	if fontSize <= 0 {
		fontSize = defaultAnalysisFontSize
	}

	ctx.JSON(http.StatusOK, api.ContrastResponse{
		Report:              visibility.Analyze(contrast.RatioRGB(foreground, background), fontSize, requestBody.Bold, requestBody.Distance),
		ForegroundLuminance: contrast.RelativeLuminance(foreground),
		BackgroundLuminance: contrast.RelativeLuminance(background),
		Ramp:                visibility.Ramp(requestBody.Background, requestBody.Foreground, requestBody.Steps, fontSize, requestBody.Bold, requestBody.Distance),
	})
}

// TestCasesHandler godoc
//
// @Summary Sample low contrast renderings
// @Description Lists the built in test cases and presets, each test case with the metrics measured from its colors
// @Tags analyze
// @Produce json
// @Param category query string false "Only list one category" Enums(sweet-spot, barely-visible, invisible, visible)
// @Success 200 {object} api.TestCasesResponse
// @Router /testcases [get]
func TestCasesHandler(ctx *gin.Context) {
	testCases := contrast.TestCases
	if category := ctx.Query("category"); category != "" {
		testCases = contrast.TestCasesByCategory(contrast.Category(category))
	}

	response := api.TestCasesResponse{
		TestCases: make([]api.TestCase, 0, len(testCases)),
		Presets:   contrast.LowContrastPresets,
		Counts:    map[string]int{},
	}
	for _, testCase := range testCases {
		response.TestCases = append(response.TestCases, measureTestCase(testCase))
		response.Counts[string(testCase.Category)]++
	}
	ctx.JSON(http.StatusOK, response)
}

// TestCaseHandler godoc
//
// @Summary One sample low contrast rendering
// @Tags analyze
// @Produce json
// @Param id path string true "Test case id" example(sweet-1)
// @Success 200 {object} api.TestCase
// @Failure 404 {object} api.Error
// @Router /testcases/{id} [get]
func TestCaseHandler(ctx *gin.Context) {
	testCase, found := contrast.TestCaseByID(ctx.Param("id"))
	if !found {
		ctx.AbortWithStatusJSON(http.StatusNotFound, withField(errUnknownTestCase, "id"))
		return
	}
	ctx.JSON(http.StatusOK, measureTestCase(testCase))
}

func measureTestCase(testCase contrast.TestCase) api.TestCase {
	ratio := contrast.Ratio(testCase.TextColor, testCase.Background)
	return api.TestCase{
		TestCase: testCase,
		Measured: visibility.Analyze(ratio, testCase.FontSize, false, 0),
	}
}

// OCRHandler godoc
//
// @Summary Recognize text in an image
// @Description Optionally preprocesses the image to bring out faint text, then runs OCR on it and flags text that instructs the reader to act. Answers 501 on builds without OCR support
// @Tags analyze
// @Accept json
// @Produce json
// @Param requestBody body api.OCRRequest true "Image and preprocessing options"
// @Success 200 {object} api.OCRResponse
// @Failure 400 {object} api.Error
// @Failure 500 {object} api.Error
// @Failure 501 {object} api.Error
// @Router /ocr [post]
func (s *Server) OCRHandler(ctx *gin.Context) {
	var requestBody api.OCRRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	if s.ocr == nil {
		ctx.AbortWithStatusJSON(http.StatusNotImplemented, errOCRNotEnabled)
		return
	}

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		abortWithError(ctx, logger, bindError(err), errOCR)
		return
	}

	img, _, err := s.codec.DecodeDataURI(requestBody.Image)
	if err != nil {
		abortWithError(ctx, logger, err, errOCR)
		return
	}

	result, err := ocr.Recognize(ctx.Request.Context(), s.ocr, img, ocr.Options{
		ContrastStretch:       requestBody.ContrastStretch,
		HistogramEqualization: requestBody.HistogramEqualization,
		HighPassFilter:        requestBody.HighPassFilter,
		Threshold:             requestBody.Threshold,
	})
	if err != nil {
		abortWithError(ctx, logger, err, errOCR)
		return
	}

	logger.With("confidence", result.Confidence).With("actionable", result.Actionable).Info("OCR was successful")

	words := result.Words
	if words == nil {
		words = []ocr.Word{}
	}
	ctx.JSON(http.StatusOK, api.OCRResponse{
		Text:           result.Text,
		Confidence:     result.Confidence,
		Words:          words,
		ProcessingTime: result.ProcessingTime.String(),
		Actionable:     result.Actionable,
	})
}

func withField(e api.Error, field string) api.Error {
	e.Field = field
	return e
}
