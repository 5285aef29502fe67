package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/NotSooShariff/adversarial-vision/internal/config"
	"github.com/NotSooShariff/adversarial-vision/internal/logging"
	"github.com/NotSooShariff/adversarial-vision/pkg/imageio"
	"github.com/NotSooShariff/adversarial-vision/pkg/ocr"
	"github.com/NotSooShariff/adversarial-vision/pkg/transform"

	_ "github.com/NotSooShariff/adversarial-vision/docs"
)

const (
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"

	requestIDHeader   = "X-Request-ID"
	binaryContentType = "application/octet-stream"
	shutdownTimeout   = 15 * time.Second
	maxHeaderBytes    = 1 << 20
)

// Server exposes the transforms and analysis tools over HTTP. The OCR engine
// is optional; without one the OCR endpoint answers 501.
type Server struct {
	config     config.ServerConfig
	engine     *transform.Engine
	codec      *imageio.Codec
	ocr        ocr.Engine
	router     *gin.Engine
	httpServer *http.Server
}

// New builds the router. It does not take ownership of ocrEngine, which the
// caller still has to close.
func New(cfg config.ServerConfig, engine *transform.Engine, codec *imageio.Codec, ocrEngine ocr.Engine) *Server {
	gin.SetMode(cfg.Mode)

	s := &Server{
		config: cfg,
		engine: engine,
		codec:  codec,
		ocr:    ocrEngine,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.router,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	return s
}

// routes godoc
// @title Adversarial Vision API
// @version 1.0
// @description Embed text into images so that machines can read it while people can hardly see it
// @BasePath /api/v1
func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), gin.LoggerWithConfig(gin.LoggerConfig{Formatter: logFormatter}), gin.Recovery())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", HealthHandler)

	v1 := r.Group("/api/v1")
	v1.GET("", s.IndexHandler)
	v1.GET("/testcases", TestCasesHandler)
	v1.GET("/testcases/:id", TestCaseHandler)
	v1.GET("/transform/:technique", DescribeTechniqueHandler)
	v1.POST("/analyze/contrast", ContrastHandler)

	limited := v1.Group("", limitBody(s.config.MaxBodyBytes))
	limited.POST("/transform/:technique", s.TransformHandler)
	limited.POST("/extract/steganography", s.ExtractHandler)
	limited.POST("/ocr", s.OCRHandler)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := logging.BuildLogger().With("addr", s.httpServer.Addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	logger.Info("Server started")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// requestID tags every request with a uuid, reusing a valid one sent by the
// client.
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx.Set(logging.RequestIDKey, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes)
		ctx.Next()
	}
}

type accessLog struct {
	Timestamp      string `json:"timestamp"`
	StatusCode     int    `json:"status_code"`
	Latency        string `json:"latency"`
	LatencyRaw     int64  `json:"latency_raw"`
	RequestSize    string `json:"request_size"`
	RequestSizeRaw int    `json:"request_size_raw"`
	ClientIP       string `json:"client_ip"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	RequestID      string `json:"request_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

func logFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	requestID, _ := param.Keys[logging.RequestIDKey].(string)
	line, err := json.Marshal(accessLog{
		Timestamp:      param.TimeStamp.Format(RFC3339Millis),
		StatusCode:     param.StatusCode,
		Latency:        param.Latency.String(),
		LatencyRaw:     int64(param.Latency),
		RequestSize:    humanize.Bytes(uint64(max(param.BodySize, 0))),
		RequestSizeRaw: param.BodySize,
		ClientIP:       param.ClientIP,
		Method:         param.Method,
		Path:           param.Path,
		RequestID:      requestID,
		Error:          param.ErrorMessage,
	})
	if err != nil {
		return "{\"error\":\"failed to format access log\"}\n"
	}
	return string(line) + "\n"
}
