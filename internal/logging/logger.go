package logging

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key holding the id of the current request.
const RequestIDKey = "request_id"

var base = newBase(os.Stdout, logrus.InfoLevel)

func newBase(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	l.SetLevel(level)
	return l
}

// Configure sets the level of every logger built afterwards.
func Configure(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	base.SetLevel(parsed)
	return nil
}

// SetOutput redirects all loggers to out.
func SetOutput(out io.Writer) {
	base.SetOutput(out)
}

type Logger struct {
	*logrus.Entry
}

func BuildLogger() *Logger {
	return &Logger{Entry: logrus.NewEntry(base)}
}

func BuildLoggerFromCtx(ctx *gin.Context) *Logger {
	fields := logrus.Fields{
		"path":   ctx.Request.URL.Path,
		"method": ctx.Request.Method,
	}
	if requestID := ctx.GetString(RequestIDKey); requestID != "" {
		fields[RequestIDKey] = requestID
	}
	return &Logger{Entry: base.WithFields(fields)}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{Entry: l.Entry.WithError(err)}
}

func (l *Logger) With(key string, value any) *Logger {
	return &Logger{Entry: l.Entry.WithField(key, value)}
}
