package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerConfig controls what the request logger records.
type LoggerConfig struct {
	Skipper           middleware.Skipper
	Level             zerolog.Level
	LogRequestBody    bool
	LogRequestHeader  bool
	LogRequestQuery   bool
	LogResponseBody   bool
	LogResponseHeader bool
	LogCaller         bool
}

var DefaultLoggerConfig = LoggerConfig{
	Skipper: middleware.DefaultSkipper,
	Level:   zerolog.DebugLevel,
}

func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

// LoggerWithConfig attaches a request scoped zerolog logger carrying the request id to the
// request context and logs every finished request.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			lctx := log.With().
				Str("id", id).
				Str("host", req.Host).
				Str("method", req.Method).
				Str("url", req.URL.String())

			if config.LogCaller {
				lctx = lctx.Caller()
			}

			l := lctx.Logger()

			ctx := l.WithContext(context.WithValue(req.Context(), util.CTXKeyRequestID, id))
			c.SetRequest(req.WithContext(ctx))
			req = c.Request()

			event := l.WithLevel(config.Level)

			if config.LogRequestBody && req.Body != nil {
				body, err := io.ReadAll(req.Body)
				if err != nil {
					l.Warn().Err(err).Msg("Failed to read request body for logging")
				}
				req.Body = io.NopCloser(bytes.NewReader(body))
				event = event.Bytes("req_body", body)
			}
			if config.LogRequestHeader {
				event = event.Interface("req_header", redactHeader(req.Header))
			}
			if config.LogRequestQuery {
				event = event.Interface("req_query", req.URL.Query())
			}

			var resBody *bytes.Buffer
			if config.LogResponseBody {
				resBody = new(bytes.Buffer)
				res.Writer = &bodyDumpWriter{ResponseWriter: res.Writer, dump: resBody}
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			stop := time.Now()

			event = event.
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", stop.Sub(start))

			if err != nil {
				event = event.Err(err)
			}
			if resBody != nil {
				event = event.Bytes("res_body", resBody.Bytes())
			}
			if config.LogResponseHeader {
				event = event.Interface("res_header", res.Header())
			}

			event.Msg("http_request")

			return nil
		}
	}
}

func redactHeader(h http.Header) http.Header {
	redacted := h.Clone()
	for _, key := range []string{echo.HeaderAuthorization, echo.HeaderCookie} {
		if redacted.Get(key) != "" {
			redacted.Set(key, "*****")
		}
	}
	return redacted
}

type bodyDumpWriter struct {
	http.ResponseWriter
	dump *bytes.Buffer
}

func (w *bodyDumpWriter) Write(b []byte) (int, error) {
	w.dump.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyDumpWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
