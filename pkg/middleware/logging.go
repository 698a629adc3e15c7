package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/refconsole/pkg/composables"
	"github.com/iota-uz/refconsole/pkg/configuration"
	"github.com/iota-uz/refconsole/pkg/constants"
	"github.com/iota-uz/refconsole/pkg/routing"
)

type LoggerOptions struct {
	LogRequestBody  bool
	LogResponseBody bool
	MaxBodyLength   int

	// RequestIDHeader and RealIPHeader default to the configuration values.
	RequestIDHeader string
	RealIPHeader    string
	Repanic         bool

	// AllowlistPath and Entrypoint select the routing allowlist used to
	// classify paths. An empty path falls back to routing.DefaultAllowlistPath.
	AllowlistPath string
	Entrypoint    string
}

func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		LogRequestBody:  true,
		LogResponseBody: true,
		MaxBodyLength:   512,
	}
}

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
	body          *bytes.Buffer
	limit         int
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Write(b []byte) (int, error) {
	if !w.statusWritten {
		w.WriteHeader(http.StatusOK)
	}
	if room := w.limit - w.body.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.body.Write(b[:room])
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func wrapResponseWriter(w http.ResponseWriter, limit int) *responseCaptureWriter {
	return &responseCaptureWriter{
		ResponseWriter: w,
		body:           &bytes.Buffer{},
		limit:          limit,
	}
}

func realIP(r *http.Request, header string) string {
	if header != "" && r.Header.Get(header) != "" {
		return r.Header.Get(header)
	}
	return r.RemoteAddr
}

func requestID(r *http.Request, header string) string {
	if header != "" && r.Header.Get(header) != "" {
		return r.Header.Get(header)
	}
	return uuid.New().String()
}

var tracer = otel.Tracer("refconsole-middleware")

func TracedMiddleware(name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(
				r.Context(),
				"middleware."+name,
				trace.WithAttributes(
					attribute.String("middleware.name", name),
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
				),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func formatHeaders(h http.Header) map[string]string {
	headers := make(map[string]string)
	for key, values := range h {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	return headers
}

func formatFormValues(f url.Values) map[string]string {
	formValues := make(map[string]string)
	for key, values := range f {
		formValues[key] = strings.Join(values, ",")
	}
	return formValues
}

func shouldLogBody(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "application/json") ||
		strings.Contains(contentType, "application/x-www-form-urlencoded")
}

// wantsJSON reports whether a failure should be answered with a JSON envelope.
func wantsJSON(classifier *routing.Classifier, r *http.Request) bool {
	class, ok := classifier.ClassifyPath(r.URL.Path)
	return ok && class == routing.RouteClassInternalAPI
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func logRequestBody(r *http.Request, log *logrus.Entry, maxLen int) error {
	contentType := r.Header.Get("Content-Type")
	if !shouldLogBody(contentType) || r.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if strings.Contains(contentType, "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil
		}
		log.WithField("request-body", formatFormValues(values)).Info("form-urlencoded request-body parsed")
		return nil
	}
	log.WithField("request-body", truncate(string(raw), maxLen)).Info("JSON request-body captured")
	return nil
}

// WithLogger opens the request span, stores a request-scoped logger in the
// context and recovers handler panics.
func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	if opts.RequestIDHeader == "" || opts.RealIPHeader == "" {
		conf := configuration.Use()
		if opts.RequestIDHeader == "" {
			opts.RequestIDHeader = conf.RequestIDHeader
		}
		if opts.RealIPHeader == "" {
			opts.RealIPHeader = conf.RealIPHeader
		}
	}
	rules, err := routing.LoadAllowlist(opts.AllowlistPath, opts.Entrypoint)
	if err != nil {
		logger.WithError(err).Warn("routing allowlist not loaded, classifying by path convention only")
		rules = nil
	}
	classifier := routing.NewClassifier(rules)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				reqID := requestID(r, opts.RequestIDHeader)
				ip := realIP(r, opts.RealIPHeader)

				fieldsLogger := logger.WithFields(logrus.Fields{
					"request-id": reqID,
					"path":       r.RequestURI,
					"method":     r.Method,
				})

				fieldsLogger.WithFields(logrus.Fields{
					"host":       r.Host,
					"ip":         ip,
					"user-agent": r.UserAgent(),
				}).Info("request started")

				isMutating := r.Method == http.MethodPost ||
					r.Method == http.MethodPut ||
					r.Method == http.MethodPatch ||
					r.Method == http.MethodDelete
				if isMutating && opts.LogRequestBody {
					if err := logRequestBody(r, fieldsLogger, opts.MaxBodyLength); err != nil {
						fieldsLogger.WithError(err).Error("failed to read request-body")
						http.Error(w, "failed to read request-body", http.StatusBadRequest)
						return
					}
				}

				propagator := propagation.TraceContext{}
				ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
				ctx, span := tracer.Start(
					ctx,
					"http.request",
					trace.WithAttributes(
						attribute.String("http.method", r.Method),
						attribute.String("http.route", r.URL.Path),
						attribute.String("http.request_id", reqID),
						attribute.String("net.peer.ip", ip),
					),
				)
				defer span.End()

				if spanContext := span.SpanContext(); spanContext.HasTraceID() {
					w.Header().Set("X-Trace-Id", spanContext.TraceID().String())
					fieldsLogger = fieldsLogger.WithField("trace-id", spanContext.TraceID().String())
				}
				w.Header().Set(opts.RequestIDHeader, reqID)

				ctx = composables.WithLogger(ctx, fieldsLogger)
				ctx = contextWithValue(ctx, constants.RequestStart, start)

				wrapped := wrapResponseWriter(w, opts.MaxBodyLength)

				defer func() {
					recovered := recover()
					if recovered == nil {
						return
					}
					fieldsLogger.WithFields(logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"duration": time.Since(start),
					}).Error("panic recovered in request handler")

					if !wrapped.statusWritten {
						if wantsJSON(classifier, r) {
							wrapped.Header().Set("Content-Type", "application/json")
							wrapped.WriteHeader(http.StatusInternalServerError)
							_ = json.NewEncoder(wrapped).Encode(map[string]any{
								"code":    "INTERNAL_SERVER_ERROR",
								"message": "internal server error",
								"meta": map[string]string{
									"request_id": reqID,
								},
							})
						} else {
							http.Error(wrapped, "Internal Server Error", http.StatusInternalServerError)
						}
					}
					if opts.Repanic {
						panic(recovered)
					}
				}()

				next.ServeHTTP(wrapped, r.WithContext(ctx))

				statusCode := wrapped.Status()
				duration := time.Since(start)
				completed := fieldsLogger.WithFields(logrus.Fields{
					"duration":     duration,
					"status-code":  statusCode,
					"status-class": statusCode / 100,
				})
				if opts.LogResponseBody && shouldLogBody(wrapped.Header().Get("Content-Type")) {
					completed = completed.WithField("response-body", wrapped.body.String())
				}
				completed.Info("request completed")

				span.SetAttributes(
					attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
					attribute.Int("http.status_code", statusCode),
				)
			},
		)
	}
}
