package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-api/config"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	apiKeyHeader    = "X-API-Key"
	requestIDHeader = "X-Request-ID"
)

type authMiddleware struct {
	responder Responder
	logger    zerolog.Logger
	security  config.Security
}

func newAuthMiddleware(security config.Security, exposeErrors bool) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	if security.APIKey == "" && !security.Production {
		logger.Warn().Msg("API key not configured; write endpoints are open")
	}
	return authMiddleware{
		responder: NewResponder(logger, exposeErrors),
		logger:    logger,
		security:  security,
	}
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// protectWrites requires credentials for every method except GET, HEAD and OPTIONS.
func (m authMiddleware) protectWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isReadOnly(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		m.authenticate(next).ServeHTTP(w, r)
	})
}

// requireKey requires credentials regardless of method.
func (m authMiddleware) requireKey(next http.Handler) http.Handler {
	return m.authenticate(next)
}

func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := m.authorize(r)
		if err != nil {
			reason := "misconfigured"
			switch {
			case errs.IsMissingAPIKeyError(err):
				reason = "missing"
			case errs.IsInvalidAPIKeyError(err):
				reason = "invalid"
			}
			m.logger.Warn().
				Str("reason", reason).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("request_id", RequestIDFromContext(r.Context())).
				Err(err).
				Msg("write access denied")
			m.responder.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithSubject(r.Context(), subject)))
	})
}

// authorize accepts the shared key in X-API-Key, or an HS256 bearer token
// signed with it. It returns the caller's subject.
func (m authMiddleware) authorize(r *http.Request) (string, error) {
	key := m.security.APIKey
	if key == "" {
		if m.security.Production {
			return "", errs.NewAPIKeyNotConfiguredError()
		}
		m.logger.Warn().Str("path", r.URL.Path).Msg("API key not configured; allowing write")
		return "anonymous", nil
	}

	if provided := r.Header.Get(apiKeyHeader); provided != "" {
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) == 1 {
			return "api-key", nil
		}
		return "", errs.NewInvalidAPIKeyError()
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		subject, err := verifyToken(strings.TrimPrefix(authHeader, "Bearer "), key)
		if err != nil {
			return "", errs.NewInvalidAPIKeyError()
		}
		return subject, nil
	}

	return "", errs.NewMissingAPIKeyError(apiKeyHeader)
}

func verifyToken(tokenString, key string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "token", nil
	}
	return claims.Subject, nil
}

// IssueToken signs a bearer token that the write endpoints accept in place of the raw key.
func IssueToken(key, subject string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("API key is not configured")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
}

// RequestID tags every request with an ID, reusing a valid inbound X-Request-ID,
// and attaches a request-scoped logger to the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := ctxWithRequestID(r.Context(), id)
		ctx = log.With().Str("request_id", id).Logger().WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// LogInternalServerErrors recovers panics into a 500 JSON body and logs every 500.
func LogInternalServerErrors(exposeErrors bool) func(http.Handler) http.Handler {
	responder := NewResponder(log.Logger, exposeErrors)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			srw := &statusResponseWriter{ResponseWriter: w, status: 200}

			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					zerolog.Ctx(r.Context()).Error().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Interface("panic", err).
						Str("stack", string(debug.Stack())).
						Msg("Recovered from panic")

					// Write 500 if nothing written yet
					if !srw.wroteHeader {
						responder.WriteError(srw, errs.NewInternalError("Internal server error"))
					}
				}
			}()

			next.ServeHTTP(srw, r)

			if srw.status == http.StatusInternalServerError {
				zerolog.Ctx(r.Context()).Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("500 error response")
			}
		})
	}
}

// originAllowed treats an empty allow-list as allow-all, matching go-chi/cors.
func originAllowed(allowedOrigins []string, origin string) bool {
	if len(allowedOrigins) == 0 {
		return true
	}
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || strings.EqualFold(allowedOrigin, origin) {
			return true
		}
	}
	return false
}

// CORSCheckMiddleware rejects preflight requests from origins outside the allow-list with a JSON 403
func CORSCheckMiddleware(allowedOrigins []string, exposeErrors bool) func(http.Handler) http.Handler {
	responder := NewResponder(log.Logger, exposeErrors)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// If no origin header, it's likely a same-origin request
			if origin == "" || r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(allowedOrigins, origin) {
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware sets CORS headers for allowed origins
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", apiKeyHeader, requestIDHeader},
		ExposedHeaders:   []string{"Location", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(colored bool) func(http.Handler) http.Handler {
	logger := log.Logger
	if colored {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusResponseWriter{ResponseWriter: w, status: 200}

			next.ServeHTTP(srw, r)

			duration := time.Since(start)

			var logEvent *zerolog.Event
			switch {
			case srw.status >= 500:
				logEvent = logger.Error()
			case srw.status >= 400:
				logEvent = logger.Warn()
			default:
				logEvent = logger.Info()
			}

			logEvent.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", srw.status).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("HTTP Request")
		})
	}
}
