package middleware

import (
	"bytes"
	"context"
	"html"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
	provisionalLockTTL = 60 * time.Second
	storeTimeout       = 2 * time.Second

	// IdempotencyHeader lets non-browser clients supply the token without a form field.
	IdempotencyHeader = "Idempotency-Key"
	tokenField        = "submission_token"

	// ErrorTemplate renders rejected submissions when Echo has a renderer.
	ErrorTemplate = "error.html"

	msgTokenReused = "This form was already submitted with different details. Reload the page and try again."
	msgInProgress  = "This donation is still being processed. Please wait a moment before submitting again."
)

// ---- Data types ----
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// SubmissionGuard replays the stored response for a repeated submission token
// so a resubmitted form records one donation. key = method + route + token.
// Requests without a usable token, or while Redis is unreachable, pass
// through unguarded.
func SubmissionGuard(rdb *redis.Client, ttl time.Duration, log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			// Only enforce on mutating methods
			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			// Buffer & hash body
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			token := submissionToken(req, body)
			if token == "" {
				log.Warn("submission without usable token, not de-duplicated", "path", c.Path())
				return next(c)
			}

			key := buildKey(method, c.Path(), token)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			entry := idempEntry{
				InProgress: true,
				BodySHA256: bhash,
				Token:      token,
				CreatedAt:  nowUTC(),
			}
			ok, err := provisionalSet(ctx, rdb, key, entry)
			if err != nil {
				log.Warn("submission store unavailable, not de-duplicated", "error", err)
				return next(c)
			}
			if !ok {
				// Key exists: body must match, and we may be able to replay
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.Warn("load submission entry", "key", key, "error", errLoad)
				}

				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return conflict(c, msgTokenReused)
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					log.Info("replaying stored submission response", "code", cur.Code)
					return c.Blob(cur.Code, cur.ContentType, cur.Body)
				}
				return conflict(c, msgInProgress)
			}

			// Call next and record final response
			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// server failures release the token so the same form can be retried
			if rec.code >= http.StatusInternalServerError {
				_ = rdb.Del(context.Background(), key).Err()
				return nil
			}
			final := idempEntry{
				InProgress:  false,
				Code:        rec.code,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				Token:       token,
				CreatedAt:   nowUTC(),
			}
			if err := saveFinal(context.Background(), rdb, key, final, ttl); err != nil {
				log.Warn("save submission response", "key", key, "error", err)
			}
			return nil
		}
	}
}

// conflict answers 409 with the site's error page, or a bare HTML fragment
// when no renderer is registered.
func conflict(c echo.Context, msg string) error {
	if c.Echo().Renderer != nil {
		return c.Render(http.StatusConflict, ErrorTemplate, map[string]any{
			"Title":    "Submission not accepted",
			"Messages": []string{msg},
			"Back":     c.Path(),
		})
	}
	return c.HTML(http.StatusConflict, "<p>"+html.EscapeString(msg)+"</p>")
}
