package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"kindnesscup/pkg/id"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, path, token string) string {
	return "idemp:submit:" + strings.ToLower(method) + ":" + path + ":" + token
}

// validToken accepts the form's 32-hex token or a canonical lowercase UUID.
func validToken(tok string) bool {
	if id.Valid(tok) {
		return true
	}
	u, err := uuid.Parse(tok)
	return err == nil && u.String() == tok
}

// submissionToken prefers the Idempotency-Key header, then the form field.
func submissionToken(req *http.Request, body []byte) string {
	tok := strings.ToLower(strings.TrimSpace(req.Header.Get(IdempotencyHeader)))
	if tok == "" {
		mt, _, _ := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
		if mt == echo.MIMEApplicationForm {
			if vals, err := url.ParseQuery(string(body)); err == nil {
				tok = strings.TrimSpace(vals.Get(tokenField))
			}
		}
	}
	if !validToken(tok) {
		return ""
	}
	return tok
}

// ---- Redis helpers ----
func provisionalSet(ctx context.Context, rdb *redis.Client, key string, entry idempEntry) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb *redis.Client, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	_ = json.Unmarshal(v, &e)
	return e, nil
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, entry idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
