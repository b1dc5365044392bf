package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"payee-treasury/internal/core/ports"
	"payee-treasury/pkg/apperror"
	"payee-treasury/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Header names for signed requests
	HeaderCaller    = "X-Caller-Address"
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxCaller = "caller"
)

// AuthSettings tunes signed-request verification.
type AuthSettings struct {
	MaxTimestampDrift time.Duration // default 60s
	NonceTTL          time.Duration // default 120s
	Now               func() time.Time
}

func (s AuthSettings) withDefaults() AuthSettings {
	if s.MaxTimestampDrift <= 0 {
		s.MaxTimestampDrift = 60 * time.Second
	}
	if s.NonceTTL <= 0 {
		s.NonceTTL = 120 * time.Second
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// CallerFrom returns the authenticated caller set by SignatureAuth or CallerAuth.
func CallerFrom(c *gin.Context) (common.Address, bool) {
	v, ok := c.Get(CtxCaller)
	if !ok {
		return common.Address{}, false
	}
	addr, ok := v.(common.Address)
	return addr, ok
}

// SignatureAuth authenticates a request signed with the caller's key.
// Pipeline: check timestamp -> recover signer -> match claimed address -> burn nonce.
func SignatureAuth(
	verifier ports.CallerVerifier,
	nonceStore ports.NonceStore,
	settings AuthSettings,
	log zerolog.Logger,
) gin.HandlerFunc {
	settings = settings.withDefaults()
	return func(c *gin.Context) {
		caller, err := verifySignedRequest(c, verifier, nonceStore, settings, log)
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(CtxCaller, caller)
		c.Next()
	}
}

// CallerAuth accepts either a bearer session token or a signed request.
func CallerAuth(
	verifier ports.CallerVerifier,
	nonceStore ports.NonceStore,
	tokenSvc ports.TokenService,
	settings AuthSettings,
	log zerolog.Logger,
) gin.HandlerFunc {
	settings = settings.withDefaults()
	return func(c *gin.Context) {
		var (
			caller common.Address
			err    error
		)
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			caller, err = verifyBearer(authHeader, tokenSvc)
		} else {
			caller, err = verifySignedRequest(c, verifier, nonceStore, settings, log)
		}
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(CtxCaller, caller)
		c.Next()
	}
}

func verifyBearer(authHeader string, tokenSvc ports.TokenService) (common.Address, error) {
	tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || tokenStr == "" {
		return common.Address{}, apperror.ErrInvalidToken()
	}
	claims, err := tokenSvc.Validate(tokenStr)
	if err != nil {
		return common.Address{}, apperror.ErrInvalidToken()
	}
	return claims.Caller, nil
}

func verifySignedRequest(
	c *gin.Context,
	verifier ports.CallerVerifier,
	nonceStore ports.NonceStore,
	settings AuthSettings,
	log zerolog.Logger,
) (common.Address, error) {
	claimed := c.GetHeader(HeaderCaller)
	signature := c.GetHeader(HeaderSignature)
	timestampStr := c.GetHeader(HeaderTimestamp)
	nonce := c.GetHeader(HeaderNonce)

	if claimed == "" || signature == "" || timestampStr == "" || nonce == "" {
		return common.Address{}, apperror.ErrMissingCredentials()
	}
	if !common.IsHexAddress(claimed) {
		return common.Address{}, apperror.ErrMissingCredentials()
	}

	// Step 1: Timestamp check
	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return common.Address{}, apperror.ErrTimestampExpired()
	}
	drift := settings.Now().Unix() - timestamp
	if drift < 0 {
		drift = -drift
	}
	if time.Duration(drift)*time.Second > settings.MaxTimestampDrift {
		return common.Address{}, apperror.ErrTimestampExpired()
	}

	// Step 2: Signature recovery over the canonical string
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return common.Address{}, apperror.InvalidInput("cannot read request body")
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	canonical := verifier.BuildCanonicalString(
		c.Request.Method,
		c.Request.URL.Path,
		timestamp,
		nonce,
		string(bodyBytes),
	)
	signer, err := verifier.Recover(canonical, signature)
	if err != nil || signer != common.HexToAddress(claimed) {
		return common.Address{}, apperror.ErrInvalidSignature()
	}

	// Step 3: Nonce is burned only once the signature is known good, so an
	// attacker cannot exhaust a caller's nonces with garbage signatures.
	isNew, err := nonceStore.CheckAndSet(c.Request.Context(), signer.Hex(), nonce, settings.NonceTTL)
	if err != nil {
		log.Error().Err(err).Msg("nonce store unavailable, rejecting signed request")
		return common.Address{}, apperror.InternalError(err)
	}
	if !isNew {
		return common.Address{}, apperror.ErrNonceUsed()
	}
	return signer, nil
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(response.CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		if caller, ok := CallerFrom(c); ok {
			event = event.Str("caller", caller.Hex())
		}
		if id, ok := c.Get(response.CtxRequestID); ok {
			event = event.Interface("request_id", id)
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
