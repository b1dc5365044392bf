package middleware

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"payee-treasury/internal/core/ports"
	"payee-treasury/internal/core/ports/mocks"
	"payee-treasury/internal/service"
	"payee-treasury/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Unix(1_700_000_000, 0)

func testSettings() AuthSettings {
	return AuthSettings{Now: func() time.Time { return fixedNow }}
}

func newKey(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey)
}

// signedRequest builds a request signed the way a wallet client would.
func signedRequest(t *testing.T, key *ecdsa.PrivateKey, method, path, body string, ts int64, nonce string) *http.Request {
	t.Helper()
	verifier := service.NewEIP191CallerVerifier()
	sig, err := service.SignCallerPayload(key, verifier.BuildCanonicalString(method, path, ts, nonce, body))
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(HeaderCaller, crypto.PubkeyToAddress(key.PublicKey).Hex())
	req.Header.Set(HeaderSignature, sig)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderNonce, nonce)
	return req
}

func callerEcho(c *gin.Context) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.Status(http.StatusTeapot)
		return
	}
	body, _ := io.ReadAll(c.Request.Body)
	c.JSON(http.StatusOK, gin.H{"caller": caller.Hex(), "body": string(body)})
}

func TestSignatureAuth_MissingHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := gin.New()
	router.POST("/test", SignatureAuth(service.NewEIP191CallerVerifier(), mocks.NewMockNonceStore(ctrl), testSettings(), zerolog.Nop()), callerEcho)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_001")
}

func TestSignatureAuth_ExpiredTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, _ := newKey(t)
	router := gin.New()
	router.POST("/test", SignatureAuth(service.NewEIP191CallerVerifier(), mocks.NewMockNonceStore(ctrl), testSettings(), zerolog.Nop()), callerEcho)

	for _, ts := range []int64{fixedNow.Unix() - 61, fixedNow.Unix() + 61} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedRequest(t, key, http.MethodPost, "/test", "{}", ts, "n1"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "SEC_003")
	}
}

func TestSignatureAuth_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, addr := newKey(t)
	nonces := mocks.NewMockNonceStore(ctrl)
	nonces.EXPECT().CheckAndSet(gomock.Any(), addr.Hex(), "nonce-1", 120*time.Second).Return(true, nil)

	router := gin.New()
	router.POST("/test", SignatureAuth(service.NewEIP191CallerVerifier(), nonces, testSettings(), zerolog.Nop()), callerEcho)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, key, http.MethodPost, "/test", `{"amount":"1"}`, fixedNow.Unix()-30, "nonce-1"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), addr.Hex())
	assert.Contains(t, w.Body.String(), `{\"amount\":\"1\"}`, "body must be readable after verification")
}

func TestSignatureAuth_TamperedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, _ := newKey(t)
	router := gin.New()
	router.POST("/test", SignatureAuth(service.NewEIP191CallerVerifier(), mocks.NewMockNonceStore(ctrl), testSettings(), zerolog.Nop()), callerEcho)

	req := signedRequest(t, key, http.MethodPost, "/test", `{"amount":"1"}`, fixedNow.Unix(), "n")
	req.Body = io.NopCloser(bytes.NewBufferString(`{"amount":"1000"}`))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_002")
}

func TestSignatureAuth_ClaimedAddressMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, _ := newKey(t)
	_, other := newKey(t)
	router := gin.New()
	router.POST("/test", SignatureAuth(service.NewEIP191CallerVerifier(), mocks.NewMockNonceStore(ctrl), testSettings(), zerolog.Nop()), callerEcho)

	req := signedRequest(t, key, http.MethodPost, "/test", "", fixedNow.Unix(), "n")
	req.Header.Set(HeaderCaller, other.Hex())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignatureAuth_ReplayedNonce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, _ := newKey(t)
	nonces := mocks.NewMockNonceStore(ctrl)
	nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), "dup", gomock.Any()).Return(false, nil)

	router := gin.New()
	router.POST("/test", SignatureAuth(service.NewEIP191CallerVerifier(), nonces, testSettings(), zerolog.Nop()), callerEcho)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, key, http.MethodPost, "/test", "", fixedNow.Unix(), "dup"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_004")
}

func TestSignatureAuth_NonceStoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, _ := newKey(t)
	nonces := mocks.NewMockNonceStore(ctrl)
	nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

	router := gin.New()
	router.POST("/test", SignatureAuth(service.NewEIP191CallerVerifier(), nonces, testSettings(), zerolog.Nop()), callerEcho)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, key, http.MethodPost, "/test", "", fixedNow.Unix(), "n"))

	assert.Equal(t, http.StatusInternalServerError, w.Code, "replay protection fails closed")
}

func TestCallerAuth_Bearer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, addr := newKey(t)
	tokens := mocks.NewMockTokenService(ctrl)
	tokens.EXPECT().Validate("good-token").Return(&ports.TokenClaims{Caller: addr}, nil)
	tokens.EXPECT().Validate("bad-token").Return(nil, errors.New("expired"))

	router := gin.New()
	router.POST("/test", CallerAuth(mocks.NewMockCallerVerifier(ctrl), mocks.NewMockNonceStore(ctrl), tokens, testSettings(), zerolog.Nop()), callerEcho)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), addr.Hex())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SEC_005")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	req.Header.Set("Authorization", "Basic abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCallerAuth_FallsBackToSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key, addr := newKey(t)
	nonces := mocks.NewMockNonceStore(ctrl)
	nonces.EXPECT().CheckAndSet(gomock.Any(), addr.Hex(), "n", gomock.Any()).Return(true, nil)

	router := gin.New()
	router.POST("/test", CallerAuth(service.NewEIP191CallerVerifier(), nonces, mocks.NewMockTokenService(ctrl), testSettings(), zerolog.Nop()), callerEcho)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, key, http.MethodPost, "/test", "", fixedNow.Unix(), "n"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		response.OK(c, nil)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "req-abc")
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-abc", w.Header().Get(HeaderRequestID))
	assert.Contains(t, w.Body.String(), `"request_id":"req-abc"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/missing", func(c *gin.Context) {
		c.Set(CtxCaller, common.HexToAddress("0x16f1b1cb43c0744f85b52104f6a7c3cc60cd3c49"))
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, strings.ToLower(buf.String()), "0x16f1b1cb43c0744f85b52104f6a7c3cc60cd3c49")
}
