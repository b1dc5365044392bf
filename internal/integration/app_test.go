package integration

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	httpHandler "payee-treasury/internal/adapter/http/handler"
	"payee-treasury/internal/adapter/http/middleware"
	"payee-treasury/internal/adapter/metrics"
	memStorage "payee-treasury/internal/adapter/storage/memory"
	redisStorage "payee-treasury/internal/adapter/storage/redis"
	"payee-treasury/internal/core/ports"
	"payee-treasury/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	oneEther    = "1000000000000000000"
	twentyEther = "20000000000000000000"
)

// fakeClock is the treasury's timestamp oracle; request signatures still use
// wall-clock time.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// hookGateway settles on the ledger unless a hook is installed.
type hookGateway struct {
	mu     sync.Mutex
	hook   func(ctx context.Context, to common.Address, amount *uint256.Int) error
	ledger *service.LedgerPayoutGateway
}

func (g *hookGateway) Transfer(ctx context.Context, to common.Address, amount *uint256.Int) error {
	g.mu.Lock()
	hook := g.hook
	g.mu.Unlock()
	if hook != nil {
		return hook(ctx, to, amount)
	}
	return g.ledger.Transfer(ctx, to, amount)
}

func (g *hookGateway) set(hook func(ctx context.Context, to common.Address, amount *uint256.Int) error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hook = hook
}

// observer records the seq of every event pushed to it, in arrival order.
type observer struct {
	mu   sync.Mutex
	seqs []int64
}

func (o *observer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seq, err := strconv.ParseInt(r.Header.Get("X-Event-Seq"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	o.mu.Lock()
	o.seqs = append(o.seqs, seq)
	o.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (o *observer) received() []int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]int64(nil), o.seqs...)
}

type wallet struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

func newWallet(t *testing.T) wallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return wallet{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
}

// testApp runs the full router on the memory driver with miniredis.
// Construction: admin, payee (standard), vip (whitelisted), 1 ether daily
// limit, 20 ether initial funding.
type testApp struct {
	server   *httptest.Server
	redis    *miniredis.Miniredis
	clock    *fakeClock
	gateway  *hookGateway
	treasury ports.TreasuryService
	events   *memStorage.EventRepo
	audits   *memStorage.AuditRepo
	verifier *service.EIP191CallerVerifier

	observer   *observer
	dispatcher *service.EventDispatcher

	admin, payee, vip, stranger wallet
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := zerolog.Nop()
	store := memStorage.NewStore()
	stateRepo := memStorage.NewWalletStateRepo(store)
	payeeRepo := memStorage.NewPayeeRepo(store)
	ledger := memStorage.NewLedgerRepo(store)
	eventRepo := memStorage.NewEventRepo(store)
	auditRepo := memStorage.NewAuditRepo(store)

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0).UTC()}
	gateway := &hookGateway{ledger: service.NewLedgerPayoutGateway(log)}
	verifier := service.NewEIP191CallerVerifier()

	obs := &observer{}
	obsServer := httptest.NewServer(obs)
	t.Cleanup(obsServer.Close)
	dispatcher := service.NewEventDispatcher(obsServer.URL, "observer-secret", service.NewHMACSignatureService(),
		memStorage.NewDeliveryRepo(store), &http.Client{Timeout: 5 * time.Second}, log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dispatcher.Close(ctx) //nolint:errcheck
	})

	registrySvc := service.NewRegistryService(payeeRepo, stateRepo, eventRepo, store, dispatcher, clock, log)
	treasurySvc := service.NewTreasuryService(service.TreasuryDeps{
		PayeeRepo:  payeeRepo,
		StateRepo:  stateRepo,
		EventRepo:  eventRepo,
		Ledger:     ledger,
		Transactor: store,
		Gateway:    gateway,
		Publisher:  dispatcher,
		Metrics:    metrics.New("integration"),
		Clock:      clock,
	}, log)

	app := &testApp{
		redis:      mr,
		clock:      clock,
		gateway:    gateway,
		treasury:   treasurySvc,
		events:     eventRepo,
		audits:     auditRepo,
		verifier:   verifier,
		observer:   obs,
		dispatcher: dispatcher,
		admin:      newWallet(t),
		payee:      newWallet(t),
		vip:        newWallet(t),
		stranger:   newWallet(t),
	}

	req, err := service.ParseConstruction(service.ConstructionParams{
		Deployer:       app.admin.addr.Hex(),
		Payees:         []string{app.payee.addr.Hex(), app.vip.addr.Hex()},
		Whitelisted:    []bool{false, true},
		DailyLimit:     oneEther,
		InitialFunding: twentyEther,
	})
	require.NoError(t, err)
	constructed, err := service.Bootstrap(context.Background(), treasurySvc, req, log)
	require.NoError(t, err)
	require.True(t, constructed)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		RegistrySvc:    registrySvc,
		TreasurySvc:    treasurySvc,
		EventSvc:       service.NewEventQueryService(eventRepo),
		Verifier:       verifier,
		NonceStore:     redisStorage.NewNonceStore(rdb),
		TokenSvc:       service.NewJWTTokenService("integration-secret-0123456789abcdef", time.Hour, "payee-treasury"),
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		AuditSvc:       service.NewAuditService(auditRepo, log),
		Metrics:        metrics.New("integration_http"),
		Logger:         log,
	})
	app.server = httptest.NewServer(router)
	t.Cleanup(app.server.Close)

	return app
}

type apiResponse struct {
	Status    int
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
}

func (a *testApp) do(t *testing.T, req *http.Request) apiResponse {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := apiResponse{Status: resp.StatusCode}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return out
}

// signed sends a request signed by w with a fresh nonce.
func (a *testApp) signed(t *testing.T, w wallet, method, path, body string) apiResponse {
	t.Helper()
	return a.do(t, a.signedRequest(t, w, method, path, body, uuid.NewString()))
}

func (a *testApp) signedRequest(t *testing.T, w wallet, method, path, body, nonce string) *http.Request {
	t.Helper()
	ts := time.Now().Unix()
	sig, err := service.SignCallerPayload(w.key, a.verifier.BuildCanonicalString(method, path, ts, nonce, body))
	require.NoError(t, err)

	req, err := http.NewRequest(method, a.server.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderCaller, w.addr.Hex())
	req.Header.Set(middleware.HeaderSignature, sig)
	req.Header.Set(middleware.HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(middleware.HeaderNonce, nonce)
	return req
}

func (a *testApp) get(t *testing.T, path string) apiResponse {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	return a.do(t, req)
}

func amountBody(amount string) string {
	return `{"amount":"` + amount + `"}`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type treasuryView struct {
	Admin         string `json:"admin"`
	DailyLimit    string `json:"daily_limit"`
	Balance       string `json:"balance"`
	EventSeq      int64  `json:"event_seq"`
	LastEventHash string `json:"last_event_hash"`
}

type payeeView struct {
	Address           string `json:"address"`
	Allowed           bool   `json:"allowed"`
	Whitelisted       bool   `json:"whitelisted"`
	WindowStart       int64  `json:"window_start"`
	WithdrawnInWindow string `json:"withdrawn_in_window"`
}

func (a *testApp) overview(t *testing.T) treasuryView {
	t.Helper()
	resp := a.get(t, "/api/v1/treasury")
	require.Equal(t, http.StatusOK, resp.Status)
	return decode[treasuryView](t, resp.Data)
}

func (a *testApp) payeeRecord(t *testing.T, addr common.Address) payeeView {
	t.Helper()
	resp := a.get(t, "/api/v1/payees/"+addr.Hex())
	require.Equal(t, http.StatusOK, resp.Status)
	return decode[payeeView](t, resp.Data)
}

// remaining reads the payee's remaining allowance in the current window.
func (a *testApp) remaining(t *testing.T, addr common.Address) string {
	t.Helper()
	resp := a.get(t, "/api/v1/treasury/allowances/"+addr.Hex())
	require.Equal(t, http.StatusOK, resp.Status)
	return decode[struct {
		Remaining string `json:"remaining_in_window"`
	}](t, resp.Data).Remaining
}
