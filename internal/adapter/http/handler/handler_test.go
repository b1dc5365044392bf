package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"payee-treasury/internal/adapter/http/middleware"
	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"
	"payee-treasury/internal/core/ports/mocks"
	"payee-treasury/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	admin = common.HexToAddress("0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1")
	alice = common.HexToAddress("0x16f1b1cb43c0744f85b52104f6a7c3cc60cd3c49")
	bob   = common.HexToAddress("0xf204b4b3b0a4656e8e818d6c051679162f426999")
)

// newContext builds a gin context for a handler call. A zero caller leaves
// the request unauthenticated.
func newContext(method, target, body string, caller common.Address, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if caller != (common.Address{}) {
		c.Set(middleware.CtxCaller, caller)
	}
	c.Params = params
	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

// --- Payee handler ---

func TestAddPayee_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	p := domain.NewPayee(alice, true)
	reg.EXPECT().AddPayee(gomock.Any(), admin, alice, true).Return(&p, nil)

	c, w := newContext(http.MethodPost, "/api/v1/payees", `{"address":"0x16f1b1cb43c0744f85b52104f6a7c3cc60cd3c49","whitelisted":true}`, admin)
	h.AddPayee(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, alice.Hex(), data["address"])
	assert.Equal(t, true, data["allowed"])
	assert.Equal(t, true, data["whitelisted"])
	assert.Equal(t, "0", data["withdrawn_in_window"])
}

func TestAddPayee_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPayeeHandler(mocks.NewMockRegistryService(ctrl))
	c, w := newContext(http.MethodPost, "/api/v1/payees", `{"address":"0x16f1b1cb43c0744f85b52104f6a7c3cc60cd3c49"}`, common.Address{})
	h.AddPayee(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SEC_001", errorCode(t, w))
}

func TestAddPayee_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPayeeHandler(mocks.NewMockRegistryService(ctrl))

	for _, body := range []string{
		`{}`,
		`{"address":"0x1234"}`,
		`{"address":"0x0000000000000000000000000000000000000000"}`,
		`not-json`,
	} {
		c, w := newContext(http.MethodPost, "/api/v1/payees", body, admin)
		h.AddPayee(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "VAL_001", errorCode(t, w), body)
	}
}

func TestAddPayee_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	reg.EXPECT().AddPayee(gomock.Any(), bob, alice, false).Return(nil, apperror.ErrUnauthorized())

	c, w := newContext(http.MethodPost, "/api/v1/payees", `{"address":"`+alice.Hex()+`"}`, bob)
	h.AddPayee(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACL_001", errorCode(t, w))
}

func TestAddPayees_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	reg.EXPECT().AddPayees(gomock.Any(), admin, []common.Address{alice, bob}, []bool{false, true}).
		Return([]domain.Payee{domain.NewPayee(alice, false), domain.NewPayee(bob, true)}, nil)

	body := `{"addresses":["` + alice.Hex() + `","` + bob.Hex() + `"],"whitelisted":[false,true]}`
	c, w := newContext(http.MethodPost, "/api/v1/payees/batch", body, admin)
	h.AddPayees(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, bob.Hex(), resp.Data[1]["address"])
	assert.Equal(t, true, resp.Data[1]["whitelisted"])
}

func TestAddPayees_MalformedEntryRejectsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPayeeHandler(mocks.NewMockRegistryService(ctrl))

	body := `{"addresses":["` + alice.Hex() + `","0xnope"],"whitelisted":[false,true]}`
	c, w := newContext(http.MethodPost, "/api/v1/payees/batch", body, admin)
	h.AddPayees(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddPayees_TooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPayeeHandler(mocks.NewMockRegistryService(ctrl))

	addrs := make([]string, 257)
	flags := make([]string, 257)
	for i := range addrs {
		addrs[i] = `"` + alice.Hex() + `"`
		flags[i] = "false"
	}
	body := `{"addresses":[` + strings.Join(addrs, ",") + `],"whitelisted":[` + strings.Join(flags, ",") + `]}`
	c, w := newContext(http.MethodPost, "/api/v1/payees/batch", body, admin)
	h.AddPayees(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWhitelist_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	p := domain.NewPayee(alice, true)
	reg.EXPECT().WhitelistPayee(gomock.Any(), admin, alice).Return(&p, nil)

	c, w := newContext(http.MethodPost, "/", "", admin, gin.Param{Key: "address", Value: strings.ToLower(alice.Hex())})
	h.Whitelist(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["whitelisted"])
}

func TestBlacklist_NotWhitelisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	reg.EXPECT().BlacklistPayee(gomock.Any(), admin, alice).Return(nil, apperror.ErrNotWhitelisted())

	c, w := newContext(http.MethodPost, "/", "", admin, gin.Param{Key: "address", Value: alice.Hex()})
	h.Blacklist(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "REG_004", errorCode(t, w))
}

func TestWhitelist_BadAddressParam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPayeeHandler(mocks.NewMockRegistryService(ctrl))

	c, w := newContext(http.MethodPost, "/", "", admin, gin.Param{Key: "address", Value: "alice"})
	h.Whitelist(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemove_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	reg.EXPECT().RemovePayee(gomock.Any(), admin, alice).Return(nil)

	c, w := newContext(http.MethodDelete, "/", "", admin, gin.Param{Key: "address", Value: alice.Hex()})
	h.Remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["allowed"])
	assert.Equal(t, false, data["whitelisted"])
}

func TestGetPayee_DefaultRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	p := domain.UnregisteredPayee(bob)
	reg.EXPECT().GetPayee(gomock.Any(), bob).Return(&p, nil)

	c, w := newContext(http.MethodGet, "/", "", common.Address{}, gin.Param{Key: "address", Value: bob.Hex()})
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["allowed"])
	assert.Equal(t, float64(0), data["window_start"])
}

func TestIsWhitelisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	reg.EXPECT().IsWhitelisted(gomock.Any(), alice).Return(true, nil)

	c, w := newContext(http.MethodGet, "/", "", common.Address{}, gin.Param{Key: "address", Value: alice.Hex()})
	h.IsWhitelisted(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["whitelisted"])
}

func TestListPayees(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := mocks.NewMockRegistryService(ctrl)
	h := NewPayeeHandler(reg)

	wl := true
	reg.EXPECT().ListPayees(gomock.Any(), ports.PayeeListParams{Whitelisted: &wl, Page: 2, PageSize: 1}).
		Return([]domain.Payee{domain.NewPayee(bob, true)}, int64(3), nil)

	c, w := newContext(http.MethodGet, "/api/v1/payees?whitelisted=true&page=2&page_size=1", "", common.Address{})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(3), data["total_pages"])
	assert.Len(t, data["items"], 1)
}

func TestListPayees_BadFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPayeeHandler(mocks.NewMockRegistryService(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/payees?whitelisted=maybe", "", common.Address{})
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPayees_PageTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPayeeHandler(mocks.NewMockRegistryService(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/payees?page=461168601842738792", "", common.Address{})
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", errorCode(t, w))
}

// --- Treasury handler ---

func overviewFixture() *ports.TreasuryOverview {
	return &ports.TreasuryOverview{
		Admin:         admin,
		DailyLimit:    uint256.NewInt(1_000_000_000_000_000_000),
		Balance:       uint256.NewInt(5),
		EventSeq:      7,
		LastEventHash: "abc",
	}
}

func TestDeposit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	trs.EXPECT().Deposit(gomock.Any(), bob, uint256.NewInt(5)).Return(nil)
	trs.EXPECT().Overview(gomock.Any()).Return(overviewFixture(), nil)

	c, w := newContext(http.MethodPost, "/api/v1/treasury/deposits", `{"amount":"5"}`, bob)
	h.Deposit(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "5", data["balance"])
	assert.Equal(t, admin.Hex(), data["admin"])
	assert.Equal(t, float64(7), data["event_seq"])
}

func TestDeposit_MalformedAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewTreasuryHandler(mocks.NewMockTreasuryService(ctrl))

	for _, body := range []string{`{}`, `{"amount":"-1"}`, `{"amount":"1.5"}`, `{"amount":5}`} {
		c, w := newContext(http.MethodPost, "/api/v1/treasury/deposits", body, bob)
		h.Deposit(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestOwnerWithdraw_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	trs.EXPECT().OwnerWithdraws(gomock.Any(), admin, uint256.NewInt(100)).Return(apperror.ErrInsufficientFunds())

	c, w := newContext(http.MethodPost, "/api/v1/treasury/withdrawals/owner", `{"amount":"100"}`, admin)
	h.OwnerWithdraw(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "TRS_003", errorCode(t, w))
}

func TestPayeeWithdraw_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	p := domain.NewPayee(alice, false)
	p.WindowStart = 1_700_000_000
	p.WithdrawnInWindow.SetUint64(250)
	trs.EXPECT().PayeeWithdraws(gomock.Any(), alice, uint256.NewInt(250)).Return(&p, nil)

	c, w := newContext(http.MethodPost, "/api/v1/treasury/withdrawals/payee", `{"amount":"250"}`, alice)
	h.PayeeWithdraw(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "250", data["withdrawn_in_window"])
	assert.Equal(t, float64(1_700_000_000), data["window_start"])
}

func TestPayeeWithdraw_LimitExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	trs.EXPECT().PayeeWithdraws(gomock.Any(), alice, gomock.Any()).Return(nil, apperror.ErrLimitExceeded())

	c, w := newContext(http.MethodPost, "/api/v1/treasury/withdrawals/payee", `{"amount":"2000000000000000000"}`, alice)
	h.PayeeWithdraw(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "TRS_001", errorCode(t, w))
}

func TestSetDailyLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	big := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	trs.EXPECT().SetDailyLimit(gomock.Any(), admin, gomock.Any()).Return(nil)

	c, w := newContext(http.MethodPut, "/api/v1/treasury/daily-limit", `{"amount":"`+big+`"}`, admin)
	h.SetDailyLimit(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, big, decodeData(t, w)["daily_limit"])
}

func TestSetDailyLimit_Unchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	trs.EXPECT().SetDailyLimit(gomock.Any(), admin, uint256.NewInt(10)).Return(apperror.InvalidInput("daily limit unchanged"))

	c, w := newContext(http.MethodPut, "/api/v1/treasury/daily-limit", `{"amount":"10"}`, admin)
	h.SetDailyLimit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDailyLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	trs.EXPECT().DailyLimit(gomock.Any()).Return(uint256.NewInt(1_000_000_000_000_000_000), nil)

	c, w := newContext(http.MethodGet, "/api/v1/treasury/daily-limit", "", common.Address{})
	h.GetDailyLimit(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000000000000000000", decodeData(t, w)["daily_limit"])
}

func TestAllowance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	limited := domain.NewPayee(alice, false)
	limited.WindowStart = 1_700_000_000
	limited.WithdrawnInWindow.SetUint64(600)
	trs.EXPECT().Allowance(gomock.Any(), alice).
		Return(&ports.PayeeAllowance{Payee: limited, Remaining: uint256.NewInt(400)}, nil)
	trs.EXPECT().Allowance(gomock.Any(), bob).
		Return(&ports.PayeeAllowance{Payee: domain.NewPayee(bob, true)}, nil)

	c, w := newContext(http.MethodGet, "/", "", common.Address{}, gin.Param{Key: "address", Value: alice.Hex()})
	h.Allowance(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "400", data["remaining_in_window"])
	assert.Equal(t, "600", data["withdrawn_in_window"])
	assert.Equal(t, alice.Hex(), data["address"])

	c, w = newContext(http.MethodGet, "/", "", common.Address{}, gin.Param{Key: "address", Value: bob.Hex()})
	h.Allowance(c)

	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, true, data["whitelisted"])
	assert.NotContains(t, data, "remaining_in_window")
}

func TestAllowance_BadAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewTreasuryHandler(mocks.NewMockTreasuryService(ctrl))

	c, w := newContext(http.MethodGet, "/", "", common.Address{}, gin.Param{Key: "address", Value: "alice"})
	h.Allowance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOverview_NotInitialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	trs := mocks.NewMockTreasuryService(ctrl)
	h := NewTreasuryHandler(trs)

	trs.EXPECT().Overview(gomock.Any()).Return(nil, apperror.ErrNotInitialized())

	c, w := newContext(http.MethodGet, "/api/v1/treasury", "", common.Address{})
	h.Overview(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// --- Event handler ---

func TestListEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mocks.NewMockEventQueryService(ctrl)
	h := NewEventHandler(svc)

	et := domain.EventPayeeWithdrawal
	ev := domain.PayeeWithdrawal(alice, uint256.NewInt(9))
	ev.Seq = 4
	ev.ID = uuid.New()
	ev.Caller = alice
	ev.CreatedAt = time.Unix(1_700_000_000, 0)

	svc.EXPECT().ListEvents(gomock.Any(), ports.EventListParams{
		Type:     &et,
		Payee:    &alice,
		AfterSeq: 3,
		Page:     1,
		PageSize: 20,
	}).Return([]domain.Event{*ev}, int64(1), nil)

	c, w := newContext(http.MethodGet, "/api/v1/events?type=PayeeWithdrawal&payee="+alice.Hex()+"&after_seq=3", "", common.Address{})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "PayeeWithdrawal", item["type"])
	assert.Equal(t, "9", item["value"])
	assert.Equal(t, alice.Hex(), item["payee"])
	assert.Equal(t, "2023-11-14T22:13:20Z", item["created_at"])
}

func TestListEvents_BadQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewEventHandler(mocks.NewMockEventQueryService(ctrl))

	for _, q := range []string{"?payee=0xabc", "?after_seq=abc"} {
		c, w := newContext(http.MethodGet, "/api/v1/events"+q, "", common.Address{})
		h.List(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestListEvents_PageTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewEventHandler(mocks.NewMockEventQueryService(ctrl))

	for _, page := range []string{"461168601842738792", "1000001"} {
		c, w := newContext(http.MethodGet, "/api/v1/events?page="+page, "", common.Address{})
		h.List(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, page)
		assert.Equal(t, "VAL_001", errorCode(t, w), page)
	}
}

// --- Session handler ---

func TestOpenSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := mocks.NewMockTokenService(ctrl)
	h := NewSessionHandler(tokens)

	expiry := time.Unix(1_700_003_600, 0)
	tokens.EXPECT().Generate(alice).Return("jwt-token", expiry, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/session", "", alice)
	h.Open(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, alice.Hex(), data["caller"])
	assert.Equal(t, float64(1_700_003_600), data["expiry"])
}

func TestOpenSession_TokenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := mocks.NewMockTokenService(ctrl)
	h := NewSessionHandler(tokens)

	tokens.EXPECT().Generate(alice).Return("", time.Time{}, errors.New("no secret"))

	c, w := newContext(http.MethodPost, "/api/v1/auth/session", "", alice)
	h.Open(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Health ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Name().Return("postgres").AnyTimes()
	pg.EXPECT().Ping(gomock.Any()).Return(nil)

	rd := mocks.NewMockHealthChecker(ctrl)
	rd.EXPECT().Name().Return("redis").AnyTimes()
	rd.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	c, w := newContext(http.MethodGet, "/health", "", common.Address{})
	HealthCheck(pg, rd)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestSwagger(t *testing.T) {
	c, w := newContext(http.MethodGet, "/swagger/spec", "", common.Address{})
	SetSwaggerSpec(nil)
	SwaggerSpec(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	SetSwaggerSpec([]byte("openapi: 3.0.3"))
	defer SetSwaggerSpec(nil)
	c, w = newContext(http.MethodGet, "/swagger/spec", "", common.Address{})
	SwaggerSpec(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/swagger", "", common.Address{})
	SwaggerUI(c)
	assert.Contains(t, w.Body.String(), "Payee Treasury")
}
