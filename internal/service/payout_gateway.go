package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"payee-treasury/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
)

const maxAckBytes = 4096

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// LedgerPayoutGateway settles payouts on the internal ledger only. The
// ledger debit has already happened inside the call's transaction.
type LedgerPayoutGateway struct {
	log zerolog.Logger
}

func NewLedgerPayoutGateway(log zerolog.Logger) *LedgerPayoutGateway {
	return &LedgerPayoutGateway{log: log}
}

func (g *LedgerPayoutGateway) Transfer(_ context.Context, to common.Address, amount *uint256.Int) error {
	g.log.Debug().Str("to", to.Hex()).Str("amount", amount.Dec()).Msg("payout settled on ledger")
	return nil
}

// SettlementRequest is the JSON body posted to the custodian.
type SettlementRequest struct {
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// HTTPPayoutGateway asks an external custodian to move funds. The body is
// signed with HMAC-SHA256 in the X-Signature header and the custodian signs
// its acknowledgement body the same way. Any non-2xx answer or an ack whose
// signature does not verify is a failed transfer, which aborts the withdrawal.
type HTTPPayoutGateway struct {
	url        string
	secret     string
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	clock      ports.Clock
	log        zerolog.Logger
}

// NewHTTPPayoutGateway creates a new settlement client.
func NewHTTPPayoutGateway(
	url, secret string,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	clock ports.Clock,
	log zerolog.Logger,
) *HTTPPayoutGateway {
	return &HTTPPayoutGateway{
		url:        url,
		secret:     secret,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		clock:      clock,
		log:        log,
	}
}

func (g *HTTPPayoutGateway) Transfer(ctx context.Context, to common.Address, amount *uint256.Int) error {
	body, err := json.Marshal(SettlementRequest{
		To:        to.Hex(),
		Amount:    amount.Dec(),
		Timestamp: g.clock.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal settlement request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build settlement request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", g.sigSvc.Sign(g.secret, string(body)))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("settlement request: %w", err)
	}
	defer resp.Body.Close()
	ack, err := io.ReadAll(io.LimitReader(resp.Body, maxAckBytes))
	if err != nil {
		return fmt.Errorf("read settlement acknowledgement: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("settlement rejected with status %d", resp.StatusCode)
	}
	if !g.sigSvc.Verify(g.secret, string(ack), resp.Header.Get("X-Signature")) {
		return errors.New("settlement acknowledgement signature mismatch")
	}

	g.log.Info().Str("to", to.Hex()).Str("amount", amount.Dec()).Msg("payout settled by custodian")
	return nil
}
