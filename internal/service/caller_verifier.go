package service

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrMalformedSignature = errors.New("malformed signature")
	ErrRecoveryFailed     = errors.New("signature recovery failed")
)

// EIP191CallerVerifier implements ports.CallerVerifier. Requests are signed
// with personal_sign over the canonical string, the same scheme wallets use
// for off-chain messages.
type EIP191CallerVerifier struct{}

// NewEIP191CallerVerifier creates a new caller verifier.
func NewEIP191CallerVerifier() *EIP191CallerVerifier {
	return &EIP191CallerVerifier{}
}

// BuildCanonicalString constructs the canonical payload for signing.
// Format: METHOD|PATH|TIMESTAMP|NONCE|BODY
func (v *EIP191CallerVerifier) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	return fmt.Sprintf("%s|%s|%d|%s|%s", method, path, timestamp, nonce, body)
}

// Recover returns the address whose key produced signatureHex over payload.
// The recovery id may be 0/1 or 27/28.
func (v *EIP191CallerVerifier) Recover(payload string, signatureHex string) (common.Address, error) {
	if !strings.HasPrefix(signatureHex, "0x") {
		signatureHex = "0x" + signatureHex
	}
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: want %d bytes, got %d", ErrMalformedSignature, crypto.SignatureLength, len(sig))
	}

	sig = append([]byte(nil), sig...)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("%w: invalid recovery id", ErrMalformedSignature)
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(payload)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrRecoveryFailed, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// SignCallerPayload signs payload the way a wallet's personal_sign would.
// The result uses a 27/28 recovery id.
func SignCallerPayload(key *ecdsa.PrivateKey, payload string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(payload)), key)
	if err != nil {
		return "", fmt.Errorf("signing payload: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}
