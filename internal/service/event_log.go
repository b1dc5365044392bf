package service

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"payee-treasury/internal/core/domain"
	"payee-treasury/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/sha3"
)

// GenesisHash is the prev_hash of the first event.
var GenesisHash = common.Hash{}.Hex()

// EventLog appends events to the store and keeps the hash chain head in the
// wallet state. It must be used inside the transaction holding the state lock.
type EventLog struct {
	repo ports.EventRepository
}

func NewEventLog(repo ports.EventRepository) *EventLog {
	return &EventLog{repo: repo}
}

// Append numbers, links and stores ev, then advances state's chain head.
// The caller persists state in the same transaction.
func (l *EventLog) Append(ctx context.Context, tx pgx.Tx, state *domain.WalletState, caller common.Address, now time.Time, ev *domain.Event) error {
	ev.Seq = state.EventSeq + 1
	ev.ID = uuid.New()
	ev.Caller = caller
	ev.CreatedAt = now
	ev.PrevHash = state.LastEventHash
	if ev.PrevHash == "" {
		ev.PrevHash = GenesisHash
	}
	ev.Hash = HashEvent(ev)

	if err := l.repo.Append(ctx, tx, ev); err != nil {
		return fmt.Errorf("append event %s: %w", ev.Type, err)
	}

	state.EventSeq = ev.Seq
	state.LastEventHash = ev.Hash
	return nil
}

// HashEvent computes keccak256(prev_hash | seq | type | payee | value | caller | created_at).
// Absent payee and value contribute zero bytes of fixed width.
func HashEvent(ev *domain.Event) string {
	h := sha3.NewLegacyKeccak256()

	h.Write(common.HexToHash(ev.PrevHash).Bytes())

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ev.Seq))
	h.Write(buf[:])

	h.Write([]byte(ev.Type))

	var payee common.Address
	if ev.Payee != nil {
		payee = *ev.Payee
	}
	h.Write(payee.Bytes())

	var value [32]byte
	if ev.Value != nil {
		value = ev.Value.Bytes32()
	}
	h.Write(value[:])

	h.Write(ev.Caller.Bytes())

	binary.BigEndian.PutUint64(buf[:], uint64(ev.CreatedAt.Unix()))
	h.Write(buf[:])

	return common.BytesToHash(h.Sum(nil)).Hex()
}

// VerifyChain checks that events form an unbroken chain starting after
// prevHash. Events must be in ascending seq order.
func VerifyChain(prevHash string, events []domain.Event) error {
	if prevHash == "" {
		prevHash = GenesisHash
	}
	for i := range events {
		ev := &events[i]
		if ev.PrevHash != prevHash {
			return fmt.Errorf("event %d: prev_hash %s does not match %s", ev.Seq, ev.PrevHash, prevHash)
		}
		if want := HashEvent(ev); ev.Hash != want {
			return fmt.Errorf("event %d: hash %s does not match contents", ev.Seq, ev.Hash)
		}
		prevHash = ev.Hash
	}
	return nil
}
