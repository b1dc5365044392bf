package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// EventType names an accepted state transition.
type EventType string

const (
	EventPayeeAdded        EventType = "PayeeAdded"
	EventPayeeWhitelisted  EventType = "PayeeWhitelisted"
	EventPayeeBlacklisted  EventType = "PayeeBlacklisted"
	EventPayeeRemoved      EventType = "PayeeRemoved"
	EventDailyLimitChanged EventType = "DailyLimitChanged"
	EventDeposit           EventType = "Deposit"
	EventOwnerWithdrawal   EventType = "OwnerWithdrawal"
	EventPayeeWithdrawal   EventType = "PayeeWithdrawal"
)

// EventTypes lists every event type in declaration order.
var EventTypes = []EventType{
	EventPayeeAdded,
	EventPayeeWhitelisted,
	EventPayeeBlacklisted,
	EventPayeeRemoved,
	EventDailyLimitChanged,
	EventDeposit,
	EventOwnerWithdrawal,
	EventPayeeWithdrawal,
}

// IsValid reports whether t is a known event type.
func (t EventType) IsValid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Event is one append-only EventLog record. Payee and Value are nil when the
// event type does not carry them.
type Event struct {
	Seq       int64           `json:"seq"`
	ID        uuid.UUID       `json:"id"`
	Type      EventType       `json:"type"`
	Payee     *common.Address `json:"payee,omitempty"`
	Value     *uint256.Int    `json:"-"`
	Caller    common.Address  `json:"caller"`
	PrevHash  string          `json:"prev_hash"`
	Hash      string          `json:"hash"`
	CreatedAt time.Time       `json:"created_at"`
}

func PayeeAdded(payee common.Address) *Event {
	return &Event{Type: EventPayeeAdded, Payee: &payee}
}

func PayeeWhitelisted(payee common.Address) *Event {
	return &Event{Type: EventPayeeWhitelisted, Payee: &payee}
}

func PayeeBlacklisted(payee common.Address) *Event {
	return &Event{Type: EventPayeeBlacklisted, Payee: &payee}
}

func PayeeRemoved(payee common.Address) *Event {
	return &Event{Type: EventPayeeRemoved, Payee: &payee}
}

func DailyLimitChanged(newLimit *uint256.Int) *Event {
	return &Event{Type: EventDailyLimitChanged, Value: new(uint256.Int).Set(newLimit)}
}

func Deposit(value *uint256.Int) *Event {
	return &Event{Type: EventDeposit, Value: new(uint256.Int).Set(value)}
}

func OwnerWithdrawal(value *uint256.Int) *Event {
	return &Event{Type: EventOwnerWithdrawal, Value: new(uint256.Int).Set(value)}
}

func PayeeWithdrawal(payee common.Address, value *uint256.Int) *Event {
	return &Event{Type: EventPayeeWithdrawal, Payee: &payee, Value: new(uint256.Int).Set(value)}
}
