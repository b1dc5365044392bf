package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// mockTx implements pgx.Tx for testing
type mockTx struct {
	pgx.Tx
	committed bool
}

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error {
	m.committed = true
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Unix(1_700_000_000, 0).UTC()
