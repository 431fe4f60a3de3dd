package sqlite

import (
	"context"
	"database/sql"

	"github.com/huddlehq/huddle/internal/scheduler/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested transactions are not supported.
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx starts

func (t *txStore) Meetings() store.Meetings           { return &meetingsRepo{q: t.tx} }
func (t *txStore) Participants() store.Participants   { return &participantsRepo{q: t.tx} }
func (t *txStore) Notifications() store.Notifications { return &notificationsRepo{q: t.tx} }
