// Package memstore is an in-memory implementation of the progress storage
// contracts. It serializes writers per (user, item) key and applies a
// transaction's writes atomically at commit.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
)

type key struct {
	userID uuid.UUID
	itemID uuid.UUID
}

// Store holds all in-memory data. Use the typed views (Progress, ReviewLogs,
// Points, Audit, TxManager) to access it.
type Store struct {
	mu       sync.RWMutex
	progress map[key]domain.ProgressState
	logs     []domain.ReviewLog
	points   []domain.PointsAward
	audit    []domain.AuditRecord

	locksMu sync.Mutex
	locks   map[key]chan struct{}

	now func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		progress: make(map[key]domain.ProgressState),
		locks:    make(map[key]chan struct{}),
		now:      time.Now,
	}
}

// Progress returns the progress repository view.
func (s *Store) Progress() *ProgressRepo { return &ProgressRepo{s: s} }

// ReviewLogs returns the review log repository view.
func (s *Store) ReviewLogs() *ReviewLogRepo { return &ReviewLogRepo{s: s} }

// Points returns the points ledger view.
func (s *Store) Points() *PointsLedger { return &PointsLedger{s: s} }

// Audit returns the audit log view.
func (s *Store) Audit() *AuditLog { return &AuditLog{s: s} }

// TxManager returns the transaction manager view.
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// ---------------------------------------------------------------------------
// Per-key locks
// ---------------------------------------------------------------------------

func (s *Store) keyLock(k key) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[k]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[k] = l
	}
	return l
}

// lock blocks until the key is free or ctx is done.
func (s *Store) lock(ctx context.Context, k key) error {
	select {
	case s.keyLock(k) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlock(k key) {
	<-s.keyLock(k)
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

type txCtxKey struct{}

// tx stages writes until commit. Keys locked by GetForUpdate stay locked
// until the transaction ends.
type tx struct {
	held map[key]struct{}

	// base is the committed version each staged save was computed from.
	base       map[key]int
	saves      map[key]domain.ProgressState
	logs       []domain.ReviewLog
	points     []domain.PointsAward
	audit      []domain.AuditRecord
	resetUsers []uuid.UUID
	eraseUsers []uuid.UUID
}

func newTx() *tx {
	return &tx{
		held:  make(map[key]struct{}),
		base:  make(map[key]int),
		saves: make(map[key]domain.ProgressState),
	}
}

func txFromCtx(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txCtxKey{}).(*tx)
	return t, ok
}

// TxManager runs functions inside an in-memory transaction.
type TxManager struct {
	s *Store
}

// RunInTx executes fn within a transaction. A nested call joins the outer
// transaction. On error or panic every staged write is discarded.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromCtx(ctx); ok {
		return fn(ctx)
	}

	t := newTx()
	defer m.s.release(t)

	if err := fn(context.WithValue(ctx, txCtxKey{}, t)); err != nil {
		return err
	}

	if err := m.s.commit(t); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) release(t *tx) {
	for k := range t.held {
		s.unlock(k)
	}
	clear(t.held)
}

// commit checks every staged save against the committed version, then
// applies all staged writes under a single lock.
func (s *Store) commit(t *tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, want := range t.base {
		if err := s.checkVersion(k, want); err != nil {
			return err
		}
	}

	for _, userID := range t.resetUsers {
		s.deleteProgressLocked(userID)
	}
	for _, userID := range t.eraseUsers {
		s.deleteLogsLocked(userID)
	}
	for k, st := range t.saves {
		s.progress[k] = st
	}
	s.logs = append(s.logs, t.logs...)
	s.points = append(s.points, t.points...)
	s.audit = append(s.audit, t.audit...)

	return nil
}

// checkVersion requires the committed row to be at version want, where 0
// means the row must not exist. Caller holds s.mu.
func (s *Store) checkVersion(k key, want int) error {
	cur, ok := s.progress[k]
	switch {
	case want == 0 && ok:
		return fmt.Errorf("progress already exists: %w", domain.ErrConflict)
	case want > 0 && !ok:
		return fmt.Errorf("progress was deleted: %w", domain.ErrConflict)
	case want > 0 && cur.Version != want:
		return fmt.Errorf("progress version %d, expected %d: %w", cur.Version, want, domain.ErrConflict)
	}
	return nil
}

func (s *Store) deleteProgressLocked(userID uuid.UUID) int {
	n := 0
	for k := range s.progress {
		if k.userID == userID {
			delete(s.progress, k)
			n++
		}
	}
	return n
}

func (s *Store) deleteLogsLocked(userID uuid.UUID) int {
	kept := s.logs[:0]
	n := 0
	for _, l := range s.logs {
		if l.UserID == userID {
			n++
			continue
		}
		kept = append(kept, l)
	}
	clear(s.logs[len(kept):])
	s.logs = kept
	return n
}
