// Package state loads and saves the hub's two persisted records - the
// roster and the voucher log - over any kv.Store backend. Loading tolerates
// missing and corrupt data by falling back to documented defaults; saving
// retries briefly and then swallows the failure, leaving in-memory state
// authoritative for the session.
package state

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/kv"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
	"github.com/merit-hub/merit-cafe-hub/pkg/retry"
)

// Logical store names. These are the persisted-state contract: two
// independent records, each a JSON array.
const (
	KeyRoster     = "roster"
	KeyVoucherLog = "voucherLog"
)

// Manager composes the kv backend with serialization, retry, and the
// degrade-gracefully write policy.
type Manager struct {
	store kv.Store
	log   *logger.Logger
	retry retry.Config
}

// NewManager creates a state manager over the given backend.
func NewManager(store kv.Store, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Default()
	}
	return &Manager{
		store: store,
		log:   log.With(logger.String("component", "state")),
		retry: retry.DefaultConfig(),
	}
}

// LoadRoster returns the persisted roster, or the seed roster when the
// record is missing or unreadable. The fallback never fails the caller.
func (m *Manager) LoadRoster(ctx context.Context) *roster.Store {
	data, err := m.store.Load(ctx, KeyRoster)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			m.log.Warn("roster load failed, using seed roster", logger.Err(err))
		}
		return roster.NewStore(roster.Seed())
	}

	var students []*roster.Student
	if err := json.Unmarshal(data, &students); err != nil {
		m.log.Warn("roster record corrupt, using seed roster", logger.Err(err))
		return roster.NewStore(roster.Seed())
	}
	return roster.NewStore(sanitizeStudents(students))
}

// LoadLedger returns the persisted voucher log, or an empty ledger when the
// record is missing or unreadable.
func (m *Manager) LoadLedger(ctx context.Context) *voucher.Ledger {
	data, err := m.store.Load(ctx, KeyVoucherLog)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			m.log.Warn("voucher log load failed, starting empty", logger.Err(err))
		}
		return voucher.NewLedger(nil)
	}

	var vouchers []*voucher.Voucher
	if err := json.Unmarshal(data, &vouchers); err != nil {
		m.log.Warn("voucher log record corrupt, starting empty", logger.Err(err))
		return voucher.NewLedger(nil)
	}
	return voucher.NewLedger(vouchers)
}

// SaveRoster persists the full roster. Failures are logged and swallowed:
// the session keeps running on in-memory state.
func (m *Manager) SaveRoster(ctx context.Context, r *roster.Store) {
	m.save(ctx, KeyRoster, r.Students())
}

// SaveLedger persists the full voucher log. Same swallow policy.
func (m *Manager) SaveLedger(ctx context.Context, l *voucher.Ledger) {
	m.save(ctx, KeyVoucherLog, l.Vouchers())
}

func (m *Manager) save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		m.log.Error("serialize failed", logger.String("key", key), logger.Err(err))
		return
	}

	err = retry.Do(ctx, m.retry, func(ctx context.Context) error {
		return m.store.Save(ctx, key, data)
	})
	if err != nil {
		m.log.Warn("save failed, continuing in-memory",
			logger.String("key", key), logger.Err(err))
	}
}

// sanitizeStudents drops entries a hand-edited or partially written record
// might contain: empty ids and negative balances.
func sanitizeStudents(students []*roster.Student) []*roster.Student {
	out := make([]*roster.Student, 0, len(students))
	for _, st := range students {
		if st == nil || st.ID == "" {
			continue
		}
		if st.Commendations < 0 {
			st.Commendations = 0
		}
		out = append(out, st)
	}
	return out
}
