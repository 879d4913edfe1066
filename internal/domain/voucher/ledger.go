package voucher

import (
	"time"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/shared"
)

// IDSource produces opaque, practically-unique voucher identifiers.
// Implementations live in infrastructure; the contract is that NewID never
// fails and never blocks issuance.
type IDSource interface {
	NewID() string
}

// Clock returns the current time. Injectable for tests.
type Clock func() time.Time

// ══════════════════════════════════════════════════════════════════════════════
// VOUCHER LEDGER
// ══════════════════════════════════════════════════════════════════════════════

// Ledger is the ordered log of every voucher ever issued. New vouchers are
// prepended: most-recent-first ordering is a user-facing contract, and the
// sequence is never re-sorted by any other key. Entries are never deleted;
// the only mutation is the redeemed toggle.
type Ledger struct {
	vouchers []*Voucher
}

// NewLedger creates a ledger from previously persisted vouchers, preserving
// their stored order.
func NewLedger(vouchers []*Voucher) *Ledger {
	l := &Ledger{vouchers: make([]*Voucher, 0, len(vouchers))}
	for _, v := range vouchers {
		if v == nil || v.ID == "" {
			continue
		}
		l.vouchers = append(l.vouchers, v)
	}
	return l
}

// Issue creates a voucher for the student under the given policy and
// prepends it to the ledger. Preconditions: the student is non-nil and
// eligible. On rejection no state changes occur - the ledger is untouched
// and the caller must not debit the roster.
//
// Issue does not perform the commendation debit itself; the application
// command applies the debit immediately after, so both in-memory updates
// complete before either store is persisted.
func (l *Ledger) Issue(st *roster.Student, policy Policy, ids IDSource, now Clock) (*Voucher, error) {
	if st == nil {
		return nil, shared.ErrNoStudentSelected
	}
	if !policy.Eligible(st) {
		return nil, shared.ErrStudentNotEligible
	}
	if now == nil {
		now = time.Now
	}

	v := &Voucher{
		ID:          ids.NewID(),
		StudentID:   st.ID,
		StudentName: st.Name,
		IssuedAt:    now().UTC(),
		AmountPence: policy.AmountPence,
		Redeemed:    false,
	}

	l.vouchers = append([]*Voucher{v}, l.vouchers...)
	return v, nil
}

// ToggleRedeemed flips the redeemed flag on the matching voucher and
// reports whether it was found. Unknown ids leave the ledger unchanged.
func (l *Ledger) ToggleRedeemed(id string) bool {
	for _, v := range l.vouchers {
		if v.ID == id {
			v.ToggleRedeemed()
			return true
		}
	}
	return false
}

// Find returns the voucher with the given id, or nil.
func (l *Ledger) Find(id string) *Voucher {
	for _, v := range l.vouchers {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Vouchers returns the log most-recent-first. The slice is a copy but the
// vouchers are shared; treat them as read-only outside the ledger.
func (l *Ledger) Vouchers() []*Voucher {
	out := make([]*Voucher, len(l.vouchers))
	copy(out, l.vouchers)
	return out
}

// Len returns the number of issued vouchers.
func (l *Ledger) Len() int {
	return len(l.vouchers)
}
