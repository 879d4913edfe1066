// Package voucher contains the café voucher domain: the eligibility policy,
// the voucher entity with its frozen issuance snapshot, and the append-only
// ledger of everything ever issued.
package voucher

import (
	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
)

// Default policy values. The threshold is the commendation count required
// before a voucher may be issued; the amount is the fixed face value of
// each voucher in pence.
const (
	DefaultThreshold   = 5
	DefaultAmountPence = 290
)

// Policy holds the issuance rules. Both checks are pure functions of the
// student's current balance.
type Policy struct {
	// Threshold is the commendation count required for eligibility.
	Threshold int

	// AmountPence is the face value frozen into each issued voucher.
	AmountPence int
}

// DefaultPolicy returns the standard policy.
func DefaultPolicy() Policy {
	return Policy{
		Threshold:   DefaultThreshold,
		AmountPence: DefaultAmountPence,
	}
}

// Normalize replaces non-positive fields with defaults.
func (p Policy) Normalize() Policy {
	if p.Threshold <= 0 {
		p.Threshold = DefaultThreshold
	}
	if p.AmountPence <= 0 {
		p.AmountPence = DefaultAmountPence
	}
	return p
}

// Eligible reports whether the student may be issued a voucher right now.
func (p Policy) Eligible(st *roster.Student) bool {
	return st != nil && st.Commendations.Int() >= p.Threshold
}

// Remaining returns how many more commendations the student needs before
// becoming eligible. Never negative.
func (p Policy) Remaining(st *roster.Student) int {
	if st == nil {
		return p.Threshold
	}
	remaining := p.Threshold - st.Commendations.Int()
	if remaining < 0 {
		return 0
	}
	return remaining
}
