package voucher

import (
	"fmt"
	"strings"
	"time"
)

// Voucher is one issued café voucher. Everything except Redeemed is frozen
// at issuance: renaming the student or changing the configured amount never
// rewrites history.
type Voucher struct {
	// ID is the globally unique opaque identifier, never reused.
	ID string `json:"id"`

	// StudentID is a weak reference to the issuing student; the voucher
	// stays valid even if the student is later removed from the roster.
	StudentID string `json:"student_id"`

	// StudentName is the display name snapshot taken at issuance.
	StudentName string `json:"student_name"`

	// IssuedAt is the issuance instant (UTC).
	IssuedAt time.Time `json:"issued_at"`

	// AmountPence is the face value snapshot taken at issuance.
	AmountPence int `json:"amount_pence"`

	// Redeemed marks whether the voucher has been used. Toggle only - the
	// voucher has no other lifecycle transition.
	Redeemed bool `json:"redeemed"`
}

// ToggleRedeemed flips the redeemed flag.
func (v *Voucher) ToggleRedeemed() {
	v.Redeemed = !v.Redeemed
}

// ShortID returns the last 8 characters of the id, uppercased, for the
// printed slip.
func (v *Voucher) ShortID() string {
	return suffixUpper(v.ID, 8)
}

// SupportID returns the last 16 characters of the id, uppercased, for
// support lookup.
func (v *Voucher) SupportID() string {
	return suffixUpper(v.ID, 16)
}

// Amount formats the face value in the fixed display format, e.g. "£2.90".
func (v *Voucher) Amount() string {
	return fmt.Sprintf("£%d.%02d", v.AmountPence/100, v.AmountPence%100)
}

// String returns a representation for logging.
func (v *Voucher) String() string {
	return fmt.Sprintf(
		"Voucher{ID: %s, Student: %s, Amount: %s, Redeemed: %t}",
		v.ShortID(), v.StudentName, v.Amount(), v.Redeemed,
	)
}

// Clone creates a copy of the voucher.
func (v *Voucher) Clone() *Voucher {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

func suffixUpper(s string, n int) string {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return strings.ToUpper(s)
}
