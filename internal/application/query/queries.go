// Package query contains read operations (CQRS - Queries). Queries never
// mutate state and never persist.
package query

import (
	"github.com/merit-hub/merit-cafe-hub/internal/domain/roster"
	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentHandler resolves the current student selection.
type GetStudentHandler struct {
	roster *roster.Store
}

// NewGetStudentHandler creates a new GetStudentHandler.
func NewGetStudentHandler(rosterStore *roster.Store) *GetStudentHandler {
	return &GetStudentHandler{roster: rosterStore}
}

// Handle returns the student for the id, falling back to the first student
// in roster order so the UI always has a selection when one exists. Nil
// only for an empty roster.
func (h *GetStudentHandler) Handle(studentID string) *roster.Student {
	return h.roster.Find(studentID)
}

// Roster returns all students in insertion order.
func (h *GetStudentHandler) Roster() []*roster.Student {
	return h.roster.Students()
}

// ══════════════════════════════════════════════════════════════════════════════
// GET ELIGIBILITY
// ══════════════════════════════════════════════════════════════════════════════

// Eligibility describes a student's position against the threshold, used
// by the UI to enable or disable the issue action.
type Eligibility struct {
	Eligible  bool
	Remaining int
	Threshold int
}

// GetEligibilityHandler computes eligibility for display.
type GetEligibilityHandler struct {
	roster *roster.Store
	policy voucher.Policy
}

// NewGetEligibilityHandler creates a new GetEligibilityHandler.
func NewGetEligibilityHandler(rosterStore *roster.Store, policy voucher.Policy) *GetEligibilityHandler {
	return &GetEligibilityHandler{roster: rosterStore, policy: policy.Normalize()}
}

// Handle returns the eligibility of the resolved student. An empty roster
// yields not-eligible with the full threshold remaining.
func (h *GetEligibilityHandler) Handle(studentID string) Eligibility {
	st := h.roster.Find(studentID)
	return Eligibility{
		Eligible:  h.policy.Eligible(st),
		Remaining: h.policy.Remaining(st),
		Threshold: h.policy.Threshold,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST VOUCHERS
// ══════════════════════════════════════════════════════════════════════════════

// ListVouchersHandler reads the voucher log.
type ListVouchersHandler struct {
	ledger *voucher.Ledger
}

// NewListVouchersHandler creates a new ListVouchersHandler.
func NewListVouchersHandler(ledger *voucher.Ledger) *ListVouchersHandler {
	return &ListVouchersHandler{ledger: ledger}
}

// Handle returns the full log, most-recent-first, exactly as issued.
func (h *ListVouchersHandler) Handle() []*voucher.Voucher {
	return h.ledger.Vouchers()
}

// Find returns one voucher by id, or nil.
func (h *ListVouchersHandler) Find(voucherID string) *voucher.Voucher {
	return h.ledger.Find(voucherID)
}
