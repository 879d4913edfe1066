// Package session holds the UI state that lives for one sitting and is
// never persisted: which student is selected and which voucher, if any, is
// open in the print preview. It is passed explicitly to the callers that
// need it rather than held as ambient globals.
package session

import (
	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
)

// Context is the session-scoped UI state.
type Context struct {
	selectedStudentID string
	activeVoucher     *voucher.Voucher
}

// New creates an empty session context.
func New() *Context {
	return &Context{}
}

// SelectStudent records the current roster selection.
func (c *Context) SelectStudent(studentID string) {
	c.selectedStudentID = studentID
}

// SelectedStudentID returns the current selection, possibly empty. Callers
// resolve it through the roster's fallback lookup.
func (c *Context) SelectedStudentID() string {
	return c.selectedStudentID
}

// ShowVoucher makes the voucher the active one for display and printing.
func (c *Context) ShowVoucher(v *voucher.Voucher) {
	c.activeVoucher = v
}

// ActiveVoucher returns the voucher currently on display, or nil.
func (c *Context) ActiveVoucher() *voucher.Voucher {
	return c.activeVoucher
}

// CloseVoucherPreview discards the display pointer. The ledger is not
// affected; this is the only cancellable interaction in the core.
func (c *Context) CloseVoucherPreview() {
	c.activeVoucher = nil
}
