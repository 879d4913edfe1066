package voucher

import (
	"github.com/merit-hub/merit-cafe-hub/internal/domain/shared"
)

// IssuedEvent is emitted after a voucher is created and the roster debited.
type IssuedEvent struct {
	shared.BaseEvent
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	AmountPence int    `json:"amount_pence"`
}

// NewIssuedEvent creates the issuance event.
func NewIssuedEvent(v *Voucher) IssuedEvent {
	return IssuedEvent{
		BaseEvent:   shared.NewBaseEvent(shared.EventVoucherIssued, v.ID),
		StudentID:   v.StudentID,
		StudentName: v.StudentName,
		AmountPence: v.AmountPence,
	}
}

// RedeemedToggledEvent is emitted after a voucher's redeemed flag flips.
type RedeemedToggledEvent struct {
	shared.BaseEvent
	Redeemed bool `json:"redeemed"`
}

// NewRedeemedToggledEvent creates the toggle event.
func NewRedeemedToggledEvent(v *Voucher) RedeemedToggledEvent {
	return RedeemedToggledEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventVoucherRedeemedToggle, v.ID),
		Redeemed:  v.Redeemed,
	}
}
