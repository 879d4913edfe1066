// Package render produces the scannable artifacts for a voucher slip: a
// Code128 barcode encoding the full voucher id, plus the truncated
// human-readable identifiers used for support lookup. Rendering failures
// return errors and must never crash the host view.
package render

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
)

// Default barcode dimensions for a thermal slip printer.
const (
	DefaultWidth  = 240
	DefaultHeight = 60
)

// Slip is everything the print view needs for one voucher.
type Slip struct {
	// Barcode is the scaled Code128 image of the full voucher id.
	Barcode image.Image

	// ShortID is the last 8 characters of the id, uppercased.
	ShortID string

	// SupportID is the last 16 characters of the id, uppercased.
	SupportID string

	// StudentName is the frozen name snapshot.
	StudentName string

	// Amount is the formatted face value, e.g. "£2.90".
	Amount string
}

// VoucherSlip renders the slip for a voucher at the default dimensions.
func VoucherSlip(v *voucher.Voucher) (*Slip, error) {
	return VoucherSlipSized(v, DefaultWidth, DefaultHeight)
}

// VoucherSlipSized renders the slip with explicit barcode dimensions.
func VoucherSlipSized(v *voucher.Voucher, width, height int) (*Slip, error) {
	if v == nil {
		return nil, fmt.Errorf("render: nil voucher")
	}

	code, err := code128.Encode(v.ID)
	if err != nil {
		return nil, fmt.Errorf("render: encode barcode: %w", err)
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("render: scale barcode: %w", err)
	}

	return &Slip{
		Barcode:     scaled,
		ShortID:     v.ShortID(),
		SupportID:   v.SupportID(),
		StudentName: v.StudentName,
		Amount:      v.Amount(),
	}, nil
}
