package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
)

func TestContext_SelectionAndPreview(t *testing.T) {
	c := New()
	assert.Empty(t, c.SelectedStudentID())
	assert.Nil(t, c.ActiveVoucher())

	c.SelectStudent("s1")
	assert.Equal(t, "s1", c.SelectedStudentID())

	v := &voucher.Voucher{ID: "v1"}
	c.ShowVoucher(v)
	assert.Same(t, v, c.ActiveVoucher())

	// Closing the preview only drops the display pointer.
	c.CloseVoucherPreview()
	assert.Nil(t, c.ActiveVoucher())
	assert.Equal(t, "s1", c.SelectedStudentID())
	assert.False(t, v.Redeemed)
}
