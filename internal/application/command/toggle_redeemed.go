package command

import (
	"context"

	"github.com/merit-hub/merit-cafe-hub/internal/domain/voucher"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/messaging"
	"github.com/merit-hub/merit-cafe-hub/internal/infrastructure/persistence/state"
	"github.com/merit-hub/merit-cafe-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// TOGGLE REDEEMED COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// ToggleRedeemedCommand flips the redeemed flag on one voucher.
type ToggleRedeemedCommand struct {
	VoucherID string
}

// ToggleRedeemedHandler handles the ToggleRedeemedCommand.
type ToggleRedeemedHandler struct {
	ledger *voucher.Ledger
	state  *state.Manager
	bus    *messaging.EventBus
	log    *logger.Logger
}

// NewToggleRedeemedHandler creates a new ToggleRedeemedHandler.
func NewToggleRedeemedHandler(
	ledger *voucher.Ledger,
	stateManager *state.Manager,
	bus *messaging.EventBus,
	log *logger.Logger,
) *ToggleRedeemedHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ToggleRedeemedHandler{
		ledger: ledger,
		state:  stateManager,
		bus:    bus,
		log:    log.With(logger.String("command", "toggle_redeemed")),
	}
}

// Handle flips the flag and persists the ledger. An unknown voucher id is
// a silent no-op. Never fails.
func (h *ToggleRedeemedHandler) Handle(ctx context.Context, cmd ToggleRedeemedCommand) {
	if !h.ledger.ToggleRedeemed(cmd.VoucherID) {
		h.log.Debug("unknown voucher id ignored", logger.String("voucher_id", cmd.VoucherID))
		return
	}

	h.state.SaveLedger(ctx, h.ledger)

	if h.bus != nil {
		if v := h.ledger.Find(cmd.VoucherID); v != nil {
			h.bus.Publish(voucher.NewRedeemedToggledEvent(v))
		}
	}
}
